package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"venue-booking-backend/cmd/venue-booking/apis"
	"venue-booking-backend/cmd/venue-booking/lifecycle"
	"venue-booking-backend/cmd/venue-booking/locker"
	"venue-booking-backend/cmd/venue-booking/model"
	"venue-booking-backend/cmd/venue-booking/notify"
	"venue-booking-backend/cmd/venue-booking/repository"
	"venue-booking-backend/cmd/venue-booking/scheduler"
	"venue-booking-backend/cmd/venue-booking/venue"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the reclassification scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// app is everything the commands share once the database is open.
type app struct {
	db         *gorm.DB
	svc        *lifecycle.Service
	catalog    *venue.Catalog
	dispatcher *notify.Dispatcher
	sched      *scheduler.Scheduler
	closers    []func()
}

func (a *app) Close() {
	a.dispatcher.Wait()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, c EnvCfg) (*app, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	db, err := openDB(c)
	if err != nil {
		return nil, err
	}

	a := &app{
		db:      db,
		catalog: venue.NewCatalog(c.Venues...),
	}

	notifier, err := newNotifier(c, a)
	if err != nil {
		return nil, err
	}
	a.dispatcher = notify.NewDispatcher(notifier, c.NotifyTimeout)

	lock, err := newLocker(ctx, c, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.svc = lifecycle.NewService(
		repository.NewEventRepo(db),
		repository.NewVenueChangeRepo(db),
		a.catalog,
		a.dispatcher,
		lifecycle.WithLocation(loc),
		lifecycle.WithLocker(lock),
	)

	a.sched, err = scheduler.New(a.svc, scheduler.Config{
		Spec:          c.ReclassifySpec,
		Location:      loc,
		RetentionDays: c.RetentionDays,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func newNotifier(c EnvCfg, a *app) (notify.Notifier, error) {
	if c.ServiceBusConnection == "" {
		log.Info().Msg("no service bus configured, notifications are only logged")
		return notify.LogNotifier{}, nil
	}

	n, err := notify.NewServiceBusNotifier(c.ServiceBusConnection, c.ServiceBusQueue)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("close service bus")
		}
	})

	log.Info().Str("queue", c.ServiceBusQueue).Msg("publishing notifications to service bus")
	return n, nil
}

func newLocker(ctx context.Context, c EnvCfg, a *app) (locker.Locker, error) {
	if c.RedisAddr == "" {
		return locker.NewLocal(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis %s", c.RedisAddr)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	log.Info().Str("addr", c.RedisAddr).Msg("using redis booking locks")
	return locker.NewRedis(client, "venue-booking:"), nil
}

func newServer(a *app, secret string) *echo.Echo {
	auth := apis.NewAuthenticator(secret)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(apis.RequestLogger(log.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1")

	apis.
		NewHealthCheckAPI(a.db).
		Setup(rootg)

	apis.
		NewCatalogAPI(a.catalog).
		Setup(v1g)

	apis.
		NewEventAPI(a.svc, auth.Require(apis.RoleClub)).
		Setup(v1g)

	apis.
		NewAdminAPI(a.svc, a.sched, auth.Require(apis.RoleAdmin)).
		Setup(v1g)

	return e
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.JWTSecret == "" {
		return errors.New(envPrefix + "_JWT_SECRET is required to serve")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := model.AutoMigrate(a.db); err != nil {
		return errors.Wrap(err, "migrate")
	}

	e := newServer(a, cfg.JWTSecret)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		err := e.Start(cfg.HTTPAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return a.sched.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
