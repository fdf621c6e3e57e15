package main

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const envPrefix = "VENUE_BOOKING"

type EnvCfg struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// TimeZone decides which calendar day is "today" for classification.
	TimeZone string   `envconfig:"TIME_ZONE" default:"UTC"`
	Venues   []string `envconfig:"VENUES"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`

	ServiceBusConnection string        `envconfig:"SERVICE_BUS_CONNECTION"`
	ServiceBusQueue      string        `envconfig:"SERVICE_BUS_QUEUE" default:"venue-booking-notifications"`
	NotifyTimeout        time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`

	ReclassifySpec string `envconfig:"RECLASSIFY_SPEC" default:"0 0 * * *"`
	RetentionDays  int    `envconfig:"RETENTION_DAYS"`
}

// loadConfig reads the environment, after preloading envFile when it exists.
// Variables already set in the environment win over the file.
func loadConfig(envFile string) (EnvCfg, error) {
	var c EnvCfg

	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, errors.Wrapf(err, "load %s", envFile)
		}
	}

	err := envconfig.Process(envPrefix, &c)
	if err != nil {
		return c, err
	}

	return c, nil
}

func (c EnvCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
	)
}

func (c EnvCfg) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "time zone %q", c.TimeZone)
	}
	return loc, nil
}

func openDB(c EnvCfg) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.DSN()), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}
