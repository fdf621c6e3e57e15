package notify

import (
	"context"
	"sync"
	"time"
	"venue-booking-backend/cmd/venue-booking/metrics"

	"github.com/rs/zerolog/log"
)

// Dispatcher sends notifications in the background. Failures are logged and
// counted, never returned to the caller.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		notifier: n,
		timeout:  timeout,
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	if msg.To == "" {
		log.Debug().Str("kind", string(msg.Kind)).Msg("notification skipped, no recipient")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, msg); err != nil {
			metrics.NotificationFailures.WithLabelValues(string(msg.Kind)).Inc()
			log.Error().Err(err).
				Str("kind", string(msg.Kind)).
				Str("event_id", msg.EventID).
				Msg("notification failed")
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
