// Package notify publishes requester notifications. Delivery is someone
// else's job: messages go to a Service Bus queue read by the mailer.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier only writes the message to the log. It is used when no queue is
// configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, msg Message) error {
	log.Ctx(ctx).Info().
		Str("kind", string(msg.Kind)).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("event_id", msg.EventID).
		Msg("notification")
	return nil
}

type sender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

type ServiceBusNotifier struct {
	client *azservicebus.Client
	sender sender
	source string
}

func NewServiceBusNotifier(connectionString, queueName string) (*ServiceBusNotifier, error) {
	if connectionString == "" {
		return nil, errors.New("service bus connection string is empty")
	}

	client, err := azservicebus.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create service bus client")
	}

	s, err := client.NewSender(queueName, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create service bus sender")
	}

	return &ServiceBusNotifier{
		client: client,
		sender: s,
		source: "venue-booking",
	}, nil
}

func (n *ServiceBusNotifier) Notify(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal notification")
	}

	contentType := "application/json"
	subject := string(msg.Kind)
	return n.sender.SendMessage(ctx, &azservicebus.Message{
		Body:        data,
		ContentType: &contentType,
		Subject:     &subject,
		ApplicationProperties: map[string]any{
			"source": n.source,
			"time":   time.Now().UTC().Format(time.RFC3339),
		},
	}, nil)
}

func (n *ServiceBusNotifier) Close(ctx context.Context) error {
	if n.sender != nil {
		if err := n.sender.Close(ctx); err != nil {
			return err
		}
	}
	if n.client != nil {
		return n.client.Close(ctx)
	}
	return nil
}
