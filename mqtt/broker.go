package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// PahoBroker publishes retained messages to an MQTT broker.
type PahoBroker struct {
	client paho.Client
	logger *slog.Logger
}

func NewPahoBroker(logger *slog.Logger, host string, port int16, username string, password string) *PahoBroker {
	opts := paho.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", host, port))
	opts.SetClientID("elexon-forecast")
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client paho.Client) {
		logger.Info("MQTT connected", slog.String("host", host))
	}
	opts.OnConnectionLost = func(client paho.Client, err error) {
		logger.Warn("MQTT connection lost", slog.Any("error", err))
	}

	installPahoLoggers(logger.With(slog.String("component", "paho")))

	return &PahoBroker{
		client: paho.NewClient(opts),
		logger: logger,
	}
}

func (b *PahoBroker) Connect() error {
	b.logger.Debug("connecting MQTT client")
	token := b.client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timeout when connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("error when connecting to MQTT broker: %w", err)
	}
	return nil
}

func (b *PahoBroker) Disconnect() {
	b.client.Disconnect(250)
}

func (b *PahoBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	token := b.client.Publish(topic, 1, true, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("timeout when publishing to %s", topic)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("error when publishing to %s: %w", topic, err)
	}
	return nil
}
