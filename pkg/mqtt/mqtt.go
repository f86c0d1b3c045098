// Package mqtt wraps the paho client with the connection, publish and
// subscribe plumbing the scheme notification channel needs.
package mqtt

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	paho "github.com/eclipse/paho.mqtt.golang"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	ClientID string
}

// Connect dials the broker, retrying with exponential backoff. The returned
// client is disconnected when ctx is cancelled.
func Connect(ctx context.Context, cfg Config) (paho.Client, error) {
	addr := fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)

	opts := paho.NewClientOptions()
	opts.AddBroker(addr)
	opts.SetUsername(cfg.User)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second

	var client paho.Client
	err := backoff.Retry(func() error {
		client = paho.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("mqtt: connect to %s failed: %v", addr, token.Error())
			return token.Error()
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, 4), ctx))
	if err != nil {
		return nil, fmt.Errorf("mqtt connect after retries: %w", err)
	}
	log.Printf("mqtt: connected to %s", addr)

	go func() {
		<-ctx.Done()
		client.Disconnect(250)
		log.Println("mqtt: connection closed")
	}()
	return client, nil
}
