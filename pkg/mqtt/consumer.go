package mqtt

import (
	"context"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Handler processes one inbound message.
type Handler func(topic string, msg paho.Message) error

// IConsumer subscribes to topics and dispatches messages to a handler.
type IConsumer interface {
	Consume(ctx context.Context)
	SetHandler(h Handler)
}

// Consumer subscribes to a set of topic filters on a shared paho client.
type Consumer struct {
	client  paho.Client
	topics  []string
	qos     byte
	handler Handler
}

func NewConsumer(client paho.Client, topics []string, qos byte, h Handler) *Consumer {
	return &Consumer{client: client, topics: topics, qos: qos, handler: h}
}

func (c *Consumer) SetHandler(h Handler) { c.handler = h }

// Consume subscribes and blocks until ctx is cancelled, then unsubscribes.
func (c *Consumer) Consume(ctx context.Context) {
	for _, topic := range c.topics {
		topic := topic
		token := c.client.Subscribe(topic, c.qos, func(_ paho.Client, msg paho.Message) {
			if c.handler == nil {
				log.Printf("mqtt: no handler for topic %s", topic)
				return
			}
			if err := c.handler(topic, msg); err != nil {
				log.Printf("mqtt: handler error on %s: %v", topic, err)
			}
		})
		token.Wait()
		if token.Error() != nil {
			log.Printf("mqtt: subscribe %s: %v", topic, token.Error())
		} else {
			log.Printf("mqtt: subscribed to %s", topic)
		}
	}

	<-ctx.Done()

	for _, topic := range c.topics {
		c.client.Unsubscribe(topic)
	}
}
