package mqtt

import (
	"fmt"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher publishes payloads to a topic.
type IPublisher interface {
	Publish(topic string, qos byte, payload string) error
	Close()
}

// Publisher publishes over a shared paho client.
type Publisher struct {
	client paho.Client
}

func NewPublisher(client paho.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(topic string, qos byte, payload string) error {
	token := p.client.Publish(topic, qos, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}
	return nil
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		log.Println("mqtt: publisher disconnected")
	}
}
