package scheme

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/cropsaarthi/backend/internal/model"
	"github.com/cropsaarthi/backend/pkg/dedup"
	"github.com/cropsaarthi/backend/pkg/mqtt"
)

// NotificationTopic is the filter for new-scheme announcements; the last
// level carries the state the scheme applies to.
const NotificationTopic = "scheme/new/#"

// Notifier consumes new-scheme announcements and upserts them into the
// local cache. Announcements arrive at QoS1, so identical redeliveries are
// dropped by payload hash.
type Notifier struct {
	service  *Service
	consumer mqtt.IConsumer
	deduper  *dedup.Deduper
}

func NewNotifier(service *Service, client paho.Client) *Notifier {
	n := &Notifier{
		service: service,
		deduper: dedup.New(10*time.Minute, 20000),
	}
	n.consumer = mqtt.NewConsumer(client, []string{NotificationTopic}, 1, n.handle)
	return n
}

// Start consumes until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	n.consumer.Consume(ctx)
}

func (n *Notifier) handle(topic string, msg paho.Message) error {
	h := sha256.Sum256(msg.Payload())
	if !n.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
		return nil
	}

	var note model.SchemeNotification
	if err := json.Unmarshal(msg.Payload(), &note); err != nil {
		log.Printf("scheme: bad notification on %s: %v", topic, err)
		return nil
	}
	if note.Scheme.ID == "" {
		log.Printf("scheme: notification without scheme id on %s", topic)
		return nil
	}
	if err := n.service.Upsert(note.Scheme); err != nil {
		log.Printf("scheme: store notified scheme %s: %v", note.Scheme.ID, err)
		return err
	}
	log.Printf("scheme: cached new scheme %s (%s)", note.Scheme.ID, note.Scheme.Title)
	return nil
}
