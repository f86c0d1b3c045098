package diagnosis

import (
	"encoding/json"

	"github.com/cropsaarthi/backend/internal/model"
	"github.com/cropsaarthi/backend/pkg/mqtt"
)

// UploadTopic is where drained diagnoses are published for the remote
// collector. QoS1 so a record survives a broker hiccup.
const UploadTopic = "diagnosis/synced"

// MQTTUploader publishes diagnoses over the shared broker connection.
type MQTTUploader struct {
	pub mqtt.IPublisher
}

func NewMQTTUploader(pub mqtt.IPublisher) *MQTTUploader {
	return &MQTTUploader{pub: pub}
}

func (u *MQTTUploader) Upload(d model.Diagnosis) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return u.pub.Publish(UploadTopic, 1, string(b))
}
