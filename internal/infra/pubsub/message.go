package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"skatehubba/internal/domain/service"

	"github.com/pkg/errors"
)

// Provider names accepted in pubsub.provider.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// EventTypeSignupCreated is set as the event_type attribute of signup messages.
const EventTypeSignupCreated = "signup.created"

// PushMessage is the envelope Pub/Sub uses when pushing to an HTTP endpoint.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// DecodeSignupEvent extracts the SignupEvent carried by a push message.
func (m *PushMessage) DecodeSignupEvent() (*service.SignupEvent, error) {
	raw, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "message data is not base64")
	}

	var event service.SignupEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, errors.Wrap(err, "message data is not a signup event")
	}
	if event.Email == "" {
		return nil, errors.New("signup event has no email")
	}
	if event.RequestID == "" {
		event.RequestID = m.Message.Attributes["request_id"]
	}

	return &event, nil
}

func signupAttributes(event *service.SignupEvent) map[string]string {
	attributes := map[string]string{
		"event_type": EventTypeSignupCreated,
		"signup_id":  event.SignupID,
		"source":     event.Source,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// newSignupPushMessage wraps an event the way a push subscription would.
func newSignupPushMessage(event *service.SignupEvent, subscription string, now time.Time) (*PushMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = event.SignupID
	msg.Message.PublishTime = now.UTC().Format(time.RFC3339)
	msg.Message.Attributes = signupAttributes(event)

	return msg, nil
}
