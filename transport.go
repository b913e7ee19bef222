package notifycenter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Envelope is the frame a Transport carries between processes.
// It holds routing data only; notifications have no payload.
type Envelope struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Origin string    `json:"origin"`
	SentAt time.Time `json:"sent_at"`
}

// NewEnvelope stamps a fresh envelope for name sent by origin.
func NewEnvelope(origin, name string) Envelope {
	return Envelope{
		ID:     uuid.NewString(),
		Name:   name,
		Origin: origin,
		SentAt: time.Now().UTC(),
	}
}

// EncodeEnvelope serializes env for the wire.
func EncodeEnvelope(env Envelope) ([]byte, error) {
	if env.Name == "" {
		return nil, errors.Join(ErrInvalidEnvelope, ErrEmptyName)
	}
	return json.Marshal(env)
}

// DecodeEnvelope parses a wire frame produced by EncodeEnvelope.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, errors.Join(ErrInvalidEnvelope, err)
	}
	if env.Name == "" {
		return Envelope{}, errors.Join(ErrInvalidEnvelope, ErrEmptyName)
	}
	return env, nil
}

// Transport carries notifications between hubs in different processes.
//
// Subscribe and Unsubscribe tell the transport which names the local hub
// has observers for; implementations may use them to filter traffic.
// Receive returns the channel of inbound envelopes. It is closed by Close.
type Transport interface {
	Publish(ctx context.Context, env Envelope) error
	Subscribe(ctx context.Context, name string) error
	Unsubscribe(ctx context.Context, name string) error
	Receive() <-chan Envelope
	Close() error
}
