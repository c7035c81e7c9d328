// Package sink holds the presence.Client transports.
package sink

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"presencesync/internal/config"
	"presencesync/internal/presence"
)

// Message is the JSON document written by the file and NATS sinks. A nil
// Presence means the presence was cleared.
type Message struct {
	ApplicationID string           `json:"application_id"`
	Presence      *presence.Record `json:"presence"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func encode(appID string, rec *presence.Record) ([]byte, error) {
	data, err := json.MarshalIndent(Message{
		ApplicationID: appID,
		Presence:      rec,
		UpdatedAt:     time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode presence: %w", err)
	}
	return data, nil
}

// Decode parses a Message written by the file or NATS sink.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode presence message: %w", err)
	}
	return m, nil
}

// tracker remembers the last published record for Current.
type tracker struct {
	mu      sync.Mutex
	current *presence.Record
}

func (t *tracker) set(rec presence.Record) {
	t.mu.Lock()
	t.current = &rec
	t.mu.Unlock()
}

func (t *tracker) clear() {
	t.mu.Lock()
	t.current = nil
	t.mu.Unlock()
}

func (t *tracker) Current() (presence.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return presence.Record{}, false
	}
	return *t.current, true
}

// NewFactory returns the client factory selected by cfg.Sink.
func NewFactory(cfg *config.Config) (presence.ClientFactory, error) {
	switch cfg.Sink {
	case config.SinkLog:
		return func(appID string) presence.Client {
			return NewLog(appID)
		}, nil
	case config.SinkFile:
		path := cfg.SinkPath()
		return func(appID string) presence.Client {
			return NewFile(appID, path)
		}, nil
	case config.SinkNATS:
		url, subject := cfg.NATSURL, cfg.NATSSubject
		return func(appID string) presence.Client {
			return NewNATS(appID, url, subject)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported sink: %s", cfg.Sink)
	}
}
