// Package notify publishes cycle results to NATS so any number of external
// consumers can react to changes without registering the watcher's single
// in-process callback slot.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/pollwatch/internal/config"
	pwerrors "git.home.luguber.info/inful/pollwatch/internal/errors"
	"git.home.luguber.info/inful/pollwatch/internal/logfields"
	"git.home.luguber.info/inful/pollwatch/internal/watcher"
)

// CyclePayload is the wire format published per non-empty cycle.
type CyclePayload struct {
	CycleID   string             `json:"cycle_id"`
	Timestamp time.Time          `json:"timestamp"`
	Changes   watcher.ChangeList `json:"changes"`
}

// Publisher pushes change lists to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the provided settings.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("nats notification is disabled")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("pollwatch"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("Connected to NATS", logfields.Subject(cfg.Subject))
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// PublishCycle publishes one completed cycle's change list.
func (p *Publisher) PublishCycle(cycleID string, at time.Time, changes watcher.ChangeList) error {
	payload := CyclePayload{
		CycleID:   cycleID,
		Timestamp: at,
		Changes:   changes,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return pwerrors.NotifyError(p.subject, err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return pwerrors.NotifyError(p.subject, err)
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
