package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docsync/internal/docsync"
	"git.home.luguber.info/inful/docsync/internal/logfields"
)

// DefaultSubject is the subject prefix events are published under.
const DefaultSubject = "docsync.events"

// Publisher is the subset of *nats.Conn used to publish events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSListener publishes every event as JSON to <subject>.<kind>.
type NATSListener struct {
	pub     Publisher
	conn    *nats.Conn
	subject string
}

// NewNATSListener wraps an existing publisher.
func NewNATSListener(pub Publisher, subject string) *NATSListener {
	subject = strings.TrimSuffix(strings.TrimSpace(subject), ".")
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSListener{pub: pub, subject: subject}
}

// ConnectNATS dials url and returns a listener owning the connection.
// Connection state changes are logged to logger.
func ConnectNATS(url, subject string, logger *slog.Logger) (*NATSListener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(url, connectOptions(logger)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	l := NewNATSListener(conn, subject)
	l.conn = conn

	logger.Info("NATS event publisher connected", logfields.URL(conn.ConnectedUrl()), logfields.Subject(l.subject))
	return l, nil
}

func connectOptions(logger *slog.Logger) []nats.Option {
	return []nats.Option{
		nats.Name("docsync"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS connection lost", logfields.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection restored", logfields.URL(nc.ConnectedUrl()))
		}),
	}
}

// Subject returns the subject an event of kind is published to.
func (l *NATSListener) Subject(kind docsync.EventKind) string {
	return l.subject + "." + string(kind)
}

func (l *NATSListener) HandleEvent(_ context.Context, ev docsync.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := l.pub.Publish(l.Subject(ev.Kind), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes an owned connection.
func (l *NATSListener) Close() error {
	if l.conn == nil {
		return nil
	}
	defer l.conn.Close()
	if err := l.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}
	return nil
}
