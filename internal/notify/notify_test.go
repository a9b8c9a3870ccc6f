package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsync/internal/docsync"
)

type recordingPublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func TestNATSListener_PublishesJSONPerKind(t *testing.T) {
	pub := &recordingPublisher{}
	l := NewNATSListener(pub, "docs.sync.")

	result := &docsync.SyncResult{SyncID: "s1", FilesProcessed: 2, FilesAdded: []string{"/out/a.md"}}
	require.NoError(t, l.HandleEvent(context.Background(), docsync.Event{ID: "e1", Kind: docsync.EventComplete, SyncID: "s1", Result: result}))

	require.Equal(t, []string{"docs.sync.complete"}, pub.subjects)
	var decoded docsync.Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &decoded))
	assert.Equal(t, docsync.EventComplete, decoded.Kind)
	require.NotNil(t, decoded.Result)
	assert.Equal(t, 2, decoded.Result.FilesProcessed)
	assert.Equal(t, []string{"/out/a.md"}, decoded.Result.FilesAdded)
}

func TestNATSListener_DefaultSubjectAndPublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("no responders")}
	l := NewNATSListener(pub, "")
	assert.Equal(t, "docsync.events.error", l.Subject(docsync.EventError))

	err := l.HandleEvent(context.Background(), docsync.Event{Kind: docsync.EventError})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
	require.NoError(t, l.Close())
}

func TestLogListener_WritesEventAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewLogListener(logger)

	require.NoError(t, l.HandleEvent(context.Background(), docsync.Event{Kind: docsync.EventError, Path: "/src/a.md", Error: "boom"}))
	require.NoError(t, l.HandleEvent(context.Background(), docsync.Event{Kind: docsync.EventFileSynced, Path: "/src/a.md", Dest: "/out/a.md"}))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"dest":"/out/a.md"`)
	assert.Contains(t, out, `"kind":"file_synced"`)
}

func TestListenersWireIntoService(t *testing.T) {
	var _ docsync.Listener = (*LogListener)(nil)
	var _ docsync.Listener = (*NATSListener)(nil)
}

func TestConnectOptions_LogConnectionLossToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	opts := nats.GetDefaultOptions()
	for _, opt := range connectOptions(logger) {
		require.NoError(t, opt(&opts))
	}
	assert.Equal(t, "docsync", opts.Name)
	require.NotNil(t, opts.DisconnectedErrCB)

	opts.DisconnectedErrCB(nil, errors.New("connection reset"))
	assert.Contains(t, buf.String(), `"msg":"NATS connection lost"`)
	assert.Contains(t, buf.String(), `"error":"connection reset"`)
}

func TestConnectNATS_UnreachableServer(t *testing.T) {
	_, err := ConnectNATS("nats://127.0.0.1:1", "", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}
