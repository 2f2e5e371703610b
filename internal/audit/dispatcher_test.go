package audit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []Event
}

func (w *recordingWriter) Write(_ context.Context, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return nil
}

func TestDispatcher_DeliversBeforeClose(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment", EntityID: "a"})
	d.Dispatch(Event{Action: "appointment_status_changed", Entity: "appointment", EntityID: "a"})
	d.Close()

	assert.Len(t, w.events, 2)
	assert.Equal(t, "appointment_created", w.events[0].Action)

	// depois de fechado, descarta sem pânico
	d.Dispatch(Event{Action: "late"})
	d.Close()
	assert.Len(t, w.events, 2)
}

func TestEncodeMetadata(t *testing.T) {
	assert.Equal(t, "", encodeMetadata(nil))
	assert.Equal(t, `{"time":"10:00"}`, encodeMetadata(map[string]any{"time": "10:00"}))
}
