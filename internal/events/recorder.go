package events

import (
	"log"

	"github.com/colorkeep/colorkeep/pkg/types"
)

type Recorder interface {
	Record(event types.CycleEvent)
}

type NoopRecorder struct{}

func (NoopRecorder) Record(event types.CycleEvent) {}

type Multi struct {
	recorders []Recorder
}

func NewMulti(recorders ...Recorder) Multi {
	return Multi{recorders: recorders}
}

func (m Multi) Record(event types.CycleEvent) {
	for _, rec := range m.recorders {
		if rec != nil {
			rec.Record(event)
		}
	}
}

// LogRecorder writes cycle events to the service log.
type LogRecorder struct {
	Logger *log.Logger
}

func (r LogRecorder) Record(event types.CycleEvent) {
	if r.Logger == nil {
		return
	}
	if event.Monitor != "" {
		r.Logger.Printf("cycle %s: %s monitor=%q %s", event.CycleID, event.Type, event.Monitor, event.Details)
		return
	}
	r.Logger.Printf("cycle %s: %s mask=%s %s", event.CycleID, event.Type, event.Mask, event.Details)
}
