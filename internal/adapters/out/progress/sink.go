// Package progress implements progress sinks that image actions report to.
package progress

import (
	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// LogSink writes progress events to a logger.
type LogSink struct {
	log logging.Logger
}

var _ out.ProgressSink = (*LogSink)(nil)

// NewLogSink creates a sink logging through log.
func NewLogSink(log logging.Logger) *LogSink {
	return &LogSink{log: log}
}

// Notify logs ev. Streamed chunks go to trace level.
func (s *LogSink) Notify(ev domain.ProgressEvent) {
	switch ev.Phase {
	case domain.PhaseProgress:
		s.log.Trace().
			Str(logging.FieldImage, ev.Subject).
			Str(logging.FieldAction, ev.Action).
			Str("layer", ev.Chunk.ID).
			Int64("current", ev.Chunk.Current).
			Int64("total", ev.Chunk.Total).
			Msg(ev.Chunk.Status)
	case domain.PhaseError:
		s.log.Warn().
			Err(ev.Err).
			Str(logging.FieldImage, ev.Subject).
			Str(logging.FieldAction, ev.Action).
			Str(logging.FieldRef, ev.Reference).
			Msg("action failed")
	default:
		s.log.Debug().
			Str(logging.FieldImage, ev.Subject).
			Str(logging.FieldAction, ev.Action).
			Str(logging.FieldRef, ev.Reference).
			Msg(string(ev.Phase))
	}
}

// BusSink publishes progress events on an event bus.
type BusSink struct {
	publisher out.EventPublisher
	log       logging.Logger
}

var _ out.ProgressSink = (*BusSink)(nil)

// NewBusSink creates a sink publishing through publisher.
func NewBusSink(publisher out.EventPublisher, log logging.Logger) *BusSink {
	return &BusSink{publisher: publisher, log: log}
}

// Notify publishes ev under the event type its phase and action map to.
// Publish failures are logged and otherwise ignored.
func (s *BusSink) Notify(ev domain.ProgressEvent) {
	if err := s.publisher.Publish(ev.EventType(), ev); err != nil {
		s.log.Warn().
			Err(err).
			Str(logging.FieldImage, ev.Subject).
			Str(logging.FieldEvent, string(ev.EventType())).
			Msg("failed to publish progress event")
	}
}

// Tee fans every event out to each sink in order.
type Tee []out.ProgressSink

var _ out.ProgressSink = Tee(nil)

// Notify forwards ev to every sink.
func (t Tee) Notify(ev domain.ProgressEvent) {
	for _, s := range t {
		s.Notify(ev)
	}
}
