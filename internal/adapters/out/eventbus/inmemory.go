// Package eventbus implements the event bus adapter.
package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/stevedore/internal/adapters/out/telemetry"
	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

const (
	publishTimeout = 5 * time.Second
	handlerTimeout = 30 * time.Second
	stopTimeout    = 5 * time.Second
)

// InMemory implements the EventBus interface using in-memory channels.
type InMemory struct {
	handlers   []out.EventHandler
	eventChan  chan domain.Event
	done       chan struct{}
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	bufferSize int
	log        logging.Logger
	metrics    *telemetry.Metrics
}

var _ out.EventBus = (*InMemory)(nil)

// SetMetrics sets the telemetry metrics for the event bus.
// Must be called before Start() to avoid data races on bus.metrics reads.
func (bus *InMemory) SetMetrics(m *telemetry.Metrics) {
	bus.mu.Lock()
	bus.metrics = m
	bus.mu.Unlock()
}

// NewInMemory creates a new in-memory event bus.
func NewInMemory(bufferSize int, log logging.Logger) *InMemory {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	log = logging.Logger{Logger: log.With().
		Str(logging.FieldLayer, "adapter").
		Str(logging.FieldAdapter, "eventbus").
		Logger()}

	return &InMemory{
		handlers:   make([]out.EventHandler, 0),
		eventChan:  make(chan domain.Event, bufferSize),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		bufferSize: bufferSize,
		log:        log,
	}
}

// Publish publishes an event to the bus.
func (bus *InMemory) Publish(eventType domain.EventType, payload any) error {
	event := domain.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      payload,
	}

	switch p := payload.(type) {
	case domain.ProgressEvent:
		event.ImageName = p.Subject
		event.Reference = p.Reference
	case *domain.ProgressEvent:
		event.ImageName = p.Subject
		event.Reference = p.Reference
	}

	timer := time.NewTimer(publishTimeout)
	defer timer.Stop()

	select {
	case bus.eventChan <- event:
		bus.log.Trace().
			Str("event_id", event.ID).
			Str(logging.FieldEvent, string(event.Type)).
			Str(logging.FieldImage, event.ImageName).
			Msg("event published")
		return nil
	case <-bus.ctx.Done():
		return fmt.Errorf("event bus is stopped")
	case <-timer.C:
		bus.log.Error().
			Str("event_id", event.ID).
			Str(logging.FieldEvent, string(event.Type)).
			Str(logging.FieldImage, event.ImageName).
			Msg("event channel is full, dropping event after 5s timeout")

		bus.mu.RLock()
		metrics := bus.metrics
		bus.mu.RUnlock()
		if metrics != nil {
			metrics.EventsDropped.Add(context.Background(), 1, metric.WithAttributes(
				attribute.String("event_type", string(event.Type)),
			))
		}
		return fmt.Errorf("event channel is full, dropping event %s", event.ID)
	}
}

// Subscribe adds an event handler to the bus.
func (bus *InMemory) Subscribe(handler out.EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers = append(bus.handlers, handler)
	bus.log.Debug().
		Str(logging.FieldHandler, fmt.Sprintf("%T", handler)).
		Int("total_handlers", len(bus.handlers)).
		Msg("event handler subscribed")

	return nil
}

// Unsubscribe removes an event handler from the bus.
func (bus *InMemory) Unsubscribe(handler out.EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for i, h := range bus.handlers {
		if h == handler {
			bus.handlers = append(bus.handlers[:i], bus.handlers[i+1:]...)
			bus.log.Debug().
				Str(logging.FieldHandler, fmt.Sprintf("%T", handler)).
				Int("total_handlers", len(bus.handlers)).
				Msg("event handler unsubscribed")
			return nil
		}
	}

	return fmt.Errorf("handler not found")
}

// Start starts the event bus processing loop.
func (bus *InMemory) Start() error {
	bus.log.Debug().Int("buffer_size", bus.bufferSize).Msg("starting event bus")

	go bus.processEvents()
	return nil
}

// Stop drains queued events, then stops the bus.
func (bus *InMemory) Stop() error {
	bus.log.Debug().Msg("stopping event bus")

	bus.cancel()

	select {
	case <-bus.done:
		bus.log.Debug().Msg("event bus stopped")
		return nil
	case <-time.After(stopTimeout):
		bus.log.Warn().Msg("event bus stop timeout")
		return fmt.Errorf("timeout waiting for event bus to stop")
	}
}

func (bus *InMemory) processEvents() {
	defer close(bus.done)

	for {
		select {
		case event := <-bus.eventChan:
			bus.handleEvent(event)
		case <-bus.ctx.Done():
			bus.drain()
			bus.log.Debug().Msg("event bus processing stopped")
			return
		}
	}
}

// drain hands the events still buffered at stop time to the handlers so
// final progress lines are not lost.
func (bus *InMemory) drain() {
	for {
		select {
		case event := <-bus.eventChan:
			bus.handleEvent(event)
		default:
			return
		}
	}
}

func (bus *InMemory) handleEvent(event domain.Event) {
	bus.mu.RLock()
	handlers := make([]out.EventHandler, len(bus.handlers))
	copy(handlers, bus.handlers)
	metrics := bus.metrics
	bus.mu.RUnlock()

	for _, h := range handlers {
		if !h.CanHandle(event.Type) {
			continue
		}
		start := time.Now()

		// Handlers get their own deadline so draining at stop still works.
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)

		h := h
		done := make(chan error, 1)
		go func() {
			done <- h.Handle(ctx, event)
		}()

		select {
		case err := <-done:
			cancel()
			if err != nil {
				bus.log.Error().
					Err(err).
					Str("event_id", event.ID).
					Str(logging.FieldEvent, string(event.Type)).
					Str(logging.FieldHandler, fmt.Sprintf("%T", h)).
					Msg("error handling event")
				continue
			}
			if metrics != nil {
				metrics.EventsProcessed.Add(context.Background(), 1, metric.WithAttributes(
					attribute.String("event_type", string(event.Type)),
				))
			}
		case <-ctx.Done():
			cancel()
			bus.log.Warn().
				Str("event_id", event.ID).
				Str(logging.FieldEvent, string(event.Type)).
				Str(logging.FieldHandler, fmt.Sprintf("%T", h)).
				Dur(logging.FieldDuration, time.Since(start)).
				Msg("handler timeout after 30s")
		}
	}
}
