package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bnema/stevedore/internal/boundaries/out/mocks"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

func chunk(subject string) domain.ProgressEvent {
	return domain.ProgressEvent{
		Phase:   domain.PhaseProgress,
		Action:  "pull",
		Subject: subject,
		Chunk:   domain.ProgressChunk{ID: "layer", Status: "Downloading"},
	}
}

func TestBusSink_PublishesMappedType(t *testing.T) {
	pub := mocks.NewMockEventPublisher(t)
	done := domain.ProgressEvent{Phase: domain.PhaseDone, Action: "push", Subject: "app"}
	pub.EXPECT().Publish(domain.EventImagePushed, done).Return(nil).Once()
	pub.EXPECT().Publish(domain.EventImageProgress, chunk("app")).Return(errors.New("bus stopped")).Once()

	sink := NewBusSink(pub, logging.Nop())
	sink.Notify(done)
	sink.Notify(chunk("app"))
}

func TestLogSink_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := logging.Logger{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	sink := NewLogSink(log)

	sink.Notify(chunk("app"))
	assert.Empty(t, buf.String(), "chunks log at trace level")

	sink.Notify(domain.ProgressEvent{Phase: domain.PhaseError, Action: "pull", Subject: "app", Err: errors.New("denied")})
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "denied")
}

func TestTee_ForwardsToEverySink(t *testing.T) {
	a := mocks.NewMockProgressSink(t)
	b := mocks.NewMockProgressSink(t)
	ev := chunk("app")
	a.EXPECT().Notify(ev).Once()
	b.EXPECT().Notify(ev).Once()

	Tee{a, b}.Notify(ev)
}

func TestThrottle_LimitsChunksPerSubject(t *testing.T) {
	next := mocks.NewMockProgressSink(t)
	next.EXPECT().Notify(mock.MatchedBy(func(ev domain.ProgressEvent) bool {
		return ev.Phase == domain.PhaseProgress && ev.Subject == "app"
	})).Times(2)
	next.EXPECT().Notify(mock.MatchedBy(func(ev domain.ProgressEvent) bool {
		return ev.Phase == domain.PhaseProgress && ev.Subject == "db"
	})).Times(2)
	next.EXPECT().Notify(mock.MatchedBy(func(ev domain.ProgressEvent) bool {
		return ev.Phase == domain.PhaseDone
	})).Once()

	sink := NewThrottle(next, 2)
	for i := 0; i < 10; i++ {
		sink.Notify(chunk("app"))
	}
	sink.Notify(chunk("db"))
	sink.Notify(chunk("db"))
	sink.Notify(domain.ProgressEvent{Phase: domain.PhaseDone, Action: "pull", Subject: "app"})
}

func TestThrottle_DisabledReturnsNext(t *testing.T) {
	next := mocks.NewMockProgressSink(t)
	assert.Same(t, next, NewThrottle(next, 0))
}
