package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stevedore/internal/domain"
)

func TestProgressPrinter_CanHandle(t *testing.T) {
	p := newProgressPrinter(&bytes.Buffer{})

	assert.True(t, p.CanHandle(domain.EventImageProgress))
	assert.True(t, p.CanHandle(domain.EventImagePulled))
	assert.True(t, p.CanHandle(domain.EventImageRemoved))
	assert.False(t, p.CanHandle(domain.EventType("container.started")))
}

func TestProgressPrinter_Handle(t *testing.T) {
	tests := []struct {
		name  string
		event domain.ProgressEvent
		want  string
	}{
		{
			name:  "start",
			event: domain.ProgressEvent{Phase: domain.PhaseStart, Action: "pull", Subject: "web", Reference: "nginx:1.25"},
			want:  "web pull nginx:1.25",
		},
		{
			name: "chunk with size",
			event: domain.ProgressEvent{
				Phase: domain.PhaseProgress, Action: "pull", Subject: "web",
				Chunk: domain.ProgressChunk{ID: "a1b2", Status: "Downloading", Current: 1024, Total: 2048},
			},
			want: "web pull a1b2: Downloading 1.0 KiB/2.0 KiB",
		},
		{
			name:  "done",
			event: domain.ProgressEvent{Phase: domain.PhaseDone, Action: "push", Subject: "api", Reference: "myhost:5000/api:v1"},
			want:  "api push ✓ myhost:5000/api:v1",
		},
		{
			name:  "error",
			event: domain.ProgressEvent{Phase: domain.PhaseError, Action: "pull", Subject: "web", Err: errors.New("denied")},
			want:  "web pull ✗ denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := newProgressPrinter(&out)

			err := p.Handle(context.Background(), domain.Event{Type: tt.event.EventType(), Data: tt.event})
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", stripANSI(out.String()))
		})
	}
}

func TestProgressPrinter_PointerPayload(t *testing.T) {
	var out bytes.Buffer
	p := newProgressPrinter(&out)

	ev := &domain.ProgressEvent{Phase: domain.PhaseStart, Action: "tag", Subject: "web", Reference: "nginx:stable"}
	require.NoError(t, p.Handle(context.Background(), domain.Event{Data: ev}))
	assert.Contains(t, out.String(), "nginx:stable")
}

func TestProgressPrinter_SkipsEmptyOrForeign(t *testing.T) {
	var out bytes.Buffer
	p := newProgressPrinter(&out)

	require.NoError(t, p.Handle(context.Background(), domain.Event{Data: "not a progress event"}))
	require.NoError(t, p.Handle(context.Background(), domain.Event{Data: domain.ProgressEvent{Phase: domain.PhaseProgress}}))
	assert.Empty(t, out.String())
}
