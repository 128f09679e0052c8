package progress

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
)

// Throttle forwards streamed chunks at a bounded rate per image. Phase
// changes always go through.
type Throttle struct {
	next  out.ProgressSink
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

var _ out.ProgressSink = (*Throttle)(nil)

// NewThrottle limits chunks to perSecond per image. A perSecond of zero or
// less disables throttling and returns next unchanged.
func NewThrottle(next out.ProgressSink, perSecond float64) out.ProgressSink {
	if perSecond <= 0 {
		return next
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		next:     next,
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Notify forwards ev unless it is a chunk over the image's budget.
func (t *Throttle) Notify(ev domain.ProgressEvent) {
	if ev.Phase == domain.PhaseProgress && !t.limiter(ev.Subject).Allow() {
		return
	}
	t.next.Notify(ev)
}

func (t *Throttle) limiter(subject string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[subject]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[subject] = l
	}
	return l
}
