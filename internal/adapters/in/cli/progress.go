package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/stevedore/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/stevedore/internal/domain"
)

// progressPrinter renders bus events as one line per message.
type progressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out}
}

// CanHandle accepts every image event.
func (p *progressPrinter) CanHandle(eventType domain.EventType) bool {
	switch eventType {
	case domain.EventImageProgress, domain.EventImagePulled, domain.EventImagePushed,
		domain.EventImageRemoved, domain.EventImageTagged:
		return true
	}
	return false
}

// Handle prints one line for the event. Unknown payloads are ignored.
func (p *progressPrinter) Handle(_ context.Context, event domain.Event) error {
	ev, ok := progressPayload(event.Data)
	if !ok {
		return nil
	}

	line := formatProgress(ev)
	if line == "" {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return cliWriteLine(p.out, line)
}

func progressPayload(data any) (domain.ProgressEvent, bool) {
	switch v := data.(type) {
	case domain.ProgressEvent:
		return v, true
	case *domain.ProgressEvent:
		if v == nil {
			return domain.ProgressEvent{}, false
		}
		return *v, true
	}
	return domain.ProgressEvent{}, false
}

func formatProgress(ev domain.ProgressEvent) string {
	prefix := fmt.Sprintf("%s %s", styles.Theme.Bold.Render(ev.Subject), cliRenderMuted(ev.Action))

	switch ev.Phase {
	case domain.PhaseStart:
		return fmt.Sprintf("%s %s", prefix, ev.Reference)
	case domain.PhaseDone:
		return fmt.Sprintf("%s %s", prefix, styles.RenderSuccess(ev.Reference))
	case domain.PhaseError:
		return fmt.Sprintf("%s %s", prefix, styles.RenderError(fmt.Sprint(ev.Err)))
	case domain.PhaseProgress:
		c := ev.Chunk
		if c.Status == "" {
			return ""
		}
		msg := c.Status
		if c.ID != "" {
			msg = c.ID + ": " + msg
		}
		if c.Total > 0 {
			msg += fmt.Sprintf(" %s/%s", formatSize(c.Current), formatSize(c.Total))
		}
		return fmt.Sprintf("%s %s", prefix, msg)
	}
	return ""
}
