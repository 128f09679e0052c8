package out

import "github.com/bnema/stevedore/internal/domain"

// ProgressSink receives progress events. Notify must not block for long and
// its outcome is never inspected.
type ProgressSink interface {
	Notify(event domain.ProgressEvent)
}
