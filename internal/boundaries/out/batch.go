package out

import (
	"context"
	"time"
)

// BatchRecorder records the outcome of one batch run.
type BatchRecorder interface {
	RecordBatch(ctx context.Context, op string, succeeded, failed, skipped int, elapsed time.Duration)
}
