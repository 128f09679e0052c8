package cli

import (
	"context"
	"regexp"

	"github.com/bnema/stevedore/internal/boundaries/in"
	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/usecase/collection"
	"github.com/bnema/stevedore/internal/usecase/goal"
)

type fakeImageService struct {
	statusResp []domain.ImageInfo
	statusErr  error
	refreshErr error
	report     *collection.PullReport
	reportErr  error
	goalReport *collection.GoalReport
	goalErr    error

	calls    []string
	lastOpts collection.BulkOptions
	lastGoal goal.Name
}

func (f *fakeImageService) Status(context.Context) ([]domain.ImageInfo, error) {
	f.calls = append(f.calls, "status")
	return f.statusResp, f.statusErr
}

func (f *fakeImageService) Refresh(context.Context) error {
	f.calls = append(f.calls, "refresh")
	return f.refreshErr
}

func (f *fakeImageService) Ready(_ context.Context, opts collection.BulkOptions) (*collection.PullReport, error) {
	f.calls = append(f.calls, "ready")
	f.lastOpts = opts
	return f.report, f.reportErr
}

func (f *fakeImageService) PullAll(_ context.Context, opts collection.BulkOptions) (*collection.PullReport, error) {
	f.calls = append(f.calls, "pull")
	f.lastOpts = opts
	return f.report, f.reportErr
}

func (f *fakeImageService) PushAll(_ context.Context, opts collection.BulkOptions) (*collection.PullReport, error) {
	f.calls = append(f.calls, "push")
	f.lastOpts = opts
	return f.report, f.reportErr
}

func (f *fakeImageService) Achieve(_ context.Context, name goal.Name, opts collection.BulkOptions) (*collection.GoalReport, error) {
	f.calls = append(f.calls, "achieve")
	f.lastGoal = name
	f.lastOpts = opts
	return f.goalReport, f.goalErr
}

type fakeKernel struct {
	images     *fakeImageService
	version    string
	versionErr error
	subscribed []out.EventHandler
	closed     bool
}

func (k *fakeKernel) Images() in.ImageService { return k.images }

func (k *fakeKernel) Subscribe(handler out.EventHandler) error {
	k.subscribed = append(k.subscribed, handler)
	return nil
}

func (k *fakeKernel) DockerVersion(context.Context) (string, error) {
	return k.version, k.versionErr
}

func (k *fakeKernel) Context(parent context.Context) context.Context { return parent }

func (k *fakeKernel) Close() error {
	k.closed = true
	return nil
}

// useKernel swaps the kernel loader for the duration of the test.
func useKernel(t interface{ Cleanup(func()) }, k *fakeKernel) {
	prev := loadKernel
	loadKernel = func(string) (kernel, error) { return k, nil }
	t.Cleanup(func() { loadKernel = prev })
}

func stripANSI(input string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`).ReplaceAllString(input, "")
}
