package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/usecase/batch"
	"github.com/bnema/stevedore/internal/usecase/collection"
	"github.com/bnema/stevedore/internal/usecase/goal"
)

func pullReport(results map[string]string, errs map[string]error, skipped ...string) *collection.PullReport {
	if results == nil {
		results = map[string]string{}
	}
	if errs == nil {
		errs = map[string]error{}
	}
	return &collection.PullReport{Results: results, Errors: errs, Skipped: skipped}
}

func TestRunBulk_PrintsResultsInOrder(t *testing.T) {
	svc := &fakeImageService{report: pullReport(map[string]string{
		"web": "nginx:1.25",
		"api": "myhost:5000/team/api:v1",
	}, nil)}

	var out bytes.Buffer
	opts := collection.BulkOptions{Names: []string{"web", "api"}}
	require.NoError(t, runBulk(context.Background(), svc, opts, "Pulled", pullAction, &out))

	text := stripANSI(out.String())
	assert.Less(t, bytes.Index([]byte(text), []byte("Pulled api")), bytes.Index([]byte(text), []byte("Pulled web")))
	assert.Contains(t, text, "Pulled web (nginx:1.25)")
	assert.Contains(t, text, "2 succeeded, 0 failed, 0 skipped")
	assert.Equal(t, opts, svc.lastOpts)
	assert.Equal(t, []string{"pull"}, svc.calls)
}

func TestRunBulk_HaltedBatch(t *testing.T) {
	failure := errors.New("manifest unknown")
	report := pullReport(nil, map[string]error{"web": failure}, "api", "db")
	svc := &fakeImageService{
		report:    report,
		reportErr: &batch.Error[string]{Op: collection.OpPush, Errors: report.Errors},
	}

	var out bytes.Buffer
	err := runBulk(context.Background(), svc, collection.BulkOptions{}, "Pushed", pushAction, &out)
	require.Error(t, err)
	assert.Equal(t, "1 image(s) failed", err.Error())

	text := stripANSI(out.String())
	assert.Contains(t, text, "web: manifest unknown")
	assert.Contains(t, text, "api: skipped")
	assert.Contains(t, text, "0 succeeded, 1 failed, 2 skipped")
	assert.Equal(t, []string{"push"}, svc.calls)
}

func TestRunBulk_IgnoredFailureStillFails(t *testing.T) {
	svc := &fakeImageService{report: pullReport(
		map[string]string{"api": "api:latest"},
		map[string]error{"web": errors.New("boom")},
	)}

	err := runBulk(context.Background(), svc, collection.BulkOptions{IgnoreFailure: true}, "Pulled", pullAction, &bytes.Buffer{})
	assert.EqualError(t, err, "1 image(s) failed")
}

func TestRunBulk_SkippedItemsFail(t *testing.T) {
	t.Run("cancelled batch", func(t *testing.T) {
		svc := &fakeImageService{
			report:    pullReport(map[string]string{"api": "api:latest"}, nil, "web"),
			reportErr: fmt.Errorf("pull: 1 item(s) skipped: %w", context.Canceled),
		}

		var out bytes.Buffer
		err := runBulk(context.Background(), svc, collection.BulkOptions{IgnoreFailure: true}, "Pulled", pullAction, &out)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, stripANSI(out.String()), "web: skipped")
	})

	t.Run("skipped without error", func(t *testing.T) {
		svc := &fakeImageService{report: pullReport(map[string]string{"api": "api:latest"}, nil, "web", "db")}

		err := runBulk(context.Background(), svc, collection.BulkOptions{}, "Pulled", pullAction, &bytes.Buffer{})
		assert.EqualError(t, err, "2 image(s) skipped")
	})
}

func TestRunBulk_NilReportReturnsError(t *testing.T) {
	svc := &fakeImageService{reportErr: domain.ErrImageNotFound}

	var out bytes.Buffer
	err := runBulk(context.Background(), svc, collection.BulkOptions{Names: []string{"nope"}}, "Pulled", pullAction, &out)
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
	assert.Empty(t, out.String())
}

func TestRunBulk_NothingToDo(t *testing.T) {
	svc := &fakeImageService{report: pullReport(nil, nil)}

	var out bytes.Buffer
	require.NoError(t, runBulk(context.Background(), svc, collection.BulkOptions{}, "Pulled", readyAction, &out))
	assert.Contains(t, out.String(), "Nothing to do")
}

func TestReadyAction_RefreshesFirst(t *testing.T) {
	svc := &fakeImageService{report: pullReport(nil, nil)}

	_, err := readyAction(context.Background(), svc, collection.BulkOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"refresh", "ready"}, svc.calls)
}

func TestReadyAction_RefreshError(t *testing.T) {
	svc := &fakeImageService{refreshErr: errors.New("daemon down")}

	_, err := readyAction(context.Background(), svc, collection.BulkOptions{})
	assert.ErrorContains(t, err, "daemon down")
	assert.Equal(t, []string{"refresh"}, svc.calls)
}

func TestRunAchieve(t *testing.T) {
	svc := &fakeImageService{goalReport: &collection.GoalReport{
		Results: map[string]goal.Result{
			"web": {Goal: "clear", Outcome: goal.OutcomeDone, Action: "remove"},
			"db":  {Goal: "clear", Outcome: goal.OutcomeNoop},
		},
		Errors: map[string]error{},
	}}

	var out bytes.Buffer
	opts := collection.BulkOptions{Names: []string{"web", "db"}}
	require.NoError(t, runAchieve(context.Background(), svc, "clear", opts, &out))

	text := stripANSI(out.String())
	assert.Contains(t, text, "web clear: remove")
	assert.Contains(t, text, "db clear: already satisfied")
	assert.Equal(t, goal.Name("clear"), svc.lastGoal)
	assert.Equal(t, opts, svc.lastOpts)
}

func TestRunAchieve_UnreachableIsAnError(t *testing.T) {
	svc := &fakeImageService{goalReport: &collection.GoalReport{
		Results: map[string]goal.Result{
			"web": {
				Goal:    "up",
				Outcome: goal.OutcomeFailed,
				Reason:  &domain.GoalUnreachableError{Goal: "up", From: domain.ImageStateUp, Reason: "containers are not managed"},
			},
		},
		Errors: map[string]error{},
	}}

	var out bytes.Buffer
	err := runAchieve(context.Background(), svc, "up", collection.BulkOptions{}, &out)
	assert.EqualError(t, err, "goal up unreachable for 1 image(s)")
	assert.Contains(t, stripANSI(out.String()), "containers are not managed")
}

func TestRunAchieve_UnknownGoal(t *testing.T) {
	svc := &fakeImageService{goalErr: &domain.GoalUnreachableError{Goal: "dance", Reason: "unknown goal"}}

	err := runAchieve(context.Background(), svc, "dance", collection.BulkOptions{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrGoalUnreachable)
}
