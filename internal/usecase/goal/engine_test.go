package goal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stevedore/internal/domain"
)

type recorder struct {
	calls []Name
}

func recordingStep(name Name, before []Name, res Result, err error) Step[*recorder] {
	return Step[*recorder]{
		Before: before,
		Action: func(_ context.Context, r *recorder) (Result, error) {
			r.calls = append(r.calls, name)
			return res, err
		},
	}
}

func TestTable_AchieveRunsPrerequisitesInOrder(t *testing.T) {
	table, err := NewTable(map[Name]Step[*recorder]{
		"a": recordingStep("a", nil, Done("a"), nil),
		"b": recordingStep("b", nil, Noop(), nil),
		"c": recordingStep("c", []Name{"a", "b"}, Done("c"), nil),
	})
	require.NoError(t, err)

	r := &recorder{}
	res, err := table.Achieve(context.Background(), r, "c")

	require.NoError(t, err)
	assert.Equal(t, []Name{"a", "b", "c"}, r.calls)
	assert.Equal(t, Name("c"), res.Goal)
	assert.Equal(t, OutcomeDone, res.Outcome)
	assert.Equal(t, "c", res.Action)
}

func TestTable_FailedPrerequisiteShortCircuits(t *testing.T) {
	reason := &domain.GoalUnreachableError{Goal: "a", Reason: "nope"}
	table := MustTable(map[Name]Step[*recorder]{
		"a": recordingStep("a", nil, Fail(reason), nil),
		"b": recordingStep("b", nil, Done("b"), nil),
		"c": recordingStep("c", []Name{"a", "b"}, Done("c"), nil),
	})

	r := &recorder{}
	res, err := table.Achieve(context.Background(), r, "c")

	require.NoError(t, err)
	assert.Equal(t, []Name{"a"}, r.calls)
	assert.True(t, res.Failed())
	assert.Equal(t, Name("a"), res.Goal)
	assert.ErrorIs(t, res.Err(), domain.ErrGoalUnreachable)
}

func TestTable_ErrorShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	table := MustTable(map[Name]Step[*recorder]{
		"a": recordingStep("a", nil, Result{}, boom),
		"b": recordingStep("b", []Name{"a"}, Done("b"), nil),
	})

	r := &recorder{}
	_, err := table.Achieve(context.Background(), r, "b")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []Name{"a"}, r.calls)
}

func TestTable_UnknownGoalFails(t *testing.T) {
	table := MustTable(map[Name]Step[*recorder]{
		"a": recordingStep("a", nil, Noop(), nil),
	})

	res, err := table.Achieve(context.Background(), &recorder{}, "zzz")

	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, Name("zzz"), res.Goal)
	assert.Contains(t, res.Err().Error(), "unknown goal")
}

func TestNewTable_Validation(t *testing.T) {
	t.Run("dangling prerequisite", func(t *testing.T) {
		_, err := NewTable(map[Name]Step[*recorder]{
			"a": recordingStep("a", []Name{"missing"}, Noop(), nil),
		})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := NewTable(map[Name]Step[*recorder]{
			"a": recordingStep("a", []Name{"b"}, Noop(), nil),
			"b": recordingStep("b", []Name{"a"}, Noop(), nil),
		})
		require.ErrorIs(t, err, ErrInvalidTable)
		assert.Contains(t, err.Error(), "cycle")
	})

	t.Run("missing action", func(t *testing.T) {
		_, err := NewTable(map[Name]Step[*recorder]{
			"a": {},
		})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})

	t.Run("must table panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustTable(map[Name]Step[*recorder]{
				"a": recordingStep("a", []Name{"a"}, Noop(), nil),
			})
		})
	})
}

func TestTable_Plan(t *testing.T) {
	table := MustTable(map[Name]Step[*recorder]{
		"down":  recordingStep("down", nil, Noop(), nil),
		"clear": recordingStep("clear", []Name{"down"}, Done("remove"), nil),
	})

	plan, err := table.Plan("clear")
	require.NoError(t, err)
	assert.Equal(t, []Name{"down", "clear"}, plan)

	assert.True(t, table.Has("down"))
	assert.False(t, table.Has("up"))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "noop", OutcomeNoop.String())
	assert.Equal(t, "done", OutcomeDone.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}
