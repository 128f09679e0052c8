// Package goal drives entities toward named goal states.
//
// A Table maps goal names to steps. Each step lists the goals that must be
// achieved first and an action that moves the entity toward the goal. Tables
// are generic over the entity type so every entity kind can declare its own.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// ErrInvalidTable is returned by NewTable for dangling or cyclic prerequisites.
var ErrInvalidTable = errors.New("invalid goal table")

// Name identifies a goal.
type Name string

// Outcome tags a Result.
type Outcome int

const (
	// OutcomeNoop means the goal was already satisfied.
	OutcomeNoop Outcome = iota
	// OutcomeDone means an action ran.
	OutcomeDone
	// OutcomeFailed means the goal cannot be reached from the current state.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeDone:
		return "done"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports what achieving a goal did.
type Result struct {
	Goal    Name
	Outcome Outcome
	// Action describes what ran when Outcome is OutcomeDone.
	Action string
	// Reason is set when Outcome is OutcomeFailed.
	Reason *domain.GoalUnreachableError
}

// Noop returns a result for an already satisfied goal.
func Noop() Result {
	return Result{Outcome: OutcomeNoop}
}

// Done returns a result for a goal whose action ran.
func Done(action string) Result {
	return Result{Outcome: OutcomeDone, Action: action}
}

// Fail returns a result for an unreachable goal.
func Fail(reason *domain.GoalUnreachableError) Result {
	return Result{Outcome: OutcomeFailed, Reason: reason}
}

// Failed reports whether the goal could not be reached.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// Err returns the unreachable reason as an error, or nil.
func (r Result) Err() error {
	if r.Reason == nil {
		return nil
	}
	return r.Reason
}

// Step is one goal definition.
type Step[E any] struct {
	Before []Name
	Action func(ctx context.Context, entity E) (Result, error)
}

// Table is a validated set of goal steps for entities of type E.
type Table[E any] struct {
	steps map[Name]Step[E]
}

// NewTable validates steps and builds a table. Every prerequisite must name a
// goal of the table and prerequisites must not form a cycle.
func NewTable[E any](steps map[Name]Step[E]) (*Table[E], error) {
	t := &Table[E]{steps: make(map[Name]Step[E], len(steps))}
	for name, step := range steps {
		if step.Action == nil {
			return nil, fmt.Errorf("%w: goal %q has no action", ErrInvalidTable, name)
		}
		t.steps[name] = step
	}

	for name := range t.steps {
		if _, err := t.plan(name, nil); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// MustTable is NewTable for package-level tables.
func MustTable[E any](steps map[Name]Step[E]) *Table[E] {
	t, err := NewTable(steps)
	if err != nil {
		panic(err)
	}
	return t
}

// Has reports whether the table defines name.
func (t *Table[E]) Has(name Name) bool {
	_, ok := t.steps[name]
	return ok
}

// Plan returns the goals Achieve runs for name, prerequisites first.
func (t *Table[E]) Plan(name Name) ([]Name, error) {
	return t.plan(name, nil)
}

func (t *Table[E]) plan(name Name, path []Name) ([]Name, error) {
	for _, seen := range path {
		if seen == name {
			cycle := make([]string, 0, len(path)+1)
			for _, p := range append(path, name) {
				cycle = append(cycle, string(p))
			}
			return nil, fmt.Errorf("%w: cycle %s", ErrInvalidTable, strings.Join(cycle, " -> "))
		}
	}

	step, ok := t.steps[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown goal %q", ErrInvalidTable, name)
	}

	var order []Name
	for _, before := range step.Before {
		sub, err := t.plan(before, append(path, name))
		if err != nil {
			return nil, err
		}
		order = append(order, sub...)
	}

	return append(order, name), nil
}

// Achieve satisfies the prerequisites of name in declared order, then runs
// its action. A failed prerequisite or an error stops the chain and is
// returned as is; the goal's own action does not run.
func (t *Table[E]) Achieve(ctx context.Context, entity E, name Name) (Result, error) {
	log := logging.FromCtx(ctx)

	step, ok := t.steps[name]
	if !ok {
		return Fail(&domain.GoalUnreachableError{
			Goal:   string(name),
			Reason: "unknown goal",
		}).withGoal(name), nil
	}

	for _, before := range step.Before {
		res, err := t.Achieve(ctx, entity, before)
		if err != nil {
			return res, err
		}
		if res.Failed() {
			log.Debug().
				Str(logging.FieldGoal, string(name)).
				Str("prerequisite", string(before)).
				Msg("prerequisite goal failed")
			return res, nil
		}
	}

	res, err := step.Action(ctx, entity)
	if err != nil {
		return res.withGoal(name), err
	}

	log.Debug().
		Str(logging.FieldGoal, string(name)).
		Stringer("outcome", res.Outcome).
		Str(logging.FieldAction, res.Action).
		Msg("goal evaluated")

	return res.withGoal(name), nil
}

func (r Result) withGoal(name Name) Result {
	r.Goal = name
	return r
}
