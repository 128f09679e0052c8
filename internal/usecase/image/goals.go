package image

import (
	"context"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/usecase/goal"
)

// Image goals.
const (
	GoalUp    goal.Name = "up"
	GoalReady goal.Name = "ready"
	GoalDown  goal.Name = "down"
	GoalClear goal.Name = "clear"
)

// Goals is the goal table shared by every image.
//
// Images have no state beyond ready, so up is reached only as ready and
// asking for it directly fails. Down needs no teardown: a present image and
// an absent one both count as down.
var Goals = goal.MustTable(map[goal.Name]goal.Step[*Image]{
	GoalUp: {
		Before: []goal.Name{GoalReady},
		Action: func(_ context.Context, i *Image) (goal.Result, error) {
			return goal.Fail(&domain.GoalUnreachableError{
				Goal:   string(GoalUp),
				From:   i.State(),
				Reason: "images are up once ready; no transition leads to up",
			}), nil
		},
	},
	GoalReady: {
		Action: func(ctx context.Context, i *Image) (goal.Result, error) {
			if err := i.Pull(ctx, domain.RefOverrides{}); err != nil {
				return goal.Result{}, err
			}
			return goal.Done("pull"), nil
		},
	},
	GoalDown: {
		Action: func(context.Context, *Image) (goal.Result, error) {
			return goal.Noop(), nil
		},
	},
	GoalClear: {
		Before: []goal.Name{GoalDown},
		Action: func(ctx context.Context, i *Image) (goal.Result, error) {
			if err := i.Remove(ctx); err != nil {
				return goal.Result{}, err
			}
			return goal.Done("remove"), nil
		},
	},
})

// Achieve drives the image toward name.
func (i *Image) Achieve(ctx context.Context, name goal.Name) (goal.Result, error) {
	return Goals.Achieve(ctx, i, name)
}
