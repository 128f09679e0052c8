package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bnema/stevedore/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/stevedore/internal/boundaries/in"
	"github.com/bnema/stevedore/internal/usecase/batch"
	"github.com/bnema/stevedore/internal/usecase/collection"
	"github.com/bnema/stevedore/internal/usecase/goal"
)

// bulkAction is one collection-wide operation producing a pull-style report.
type bulkAction func(ctx context.Context, svc in.ImageService, opts collection.BulkOptions) (*collection.PullReport, error)

func pullAction(ctx context.Context, svc in.ImageService, opts collection.BulkOptions) (*collection.PullReport, error) {
	return svc.PullAll(ctx, opts)
}

func pushAction(ctx context.Context, svc in.ImageService, opts collection.BulkOptions) (*collection.PullReport, error) {
	return svc.PushAll(ctx, opts)
}

// readyAction refreshes first so the whole collection is matched against one image listing.
func readyAction(ctx context.Context, svc in.ImageService, opts collection.BulkOptions) (*collection.PullReport, error) {
	if err := svc.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh images: %w", err)
	}
	return svc.Ready(ctx, opts)
}

func newPullCmd(opts *rootOptions) *cobra.Command {
	return newBulkCmd(opts, "pull [names...]", "Pull images (all when no name is given)", "Pulled", pullAction)
}

func newPushCmd(opts *rootOptions) *cobra.Command {
	return newBulkCmd(opts, "push [names...]", "Push non-external images (all when no name is given)", "Pushed", pushAction)
}

func newReadyCmd(opts *rootOptions) *cobra.Command {
	return newBulkCmd(opts, "ready [names...]", "Pull whatever is missing so every image is up", "Pulled", readyAction)
}

func newBulkCmd(opts *rootOptions, use, short, verb string, action bulkAction) *cobra.Command {
	var ignoreFailure bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKernel(cmd, opts, func(ctx context.Context, k kernel) error {
				bulk := collection.BulkOptions{Names: args, IgnoreFailure: ignoreFailure}
				return runBulk(ctx, k.Images(), bulk, verb, action, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().BoolVar(&ignoreFailure, "ignore-failure", false, "Keep going after an image fails")
	return cmd
}

func runBulk(ctx context.Context, svc in.ImageService, opts collection.BulkOptions, verb string, action bulkAction, out io.Writer) error {
	report, err := action(ctx, svc, opts)
	if report == nil {
		return err
	}

	if werr := writeReport(out, report, func(name, canonical string) string {
		return fmt.Sprintf("%s %s (%s)", verb, name, canonical)
	}); werr != nil {
		return werr
	}
	return bulkError(report, err)
}

func newAchieveCmd(opts *rootOptions) *cobra.Command {
	var ignoreFailure bool

	cmd := &cobra.Command{
		Use:   "achieve <goal> [names...]",
		Short: "Drive images toward a goal: up, ready, down or clear",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKernel(cmd, opts, func(ctx context.Context, k kernel) error {
				bulk := collection.BulkOptions{Names: args[1:], IgnoreFailure: ignoreFailure}
				return runAchieve(ctx, k.Images(), goal.Name(args[0]), bulk, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().BoolVar(&ignoreFailure, "ignore-failure", false, "Keep going after an image fails")
	return cmd
}

func runAchieve(ctx context.Context, svc in.ImageService, name goal.Name, opts collection.BulkOptions, out io.Writer) error {
	report, err := svc.Achieve(ctx, name, opts)
	if report == nil {
		return err
	}

	unreachable := 0
	if werr := writeReport(out, report, func(img string, res goal.Result) string {
		switch res.Outcome {
		case goal.OutcomeDone:
			return fmt.Sprintf("%s %s: %s", img, res.Goal, res.Action)
		case goal.OutcomeFailed:
			unreachable++
			return styles.RenderWarning(fmt.Sprintf("%s %s: %v", img, res.Goal, res.Reason))
		default:
			return cliRenderMuted(fmt.Sprintf("%s %s: already satisfied", img, res.Goal))
		}
	}); werr != nil {
		return werr
	}

	if err := bulkError(report, err); err != nil {
		return err
	}
	if unreachable > 0 {
		return fmt.Errorf("goal %s unreachable for %d image(s)", name, unreachable)
	}
	return nil
}

// writeReport prints successes, failures and skipped items in name order.
func writeReport[R any](out io.Writer, report *batch.Report[string, R], describe func(string, R) string) error {
	if report.Succeeded() == 0 && report.Failed() == 0 && len(report.Skipped) == 0 {
		return cliWriteLine(out, cliRenderMuted("Nothing to do"))
	}

	for _, name := range sortedKeys(report.Results) {
		line := describe(name, report.Results[name])
		if err := cliWriteLine(out, styles.RenderListItem(line)); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(report.Errors) {
		if err := cliWriteLine(out, styles.RenderError(fmt.Sprintf("%s: %v", name, report.Errors[name]))); err != nil {
			return err
		}
	}
	for _, name := range report.Skipped {
		if err := cliWriteLine(out, styles.RenderSkipped(name+": skipped")); err != nil {
			return err
		}
	}
	return cliWritef(out, "\n%d succeeded, %d failed, %d skipped\n",
		report.Succeeded(), report.Failed(), len(report.Skipped))
}

// bulkError keeps a command's exit status non-zero when any item failed or
// never ran, including runs with --ignore-failure where the service returns
// no error.
func bulkError[R any](report *batch.Report[string, R], err error) error {
	if err != nil {
		var berr *batch.Error[string]
		if errors.As(err, &berr) {
			return fmt.Errorf("%d image(s) failed", len(berr.Errors))
		}
		return err
	}
	switch {
	case report.Failed() > 0:
		return fmt.Errorf("%d image(s) failed", report.Failed())
	case len(report.Skipped) > 0:
		return fmt.Errorf("%d image(s) skipped", len(report.Skipped))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
