package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/pkg/validation"
)

func newResolveCmd() *cobra.Command {
	var (
		overrides domain.RefOverrides
		short     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <reference>",
		Short: "Resolve an image reference to its canonical name",
		Long: `Resolve splits a reference into registry, repository path, slug and tag,
applies the given overrides and prints the family and canonical names.
No daemon or configuration is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0], overrides, short, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&overrides.Registry, "registry", "", "Override the registry host")
	cmd.Flags().StringVar(&overrides.RepoPath, "repo", "", "Override the repository path")
	cmd.Flags().StringVar(&overrides.Slug, "slug", "", "Override the image slug")
	cmd.Flags().StringVar(&overrides.Tag, "tag", "", "Override the tag")
	cmd.Flags().BoolVar(&short, "short", false, "Print only the canonical name")

	return cmd
}

func runResolve(raw string, overrides domain.RefOverrides, short bool, out io.Writer) error {
	parts := validation.SplitImageReference(raw)
	ref, err := domain.ResolveReference(overrides, domain.Reference{
		Registry: parts.Registry,
		RepoPath: parts.RepoPath,
		Slug:     parts.Slug,
		Tag:      parts.Tag,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", raw, err)
	}

	if short {
		return cliWriteLine(out, ref.Canonical)
	}

	rows := [][2]string{
		{"Registry:", ref.Registry},
		{"Repo path:", orDash(ref.RepoPath)},
		{"Slug:", ref.Slug},
		{"Tag:", ref.Tag},
		{"Family:", ref.Family},
		{"Canonical:", ref.Canonical},
	}
	for _, row := range rows {
		if err := cliWriteLine(out, cliRenderMeta(fmt.Sprintf("%-11s", row[0]), row[1])); err != nil {
			return err
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
