package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/stevedore/internal/adapters/in/cli/ui/components"
	"github.com/bnema/stevedore/internal/boundaries/in"
	"github.com/bnema/stevedore/internal/domain"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of every declared image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			quiet := *opts
			quiet.quiet = true
			return withKernel(cmd, &quiet, func(ctx context.Context, k kernel) error {
				return runStatus(ctx, k.Images(), output, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, yaml or json")
	return cmd
}

func newRefreshCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Resynchronize cached image state with the daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withKernel(cmd, opts, func(ctx context.Context, k kernel) error {
				if err := k.Images().Refresh(ctx); err != nil {
					return fmt.Errorf("failed to refresh images: %w", err)
				}
				return cliWriteLine(cmd.OutOrStdout(), cliRenderMuted("Image state refreshed"))
			})
		},
	}
}

func runStatus(ctx context.Context, svc in.ImageService, output string, out io.Writer) error {
	switch output {
	case outputTable, outputYAML, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q (want table, yaml or json)", output)
	}

	infos, err := svc.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	switch output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(infos) == 0 {
		return cliWriteLine(out, cliRenderMuted("No images declared"))
	}

	if err := cliWriteLine(out, cliRenderTitle("Images")); err != nil {
		return err
	}
	table := components.ImageTable(infos, func(i domain.ImageInfo) []string {
		kind := string(i.Kind)
		if i.External {
			kind += " (ext)"
		}
		return []string{i.Name, i.Canonical, kind, formatImageID(i.ID), formatSize(i.Size)}
	})
	if err := cliWriteLine(out, table); err != nil {
		return err
	}

	up := 0
	for _, i := range infos {
		if i.State == domain.ImageStateUp {
			up++
		}
	}
	return cliWriteLine(out, cliRenderMeta("Up:", fmt.Sprintf("%d/%d", up, len(infos))))
}
