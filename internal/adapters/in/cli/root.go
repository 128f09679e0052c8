// Package cli implements the CLI adapter for stevedore.
// Commands load the kernel and delegate to the image service.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/stevedore/internal/app"
	"github.com/bnema/stevedore/internal/boundaries/in"
	"github.com/bnema/stevedore/internal/boundaries/out"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	quiet      bool
}

// kernel is what commands need from the wired application.
type kernel interface {
	Images() in.ImageService
	Subscribe(handler out.EventHandler) error
	DockerVersion(ctx context.Context) (string, error)
	Context(parent context.Context) context.Context
	Close() error
}

// loadKernel builds the application; replaced in tests.
var loadKernel = func(configPath string) (kernel, error) {
	k, err := app.NewKernel(configPath)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "stevedore",
		Short: "Converge local Docker images toward a declared collection",
		Long: `stevedore keeps a declared set of images in a known state on a Docker
daemon. It resolves references, pulls, pushes, tags and removes images,
and drives the whole collection toward goals such as ready or clear.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print progress lines")

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newRefreshCmd(opts))
	rootCmd.AddCommand(newPullCmd(opts))
	rootCmd.AddCommand(newPushCmd(opts))
	rootCmd.AddCommand(newReadyCmd(opts))
	rootCmd.AddCommand(newAchieveCmd(opts))
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version, commit, date string) {
	SetVersionInfo(version, commit, date)
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

// withKernel loads the kernel, optionally attaches the progress printer,
// and closes everything when fn returns.
func withKernel(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, k kernel) error) (err error) {
	k, err := loadKernel(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	defer func() {
		if cerr := k.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if !opts.quiet {
		if err := k.Subscribe(newProgressPrinter(cmd.ErrOrStderr())); err != nil {
			return fmt.Errorf("failed to subscribe progress printer: %w", err)
		}
	}

	return fn(k.Context(cmd.Context()), k)
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	var withDaemon bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("stevedore %s\n", Version)
			cmd.Printf("Commit: %s\n", Commit)
			cmd.Printf("Build Date: %s\n", BuildDate)
			if !withDaemon {
				return nil
			}

			quiet := *opts
			quiet.quiet = true
			return withKernel(cmd, &quiet, func(ctx context.Context, k kernel) error {
				v, err := k.DockerVersion(ctx)
				if err != nil {
					return fmt.Errorf("failed to query docker daemon: %w", err)
				}
				cmd.Printf("Docker: %s\n", v)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withDaemon, "daemon", false, "Also print the Docker daemon version")
	return cmd
}
