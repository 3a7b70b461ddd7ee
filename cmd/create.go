package cmd

import (
	"context"
	"fmt"
	"io"

	"capsule/internal/api"
	"capsule/internal/service"
	"capsule/internal/slogger"
	"github.com/spf13/cobra"
)

// newCreateCmd creates and returns the create command.
func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [NAME]",
		Short: "Create a new application",
		Long: `Create a new application on the Capsule platform.

When NAME is omitted the platform generates one. If the current directory
is a git repository, a "capsule" remote pointing at the application's git
repository is added, so the next step is a plain "git push capsule".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name *string
			if len(args) > 0 {
				name = &args[0]
			}

			capsuleAPI, err := api.NewHTTPCapsuleAPI(apiConfig())
			if err != nil {
				return err
			}

			ctx := slogger.WithRequestID(cmd.Context(), slogger.NewRequestID())
			return runCreate(ctx, capsuleAPI, ".", name, cmd.OutOrStdout())
		},
	}

	return cmd
}

// apiConfig maps the loaded CLI configuration onto the transport configuration.
func apiConfig() api.Config {
	if cfg == nil {
		return api.DefaultConfig()
	}

	return api.Config{
		BaseURL: cfg.API.URL,
		Timeout: cfg.API.Timeout,
	}
}

// runCreate drives the create workflow against the given API and renders the
// outcome on out. A failed run is reported as regular output rather than as a
// command error: the message is the result, and the command still exits zero.
func runCreate(ctx context.Context, capsuleAPI api.CapsuleAPI, dir string, name *string, out io.Writer) error {
	fmt.Fprint(out, "Creating application... ")

	resp, err := service.NewApplicationService(capsuleAPI).Create(ctx, dir, name)
	if err != nil {
		slogger.Debug(ctx, "Create application failed", slogger.Fields{"error": err.Error()})
		fmt.Fprintf(out, "%s\n", err)
		return nil
	}

	fmt.Fprintf(out, "done, %s\n", resp.Name)
	fmt.Fprintf(out, "url: %s\n", resp.URL)
	fmt.Fprintf(out, "git: %s\n", resp.GitRepo)

	return nil
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newCreateCmd())
}
