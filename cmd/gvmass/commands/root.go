package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gvmass/internal/components/telemetry"
	"gvmass/lib/configutil"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	emailFlag  *string
	verbose    *bool
	dumpHttp   *string
)

var (
	cfg     Config
	otelTel telemetry.Telemetry
	tel     telemetry.API = telemetry.SlogAPI{}
)

var rootCmd = &cobra.Command{
	Use:   "gvmass",
	Short: "gvmass sends mass texts and chains calls to your voice account's contact groups.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		var err error
		cfg, err = configutil.Load[Config](*configPath, configName)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if *emailFlag != "" {
			cfg.Email = *emailFlag
		}
		if *dumpHttp != "" {
			cfg.DumpHttp = *dumpHttp
		}

		if cfg.Telemetry.Enabled() {
			otelTel, err = telemetry.Setup(cmd.Context(), "gvmass", cfg.Telemetry)
			if err != nil {
				return fmt.Errorf("failed to setup telemetry: %w", err)
			}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to the config file, by default gvmass.json5 is searched for from the working directory upwards.")
	emailFlag = rootCmd.PersistentFlags().String("email", "", "The account email, overrides the config.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every request.")
	dumpHttp = rootCmd.PersistentFlags().String("dump-http", "", "Write every HTTP exchange to this directory.")
}

// ExecuteContext runs the command line and flushes telemetry, the returned
// error has already been printed.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
	}

	// cobra skips post-run hooks when a command fails
	shutdownErr := otelTel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}
	return err
}
