package commands

import (
	"os"

	"github.com/spf13/cobra"

	"freshprint/internal/app"
	"freshprint/internal/clock"
	"freshprint/internal/domain"
)

const envPassphrase = "FRESHPRINT_PASSPHRASE"

var (
	home       string
	configPath string
	logLevel   string
	passphrase string
	at         uint64
	wire       *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "freshprint",
		Short:         "Issue and verify short-lived Ed25519 key fingerprints",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath, home)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if passphrase == "" {
				passphrase = os.Getenv(envPassphrase)
			}

			var clk domain.Clock
			if at != 0 {
				clk = clock.Fixed(at)
			}
			wire, err = app.NewWire(cfg, clk)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if wire != nil {
				wire.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "key directory (default ~/.freshprint)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the private key (or $"+envPassphrase+")")
	root.PersistentFlags().Uint64Var(&at, "at", 0, "use this Unix time instead of the system clock")

	root.AddCommand(keygenCmd(), pubkeyCmd(), issueCmd(), verifyCmd(), inspectCmd(), serveCmd())
	return root
}
