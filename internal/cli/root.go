package cli

import (
	"fmt"

	"github.com/alexanderramin/pathfinder/internal/config"
	"github.com/alexanderramin/pathfinder/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps root flags to the config keys they override.
var flagKeys = map[string]string{
	"db":        "db_path",
	"user":      "user",
	"log-level": "log.level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Pathways service.PathwayService
	Imports  service.ImportService
	Users    service.UserService

	// Config is populated before any command runs.
	Config config.Config

	// IsInteractive reports whether stdin is a terminal. Prompts refuse to
	// run when it is nil or returns false.
	IsInteractive func() bool

	// Boot wires the services from the loaded config. Tests leave it nil
	// and set the services directly.
	Boot func(cfg config.Config) error
}

// NewRootCmd creates the top-level "pathfinder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string
	v := viper.New()

	root := &cobra.Command{
		Use:           "pathfinder",
		Short:         "Career pathway registry, resolver and progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			if err := config.Init(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			app.Config = cfg
			if app.Boot != nil {
				return app.Boot(cfg)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./.pathfinder.yaml or ~/.pathfinder.yaml)")
	flags.String("db", "", "SQLite database path")
	flags.String("user", "", "user id for profile and progress commands")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRegistryCmd(app),
		newResolveCmd(app),
		newProgressCmd(app),
		newProfileCmd(app),
		newMilestoneCmd(app),
		newCustomCmd(app),
		newChooseCmd(app),
	)

	return root
}
