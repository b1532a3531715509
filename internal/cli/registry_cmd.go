package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexanderramin/pathfinder/internal/cli/formatter"
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/service"
	"github.com/spf13/cobra"
)

func newRegistryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registry",
		Aliases: []string{"reg"},
		Short:   "Inspect and load the pathway registry",
	}

	cmd.AddCommand(
		newRegistryListCmd(app),
		newRegistryShowCmd(app),
		newRegistryImportCmd(app),
		newRegistryRefreshCmd(app),
		newRegistryWatchCmd(app),
	)

	return cmd
}

func newRegistryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active pathways",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := app.Pathways.ListPathways(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPathwayList(defs))
			return nil
		},
	}
}

func newRegistryShowCmd(app *App) *cobra.Command {
	var specialty string

	cmd := &cobra.Command{
		Use:   "show <id-or-name>",
		Short: "Show a pathway and its requirements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.Join(args, " ")
			p, err := app.Pathways.GetPathwayByID(cmd.Context(), ref)
			if errors.Is(err, domain.ErrPathwayNotFound) {
				p, err = app.Pathways.GetPathwayByName(cmd.Context(), ref, specialty)
			}
			if err != nil {
				return fmt.Errorf("%q: %w", ref, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPathway(p, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&specialty, "specialty", "", "specialty hint for name matching")
	return cmd
}

func seedPathFrom(app *App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if app.Config.SeedPath != "" {
		return app.Config.SeedPath, nil
	}
	return "", errors.New("no seed file given and seed_path is not configured")
}

func printImport(cmd *cobra.Command, res *service.ImportResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d pathways (%d milestones)\n",
		formatter.StyleGreen.Render("✔"), res.PathwayCount, res.MilestoneCount)
	if len(res.Codes) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", formatter.Dim(strings.Join(res.Codes, ", ")))
	}
}

func newRegistryImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [seed.yaml]",
		Short: "Validate a YAML seed file and upsert it into the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := seedPathFrom(app, args)
			if err != nil {
				return err
			}
			res, err := app.Imports.ImportSeed(cmd.Context(), path)
			if err != nil {
				return err
			}
			printImport(cmd, res)
			return nil
		},
	}
}

func newRegistryRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the in-memory registry from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Pathways.RefreshRegistry(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry reloaded: %d pathways\n", n)
			return nil
		},
	}
}

func newRegistryWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [seed.yaml]",
		Short: "Re-import a seed file whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := seedPathFrom(app, args)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", path)
			return app.Imports.WatchSeed(ctx, path, func(res *service.ImportResult, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", formatter.StyleRed.Render("✖"), err)
					return
				}
				printImport(cmd, res)
			})
		},
	}
}
