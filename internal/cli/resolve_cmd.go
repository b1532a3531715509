package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pathfinder/internal/cli/formatter"
	"github.com/alexanderramin/pathfinder/internal/resolver"
	"github.com/spf13/cobra"
)

func newResolveCmd(app *App) *cobra.Command {
	var (
		in         resolver.Input
		showTraces bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve pathway references to one canonical pathway",
		Long: `Resolve tries, in order: --ids, --id, --name, --training-path and
finally the configured fallback pathway when --fallback is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Pathways.ResolvePrimaryPathway(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResolution(res))
			if showTraces {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTraces(app.Pathways.Traces(), time.Now()))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&in.PathwayIDs, "ids", nil, "candidate pathway ids, tried in order")
	cmd.Flags().StringVar(&in.PathwayID, "id", "", "single pathway id")
	cmd.Flags().StringVar(&in.PathwayName, "name", "", "free-text pathway name")
	cmd.Flags().StringSliceVar(&in.TrainingPaths, "training-path", nil, "training path ids or names")
	cmd.Flags().StringVar(&in.Specialty, "specialty", "", "specialty hint for name matching")
	cmd.Flags().BoolVar(&in.UseFallback, "fallback", false, "fall back to the default pathway when nothing matches")
	cmd.Flags().BoolVar(&showTraces, "trace", false, "print resolution diagnostics")
	return cmd
}
