package cli

import (
	"fmt"

	"github.com/alexanderramin/pathfinder/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	var (
		all   bool
		users []string
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show pathway progress for a user, or a summary across users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !all && len(users) == 0 {
				results, err := app.Pathways.ProgressForUser(ctx, app.Config.User)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgress(app.Config.User, results))
				return nil
			}

			ids := users
			if all {
				var err error
				if ids, err = app.Users.ListUserIDs(ctx); err != nil {
					return err
				}
			}
			batch, err := app.Pathways.ProgressForUsers(ctx, ids)
			if err != nil {
				return err
			}

			var rows []formatter.SummaryRow
			for _, up := range batch {
				for _, r := range up.Results {
					rows = append(rows, formatter.SummaryRow{UserID: up.UserID, Result: r})
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgressSummary(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "summarize every user with a profile")
	cmd.Flags().StringSliceVar(&users, "users", nil, "summarize these users")
	cmd.MarkFlagsMutuallyExclusive("all", "users")
	return cmd
}
