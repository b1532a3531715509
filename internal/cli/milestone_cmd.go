package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathfinder/internal/cli/formatter"
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Record progress against canonical pathway milestones",
	}

	cmd.AddCommand(
		newMilestoneMarkCmd(app, "done <pathway> <milestone>", "Mark a milestone as done", domain.MilestoneDone),
		newMilestoneMarkCmd(app, "start <pathway> <milestone>", "Mark a milestone as in progress", domain.MilestoneInProgress),
		newMilestoneMarkCmd(app, "undo <pathway> <milestone>", "Reset a milestone to not started", domain.MilestoneNotStarted),
	)

	return cmd
}

func newMilestoneMarkCmd(app *App, use, short string, status domain.MilestoneStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			rec, err := app.Users.MarkMilestone(cmd.Context(), app.Config.User, args[0], name, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.MilestoneStatusPill(rec.Status), rec.MilestoneName)
			return nil
		},
	}
}

func newCustomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage user-authored milestones",
	}

	cmd.AddCommand(
		newCustomAddCmd(app),
		newCustomCompleteCmd(app, "done <id>", "Mark a custom milestone as completed", true),
		newCustomCompleteCmd(app, "reopen <id>", "Mark a custom milestone as not completed", false),
	)

	return cmd
}

func newCustomAddCmd(app *App) *cobra.Command {
	var pathway string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom milestone, optionally attached to a pathway",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Users.AddCustomMilestone(cmd.Context(), app.Config.User, strings.Join(args, " "), pathway)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom milestone %s [%s]\n", m.Name, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&pathway, "pathway", "", "pathway id or name the milestone counts toward")
	return cmd
}

func newCustomCompleteCmd(app *App, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.SetCustomMilestoneCompleted(cmd.Context(), app.Config.User, args[0], completed); err != nil {
				return err
			}
			state := "reopened"
			if completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Custom milestone %s %s\n", args[0], state)
			return nil
		},
	}
}
