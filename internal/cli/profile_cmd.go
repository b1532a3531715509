package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathfinder/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the pathway references on a user profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Users.GetProfile(cmd.Context(), app.Config.User)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Profile · "+p.UserID))
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("specialty:"), formatter.OrDash(p.Specialty))
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("pathways:"), formatter.OrDash(strings.Join(p.PathwayRefs, ", ")))

			if len(p.CustomMilestones) > 0 {
				fmt.Fprintln(out)
				rows := make([][]string, 0, len(p.CustomMilestones))
				for _, m := range p.CustomMilestones {
					state := formatter.Dim("open")
					if m.Completed {
						state = formatter.StyleGreen.Render("done")
					}
					rows = append(rows, []string{formatter.TruncID(m.ID), m.Name, formatter.OrDash(m.PathwayID), state})
				}
				fmt.Fprint(out, formatter.RenderTable([]string{"ID", "CUSTOM MILESTONE", "PATHWAY", "STATE"}, rows))
			}
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		refs      []string
		specialty string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the pathway references held by the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Users.SetProfile(cmd.Context(), app.Config.User, refs, specialty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s with %d pathway(s)\n", p.UserID, len(p.PathwayRefs))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&refs, "pathway", nil, "pathway id or name (repeatable)")
	cmd.Flags().StringVar(&specialty, "specialty", "", "user specialty")
	_ = cmd.MarkFlagRequired("pathway")
	return cmd
}
