package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alexanderramin/pathfinder/internal/cli/formatter"
	"github.com/alexanderramin/pathfinder/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// pathfinderHuhTheme returns a huh theme using the formatter palette.
func pathfinderHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// pathwayOptions lists every pathway not already on the profile.
func pathwayOptions(defs []domain.PathwayDefinition, held []string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(defs))
	for _, d := range defs {
		if slices.Contains(held, d.ID) {
			continue
		}
		label := d.Name
		if d.Country != "" {
			label = fmt.Sprintf("%s (%s)", d.Name, d.Country)
		}
		options = append(options, huh.NewOption(label, d.ID))
	}
	return options
}

// choosePathwayForm asks for one pathway and writes its id to result.
func choosePathwayForm(options []huh.Option[string], result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which pathway are you working toward?").
				Options(options...).
				Value(result),
		),
	).WithTheme(pathfinderHuhTheme()).WithShowHelp(false)
}

func newChooseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "choose",
		Short: "Interactively add a registry pathway to your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return errors.New("choose needs an interactive terminal; use `pathfinder profile set --pathway <id>`")
			}
			ctx := cmd.Context()

			defs, err := app.Pathways.ListPathways(ctx)
			if err != nil {
				return err
			}

			var held []string
			var specialty string
			p, err := app.Users.GetProfile(ctx, app.Config.User)
			switch {
			case err == nil:
				held, specialty = p.PathwayRefs, p.Specialty
			case !errors.Is(err, domain.ErrProfileNotFound):
				return err
			}

			options := pathwayOptions(defs, held)
			if len(options) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Every registry pathway is already on your profile."))
				return nil
			}

			var chosen string
			form := choosePathwayForm(options, &chosen).
				WithProgramOptions(tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

			if err := form.RunWithContext(ctx); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}

			p, err = app.Users.SetProfile(ctx, app.Config.User, append(slices.Clone(held), chosen), specialty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s. Profile now holds %d pathway(s)\n", chosen, len(p.PathwayRefs))
			return nil
		},
	}
}
