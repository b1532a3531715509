package cli

import (
	"testing"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chooseDefs() []domain.PathwayDefinition {
	return []domain.PathwayDefinition{
		{ID: "gpst", Name: "GP Specialty Training"},
		{ID: "mrcp-imt", Name: "Internal Medicine Training"},
		{ID: "img-service", Name: "International Service Post"},
	}
}

func TestChoosePathwayForm_SelectsHighlightedPathway(t *testing.T) {
	var chosen string
	form := choosePathwayForm(pathwayOptions(chooseDefs(), []string{"gpst"}), &chosen)
	d := teatest.New(t, form, teatest.WithSize(80, 24))

	view := d.View()
	assert.Contains(t, view, "Which pathway are you working toward?")
	assert.Contains(t, view, "Internal Medicine Training")
	assert.NotContains(t, view, "GP Specialty Training")

	d.Keys(tea.KeyDown, tea.KeyEnter)

	f, ok := d.Model.(*huh.Form)
	require.True(t, ok)
	assert.Equal(t, huh.StateCompleted, f.State)
	assert.Equal(t, "img-service", chosen)
}

func TestChoosePathwayForm_DefaultsToFirstOption(t *testing.T) {
	var chosen string
	form := choosePathwayForm(pathwayOptions(chooseDefs(), nil), &chosen)
	d := teatest.New(t, form, teatest.WithSize(80, 24))

	d.Keys(tea.KeyEnter)
	assert.Equal(t, "gpst", chosen)
}
