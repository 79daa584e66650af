package cli

import (
	"errors"
	"path/filepath"

	"github.com/alexanderramin/rcpsp/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// rcpspHuhTheme returns a huh theme matching the formatter palette.
func rcpspHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// datasetPicker chooses a subset of paths found under root. A nil result
// with a nil error means the user chose nothing.
type datasetPicker func(root string, paths []string) ([]string, error)

// pickDatasets is replaced in tests.
var pickDatasets datasetPicker = runDatasetPicker

func datasetPickerForm(root string, paths []string, chosen *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(paths))
	for _, p := range paths {
		label := p
		if rel, err := filepath.Rel(root, p); err == nil {
			label = rel
		}
		options = append(options, huh.NewOption(label, p).Selected(true))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which datasets?").
				Description("space toggles, enter confirms").
				Options(options...).
				Height(min(len(options)+2, 15)).
				Value(chosen),
		),
	).WithTheme(rcpspHuhTheme()).WithShowHelp(false)
}

func runDatasetPicker(root string, paths []string) ([]string, error) {
	var chosen []string
	if err := datasetPickerForm(root, paths, &chosen).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	return chosen, nil
}
