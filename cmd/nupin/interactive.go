package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fbkclanna/nupin/internal/manifest"
	"github.com/fbkclanna/nupin/internal/semver"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// --- inputModel: bubbletea model for text input with validation ---

type inputModel struct {
	textInput textinput.Model
	title     string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			val := m.textInput.Value()
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// --- confirmModel: bubbletea model for yes/no confirmation ---

type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		case "left", "right", "tab", "h", "l":
			m.value = !m.value
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes := " Yes "
	no := " No "
	if m.value {
		yes = selectedStyle.Render(" Yes ")
	} else {
		no = selectedStyle.Render(" No ")
	}
	return fmt.Sprintf("%s %s / %s\n", titleStyle.Render(m.title), yes, no)
}

// --- prompt helpers ---

func promptInput(title, placeholder string, validate func(string) error) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	m := inputModel{
		textInput: ti,
		title:     title,
		validate:  validate,
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", fmt.Errorf("user aborted")
	}
	return rm.textInput.Value(), nil
}

func promptConfirm(title string) (bool, error) {
	m := confirmModel{
		title: title,
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, err
	}
	rm := result.(confirmModel)
	if rm.aborted {
		return false, fmt.Errorf("user aborted")
	}
	return rm.value, nil
}

func constraintValidator(s string) error {
	_, err := semver.ParseRange(strings.TrimSpace(s))
	return err
}

// interactiveAddPackages runs an interactive loop collecting package
// requirements. existing prevents duplicates against what the manifest
// already lists.
func interactiveAddPackages(existing map[string]bool) ([]manifest.Package, error) {
	seen := make(map[string]bool, len(existing))
	for name := range existing {
		seen[name] = true
	}

	var packages []manifest.Package
	for {
		name, err := promptInput(
			"Enter package name",
			"Newtonsoft.Json",
			func(s string) error {
				s = strings.TrimSpace(s)
				if s == "" {
					return fmt.Errorf("package name is required")
				}
				if seen[strings.ToLower(s)] {
					return fmt.Errorf("package %q is already listed", s)
				}
				return nil
			},
		)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)

		constraint, err := promptInput(
			"Version constraint (empty for any)",
			">= 13.0",
			constraintValidator,
		)
		if err != nil {
			return nil, err
		}

		seen[strings.ToLower(name)] = true
		packages = append(packages, manifest.Package{
			Name:    name,
			Version: strings.TrimSpace(constraint),
		})

		addMore, err := promptConfirm("Add another package?")
		if err != nil {
			return nil, err
		}
		if !addMore {
			break
		}
	}

	return packages, nil
}

// promptSource asks for the feed packages should be restored from.
func promptSource() (string, error) {
	source, err := promptInput(
		"Enter package source (feed URL or local path)",
		"https://api.nuget.org/v3-flatcontainer",
		func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a package source is required")
			}
			return nil
		},
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(source), nil
}
