// Package prompt holds the terminal UI pieces of an interactive run: the
// search form, the fetch spinner and the closing summary.
package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchInput is what the user asked for in the search form.
type SearchInput struct {
	Query          string
	Location       string
	Pages          int
	EmploymentType string
	LocationType   string
}

const (
	fieldQuery = iota
	fieldLocation
	fieldPages
	fieldEmploymentType
	fieldLocationType
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Job title",
	"Location",
	"Pages",
	"Employment type",
	"Location type",
}

type formModel struct {
	inputs    []textinput.Model
	focus     int
	err       string
	result    SearchInput
	submitted bool
	cancelled bool
}

func newFormModel(defaults SearchInput) formModel {
	values := [fieldCount]string{
		defaults.Query,
		defaults.Location,
		"",
		defaults.EmploymentType,
		defaults.LocationType,
	}
	if defaults.Pages > 0 {
		values[fieldPages] = strconv.Itoa(defaults.Pages)
	}
	placeholders := [fieldCount]string{
		"data analyst",
		"South Africa",
		"1",
		"any (e.g. Full-time)",
		"any (e.g. Remote)",
	}

	m := formModel{inputs: make([]textinput.Model, fieldCount)}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		in.SetValue(values[i])
		if i == fieldPages {
			in.CharLimit = 4
		}
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "enter":
			if m.focus < fieldCount-1 {
				return m, m.moveFocus(1)
			}
			in, err := m.collect()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.result = in
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// moveFocus shifts focus by delta, wrapping around the form.
func (m *formModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

func (m formModel) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

func (m formModel) collect() (SearchInput, error) {
	in := SearchInput{
		Query:          m.value(fieldQuery),
		Location:       m.value(fieldLocation),
		EmploymentType: m.value(fieldEmploymentType),
		LocationType:   m.value(fieldLocationType),
	}
	if in.Query == "" {
		return SearchInput{}, errors.New("job title is required")
	}
	pages, err := parsePages(m.value(fieldPages))
	if err != nil {
		return SearchInput{}, err
	}
	in.Pages = pages
	return in, nil
}

// parsePages accepts a positive integer; empty means one page.
func parsePages(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New("pages must be a positive whole number")
	}
	return n, nil
}

func (m formModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Job market insights: new search"))
	b.WriteString("\n")
	for i, in := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = activeLabelStyle
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("tab/↓ next  shift+tab/↑ back  enter submit  esc cancel"))
	return b.String()
}

// RunSearchForm asks for search parameters, pre-filled from defaults.
// The bool is false when the user cancelled.
func RunSearchForm(defaults SearchInput) (SearchInput, bool, error) {
	p := tea.NewProgram(newFormModel(defaults))
	result, err := p.Run()
	if err != nil {
		return SearchInput{}, false, err
	}

	final := result.(formModel)
	if !final.submitted {
		return SearchInput{}, false, nil
	}
	return final.result, true, nil
}
