// Package tui implements the interactive submission wizard: a three-step
// Bubble Tea flow (company profile, activity quantities, attestation)
// producing a submission for the standard pipeline.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carbonops/carbonpack/internal/activity"
	"github.com/carbonops/carbonpack/internal/submission"
)

// WizardStep identifies the wizard's current phase.
type WizardStep int

const (
	// StepProfile collects the company profile.
	StepProfile WizardStep = iota
	// StepActivities collects one quantity per catalogue activity.
	StepActivities
	// StepAttestation collects evidence file names and the signer.
	StepAttestation
)

// stepCount is the number of wizard phases, used for the progress line.
const stepCount = 3

// prompt is one field of the wizard: its label and how the answer lands on
// the submission.
type prompt struct {
	step        WizardStep
	label       string
	placeholder string
	assign      func(sub *submission.Submission, value string) error
}

//nolint:gochecknoglobals // Lip Gloss styles are conventionally package-level.
var (
	wizardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	wizardStepStyle  = lipgloss.NewStyle().Faint(true)
	wizardErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// WizardModel is the Bubble Tea model for the submission wizard.
type WizardModel struct {
	sub     *submission.Submission
	prompts []prompt
	index   int
	input   textinput.Model
	errText string
	done    bool
	aborted bool
}

// NewWizardModel creates a wizard model with an empty submission.
func NewWizardModel() *WizardModel {
	input := textinput.New()
	input.Focus()
	input.CharLimit = 120

	m := &WizardModel{
		sub:     &submission.Submission{Reference: submission.NewReference()},
		prompts: buildPrompts(),
		input:   input,
	}
	m.applyPrompt()
	return m
}

// buildPrompts lays out the wizard fields in questionnaire order: profile,
// then one quantity per catalogue activity, then evidence and signer.
func buildPrompts() []prompt {
	prompts := []prompt{
		{step: StepProfile, label: "Company Legal Name", assign: func(sub *submission.Submission, v string) error {
			if v == "" {
				return submission.ErrCompanyNameRequired
			}
			sub.Company.Name = strings.ToUpper(v)
			return nil
		}},
		{step: StepProfile, label: "Site Country", placeholder: "France", assign: func(sub *submission.Submission, v string) error {
			sub.Company.Country = defaultString(v, "France")
			return nil
		}},
		{step: StepProfile, label: "Reporting Period", placeholder: "2025", assign: func(sub *submission.Submission, v string) error {
			sub.Company.Period = defaultString(v, "2025")
			return nil
		}},
		{step: StepProfile, label: "Annual Revenue", assign: func(sub *submission.Submission, v string) error {
			revenue, err := parseQuantity(v)
			if err != nil {
				return err
			}
			if revenue <= 0 {
				return submission.ErrRevenueRequired
			}
			sub.Company.Revenue = revenue
			return nil
		}},
		{step: StepProfile, label: "Currency", placeholder: "EUR", assign: func(sub *submission.Submission, v string) error {
			sub.Company.Currency = strings.ToUpper(defaultString(v, "EUR"))
			return nil
		}},
	}

	for _, def := range activity.Catalogue() {
		prompts = append(prompts, prompt{
			step:        StepActivities,
			label:       fmt.Sprintf("%s (%s)", def.Label, def.Unit),
			placeholder: "0",
			assign:      assignQuantity(def.Key),
		})
	}

	prompts = append(prompts,
		prompt{step: StepAttestation, label: "Evidence file names (comma separated, blank for none)",
			assign: func(sub *submission.Submission, v string) error {
				sub.EvidenceFiles = splitFileNames(v)
				return nil
			}},
		prompt{step: StepAttestation, label: "Full Legal Name of Authorized Signer",
			assign: func(sub *submission.Submission, v string) error {
				sub.Signer = v
				return sub.Validate()
			}},
	)

	return prompts
}

// assignQuantity records one activity quantity. Blank and zero answers are
// still recorded: the calculator drops them, and the exclusion disclosure
// treats them as "no reported activity".
func assignQuantity(key string) func(*submission.Submission, string) error {
	return func(sub *submission.Submission, v string) error {
		quantity, err := parseQuantity(v)
		if err != nil {
			return err
		}
		if quantity < 0 {
			return fmt.Errorf("quantity cannot be negative")
		}
		sub.Activities = append(sub.Activities, submission.ActivityInput{Key: key, Quantity: quantity})
		return nil
	}
}

func parseQuantity(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	quantity, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	return quantity, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func splitFileNames(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// applyPrompt loads the current prompt into the text input.
func (m *WizardModel) applyPrompt() {
	m.input.SetValue("")
	m.input.Placeholder = m.prompts[m.index].placeholder
}

// Init implements tea.Model.
func (m *WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.advance()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// advance applies the current answer and moves to the next prompt, or
// finishes the wizard after the last one.
func (m *WizardModel) advance() (tea.Model, tea.Cmd) {
	current := m.prompts[m.index]
	if err := current.assign(m.sub, strings.TrimSpace(m.input.Value())); err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.errText = ""
	if m.index == len(m.prompts)-1 {
		m.done = true
		return m, tea.Quit
	}

	m.index++
	m.applyPrompt()
	return m, nil
}

// View implements tea.Model.
func (m *WizardModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	current := m.prompts[m.index]
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Supplier Carbon Pack Wizard"))
	b.WriteString("\n")
	b.WriteString(wizardStepStyle.Render(fmt.Sprintf("Step %d of %d - %s", int(current.step)+1, stepCount, stepName(current.step))))
	b.WriteString("\n\n")
	b.WriteString(current.label)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(wizardErrStyle.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString(wizardStepStyle.Render("enter: next - esc: abort"))
	b.WriteString("\n")
	return b.String()
}

func stepName(step WizardStep) string {
	switch step {
	case StepProfile:
		return "Company Profile"
	case StepActivities:
		return "Activity Data"
	case StepAttestation:
		return "Evidence & Attestation"
	default:
		return ""
	}
}

// Submission returns the completed submission, or nil when the wizard was
// aborted or is unfinished.
func (m *WizardModel) Submission() *submission.Submission {
	if !m.done {
		return nil
	}
	return m.sub
}

// RunWizard runs the wizard to completion. A nil submission with a nil
// error means the user aborted.
func RunWizard() (*submission.Submission, error) {
	model := NewWizardModel()
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("running wizard: %w", err)
	}

	wizard, ok := final.(*WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected wizard model type %T", final)
	}
	return wizard.Submission(), nil
}
