package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/display"
	"github.com/lox/pokerdraw/internal/estimator"
	"github.com/lox/pokerdraw/internal/randutil"
)

const welcomeText = "Type a five card hand and press enter to see how likely each discard is to improve it."

// Model is the Bubble Tea model for interactive hand analysis
type Model struct {
	logger *log.Logger

	// UI components
	resultViewport viewport.Model
	handInput      textinput.Model

	// Estimation settings
	trials  int
	workers int
	seed    *int64

	// State
	history     []string
	analyzing   bool
	currentHand string
	quitting    bool
	focusedPane int // 0 = results, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized
}

// analysisDoneMsg delivers a finished estimation back to Update
type analysisDoneMsg struct {
	input  string
	result estimator.Result
}

// analysisFailedMsg delivers a failed estimation back to Update
type analysisFailedMsg struct {
	input string
	err   error
}

// NewModel creates a TUI model that runs estimations with the given
// settings. A nil seed draws a fresh seed per analysis.
func NewModel(trials, workers int, seed *int64, logger *log.Logger) *Model {
	// Will be properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent(welcomeText)

	ti := textinput.New()
	ti.Placeholder = "Enter five cards (e.g. AH KD 7C 7S 2H)"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:         logger.WithPrefix("tui"),
		resultViewport: vp,
		handInput:      ti,
		trials:         trials,
		workers:        workers,
		seed:           seed,
		history:        []string{welcomeText},
		focusedPane:    1, // Start with input focused
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case analysisDoneMsg:
		m.analyzing = false
		m.appendHistory(m.formatResult(msg.result))

	case analysisFailedMsg:
		m.analyzing = false
		m.appendHistory(ErrorStyle.Render(msg.err.Error()))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between results and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.handInput.Focus()
			} else {
				m.focusedPane = 0
				m.handInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 { // Only process enter in input pane
				input := strings.TrimSpace(m.handInput.Value())
				m.handInput.SetValue("")
				if cmd := m.submitHand(input); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 { // Results pane focused
				m.resultViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 { // Results pane focused
				m.resultViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 { // Results pane focused
				m.resultViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 { // Results pane focused
				m.resultViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 { // Results pane focused
				m.resultViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 { // Results pane focused
				m.resultViewport.GotoBottom()
			}
		}
	}

	// Update components
	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.handInput, cmd = m.handInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always update viewport (for scrolling)
	m.resultViewport, cmd = m.resultViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submitHand validates the input and kicks off an estimation. It
// returns nil when there is nothing to run.
func (m *Model) submitHand(input string) tea.Cmd {
	if input == "" {
		return nil
	}
	if m.analyzing {
		m.appendHistory(WarningStyle.Render(fmt.Sprintf("Still working on %s, one hand at a time.", m.currentHand)))
		return nil
	}

	hand, err := deck.ParseHand(input)
	if err != nil {
		m.appendHistory(HandInfoStyle.Render("> "+input) + "\n" + ErrorStyle.Render(err.Error()))
		return nil
	}

	m.analyzing = true
	m.currentHand = hand.Notation()
	m.appendHistory(HandInfoStyle.Render("> " + input))
	return m.runAnalysis(input, hand)
}

// runAnalysis runs the estimation off the UI loop and reports back
// through a message.
func (m *Model) runAnalysis(input string, hand deck.Hand) tea.Cmd {
	trials := m.trials
	workers := m.workers
	seed := randutil.SeedOrNow(m.seed)
	logger := m.logger

	return func() tea.Msg {
		est := estimator.New(trials, workers, logger, nil)
		result, err := est.Run(context.Background(), hand, seed)
		if err != nil {
			return analysisFailedMsg{input: input, err: err}
		}
		return analysisDoneMsg{input: input, result: result}
	}
}

func (m *Model) formatResult(result estimator.Result) string {
	var buf bytes.Buffer
	display.Report(&buf, result)
	return strings.TrimRight(buf.String(), "\n")
}

// appendHistory adds an entry to the results log and scrolls to show it
func (m *Model) appendHistory(entry string) {
	m.history = append(m.history, entry)
	m.resultViewport.SetContent(strings.Join(m.history, "\n\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.resultViewport.Height > 0 {
		m.resultViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	status := m.renderStatusLine()
	statusHeight := lipgloss.Height(status)

	// Input pane (bottom, full width)
	inputWidth := m.width - 2 // Full width minus border
	if inputWidth < 1 {
		inputWidth = 1
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(inputWidth)
	if m.focusedPane == 1 {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	inputPane := inputStyle.Render(m.handInput.View())
	inputHeight := lipgloss.Height(inputPane)

	// Results pane fills the remaining height
	logWidth := m.width - 2
	logHeight := m.height - inputHeight - statusHeight - 2

	// Ensure viewport dimensions are valid (minimum 1x1)
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}

	m.resultViewport.Width = logWidth
	m.resultViewport.Height = logHeight

	// On first proper sizing, jump to the latest entry
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.resultViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.resultViewport.View())

	return lipgloss.JoinVertical(lipgloss.Top, logPane, inputPane, status)
}

func (m *Model) renderStatusLine() string {
	if m.analyzing {
		return WarningStyle.Render(fmt.Sprintf("Estimating %s, %d trials per position...", m.currentHand, m.trials))
	}
	return InfoStyle.Render("enter analyzes, tab switches panes, esc quits")
}
