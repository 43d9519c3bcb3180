package repl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/rollkit/lang"
	"github.com/ardnew/rollkit/log"
)

func helpMessage() string {
	return `
Commands:

  :help           Print this cruft
  :explain EXPR   Show the structure of an expression without rolling
  :seed N         Reseed the random source for reproducible rolls
  :clear          Clear screen
  :quit           Exit session

Usage:
  Type a dice expression to roll it (e.g. 4d6kh3 + 2)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Enter to lock in the current candidate
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// model is the Bubble Tea model for the session.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	funcs        *lang.Registry
	src          lang.Source
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	count        int           // successful evaluations, shown in prompt
	quitting     bool
}

// Run starts an interactive session. A non-nil seed gives a reproducible
// roll sequence for the whole session.
func Run(
	ctx context.Context,
	cacheDir string,
	seed *uint64,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Bool("seeded", seed != nil),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, seed, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	seed *uint64,
	history *History,
	logger log.Logger,
) model {
	m := model{
		ctxFunc:    func() context.Context { return ctx },
		funcs:      lang.DefaultRegistry(),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}

	if seed != nil {
		m.src = rand.New(rand.NewPCG(*seed, *seed))
	}

	ti := textinput.New()
	ti.Prompt = m.prompt()
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m.input = ti

	return m
}

// prompt renders the input prompt with the current roll counter.
func (m model) prompt() string {
	return promptStyle.Render(
		"rollkit:[" + strconv.Itoa(m.count) + "]> ")
}

// formatEcho formats the submitted line for scrollback.
func (m model) formatEcho(input string) string {
	return m.prompt() + inputStyle.Render(input)
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(m.prompt()) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	viewingHistory := m.historyIdx < m.history.Len()

	switch {
	case viewingHistory:
		pos := m.historyIdx + 1 // 1-based for display
		total := m.history.Len()
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			total)
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(
			"Type a dice expression, or :help for commands"))
		b.WriteString("\n")

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m)

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)
		}

		return m, nil

	case tea.KeyRunes:
		// Space breaks an active tab cycle.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, ...): update input and
	// recompute matches.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// handleTab cycles through completion candidates in the given direction.
func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx += dir
		if m.suggIdx >= len(m.matches) {
			m.suggIdx = 0
		}

		if m.suggIdx < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input
// with the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
func refreshMatches(m *model) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")

	_, _ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	if strings.HasPrefix(input, ":") {
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(m.formatEcho(input))

	expr, err := lang.Parse(input)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	var opts []lang.EvalOption
	if m.src != nil {
		opts = append(opts, lang.WithSource(m.src))
	}

	result, err := lang.Eval(expr, opts...)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	m.count++
	m.input.Prompt = m.prompt()

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(result.String())),
	)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(m.formatEcho(input))

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case ":q", ":quit", ":exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case ":h", ":help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case ":c", ":clear":
		return m, tea.ClearScreen

	case ":x", ":explain":
		return m.explainCommand(echoCmd, args)

	case ":seed":
		return m.seedCommand(echoCmd, args)

	default:
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("Unknown command: "+cmd+" (try :help)"),
		))
	}
}

// explainCommand parses the argument expression and prints its structure
// without rolling.
func (m model) explainCommand(echoCmd tea.Cmd, args []string) (model, tea.Cmd) {
	if len(args) == 0 {
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("usage: :explain EXPR"),
		))
	}

	expr, err := lang.Parse(strings.Join(args, " "))
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("error: "+err.Error()),
		))
	}

	return m, tea.Sequence(echoCmd, tea.Println(lang.Explain(expr)))
}

// seedCommand replaces the session's random source with a freshly seeded
// one so subsequent rolls replay deterministically.
func (m model) seedCommand(echoCmd tea.Cmd, args []string) (model, tea.Cmd) {
	if len(args) != 1 {
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("usage: :seed N"),
		))
	}

	seed, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("error: invalid seed: "+args[0]),
		))
	}

	m.src = rand.New(rand.NewPCG(seed, seed))

	return m, tea.Sequence(echoCmd, tea.Println(
		resultStyle.Render("seeded random source with "+args[0]),
	))
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--

		if entry, err := m.history.Get(m.historyIdx); err == nil {
			m.input.SetValue(entry)
			m.input.SetCursor(len(entry))
			refreshMatches(&m)
		}
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if entry, err := m.history.Get(m.historyIdx); err == nil {
			m.input.SetValue(entry)
			m.input.SetCursor(len(entry))
			refreshMatches(&m)
		}
	} else {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m)
	}

	return m, nil
}
