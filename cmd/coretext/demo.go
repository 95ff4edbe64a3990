package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/decoration"
	"github.com/quillbuf/coretext/model"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a small terminal editor over the text model",
	RunE:  runDemo,
}

const demoOwnerID = "coretext.demo"

var cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))

type demoModel struct {
	tm         *model.TextModel
	vp         viewport.Model
	cursor     buffer.Position
	cursorLine string // decoration id of the current cursor-line highlight
	logger     *slog.Logger
	closeLog   func() error
}

func newDemoModel(logger *slog.Logger, closeLog func() error) demoModel {
	text := "Hello from coretext.\n\nType to edit. Arrows move. Ctrl+C quits."
	tm := model.New(text, buildModelOptions(logger))
	tm.OnBeforeAttached()

	m := demoModel{
		tm:       tm,
		vp:       viewport.New(0, 0),
		cursor:   buffer.Position{Line: 1, Column: 1},
		logger:   logger,
		closeLog: closeLog,
	}
	m.moveCursorLineDecoration()
	m.rebuild()
	return m
}

// moveCursorLineDecoration keeps a single whole-line decoration, carrying
// cursorLineStyle as its rendering hint, tracking the line the cursor is
// currently on.
func (m *demoModel) moveCursorLineDecoration() {
	r := buffer.Range{Start: buffer.Position{Line: m.cursor.Line, Column: 1}, End: buffer.Position{Line: m.cursor.Line, Column: 1}}
	opts := decoration.Options{IsWholeLine: true, Style: cursorLineStyle}
	if m.cursorLine == "" {
		ids, err := m.tm.DeltaDecorations(demoOwnerID, nil, []buffer.Range{r}, []decoration.Options{opts})
		if err == nil && len(ids) == 1 {
			m.cursorLine = ids[0]
		}
		return
	}
	ids, err := m.tm.DeltaDecorations(demoOwnerID, []string{m.cursorLine}, []buffer.Range{r}, []decoration.Options{opts})
	if err == nil && len(ids) == 1 {
		m.cursorLine = ids[0]
	}
}

func (m demoModel) Init() tea.Cmd { return nil }

func (m demoModel) rebuild() {
	lineCount, _ := m.tm.GetLineCount()
	highlighted := map[int]lipgloss.Style{}
	if decs, err := m.tm.GetLinesDecorations(1, lineCount, demoOwnerID, false); err == nil {
		for _, d := range decs {
			if d.Options.IsWholeLine {
				highlighted[d.Range.Start.Line] = d.Options.Style
			}
		}
	}

	var b strings.Builder
	for l := 1; l <= lineCount; l++ {
		content, _ := m.tm.GetLineContent(l)
		if style, ok := highlighted[l]; ok {
			content = style.Render(content)
		}
		b.WriteString(content)
		if l != lineCount {
			b.WriteByte('\n')
		}
	}
	m.vp.SetContent(b.String())
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 1
		m.rebuild()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		m.handleKey(msg)
		m.moveCursorLineDecoration()
		m.rebuild()
		return m, nil
	}
	return m, nil
}

func (m *demoModel) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "left":
		if p, err := m.tm.PrevGraphemeBoundary(m.cursor); err == nil {
			m.cursor = p
		}
	case "right":
		if p, err := m.tm.NextGraphemeBoundary(m.cursor); err == nil {
			m.cursor = p
		}
	case "up":
		m.cursor = m.tm.ValidatePosition(buffer.Position{Line: m.cursor.Line - 1, Column: m.cursor.Column})
	case "down":
		m.cursor = m.tm.ValidatePosition(buffer.Position{Line: m.cursor.Line + 1, Column: m.cursor.Column})
	case "backspace":
		if m.cursor.Column > 1 || m.cursor.Line > 1 {
			prev := m.tm.ValidatePosition(buffer.Position{Line: m.cursor.Line, Column: m.cursor.Column - 1})
			m.applyEdit(buffer.Range{Start: prev, End: m.cursor}, "")
			m.cursor = prev
		}
	case "delete":
		next := m.tm.ValidatePosition(buffer.Position{Line: m.cursor.Line, Column: m.cursor.Column + 1})
		m.applyEdit(buffer.Range{Start: m.cursor, End: next}, "")
	case "enter":
		m.applyEdit(buffer.Range{Start: m.cursor, End: m.cursor}, "\n")
		m.cursor = buffer.Position{Line: m.cursor.Line + 1, Column: 1}
	case "tab":
		m.applyEdit(buffer.Range{Start: m.cursor, End: m.cursor}, "\t")
		m.cursor.Column++
	default:
		for _, r := range msg.Runes {
			m.applyEdit(buffer.Range{Start: m.cursor, End: m.cursor}, string(r))
			m.cursor.Column++
		}
	}
}

func (m *demoModel) applyEdit(r buffer.Range, text string) {
	if _, err := m.tm.ApplyEdits([]buffer.TextEdit{{Range: r, Text: text}}); err != nil {
		m.logger.Warn("demo edit failed", "error", err)
	}
}

func (m demoModel) View() string {
	return m.vp.View() + "\nctrl+c/esc to quit"
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	m := newDemoModel(logger, closeLog)
	defer m.tm.Dispose()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running demo: %w", err)
	}
	return nil
}
