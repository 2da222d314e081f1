package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)

	impactStyles = map[m.Impact]lipgloss.Style{
		m.BreakingPublicAPI:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		m.BreakingInternalAPI: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		m.NonBreaking:         lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		m.FormattingOnly:      lipgloss.NewStyle().Faint(true),
	}
)

// TUI implements UI with an interactive Bubble Tea report browser.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayResult shows the report in a scrollable viewport. When the
// output is not a terminal, or the report fits the screen, it prints the
// report and returns.
func (t *TUI) DisplayResult(ctx context.Context, result m.DiffResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := colorizeImpacts(RenderReport(result))

	width, height := 0, 0
	if f, ok := t.output.(*os.File); ok && IsTTY(f) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	lines := strings.Count(content, "\n")
	if height == 0 || lines < height-reservedRows {
		_, err := fmt.Fprint(t.output, content)
		return err
	}

	model := newReportModel(result, content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run report viewer: %w", err)
	}

	return nil
}

func colorizeImpacts(content string) string {
	for impact, style := range impactStyles {
		tag := "[" + string(impact) + "]"
		content = strings.ReplaceAll(content, tag, style.Render(tag))
	}

	return content
}

// reservedRows is the space kept for the title and help lines.
const reservedRows = 3

type reportModel struct {
	title    string
	viewport viewport.Model
	quitting bool
}

func newReportModel(result m.DiffResult, content string, width, height int) reportModel {
	vp := viewport.New(width, height-reservedRows)
	vp.SetContent(content)

	title := fmt.Sprintf("symdiff: %s -> %s", result.OldPath, result.NewPath)
	if len(result.Variants) > 0 {
		title += fmt.Sprintf(" (%d variants)", len(result.Variants))
	}

	return reportModel{title: title, viewport: vp}
}

func (r reportModel) Init() tea.Cmd {
	return nil
}

func (r reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.viewport.Width = msg.Width
		r.viewport.Height = msg.Height - reservedRows

		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			r.quitting = true
			return r, tea.Quit
		case "g", "home":
			r.viewport.GotoTop()
			return r, nil
		case "G", "end":
			r.viewport.GotoBottom()
			return r, nil
		}
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)

	return r, cmd
}

func (r reportModel) View() string {
	if r.quitting {
		return ""
	}

	help := helpStyle.Render("  j/k scroll · d/u page · g/G top/bottom · q quit")

	return titleStyle.Render(r.title) + "\n" + r.viewport.View() + "\n" + help
}
