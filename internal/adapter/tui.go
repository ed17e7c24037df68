package adapter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// TUI implements UI as an interactive Bubble Tea review screen, used by
// `apply --interactive` to let a user accept or skip each file's plan.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayDetection prints a plain summary; the interactive surface is
// reserved for ReviewPlans, where a user actually makes decisions.
func (t *TUI) DisplayDetection(result m.DetectionResult) error {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("imp-refactor detect")
	summary := fmt.Sprintf("scanned %d file(s), %d parse error(s), %d reference(s), %d broken, %d suggested (run %s)",
		result.Diagnostics.FilesScanned, result.Diagnostics.ParseErrors, result.Diagnostics.TotalReferences,
		result.Diagnostics.BrokenCount, result.Diagnostics.Suggested, result.RunID)
	_, err := fmt.Fprintf(t.output, "%s\n%s\n", title, summary)
	return err
}

// DisplayRegistry prints the flattened registry as an indented tree.
func (t *TUI) DisplayRegistry(paths []m.DottedPath) error {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	var b strings.Builder
	for _, p := range paths {
		indent := strings.Repeat("  ", p.Len()-1)
		fmt.Fprintf(&b, "%s%s\n", indent, accent.Render(p.Leaf()))
	}
	_, err := fmt.Fprint(t.output, b.String())
	return err
}

// planItem adapts a FilePlan for display in a bubbles/list.Model.
type planItem struct {
	path     string
	diff     string
	approved bool
}

func (i planItem) FilterValue() string { return i.path }

// planDelegate renders each planItem as a single line: a checkbox
// followed by the file path, highlighted when selected.
type planDelegate struct{}

func (d planDelegate) Height() int                             { return 1 }
func (d planDelegate) Spacing() int                             { return 0 }
func (d planDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d planDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	pi, ok := item.(planItem)
	if !ok {
		return
	}

	box := "[ ]"
	if pi.approved {
		box = "[x]"
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	if index == lm.Index() {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	fmt.Fprint(w, style.Render(fmt.Sprintf("%s %s", box, pi.path)))
}

// reviewModel is the Bubble Tea model driving ReviewPlans.
type reviewModel struct {
	list     list.Model
	plans    map[string]m.FilePlan
	diffs    map[string]string
	width    int
	height   int
	showDiff bool
	quit     bool
	aborted  bool
}

func newReviewModel(plans []m.FilePlan, diffs map[string]string) reviewModel {
	items := make([]list.Item, 0, len(plans))
	byPath := make(map[string]m.FilePlan, len(plans))
	for _, p := range plans {
		items = append(items, planItem{path: p.Path, diff: diffs[p.Path], approved: true})
		byPath[p.Path] = p
	}

	delegate := planDelegate{}
	l := list.New(items, delegate, 80, 20)
	l.Title = "Review suggested edits"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)

	return reviewModel{list: l, plans: byPath, diffs: diffs}
}

func (rm reviewModel) Init() tea.Cmd { return nil }

func (rm reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.list.SetWidth(msg.Width - 4)
		rm.list.SetHeight(msg.Height - 6)
		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			rm.aborted = true
			rm.quit = true
			return rm, tea.Quit

		case "enter", "q":
			rm.quit = true
			return rm, tea.Quit

		case " ", "x":
			idx := rm.list.Index()
			items := rm.list.Items()
			if idx >= 0 && idx < len(items) {
				pi := items[idx].(planItem)
				pi.approved = !pi.approved
				rm.list.SetItem(idx, pi)
			}
			return rm, nil

		case "d":
			rm.showDiff = !rm.showDiff
			return rm, nil
		}
	}

	var cmd tea.Cmd
	rm.list, cmd = rm.list.Update(msg)
	return rm, cmd
}

func (rm reviewModel) View() string {
	var b strings.Builder
	b.WriteString(rm.list.View())

	if rm.showDiff {
		if idx := rm.list.Index(); idx >= 0 && idx < len(rm.list.Items()) {
			pi := rm.list.Items()[idx].(planItem)
			diffStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
			b.WriteString("\n")
			b.WriteString(diffStyle.Render(pi.diff))
		}
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render("space: toggle • d: diff • enter: apply selected • esc: abort")
	b.WriteString("\n" + footer)
	return b.String()
}

func (rm reviewModel) approvedPlans() []m.FilePlan {
	var out []m.FilePlan
	for _, item := range rm.list.Items() {
		pi := item.(planItem)
		if pi.approved {
			out = append(out, rm.plans[pi.path])
		}
	}
	return out
}

// ReviewPlans implements UI by running an interactive Bubble Tea program.
func (t *TUI) ReviewPlans(plans []m.FilePlan, diffs map[string]string) ([]m.FilePlan, error) {
	if len(plans) == 0 {
		return nil, nil
	}

	model := newReviewModel(plans, diffs)
	program := tea.NewProgram(model, tea.WithOutput(t.output))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review plans: %w", err)
	}

	rm, ok := final.(reviewModel)
	if !ok {
		return nil, fmt.Errorf("review plans: unexpected model type %T", final)
	}
	if rm.aborted {
		return nil, nil
	}
	return rm.approvedPlans(), nil
}
