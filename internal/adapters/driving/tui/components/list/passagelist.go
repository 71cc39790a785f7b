// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// Passage is one displayable row: a ranked hit or a cited source.
type Passage struct {
	// Label identifies the passage (source ID or rank).
	Label string

	// Text is the passage content.
	Text string

	// Score is the formatted relevance or distance figure.
	Score string
}

// PassageList displays query passages in a navigable list.
type PassageList struct {
	passages []Passage
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewPassageList creates a new passage list component.
func NewPassageList(s *styles.Styles) *PassageList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &PassageList{
		passages: nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the passage list.
func (p *PassageList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (p *PassageList) Update(msg tea.Msg) (*PassageList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			p.MoveUp()
		case tea.KeyDown:
			p.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			p.MoveUp()
		case "j":
			p.MoveDown()
		}
	}
	return p, nil
}

// View renders the passage list.
func (p *PassageList) View() string {
	if len(p.passages) == 0 {
		return p.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(p.passages)*2+2)

	header := p.styles.Subtitle.Render(fmt.Sprintf("Passages (%d)", len(p.passages)))
	lines = append(lines, header, "")

	// Each passage takes two lines, so halve the height for the window
	visibleCount := (p.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if p.selected >= visibleCount {
		start = p.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(p.passages) {
		end = len(p.passages)
	}

	for i := start; i < end; i++ {
		lines = append(lines, p.renderPassage(i, &p.passages[i]))
	}

	return strings.Join(lines, "\n")
}

// renderPassage formats a single passage with preview text.
func (p *PassageList) renderPassage(index int, passage *Passage) string {
	indicator := "  "
	if index == p.selected {
		indicator = "> "
	}

	label := passage.Label
	if label == "" {
		label = fmt.Sprintf("[%d]", index+1)
	}

	maxLabelLen := p.width - 20
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen-3] + "..."
	}

	var labelLine string
	if index == p.selected {
		labelLine = p.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLabelLen, label, passage.Score))
	} else {
		labelLine = p.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxLabelLen, label)) +
			p.styles.Muted.Render(passage.Score)
	}

	preview := strings.ReplaceAll(passage.Text, "\n", " ")
	maxPreviewLen := p.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	if len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen-3] + "..."
	}

	previewLine := p.styles.Muted.Render("    " + preview)

	return labelLine + "\n" + previewLine
}

// SetResult rebuilds the rows from a normalized query result: ranked
// hits for the vector variant, cited sources for the LLM variant.
func (p *PassageList) SetResult(result *domain.QueryResult) {
	p.selected = 0
	p.passages = nil
	if result == nil {
		return
	}

	switch result.Kind {
	case domain.KindLLM:
		p.passages = make([]Passage, 0, len(result.Sources))
		for i := range result.Sources {
			src := &result.Sources[i]
			p.passages = append(p.passages, Passage{
				Label: src.ID,
				Text:  src.Text,
				Score: fmt.Sprintf("%.2f", src.Score),
			})
		}
	default:
		p.passages = make([]Passage, 0, len(result.Hits))
		for i := range result.Hits {
			hit := &result.Hits[i]
			label := fmt.Sprintf("[%d]", i+1)
			if src, ok := hit.Metadata["source"].(string); ok && src != "" {
				label = src
			}
			p.passages = append(p.passages, Passage{
				Label: label,
				Text:  hit.Text,
				Score: fmt.Sprintf("d=%.4f", hit.Distance),
			})
		}
	}
}

// Clear drops all rows.
func (p *PassageList) Clear() {
	p.passages = nil
	p.selected = 0
}

// Passages returns the current rows.
func (p *PassageList) Passages() []Passage {
	return p.passages
}

// Selected returns the index of the selected passage.
func (p *PassageList) Selected() int {
	return p.selected
}

// SetSelected sets the selected index.
func (p *PassageList) SetSelected(index int) {
	if index >= 0 && index < len(p.passages) {
		p.selected = index
	}
}

// SelectedPassage returns the currently selected passage, or nil if none.
func (p *PassageList) SelectedPassage() *Passage {
	if len(p.passages) == 0 || p.selected < 0 || p.selected >= len(p.passages) {
		return nil
	}
	return &p.passages[p.selected]
}

// MoveUp moves selection up.
func (p *PassageList) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves selection down.
func (p *PassageList) MoveDown() {
	if p.selected < len(p.passages)-1 {
		p.selected++
	}
}

// SetDimensions sets the component dimensions.
func (p *PassageList) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the current width.
func (p *PassageList) Width() int {
	return p.width
}

// Height returns the current height.
func (p *PassageList) Height() int {
	return p.height
}

// Count returns the number of passages.
func (p *PassageList) Count() int {
	return len(p.passages)
}

// IsEmpty returns whether the list is empty.
func (p *PassageList) IsEmpty() bool {
	return len(p.passages) == 0
}
