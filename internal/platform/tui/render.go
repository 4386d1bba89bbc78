package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/staff-wars/internal/core"
	"github.com/vovakirdan/staff-wars/internal/engine"
	"github.com/vovakirdan/staff-wars/internal/notes"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// HUD styles
var (
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	livesStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	clefStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	helpBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Staff layout
const (
	staffMarginX = 2  // Columns left and right of the staff
	dangerOffset = 12 // Columns from the staff's left edge to the danger line
	staffSteps   = 8  // Steps from the bottom line to the top line
	noteRune     = '●'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// StaffLayout holds the screen geometry of the staff for one frame.
type StaffLayout struct {
	Left    int // First staff column
	Right   int // Last staff column
	DangerX int // Deadline line column
	BaseY   int // Row of the bottom staff line
}

// NewStaffLayout centers the staff vertically on a screen of the given size.
func NewStaffLayout(w, h int) StaffLayout {
	left := staffMarginX
	right := max(left, w-1-staffMarginX)
	return StaffLayout{
		Left:    left,
		Right:   right,
		DangerX: core.Clamp(left+dangerOffset, left, right),
		BaseY:   h/2 + staffSteps/2,
	}
}

// RowFor returns the screen row of a staff step (0 is the bottom line).
func (l StaffLayout) RowFor(step int) int {
	return l.BaseY - step
}

// NoteX returns the note column for a travel progress in [0, 1].
func (l StaffLayout) NoteX(progress float64) int {
	start := l.Right - 1
	return core.Lerp(start, l.DangerX, core.ClampF(progress, 0, 1))
}

// DrawGame renders the staff, the challenge and any overlay into s.
func DrawGame(s *core.Screen, v View) {
	s.Clear()
	layout := NewStaffLayout(s.Width(), s.Height())

	drawStaff(s, layout, v.Clef)

	if ch := v.State.Active; ch != nil {
		drawChallenge(s, layout, v, ch)
	}
	drawFeedback(s, layout, v)

	switch {
	case v.GameOver:
		drawGameOver(s, v)
	case v.State.Paused:
		drawOverlay(s, core.ColorHUD, "PAUSED", "p/space to resume")
	}
}

func drawStaff(s *core.Screen, l StaffLayout, clef notes.Clef) {
	width := l.Right - l.Left + 1
	for i := 0; i <= staffSteps; i += 2 {
		s.DrawHLine(l.Left, l.RowFor(i), width, '─', core.ColorStaff)
	}
	s.DrawVLine(l.DangerX, l.RowFor(staffSteps+3), staffSteps+7, '┊', core.ColorDanger)
	s.DrawTextColor(l.Left, l.RowFor(staffSteps+2), strings.ToUpper(string(clef)), core.ColorHint)
}

// noteStep returns a label's staff step, or the middle line when the label is not a note.
func noteStep(clef notes.Clef, label string) int {
	n, err := notes.ParseNote(label)
	if err != nil {
		return staffSteps / 2
	}
	return clef.StaffStep(n)
}

func drawChallenge(s *core.Screen, l StaffLayout, v View, ch *engine.Challenge) {
	step := noteStep(v.Clef, ch.Label)
	x := l.NoteX(ch.Progress)

	// Ledger lines through or below/above the note
	for ls := -2; ls >= step; ls -= 2 {
		s.DrawHLine(x-1, l.RowFor(ls), 3, '─', core.ColorStaff)
	}
	for ls := staffSteps + 2; ls <= step; ls += 2 {
		s.DrawHLine(x-1, l.RowFor(ls), 3, '─', core.ColorStaff)
	}

	color := core.ColorNote
	switch ch.Outcome {
	case engine.OutcomeCorrect:
		color = core.ColorCorrect
	case engine.OutcomeIncorrect, engine.OutcomeExpired:
		color = core.ColorMiss
	}
	s.SetColor(x, l.RowFor(step), noteRune, color)
}

// FeedbackText describes the last resolution. Empty when there is nothing to show.
func FeedbackText(v View) (string, core.Color) {
	fb := v.Feedback
	switch fb.Outcome {
	case engine.OutcomeCorrect:
		return fmt.Sprintf("✓ %s  +%d", fb.Label, fb.Delta), core.ColorCorrect
	case engine.OutcomeIncorrect:
		if v.Reveal {
			return fmt.Sprintf("✗ not %s, it was %s (%s)", fb.Given, fb.Expected, fb.Label), core.ColorReveal
		}
		return fmt.Sprintf("✗ not %s", fb.Given), core.ColorMiss
	case engine.OutcomeExpired:
		if v.Reveal {
			return fmt.Sprintf("✗ too slow, it was %s (%s)", fb.Expected, fb.Label), core.ColorReveal
		}
		return "✗ too slow", core.ColorMiss
	}
	return "", core.ColorDefault
}

func drawFeedback(s *core.Screen, l StaffLayout, v View) {
	row := l.RowFor(-4)
	if text, color := FeedbackText(v); text != "" {
		s.DrawTextCentered(row, text, color)
	}
	if v.LevelFlash > 0 {
		s.DrawTextCentered(row+1, fmt.Sprintf("LEVEL %d", v.LevelFlash), core.ColorReveal)
	}
}

func drawGameOver(s *core.Screen, v View) {
	reveal := "off"
	if v.RevealNext {
		reveal = "on"
	}
	drawOverlay(s, core.ColorGameOver,
		"GAME OVER",
		fmt.Sprintf("Score %d", v.FinalScore),
		"",
		"r play again",
		"v reveal answers: "+reveal,
		"q quit",
	)
}

// drawOverlay draws a centered box with one line of text per row.
func drawOverlay(s *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	box := core.NewRect(0, 0, width+6, len(lines)+2)
	cx, cy := s.Bounds().Center()
	box.X = cx - box.W/2
	box.Y = cy - box.H/2

	inner := box.Inset(1)
	for y := inner.Y; y < inner.Bottom(); y++ {
		s.DrawHLine(inner.X, y, inner.W, ' ', core.ColorDefault)
	}
	s.DrawBox(box, color)
	for i, line := range lines {
		s.DrawTextCentered(box.Y+1+i, line, color)
	}
}

// RenderHUD renders the status bar above the staff.
func RenderHUD(v View, width int) string {
	st := v.State
	item := func(label string, value any) string {
		return hudLabelStyle.Render(label+" ") + hudValueStyle.Render(fmt.Sprint(value))
	}

	hearts := strings.Repeat("♥", max(0, st.Lives))
	if v.MaxLives > st.Lives {
		hearts += strings.Repeat("♡", v.MaxLives-st.Lives)
	}

	left := strings.Join([]string{
		item("Score", st.Score),
		livesStyle.Render(hearts),
		item("Level", st.Level),
		item("Speed", fmt.Sprintf("%.0f", st.Speed)),
	}, "   ")
	right := clefStyle.Render(string(v.Clef))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelpBar renders the key help below the staff.
func renderHelpBar(help string) string {
	return helpBarStyle.Render(help)
}
