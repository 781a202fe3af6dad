package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
)

const (
	dateLayout   = "02/01/2006 15:04:05"
	shortIDLen   = 8
	meterWidth   = 20
	meterFilled  = "█"
	meterPending = "░"
)

var levelColors = map[services.StrengthLevel]lipgloss.Color{
	services.StrengthWeak:       lipgloss.Color("#e74c3c"),
	services.StrengthMedium:     lipgloss.Color("#f1c40f"),
	services.StrengthStrong:     lipgloss.Color("#2ecc71"),
	services.StrengthVeryStrong: lipgloss.Color("#3498db"),
}

// theme holds the styles bound to one output. The renderer picks the colour
// profile from w, so plain buffers get unstyled text.
type theme struct {
	r      *lipgloss.Renderer
	header lipgloss.Style
	faint  lipgloss.Style
	done   lipgloss.Style
	active lipgloss.Style
	errMsg lipgloss.Style
	okMsg  lipgloss.Style
}

func newTheme(w io.Writer) *theme {
	r := lipgloss.NewRenderer(w)
	return &theme{
		r:      r,
		header: r.NewStyle().Bold(true),
		faint:  r.NewStyle().Faint(true),
		done:   r.NewStyle().Strikethrough(true).Faint(true),
		active: r.NewStyle().Bold(true).Underline(true),
		errMsg: r.NewStyle().Foreground(levelColors[services.StrengthWeak]),
		okMsg:  r.NewStyle().Foreground(levelColors[services.StrengthStrong]),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Invalid date"
	}
	return t.Local().Format(dateLayout)
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// strengthMeter renders the bar and label shown while choosing a password.
func (th *theme) strengthMeter(password string) string {
	score := services.PasswordStrength(password)
	level := services.Strength(score)
	style := th.r.NewStyle().Foreground(levelColors[level])

	filled := score * meterWidth / 100
	bar := strings.Repeat(meterFilled, filled) + strings.Repeat(meterPending, meterWidth-filled)
	return fmt.Sprintf("%s %s (%d/100)", style.Render(bar), style.Render(level.String()), score)
}

func (th *theme) task(t models.Task) string {
	mark, text := "[ ]", t.Text
	if t.Completed {
		mark, text = "[x]", th.done.Render(t.Text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n", mark, th.faint.Render(shortID(t.ID)), text)

	meta := "Created: " + formatDate(t.CreatedAt)
	if t.Completed && t.CompletedAt != nil {
		meta += "  Completed: " + formatDate(*t.CompletedAt)
	}
	b.WriteString("    " + th.faint.Render(meta))
	return b.String()
}

func (th *theme) filterBar(current models.Filter) string {
	parts := make([]string, 0, 3)
	for _, f := range []models.Filter{models.FilterAll, models.FilterActive, models.FilterCompleted} {
		if f == current {
			parts = append(parts, th.active.Render("["+string(f)+"]"))
		} else {
			parts = append(parts, string(f))
		}
	}
	return "Filter: " + strings.Join(parts, " ")
}

// taskList renders the whole screen: filter bar, visible rows, counter.
func (th *theme) taskList(visible []models.Task, f models.Filter, summary string) string {
	var b strings.Builder
	b.WriteString(th.filterBar(f) + "\n")
	if len(visible) == 0 {
		b.WriteString(th.faint.Render("  No tasks here.") + "\n")
	}
	for _, t := range visible {
		b.WriteString(th.task(t) + "\n")
	}
	b.WriteString(th.header.Render(summary))
	return b.String()
}

var fieldOrder = []string{
	models.FieldFullname,
	models.FieldEmail,
	models.FieldPassword,
	models.FieldConfirmPassword,
}

var fieldLabels = map[string]string{
	models.FieldFullname:        "Full name",
	models.FieldEmail:           "Email",
	models.FieldPassword:        "Password",
	models.FieldConfirmPassword: "Confirm password",
}

// fieldErrors lists the messages of ve one per line in form order.
func (th *theme) fieldErrors(ve *models.ValidationError) string {
	lines := make([]string, 0, len(ve.Fields))
	for _, f := range fieldOrder {
		if msg, ok := ve.Fields[f]; ok {
			lines = append(lines, fmt.Sprintf("  %s: %s", fieldLabels[f], th.errMsg.Render(msg)))
		}
	}
	return strings.Join(lines, "\n")
}
