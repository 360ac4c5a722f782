package components

import (
	"fmt"
	"strings"

	"github.com/indiecore/bwproxy/pkg/app/styles"
	"github.com/indiecore/bwproxy/pkg/services"
)

// PhaseTracker keeps the latest progress update per pipeline phase and
// renders them as a running log with a bar for the rendering phase.
type PhaseTracker struct {
	order  []string
	latest map[string]services.Progress
	width  int
}

func NewPhaseTracker(width int) *PhaseTracker {
	return &PhaseTracker{
		latest: make(map[string]services.Progress),
		width:  width,
	}
}

func (t *PhaseTracker) Update(p services.Progress) {
	if _, seen := t.latest[p.Phase]; !seen {
		t.order = append(t.order, p.Phase)
	}
	t.latest[p.Phase] = p
}

func (t *PhaseTracker) Clear() {
	t.order = nil
	t.latest = make(map[string]services.Progress)
}

func (t *PhaseTracker) View() string {
	if len(t.order) == 0 {
		return styles.MutedStyle.Render("waiting...")
	}

	var b strings.Builder
	for _, phase := range t.order {
		p := t.latest[phase]

		label := phase
		if p.Name != "" {
			label = fmt.Sprintf("%s %s", phase, p.Name)
		}
		if p.Total > 0 && p.Current > 0 {
			label = fmt.Sprintf("%s (%d/%d)", label, p.Current, p.Total)
		}
		b.WriteString(styles.PhaseStyle(phase).Render(label))
		b.WriteString("\n")

		if p.Total > 0 && p.Current > 0 {
			b.WriteString(renderProgressBar(p.Current, p.Total, t.width-4))
			b.WriteString("\n")
		}
		if p.Error != nil {
			b.WriteString(styles.PhaseError.Render(fmt.Sprintf("Error: %s", p.Error)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}
