// Package app is the interactive terminal front end: it runs a
// generation in the background and paints its progress.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/indiecore/bwproxy/pkg/app/components"
	"github.com/indiecore/bwproxy/pkg/app/styles"
	"github.com/indiecore/bwproxy/pkg/services"
)

type progressMsg services.Progress

type resultMsg struct {
	summary *services.Summary
	err     error
}

// Generation drives one pipeline run under a bubbletea program.
type Generation struct {
	run      func() (*services.Summary, error)
	progress <-chan services.Progress
	tracker  *components.PhaseTracker

	summary *services.Summary
	err     error
	done    bool
}

// NewGeneration wraps a pipeline run and its progress channel.
func NewGeneration(run func() (*services.Summary, error), progress <-chan services.Progress) *Generation {
	return &Generation{
		run:      run,
		progress: progress,
		tracker:  components.NewPhaseTracker(60),
	}
}

// Run executes the generation with a live progress display and returns
// the pipeline outcome.
func (g *Generation) Run() (*services.Summary, error) {
	p := tea.NewProgram(g)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(*Generation)
	return m.summary, m.err
}

func (g *Generation) Init() tea.Cmd {
	return tea.Batch(g.start(), g.wait())
}

func (g *Generation) start() tea.Cmd {
	return func() tea.Msg {
		summary, err := g.run()
		return resultMsg{summary: summary, err: err}
	}
}

func (g *Generation) wait() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-g.progress
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

func (g *Generation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		g.tracker.Update(services.Progress(msg))
		return g, g.wait()
	case resultMsg:
		g.summary = msg.summary
		g.err = msg.err
		g.done = true
		return g, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			g.err = fmt.Errorf("interrupted")
			return g, tea.Quit
		}
	}
	return g, nil
}

func (g *Generation) View() string {
	s := styles.TitleStyle.Render("bwproxy") + "\n"
	s += g.tracker.View()
	if g.done {
		if g.err != nil {
			s += styles.PhaseError.Render(g.err.Error()) + "\n"
		}
		return s
	}
	s += styles.HelpStyle.Render("press q to abort") + "\n"
	return s
}
