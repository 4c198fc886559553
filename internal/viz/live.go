package viz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bonsai/internal/sim"
)

const (
	frameRate       = time.Second / 30
	historyCapacity = 120
)

type (
	tickMsg   time.Time
	resultMsg *sim.Result
	doneMsg   struct{ err error }
)

type LiveOptions struct {
	Base     string
	Message  string
	Infinite bool
	Wait     time.Duration
	Theme    Theme
}

// liveRun is shared between the model copies and the generator goroutine.
type liveRun struct {
	mu      sync.Mutex
	last    *sim.Result
	err     error
	results chan *sim.Result
	skip    chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc
}

// LiveModel shows trees growing in a Grid while a Generator fills it from
// a background goroutine.
type LiveModel struct {
	gen     *sim.Generator
	grid    *Grid
	opts    LiveOptions
	theme   Theme
	run     *liveRun
	history []float64
	last    *sim.Result
	stats   bool
	err     error
}

func NewLive(gen *sim.Generator, grid *Grid, opts LiveOptions) *LiveModel {
	if opts.Theme.Name == "" {
		opts.Theme = CurrentTheme
	}
	return &LiveModel{
		gen:   gen,
		grid:  grid,
		opts:  opts,
		theme: opts.Theme,
		stats: true,
		run: &liveRun{
			results: make(chan *sim.Result),
			skip:    make(chan struct{}, 1),
			done:    make(chan struct{}),
		},
	}
}

func (m *LiveModel) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.run.cancel = cancel
	go m.grow(ctx)
	return tea.Batch(tick(), m.waitResult())
}

func (m *LiveModel) grow(ctx context.Context) {
	r := m.run
	defer close(r.done)
	err := m.gen.Run(ctx, func(res *sim.Result) bool {
		r.mu.Lock()
		r.last = res
		r.mu.Unlock()
		select {
		case r.results <- res:
		case <-ctx.Done():
			return false
		}
		if !m.opts.Infinite {
			return false
		}
		select {
		case <-time.After(m.opts.Wait):
		case <-r.skip:
		case <-ctx.Done():
			return false
		}
		ClearTree(m.grid, m.opts.Base)
		return true
	})
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func (m *LiveModel) waitResult() tea.Cmd {
	r := m.run
	return func() tea.Msg {
		select {
		case res := <-r.results:
			return resultMsg(res)
		case <-r.done:
			r.mu.Lock()
			defer r.mu.Unlock()
			return doneMsg{err: r.err}
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		case "n":
			m.gen.Hurry()
			select {
			case m.run.skip <- struct{}{}:
			default:
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "s":
			m.stats = !m.stats
		}
	case resultMsg:
		m.last = msg
		m.history = append(m.history, float64(msg.Counters.Branches))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		return m, m.waitResult()
	case doneMsg:
		m.err = msg.err
		if !m.opts.Infinite {
			// leave the finished tree on screen until a key is pressed
			return m, nil
		}
		return m, tea.Quit
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

// stop hurries the tree in progress and keeps new ones from starting.
func (m *LiveModel) stop() {
	m.gen.Hurry()
	if m.run.cancel != nil {
		m.run.cancel()
	}
}

// Wait blocks until the generator goroutine has returned and reports the
// last finished tree.
func (m *LiveModel) Wait() (*sim.Result, error) {
	<-m.run.done
	m.run.mu.Lock()
	defer m.run.mu.Unlock()
	if m.run.err != nil && !errors.Is(m.run.err, context.Canceled) {
		return m.run.last, m.run.err
	}
	return m.run.last, nil
}

func (m *LiveModel) View() string {
	tree := Compose(m.grid, m.opts.Message, m.theme)
	if !m.stats {
		return tree
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tree, statsStyle.Render(m.statsView()))
}

func (m *LiveModel) statsView() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("BONSAI") + "\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Seed", fmt.Sprintf("%d", m.gen.Seed()))
	row("Theme", m.theme.Name)
	if m.last != nil {
		row("Generation", fmt.Sprintf("%d", m.last.Generation))
		row("Branches", fmt.Sprintf("%d", m.last.Counters.Branches))
		row("Shoots", fmt.Sprintf("%d", m.last.Counters.Shoots))
		names := make([]string, 0, len(m.last.Metrics))
		for k := range m.last.Metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			row(strings.ToUpper(k[:1])+k[1:], fmt.Sprintf("%.0f", m.last.Metrics[k]))
		}
	} else {
		row("Generation", "growing")
	}
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Branches"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil && !errors.Is(m.err, context.Canceled) {
		row("Error", m.err.Error())
	}
	s.WriteString(helpStyle.Render("Q:Quit N:Next T:Theme S:Stats"))
	return s.String()
}
