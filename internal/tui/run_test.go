package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

type runResult struct {
	res *sim.Result
	err error
}

func startRun(t *testing.T, s tcell.SimulationScreen, opts Options) <-chan runResult {
	t.Helper()
	cfg := config.DefaultConfig()
	canvas := NewScreen(s, viz.ThemeClassic, cfg.Base)
	gen, err := sim.New(canvas, sim.Config{Params: cfg.Params(), Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan runResult, 1)
	go func() {
		res, err := Run(context.Background(), s, canvas, gen, opts)
		done <- runResult{res, err}
	}()
	return done
}

// pressUntilDone keeps injecting the key until Run returns.
func pressUntilDone(t *testing.T, s tcell.SimulationScreen, key tcell.Key, r rune, done <-chan runResult) runResult {
	t.Helper()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case rr := <-done:
			return rr
		case <-tick.C:
			s.InjectKey(key, r, tcell.ModNone)
		case <-timeout:
			t.Fatal("run did not return")
		}
	}
}

func TestRunSingleTreeWaitsForKey(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	done := startRun(t, s, Options{})

	rr := pressUntilDone(t, s, tcell.KeyRune, 'x', done)
	if rr.err != nil {
		t.Fatalf("run: %v", rr.err)
	}
	if rr.res == nil || rr.res.Generation != 1 {
		t.Fatalf("expected one generation, got %+v", rr.res)
	}
	if rowText(s, 20, 80) == "" {
		t.Error("base not drawn")
	}
}

func TestRunInfiniteQuitsOnQ(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	done := startRun(t, s, Options{Infinite: true, Wait: time.Hour})

	rr := pressUntilDone(t, s, tcell.KeyRune, 'q', done)
	if rr.err != nil {
		t.Fatalf("run: %v", rr.err)
	}
	if rr.res == nil {
		t.Fatal("expected a finished tree")
	}
}

func TestRunScreensaverQuitsOnAnyKey(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	done := startRun(t, s, Options{Infinite: true, Screensaver: true, Wait: time.Hour})

	rr := pressUntilDone(t, s, tcell.KeyRune, 'z', done)
	if rr.err != nil {
		t.Fatalf("run: %v", rr.err)
	}
}

func TestQuits(t *testing.T) {
	tests := []struct {
		key    tcell.Key
		r      rune
		anyKey bool
		want   bool
	}{
		{tcell.KeyRune, 'q', false, true},
		{tcell.KeyRune, 'a', false, false},
		{tcell.KeyEscape, 0, false, true},
		{tcell.KeyCtrlC, 0, false, true},
		{tcell.KeyRune, 'a', true, true},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
		if got := quits(ev, tt.anyKey); got != tt.want {
			t.Errorf("quits(%v, %q, %v) = %v, want %v", tt.key, tt.r, tt.anyKey, got, tt.want)
		}
	}
}
