package tui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/bonsai/internal/sim"
)

type Options struct {
	Message     string
	Infinite    bool
	Screensaver bool
	Wait        time.Duration
}

// Run grows trees on an initialized tcell screen until the user quits.
// A single tree stays on screen until any key is pressed. In infinite mode
// a new tree starts every Wait; q, Esc or Ctrl+C quit, and in screensaver
// mode any key does. Quitting lets the tree in progress finish without
// pausing. Run returns the last tree grown.
func Run(ctx context.Context, screen tcell.Screen, canvas *Screen, gen *sim.Generator, opts Options) (*sim.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var finished atomic.Bool
	keys := make(chan *tcell.EventKey, 8)
	go pollKeys(screen, keys)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case ev := <-keys:
				if finished.Load() || quits(ev, opts.Screensaver) {
					gen.Hurry()
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	var last *sim.Result
	canvas.Scene(opts.Message)
	err := gen.Run(ctx, func(res *sim.Result) bool {
		last = res
		if !opts.Infinite {
			return false
		}
		select {
		case <-time.After(opts.Wait):
		case <-ctx.Done():
			return false
		}
		canvas.Scene(opts.Message)
		return true
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		cancel()
		wg.Wait()
		return last, err
	}

	if !opts.Infinite {
		finished.Store(true)
		<-ctx.Done()
	}
	cancel()
	wg.Wait()
	return last, nil
}

func pollKeys(screen tcell.Screen, keys chan<- *tcell.EventKey) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			select {
			case keys <- ev:
			default:
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func quits(ev *tcell.EventKey, anyKey bool) bool {
	if anyKey {
		return true
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
