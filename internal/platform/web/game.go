package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/session"
)

// game is one remote session. The controller is not safe for concurrent
// use, so every access holds mu.
type game struct {
	id       string
	seed     int64
	mu       sync.Mutex
	ctrl     *session.Controller
	saved    bool
	lastTick time.Time
	lastSeen time.Time
	nextDog  time.Time
	onFinish func(g *game, s session.Summary)
}

func newGame(id string, seed int64, ctrl *session.Controller, level int, now time.Time) *game {
	g := &game{id: id, seed: seed, ctrl: ctrl, lastSeen: now}
	g.start(level, now)
	return g
}

func (g *game) start(level int, now time.Time) {
	g.ctrl.Start(level)
	g.saved = false
	g.lastTick = now
	g.nextDog = now.Add(g.ctrl.WatchdogInterval())
}

// reply returns the current snapshot.
func (g *game) reply() Reply {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Reply{Game: g.id, Snapshot: g.ctrl.Snapshot()}
}

// touch marks the game as used at now.
func (g *game) touch(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeen = now
}

// idleSince returns when a client last used the game.
func (g *game) idleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSeen
}

// apply runs one command.
func (g *game) apply(cmd Command, now time.Time) Reply {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeen = now

	r := Reply{Game: g.id}
	switch cmd.Type {
	case CmdTap:
		res := g.ctrl.Tap(engine.At(cmd.Col, cmd.Row))
		r.Result = &res
	case CmdShuffle:
		if !g.ctrl.Shuffle() {
			r.Error = "no shuffle available"
		}
	case CmdHint:
		if m, ok := g.ctrl.Hint(); ok {
			r.Hint = &m
		}
	case CmdRestart:
		g.start(g.ctrl.Level().Number, now)
	case CmdStart:
		level := cmd.Level
		if level < 1 {
			level = 1
		}
		g.start(level, now)
	case CmdNext:
		if !g.ctrl.GameOver() || !g.ctrl.Summary().Passed {
			r.Error = "level not passed"
			break
		}
		g.start(g.ctrl.Level().Number+1, now)
	default:
		r.Error = fmt.Sprintf("unknown command %q", cmd.Type)
	}

	g.checkFinished()
	r.Snapshot = g.ctrl.Snapshot()
	return r
}

// advance moves the level clock to now and runs the watchdog when due. It
// reports whether clients should get a fresh snapshot.
func (g *game) advance(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastSeen = now
	before := g.ctrl.Snapshot()
	if dt := now.Sub(g.lastTick); dt > 0 {
		g.ctrl.Tick(dt)
	}
	g.lastTick = now

	repaired := false
	if !now.Before(g.nextDog) {
		repaired = g.ctrl.WatchdogCheck(now)
		g.nextDog = now.Add(g.ctrl.WatchdogInterval())
	}

	g.checkFinished()
	after := g.ctrl.Snapshot()
	return repaired ||
		before.State != after.State ||
		before.TimeLeft/time.Second != after.TimeLeft/time.Second
}

// checkFinished reports a finished level once. Callers hold mu.
func (g *game) checkFinished() {
	if g.saved || !g.ctrl.GameOver() {
		return
	}
	g.saved = true
	if g.onFinish != nil {
		g.onFinish(g, g.ctrl.Summary())
	}
}
