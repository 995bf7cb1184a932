package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// decisionGate solicits actions from strategies under a wall-clock deadline.
// A late, failed, or illegal response is replaced with the engine's fallback;
// the in-flight call is abandoned, not cancelled, and its eventual result is
// discarded via the buffered channel.
type decisionGate struct {
	clock     quartz.Clock
	timeLimit time.Duration
	logger    *log.Logger
}

type decisionOutcome struct {
	action Action
	err    error
}

// request returns a legal action for the seat at idx, substituting the
// fallback when the strategy times out, errors, panics, or answers
// illegally.
func (g *decisionGate) request(e *Engine, idx int) Action {
	agent := e.agents[idx]
	view := e.state.ViewFor(idx)

	outcomes := make(chan decisionOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				outcomes <- decisionOutcome{err: fmt.Errorf("strategy panic: %v", r)}
			}
		}()
		action, err := agent.Decide(view)
		outcomes <- decisionOutcome{action: action, err: err}
	}()

	timedOut := make(chan struct{})
	timer := g.clock.AfterFunc(g.timeLimit, func() {
		close(timedOut)
	})
	defer timer.Stop()

	var reason string
	select {
	case out := <-outcomes:
		switch {
		case out.err != nil:
			reason = out.err.Error()
		case !e.IsActionLegal(out.action):
			reason = fmt.Sprintf("illegal action %s", out.action)
		default:
			return out.action
		}
	case <-timedOut:
		reason = fmt.Sprintf("no decision within %s", g.timeLimit)
	}

	fallback := e.fallbackAction()
	g.logger.Warn("Forcing fallback action",
		"player", agent.Name(), "reason", reason, "fallback", fallback.String())
	e.eventBus.Publish(NewDecisionTimeoutEvent(agent.Name(), reason, fallback))
	return fallback
}

// notifyFinished delivers the end-of-game hook to every strategy under a
// doubled deadline. Strategy failures are swallowed; late hooks are abandoned.
func (g *decisionGate) notifyFinished(agents []Agent, winner string, resolutions []RoundResolution) {
	for _, agent := range agents {
		done := make(chan struct{}, 1)
		go func(a Agent) {
			defer func() {
				if r := recover(); r != nil {
					g.logger.Warn("Strategy game-finished hook panicked", "player", a.Name(), "panic", r)
				}
				done <- struct{}{}
			}()
			a.GameFinished(winner, resolutions)
		}(agent)

		timedOut := make(chan struct{})
		timer := g.clock.AfterFunc(g.timeLimit*2, func() {
			close(timedOut)
		})
		select {
		case <-done:
		case <-timedOut:
			g.logger.Warn("Strategy game-finished hook timed out", "player", agent.Name())
		}
		timer.Stop()
	}
}
