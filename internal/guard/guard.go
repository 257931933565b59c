// Package guard enforces floor invariants on runtime-tunable console
// variables. Its one rule today: host_timescale must never drop below 1,
// which destabilizes the host process.
package guard

import (
	"github.com/rs/zerolog"

	"cvard/internal/cvar"
)

const (
	// VarName is the managed variable this guard binds to.
	VarName = "host_timescale"
	// Floor is the lowest value the variable may hold.
	Floor = 1
	// WarningRepeatCount is how many times the crash warning is broadcast
	// per violation. The repetition is deliberate: a single line is easy to
	// miss in busy chat.
	WarningRepeatCount = 4
)

const warningText = "Setting host_timescale below 1 will crash the server. Value has been reset to 1."

// Broadcaster delivers a text message to all currently connected users.
type Broadcaster interface {
	Broadcast(msg string)
}

// Guard watches host_timescale and corrects any write that takes it below
// Floor, within the same synchronous change-notification cycle as the
// offending write.
type Guard struct {
	v   *cvar.Var
	bc  Broadcaster
	log zerolog.Logger
}

// Attach binds the guard to its variable in reg and subscribes it to change
// notifications. The variable must already be registered; a missing
// registration is a fatal misconfiguration, not something to limp past.
func Attach(reg *cvar.Registry, bc Broadcaster, log zerolog.Logger) (*Guard, error) {
	v, ok := reg.Lookup(VarName)
	if !ok {
		return nil, notBoundError{name: VarName}
	}
	g := &Guard{v: v, bc: bc, log: log}
	v.Subscribe(g.onChanged)
	return g, nil
}

// onChanged runs synchronously inside every write to the variable. It reads
// the current value rather than trusting the event text, since a later write
// may already have superseded the one that triggered this call. The
// corrective write re-enters onChanged exactly once; that pass reads Floor
// and returns on the first branch, so the fix-up terminates in one cycle.
func (g *Guard) onChanged(oldValue, newValue string) {
	cur := g.v.Int()
	if cur >= Floor {
		return
	}
	g.v.SetInt(Floor)
	correctionsTotal.Inc()
	g.log.Warn().
		Int64("value", cur).
		Str("old", oldValue).
		Str("new", newValue).
		Msgf("%s below %d, corrected", VarName, Floor)
	for i := 0; i < WarningRepeatCount; i++ {
		g.bc.Broadcast(warningText)
		warningsTotal.Inc()
	}
}

// OnRoundEnd resets the variable to Floor at the end of each round. The
// reset is unconditional: it also covers values planted through paths that
// bypass the change channel, e.g. a write that landed before the guard
// attached.
func (g *Guard) OnRoundEnd() {
	g.v.SetInt(Floor)
	roundResetsTotal.Inc()
	g.log.Debug().Msgf("%s reset to %d at round end", VarName, Floor)
}
