package cvar

import (
	"strconv"
	"sync"
)

// ChangeFunc is invoked synchronously after a variable's value changes.
// Old and new values are rendered as text; subscribers that care about the
// numeric value should read it back from the variable instead of parsing
// the arguments, since another write may already have superseded them.
type ChangeFunc func(oldValue, newValue string)

// Var is a named integer console variable. Writes that change the value
// notify every subscriber, in registration order, in the writer's goroutine
// before the write call returns. Writes that leave the value unchanged do
// not notify. Notification runs outside the value lock, so a subscriber may
// write back to the variable; such a write-back re-enters the subscribers
// once with the new value.
type Var struct {
	name string
	help string
	def  int64

	mu    sync.Mutex
	value int64
	subs  []ChangeFunc
}

func (v *Var) Name() string   { return v.name }
func (v *Var) Help() string   { return v.help }
func (v *Var) Default() int64 { return v.def }

// Int returns the current value.
func (v *Var) Int() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Text returns the current value rendered as text.
func (v *Var) Text() string {
	return strconv.FormatInt(v.Int(), 10)
}

// Subscribe registers fn for change notifications. There is no unsubscribe:
// subscribers are bound for the life of the variable, matching the process
// lifetime of the components that register them.
func (v *Var) Subscribe(fn ChangeFunc) {
	v.mu.Lock()
	v.subs = append(v.subs, fn)
	v.mu.Unlock()
}

// SetInt writes a new value. All change subscribers run to completion before
// SetInt returns.
func (v *Var) SetInt(n int64) {
	v.mu.Lock()
	old := v.value
	if old == n {
		v.mu.Unlock()
		return
	}
	v.value = n
	subs := make([]ChangeFunc, len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	oldText := strconv.FormatInt(old, 10)
	newText := strconv.FormatInt(n, 10)
	for _, fn := range subs {
		fn(oldText, newText)
	}
}

// SetText parses s as a base-10 integer and writes it. Non-numeric input is
// rejected without touching the value or notifying anyone.
func (v *Var) SetText(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return badValueError{name: v.name, text: s}
	}
	v.SetInt(n)
	return nil
}

// Reset writes the variable's default value.
func (v *Var) Reset() { v.SetInt(v.def) }
