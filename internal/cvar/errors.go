package cvar

// duplicateVarError signals a second registration under an existing name.
type duplicateVarError struct{ name string }

func (e duplicateVarError) Error() string { return "cvar already registered: " + e.name }

// IsDuplicateVar reports whether err indicates a duplicate registration.
func IsDuplicateVar(err error) bool {
	_, ok := err.(duplicateVarError)
	return ok
}

// badValueError signals text that does not parse as an integer value.
type badValueError struct {
	name string
	text string
}

func (e badValueError) Error() string { return "cvar " + e.name + ": not an integer: " + e.text }

// IsBadValue reports whether err indicates a non-numeric write.
func IsBadValue(err error) bool {
	_, ok := err.(badValueError)
	return ok
}
