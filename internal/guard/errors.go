package guard

// notBoundError signals that the managed variable was not registered before
// the guard attached.
type notBoundError struct{ name string }

func (e notBoundError) Error() string { return "guard: cvar not registered: " + e.name }

// IsNotBound reports whether err indicates a failed variable binding.
func IsNotBound(err error) bool {
	_, ok := err.(notBoundError)
	return ok
}
