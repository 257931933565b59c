package types

// CvarInfo describes one registered console variable.
type CvarInfo struct {
	// Variable name, e.g. host_timescale.
	Name string `json:"name"`
	// Current integer value.
	Value int64 `json:"value"`
	// Value restored by a reset.
	Default int64 `json:"default"`
	// Short human-readable description.
	Help string `json:"help,omitempty"`
}

// CvarsResponse wraps the list returned by GET /cvars.
type CvarsResponse struct {
	Cvars []CvarInfo `json:"cvars"`
}

// SetCvarRequest is the body of PUT /cvars/{name}.
type SetCvarRequest struct {
	// Requested value. The response carries the effective value, which may
	// differ if a guard corrected the write.
	Value int64 `json:"value"`
}

// RoundEndResponse reports the state left by a round-boundary reset.
type RoundEndResponse struct {
	Cvar  string `json:"cvar"`
	Value int64  `json:"value"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	Error string `json:"error"`
	// HTTP status code.
	Code int `json:"code"`
}
