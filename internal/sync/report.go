package sync

import "time"

// ResourceReport summarizes one resource-type branch of a platform sync.
// Error is set when the branch was abandoned; items already processed before
// the failure stay counted.
type ResourceReport struct {
	Synced  int    `json:"synced"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// PlatformReport summarizes one platform branch.
type PlatformReport struct {
	Platform      string         `json:"platform"`
	Healthy       bool           `json:"healthy"`
	Users         ResourceReport `json:"users"`
	Properties    ResourceReport `json:"properties"`
	Bookings      ResourceReport `json:"bookings"`
	Verifications ResourceReport `json:"verifications"`
	Error         string         `json:"error,omitempty"`
}

// RunReport is returned from every sync run. A run never fails as a whole;
// its effect is the union of whatever branches succeeded.
type RunReport struct {
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Platforms  []PlatformReport `json:"platforms"`
}
