package model

// ImageState is the load state of one card's image
type ImageState string

const (
	// ImageStatePending means the fetch has been requested but not settled
	ImageStatePending ImageState = "Pending"

	// ImageStateLoaded means the image was fetched and decoded
	ImageStateLoaded ImageState = "Loaded"

	// ImageStateFailed means the fetch or decode failed
	ImageStateFailed ImageState = "Failed"
)

// String returns the string representation of ImageState
func (s ImageState) String() string {
	return string(s)
}

// IsTerminal returns true once the state can no longer change
func (s ImageState) IsTerminal() bool {
	return s == ImageStateLoaded || s == ImageStateFailed
}

// CanTransitionTo allows only Pending -> Loaded and Pending -> Failed.
func (s ImageState) CanTransitionTo(next ImageState) bool {
	return s == ImageStatePending && next.IsTerminal()
}
