package app

import "sync"

// GeneratingLabel is shown on the submit control while a request is in flight
const GeneratingLabel = "Generating... Please wait"

// Control is the UI element that triggers a generation
type Control interface {
	// Disable greys the control out and swaps its label
	Disable(label string)
	// Restore re-enables the control with the label it had before Disable
	Restore()
}

// Button is a Control safe to share between the UI goroutine and a
// request goroutine.
type Button struct {
	mu       sync.RWMutex
	label    string
	original string
	disabled bool
}

// NewButton creates an enabled button
func NewButton(label string) *Button {
	return &Button{label: label, original: label}
}

func (b *Button) Disable(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.disabled {
		b.original = b.label
	}
	b.disabled = true
	b.label = label
}

func (b *Button) Restore() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = false
	b.label = b.original
}

// Disabled reports whether the button is currently disabled
func (b *Button) Disabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.disabled
}

// Label returns the current label
func (b *Button) Label() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.label
}

type noopControl struct{}

func (noopControl) Disable(string) {}
func (noopControl) Restore()       {}
