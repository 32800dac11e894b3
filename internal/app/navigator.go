package app

import (
	"fmt"
	"sync"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// identityReader is the part of Session the navigator needs
type identityReader interface {
	Identity() (Identity, bool)
}

// Navigator selects which one of the three views is active
type Navigator struct {
	mu      sync.RWMutex
	current model.View
	layout  model.Layout

	session   identityReader
	onRefresh func()
}

// NewNavigator creates a navigator showing the landing view.
// onDashboard runs every time the dashboard is entered through
// RequestDashboard; it may be nil.
func NewNavigator(session identityReader, onDashboard func()) *Navigator {
	return &Navigator{
		current:   model.ViewLanding,
		layout:    model.LayoutFor(model.ViewLanding),
		session:   session,
		onRefresh: onDashboard,
	}
}

// NavigateTo activates view and deactivates every other one
func (n *Navigator) NavigateTo(view model.View) error {
	if !view.Valid() {
		return fmt.Errorf("unknown view %d", int(view))
	}
	n.mu.Lock()
	n.current = view
	n.layout = model.LayoutFor(view)
	n.mu.Unlock()
	return nil
}

// RequestLogin shows the login view, or the dashboard when already logged in
func (n *Navigator) RequestLogin() model.View {
	if _, ok := n.session.Identity(); ok {
		return n.RequestDashboard()
	}
	_ = n.NavigateTo(model.ViewLogin)
	return model.ViewLogin
}

// RequestDashboard shows the dashboard and refreshes the task list, or
// falls back to the login view when there is no session.
func (n *Navigator) RequestDashboard() model.View {
	if _, ok := n.session.Identity(); !ok {
		_ = n.NavigateTo(model.ViewLogin)
		return model.ViewLogin
	}
	_ = n.NavigateTo(model.ViewDashboard)
	if n.onRefresh != nil {
		n.onRefresh()
	}
	return model.ViewDashboard
}

// Current returns the active view
func (n *Navigator) Current() model.View {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Layout returns the layout of the active view
func (n *Navigator) Layout() model.Layout {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.layout
}

// Active reports whether view is the active one
func (n *Navigator) Active(view model.View) bool {
	return n.Current() == view
}
