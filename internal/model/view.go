package model

// View is one of the mutually exclusive top-level screens
type View int

const (
	ViewLanding   View = iota // Welcome screen
	ViewLogin                 // Credential entry
	ViewDashboard             // Task list and detail
)

// Views lists every valid view in display order
func Views() []View {
	return []View{ViewLanding, ViewLogin, ViewDashboard}
}

// Valid reports whether v is a known view
func (v View) Valid() bool {
	return v >= ViewLanding && v <= ViewDashboard
}

func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewLogin:
		return "login"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Layout is the page arrangement attached to a view
type Layout int

const (
	LayoutCentered  Layout = iota // single box centered on screen
	LayoutContained               // full-width container
)

// LayoutFor returns the layout a view is rendered with
func LayoutFor(v View) Layout {
	if v == ViewDashboard {
		return LayoutContained
	}
	return LayoutCentered
}
