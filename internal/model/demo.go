package model

// Demo mode constants shared by the client and the demo API server.
const (
	DemoEmail    = "admin@demo.com"
	DemoPassword = "password123"
	DemoUID      = "DEMO_UID_001"

	// IdentityKey is the storage key the session identity is persisted under
	IdentityKey = "uid"
)

// HistoryPlaceholder is the informational row always shown in the task list
const HistoryPlaceholder = "History is disabled in demo mode. Only the last generated task is shown."
