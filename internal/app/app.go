// Package app holds the client's state: who is logged in, which view is
// showing, and the most recent generated task. It has no rendering code;
// the TUI and the CLI commands drive it.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/storage"
)

// Backend is the remote API as the app sees it. *api.Client implements it.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	GenerateTask(ctx context.Context, req api.GenerateTaskRequest) (*api.GenerateTaskResponse, error)
}

// Notices for flows that are switched off in demo mode
const (
	RegisterDisabledNotice       = "Registration is disabled in demo mode. Please log in with admin@demo.com and password123."
	UpdatePasswordDisabledNotice = "Password update is disabled in demo mode."
)

// App ties the session, navigator and task client together
type App struct {
	Session   *Session
	Navigator *Navigator
	Tasks     *TaskClient

	logger *zap.Logger
}

// New creates the application state. Call Start to restore a persisted
// session and pick the initial view.
func New(backend Backend, store storage.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	session := NewSession(backend, store, logger.Named("session"))
	tasks := NewTaskClient(session, backend, logger.Named("tasks"))
	return &App{
		Session:   session,
		Navigator: NewNavigator(session, tasks.Refresh),
		Tasks:     tasks,
		logger:    logger,
	}
}

// Start restores the persisted session and shows the dashboard when it is
// valid, the landing view otherwise.
func (a *App) Start() model.View {
	if _, ok := a.Session.RestoreSession(); ok {
		return a.Navigator.RequestDashboard()
	}
	_ = a.Navigator.NavigateTo(model.ViewLanding)
	return model.ViewLanding
}

// Login logs in and moves to the dashboard on success
func (a *App) Login(ctx context.Context, email, password string) (LoginResult, error) {
	res, err := a.Session.Login(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	a.Navigator.RequestDashboard()
	return res, nil
}

// GenerateTask forwards to the task client
func (a *App) GenerateTask(ctx context.Context, in TaskInput, ctrl Control) (GenerationResult, error) {
	return a.Tasks.GenerateTask(ctx, in, ctrl)
}

// Register is disabled in demo mode and only returns a notice
func (a *App) Register() string {
	return RegisterDisabledNotice
}

// UpdatePassword is disabled in demo mode and only returns a notice
func (a *App) UpdatePassword() string {
	return UpdatePasswordDisabledNotice
}
