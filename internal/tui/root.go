// Package tui renders the client state held by internal/app as a bubbletea
// program. All state transitions go through *app.App; this package only
// maps keys to calls and state to text.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/app"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/media"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

const (
	submitLabel  = "Generate Content"
	sidebarWidth = 44
)

// Messages
type loginDoneMsg struct {
	result app.LoginResult
	err    error
}

type generationDoneMsg struct {
	result app.GenerationResult
	err    error
}

type imagePreviewMsg struct {
	path  string
	image media.Image
	err   error
}

type spinnerTickMsg struct{}

// Spinner animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	app    *app.App
	keys   KeyMap
	logger *zap.Logger

	// Login view
	login     form
	loggingIn bool

	// Dashboard
	selected int
	viewport viewport.Model

	// New-task modal
	showTaskForm bool
	taskForm     form
	preview      imagePreview
	submit       *app.Button
	cancelGen    context.CancelFunc
	generating   bool
	spinnerIndex int

	// Alert overlay; non-empty blocks every other key
	alert  string
	status string
}

// NewRootModel creates the root model and picks the initial view from the
// persisted session
func NewRootModel(a *app.App, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	a.Start()
	return Model{
		app:      a,
		keys:     DefaultKeyMap(),
		logger:   logger,
		login:    newLoginForm(),
		taskForm: newTaskForm(),
		submit:   app.NewButton(submitLabel),
		viewport: viewport.New(40, 10),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		res, err := a.Login(context.Background(), email, password)
		return loginDoneMsg{result: res, err: err}
	}
}

// generateCmd loads the image (if any) and submits the task. The button is
// disabled by the app for the duration of the request.
func (m Model) generateCmd(ctx context.Context, in app.TaskInput, imagePath string) tea.Cmd {
	a, btn := m.app, m.submit
	return func() tea.Msg {
		if imagePath != "" {
			img, err := media.Load(imagePath)
			if err != nil {
				return generationDoneMsg{err: &app.ValidationError{Message: "Could not attach image: " + err.Error()}}
			}
			in.ImageData = img.DataURL
		}
		res, err := a.GenerateTask(ctx, in, btn)
		return generationDoneMsg{result: res, err: err}
	}
}

func previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := media.Load(path)
		return imagePreviewMsg{path: path, image: img, err: err}
	}
}

// spinnerTickCmd returns a fast tick command for spinner animation
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = max(msg.Width-sidebarWidth-6, 20)
		m.viewport.Height = max(msg.Height-8, 3)
		m.refreshDetail()
		return m, nil

	case loginDoneMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.logger.Debug("login failed", zap.Error(msg.err))
			m.alert = app.AlertText(msg.err)
			return m, nil
		}
		m.status = msg.result.Message
		m.login.reset()
		m.enterDashboard()
		return m, nil

	case generationDoneMsg:
		if m.cancelGen != nil {
			m.cancelGen()
			m.cancelGen = nil
		}
		m.generating = false
		switch {
		case errors.Is(msg.err, context.Canceled):
			m.status = "Generation cancelled"
		case msg.err != nil:
			m.logger.Debug("generation failed", zap.Error(msg.err))
			m.alert = app.AlertText(msg.err)
		default:
			m.status = msg.result.Message
			m.showTaskForm = false
			m.taskForm.reset()
			m.preview = imagePreview{}
			m.selectTask(msg.result.Task.ID)
		}
		return m, nil

	case imagePreviewMsg:
		// A stale preview for a path that has since been edited is dropped
		if msg.path == m.taskForm.trimmed(fieldImage) {
			m.preview = imagePreview{path: msg.path, image: msg.image, err: msg.err}
		}
		return m, nil

	case spinnerTickMsg:
		if !m.generating {
			return m, nil
		}
		m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
		return m, spinnerTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		if m.cancelGen != nil {
			m.cancelGen()
		}
		return m, tea.Quit
	}

	if m.alert != "" {
		if key.Matches(msg, m.keys.Enter, m.keys.Escape) {
			m.alert = ""
		}
		return m, nil
	}

	if m.showTaskForm {
		return m.handleTaskFormKey(msg)
	}

	switch m.app.Navigator.Current() {
	case model.ViewLanding:
		return m.handleLandingKey(msg)
	case model.ViewLogin:
		return m.handleLoginKey(msg)
	case model.ViewDashboard:
		return m.handleDashboardKey(msg)
	}
	return m, nil
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Login):
		m.app.Navigator.RequestLogin()
		m.afterNavigate()
	case key.Matches(msg, m.keys.Dashboard):
		m.app.Navigator.RequestDashboard()
		m.afterNavigate()
	case key.Matches(msg, m.keys.Register):
		m.alert = m.app.Register()
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		_ = m.app.Navigator.NavigateTo(model.ViewLanding)
		return m, nil
	case msg.String() == "tab" || msg.String() == "down":
		m.login.next()
		return m, nil
	case msg.String() == "shift+tab" || msg.String() == "up":
		m.login.prev()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.loggingIn {
			return m, nil
		}
		if m.login.focus == fieldEmail {
			m.login.next()
			return m, nil
		}
		m.loggingIn = true
		return m, m.loginCmd(m.login.trimmed(fieldEmail), m.login.inputs[fieldPassword].Value())
	}
	return m, m.login.update(msg)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.app.Tasks.Rows()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		_ = m.app.Navigator.NavigateTo(model.ViewLanding)
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(rows)-1 {
			m.selected++
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.NewTask):
		m.showTaskForm = true
		m.taskForm.reset()
		m.preview = imagePreview{}
		return m, textinput.Blink
	case key.Matches(msg, m.keys.UpdatePassword):
		m.alert = m.app.UpdatePassword()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.cancelGen != nil {
			m.cancelGen()
			m.cancelGen = nil
			return m, nil
		}
		m.showTaskForm = false
		return m, nil
	case msg.String() == "tab" || msg.String() == "down":
		m.taskForm.next()
		return m, nil
	case msg.String() == "shift+tab" || msg.String() == "up":
		m.taskForm.prev()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.generating || m.submit.Disabled() {
			return m, nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelGen = cancel
		in := app.TaskInput{
			Prompt:   m.taskForm.value(fieldPrompt),
			Audience: m.taskForm.value(fieldAudience),
		}
		m.generating = true
		m.status = ""
		return m, tea.Batch(m.generateCmd(ctx, in, m.taskForm.trimmed(fieldImage)), spinnerTickCmd())
	}

	before := m.taskForm.trimmed(fieldImage)
	cmd := m.taskForm.update(msg)
	if after := m.taskForm.trimmed(fieldImage); m.taskForm.focus == fieldImage && after != before {
		if after == "" {
			m.preview = imagePreview{}
			return m, cmd
		}
		return m, tea.Batch(cmd, previewCmd(after))
	}
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.showTaskForm:
		cmd = m.taskForm.update(msg)
	case m.app.Navigator.Current() == model.ViewLogin:
		cmd = m.login.update(msg)
	}
	return m, cmd
}

// afterNavigate focuses the login form when navigation landed on it
func (m *Model) afterNavigate() {
	switch m.app.Navigator.Current() {
	case model.ViewLogin:
		m.login.reset()
	case model.ViewDashboard:
		m.enterDashboard()
	}
}

func (m *Model) enterDashboard() {
	m.selected = 0
	if task, ok := m.app.Tasks.CurrentTask(); ok {
		m.selectTask(task.ID)
		return
	}
	m.refreshDetail()
}

// selectTask moves the selection to the row for taskID
func (m *Model) selectTask(taskID string) {
	for i, row := range m.app.Tasks.Rows() {
		if row.TaskID == taskID {
			m.selected = i
			break
		}
	}
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	rows := m.app.Tasks.Rows()
	if m.selected >= len(rows) {
		m.selected = len(rows) - 1
	}
	content := DimStyle.Render("Select a task to see its content.")
	if m.selected >= 0 && rows[m.selected].TaskID != "" {
		if task, ok := m.app.Tasks.Detail(rows[m.selected].TaskID); ok {
			content = renderTask(task, m.viewport.Width)
		}
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// View renders the active view, the modal and the alert overlay
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	switch m.app.Navigator.Current() {
	case model.ViewLogin:
		body = m.loginView()
	case model.ViewDashboard:
		body = m.dashboardView()
	default:
		body = m.landingView()
	}

	switch {
	case m.alert != "":
		return m.place(m.alertView())
	case m.showTaskForm:
		return m.place(m.taskFormView())
	case m.app.Navigator.Layout() == model.LayoutCentered:
		return m.place(body)
	default:
		return body
	}
}

func (m Model) place(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func logo() string {
	return LogoStyle.Render("ADCRAFT AI") + SubtitleStyle.Render(" · Creative Marketing Assistant")
}

func (m Model) landingView() string {
	var b strings.Builder
	b.WriteString(logo())
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("One prompt. Four campaign assets."))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("Tagline · poster copy · marketing email · short-form video script"))
	b.WriteString("\n\n")
	b.WriteString(helpLine(m.keys.LandingHelp()))
	return BoxStyle.Render(b.String())
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(logo())
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(m.login.view())
	b.WriteString("\n\n")
	if m.loggingIn {
		b.WriteString(DimStyle.Render("Logging in..."))
	} else {
		b.WriteString(DimStyle.Render("tab next field • enter submit • esc back"))
	}
	return BoxStyle.Render(b.String())
}

func (m Model) dashboardView() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top, logo(), "  ", DimStyle.Render(m.identityLabel()))

	bodyHeight := max(m.height-4, 3)
	sidebar := m.renderRows(sidebarWidth, bodyHeight)
	detail := PanelStyle.
		Width(max(m.width-sidebarWidth-4, 20)).
		Height(bodyHeight).
		Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, detail)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusBar())
}

func (m Model) identityLabel() string {
	if id, ok := m.app.Session.Identity(); ok {
		return "signed in as " + string(id)
	}
	return ""
}

func (m Model) renderRows(width, height int) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Tasks"))
	b.WriteString("\n\n")
	for i, row := range m.app.Tasks.Rows() {
		var line string
		switch {
		case row.Placeholder:
			line = PlaceholderRowStyle.Width(width - 4).Render(row.Title)
		case i == m.selected:
			line = SelectedRowStyle.Render("▸ "+row.Title) + "\n" +
				DimStyle.Render("   "+row.Subtitle+" ") + BadgeStyle.Render("["+row.Badge+"]")
		default:
			line = RowStyle.Render("  "+row.Title) + "\n" +
				DimStyle.Render("   "+row.Subtitle+" ") + BadgeStyle.Render("["+row.Badge+"]")
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	return PanelStyle.Width(width).Height(height).Render(b.String())
}

func (m Model) statusBar() string {
	parts := []string{helpLine(m.keys.DashboardHelp())}
	if m.status != "" {
		parts = append([]string{SuccessStyle.Render(m.status)}, parts...)
	}
	return StatusBarStyle.Render(joinDot(parts))
}

func (m Model) taskFormView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("New task"))
	b.WriteString("\n\n")
	b.WriteString(m.taskForm.view())
	b.WriteString("\n")
	b.WriteString("          " + m.preview.view())
	b.WriteString("\n\n")

	if m.generating {
		frame := spinnerFrames[m.spinnerIndex%len(spinnerFrames)]
		b.WriteString(ButtonDisabledStyle.Render(frame + " " + m.submit.Label()))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("esc cancel"))
	} else {
		b.WriteString(ButtonStyle.Render(m.submit.Label()))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("tab next field • enter generate • esc close"))
	}
	return BoxStyle.Width(min(m.width-4, 84)).Render(b.String())
}

func (m Model) alertView() string {
	return AlertStyle.Width(min(m.width-4, 60)).Render(
		m.alert + "\n\n" + DimStyle.Render("enter / esc to dismiss"))
}
