package tui

import (
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/app"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/generator"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/server"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/storage"
)

// newTestModel starts a demo server backed by the mock generator and returns
// a sized model talking to it
func newTestModel(t *testing.T, store storage.Store) Model {
	t.Helper()
	cfg := &config.ServerConfig{
		Generator:     config.GeneratorMock,
		AdminEmail:    model.DemoEmail,
		AdminPassword: model.DemoPassword,
		AdminUID:      model.DemoUID,
	}
	router, err := server.NewRouter(cfg, generator.Mock{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	if store == nil {
		store = storage.NewMemoryStore()
	}
	a := app.New(api.NewClient(srv.URL, 0), store, nil)
	m := NewRootModel(a, nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func loggedInModel(t *testing.T) Model {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Set(model.IdentityKey, model.DemoUID); err != nil {
		t.Fatal(err)
	}
	return newTestModel(t, store)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, keyMsg(k))
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// execCmd runs cmd and any batched commands, collecting their messages
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds the resulting messages of type T back in
func deliver[T tea.Msg](t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	found := false
	for _, msg := range execCmd(cmd) {
		if _, ok := msg.(T); ok {
			found = true
			m, _ = update(m, msg)
		}
	}
	if !found {
		var zero T
		t.Fatalf("command produced no %T", zero)
	}
	return m
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "product.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStartView(t *testing.T) {
	m := newTestModel(t, nil)
	if got := m.app.Navigator.Current(); got != model.ViewLanding {
		t.Fatalf("initial view = %v, want landing", got)
	}
	if !strings.Contains(m.View(), "ADCRAFT AI") {
		t.Error("landing view should show the title")
	}

	m = loggedInModel(t)
	if got := m.app.Navigator.Current(); got != model.ViewDashboard {
		t.Fatalf("initial view with stored session = %v, want dashboard", got)
	}
}

func TestLandingKeys(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		loggedIn  bool
		wantView  model.View
		wantAlert string
	}{
		{"login", "l", false, model.ViewLogin, ""},
		{"dashboard without session", "d", false, model.ViewLogin, ""},
		{"dashboard with session", "d", true, model.ViewDashboard, ""},
		{"login with session", "l", true, model.ViewDashboard, ""},
		{"register notice", "r", false, model.ViewLanding, app.RegisterDisabledNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Model
			if tt.loggedIn {
				m = loggedInModel(t)
				_ = m.app.Navigator.NavigateTo(model.ViewLanding)
			} else {
				m = newTestModel(t, nil)
			}

			m = press(m, tt.key)
			if got := m.app.Navigator.Current(); got != tt.wantView {
				t.Errorf("view = %v, want %v", got, tt.wantView)
			}
			if m.alert != tt.wantAlert {
				t.Errorf("alert = %q, want %q", m.alert, tt.wantAlert)
			}
		})
	}
}

func TestAlertBlocksKeys(t *testing.T) {
	m := press(newTestModel(t, nil), "r")
	if !strings.Contains(m.View(), "Registration is disabled") {
		t.Error("alert overlay not rendered")
	}

	m = press(m, "l")
	if m.app.Navigator.Current() != model.ViewLanding || m.alert == "" {
		t.Fatal("keys other than enter/esc must not reach the view under an alert")
	}

	m = press(m, "enter")
	if m.alert != "" {
		t.Fatal("enter should dismiss the alert")
	}
}

func TestLoginFlow(t *testing.T) {
	store := storage.NewMemoryStore()
	m := press(newTestModel(t, store), "l")

	m = typeText(m, model.DemoEmail)
	m = press(m, "tab")
	m = typeText(m, model.DemoPassword)
	if strings.Contains(m.View(), model.DemoPassword) {
		t.Error("password must be masked")
	}

	m, cmd := update(m, keyMsg("enter"))
	if !m.loggingIn {
		t.Fatal("expected login in flight")
	}
	m = deliver[loginDoneMsg](t, m, cmd)

	if m.alert != "" {
		t.Fatalf("unexpected alert %q", m.alert)
	}
	if got := m.app.Navigator.Current(); got != model.ViewDashboard {
		t.Fatalf("view = %v, want dashboard", got)
	}
	if m.status != "Demo Login successful." {
		t.Errorf("status = %q", m.status)
	}
	if uid, ok, _ := store.Get(model.IdentityKey); !ok || uid != model.DemoUID {
		t.Errorf("persisted uid = %q, %v", uid, ok)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantAlert string
	}{
		{"wrong password", model.DemoEmail, "nope", "Login Failed: Invalid credentials. Use admin@demo.com / password123."},
		{"empty password", model.DemoEmail, "", "Please enter both email and password."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestModel(t, nil), "l")
			m = typeText(m, tt.email)
			m = press(m, "tab")
			m = typeText(m, tt.password)
			m, cmd := update(m, keyMsg("enter"))
			m = deliver[loginDoneMsg](t, m, cmd)

			if m.alert != tt.wantAlert {
				t.Errorf("alert = %q, want %q", m.alert, tt.wantAlert)
			}
			if m.app.Navigator.Current() != model.ViewLogin {
				t.Error("should stay on the login view")
			}
		})
	}
}

func TestGenerateTask(t *testing.T) {
	m := press(loggedInModel(t), "n")
	if !m.showTaskForm {
		t.Fatal("n should open the new task form")
	}

	m = typeText(m, "Eco bottle")
	m = press(m, "tab")
	m = typeText(m, "hikers")

	m, cmd := update(m, keyMsg("enter"))
	if !m.generating {
		t.Fatal("expected generation in flight")
	}
	if m.cancelGen == nil {
		t.Fatal("in-flight generation should be cancellable")
	}
	m = deliver[generationDoneMsg](t, m, cmd)

	if m.alert != "" {
		t.Fatalf("unexpected alert %q", m.alert)
	}
	if m.showTaskForm {
		t.Error("form should close on success")
	}
	if m.submit.Disabled() || m.submit.Label() != submitLabel {
		t.Errorf("button not restored: disabled=%v label=%q", m.submit.Disabled(), m.submit.Label())
	}
	if m.status != "Task generated successfully (not saved to DB)." {
		t.Errorf("status = %q", m.status)
	}

	task, ok := m.app.Tasks.CurrentTask()
	if !ok {
		t.Fatal("no current task")
	}
	if task.Output.Tagline != "Eco bottle. Made for hikers." {
		t.Errorf("tagline = %q", task.Output.Tagline)
	}
	rows := m.app.Tasks.Rows()
	if m.selected != len(rows)-1 || rows[m.selected].TaskID != task.ID {
		t.Errorf("selected row %d, want the new task", m.selected)
	}
}

func TestGenerateTask_SendsTextAsTyped(t *testing.T) {
	m := press(loggedInModel(t), "n")
	m = typeText(m, " Eco bottle ")
	m = press(m, "tab")
	m = typeText(m, "hikers ")

	m, cmd := update(m, keyMsg("enter"))
	m = deliver[generationDoneMsg](t, m, cmd)
	if m.alert != "" {
		t.Fatalf("unexpected alert %q", m.alert)
	}

	task, ok := m.app.Tasks.CurrentTask()
	if !ok {
		t.Fatal("no current task")
	}
	if task.Prompt != " Eco bottle " || task.Audience != "hikers " {
		t.Errorf("prompt = %q, audience = %q", task.Prompt, task.Audience)
	}
}

func TestGenerateTask_WithImage(t *testing.T) {
	path := writePNG(t)
	m := press(loggedInModel(t), "n")
	m = typeText(m, "Eco bottle")
	m = press(m, "tab")
	m = typeText(m, "hikers")
	m = press(m, "tab")
	m.taskForm.inputs[fieldImage].SetValue(path)

	m, cmd := update(m, keyMsg("enter"))
	m = deliver[generationDoneMsg](t, m, cmd)

	task, ok := m.app.Tasks.CurrentTask()
	if !ok {
		t.Fatalf("no task, alert %q", m.alert)
	}
	if !task.HasImage() || !strings.HasPrefix(task.ImageReference, "data:image/png;base64,") {
		t.Errorf("image reference = %.40q", task.ImageReference)
	}
}

func TestGenerateTask_Validation(t *testing.T) {
	m := press(loggedInModel(t), "n")
	m = typeText(m, "Eco bottle")

	m, cmd := update(m, keyMsg("enter"))
	m = deliver[generationDoneMsg](t, m, cmd)

	if m.alert != "Please enter both product prompt and audience." {
		t.Errorf("alert = %q", m.alert)
	}
	if !m.showTaskForm {
		t.Error("form should stay open after a validation error")
	}
	if _, ok := m.app.Tasks.CurrentTask(); ok {
		t.Error("no task expected")
	}
}

func TestGenerateTask_FailureKeepsInputs(t *testing.T) {
	m := press(loggedInModel(t), "n")
	m = typeText(m, "Eco bottle")
	m = press(m, "tab")
	m = typeText(m, "hikers")

	m, _ = update(m, generationDoneMsg{err: &app.GenerationError{Reason: "AI generation failed: quota"}})

	if m.alert != "Generation Failed: AI generation failed: quota" {
		t.Errorf("alert = %q", m.alert)
	}
	if !m.showTaskForm {
		t.Fatal("form should stay open for a retry")
	}
	if got := m.taskForm.value(fieldPrompt); got != "Eco bottle" {
		t.Errorf("prompt = %q", got)
	}
	if got := m.taskForm.value(fieldAudience); got != "hikers" {
		t.Errorf("audience = %q", got)
	}
}

func TestGenerateTask_BadImagePath(t *testing.T) {
	m := press(loggedInModel(t), "n")
	m = typeText(m, "Eco bottle")
	m = press(m, "tab")
	m = typeText(m, "hikers")
	m.taskForm.inputs[fieldImage].SetValue(filepath.Join(t.TempDir(), "missing.png"))

	m, cmd := update(m, keyMsg("enter"))
	m = deliver[generationDoneMsg](t, m, cmd)

	if !strings.HasPrefix(m.alert, "Could not attach image:") {
		t.Errorf("alert = %q", m.alert)
	}
}

func TestGenerateTask_EscCancels(t *testing.T) {
	m := press(loggedInModel(t), "n")
	m = typeText(m, "Eco bottle")
	m = press(m, "tab")
	m = typeText(m, "hikers")

	m, cmd := update(m, keyMsg("enter"))
	m = press(m, "esc")
	if m.cancelGen != nil {
		t.Fatal("esc should cancel the request")
	}
	if !m.showTaskForm {
		t.Fatal("first esc only cancels; the form stays open")
	}

	m = deliver[generationDoneMsg](t, m, cmd)
	if m.alert != "" {
		t.Errorf("cancellation should not raise an alert, got %q", m.alert)
	}
	if m.status != "Generation cancelled" {
		t.Errorf("status = %q", m.status)
	}
	if m.generating {
		t.Error("generation should be over")
	}

	m = press(m, "esc")
	if m.showTaskForm {
		t.Error("second esc closes the form")
	}
}

func TestImagePreview(t *testing.T) {
	path := writePNG(t)
	m := press(loggedInModel(t), "n", "tab", "tab")

	m = typeText(m, path[:len(path)-1])
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune(path[len(path)-1])}})
	if cmd == nil {
		t.Fatal("typing an image path should schedule a preview")
	}
	m = deliver[imagePreviewMsg](t, m, previewCmd(path))
	if got := m.preview.view(); !strings.Contains(got, "image/png · 3x2") {
		t.Errorf("preview = %q", got)
	}

	// Results for a path that is no longer in the input are dropped
	m, _ = update(m, imagePreviewMsg{path: "/elsewhere.png"})
	if m.preview.path != path {
		t.Errorf("stale preview applied: %q", m.preview.path)
	}
}

func TestDashboardKeys(t *testing.T) {
	m := press(loggedInModel(t), "p")
	if m.alert != app.UpdatePasswordDisabledNotice {
		t.Errorf("alert = %q", m.alert)
	}

	m = press(m, "esc", "esc")
	if m.app.Navigator.Current() != model.ViewLanding {
		t.Error("esc on the dashboard returns to landing")
	}
}

func TestDashboardView(t *testing.T) {
	m := loggedInModel(t)
	view := m.View()
	if !strings.Contains(view, "History is disabled in demo mode.") {
		t.Error("placeholder row missing")
	}
	if !strings.Contains(view, "signed in as "+model.DemoUID) {
		t.Error("identity missing from header")
	}
}

func TestNotReady(t *testing.T) {
	m := NewRootModel(app.New(api.NewClient("http://127.0.0.1:1", 0), storage.NewMemoryStore(), nil), nil)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before size = %q", got)
	}
}
