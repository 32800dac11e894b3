package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/media"
)

// form is a vertical stack of text inputs with one focused at a time
type form struct {
	inputs []textinput.Model
	focus  int
}

func newInput(prompt, placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = InputPromptStyle
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = width
	return ti
}

func (f *form) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// value returns input i as typed
func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// trimmed is value without surrounding whitespace, for emails and paths
func (f *form) trimmed(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// update forwards msg to the focused input
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view() string {
	lines := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		lines[i] = in.View()
	}
	return strings.Join(lines, "\n\n")
}

// Login form fields
const (
	fieldEmail = iota
	fieldPassword
)

func newLoginForm() form {
	email := newInput("Email:    ", "admin@demo.com", 40)
	password := newInput("Password: ", "password123", 40)
	password.EchoMode = textinput.EchoPassword
	email.Focus()
	return form{inputs: []textinput.Model{email, password}}
}

// Task form fields
const (
	fieldPrompt = iota
	fieldAudience
	fieldImage
)

func newTaskForm() form {
	prompt := newInput("Product:  ", "Eco-friendly water bottle", 60)
	audience := newInput("Audience: ", "Hikers aged 25-40", 60)
	image := newInput("Image:    ", "optional path to a PNG/JPEG/GIF", 60)
	prompt.Focus()
	return form{inputs: []textinput.Model{prompt, audience, image}}
}

// imagePreview is the live preview under the image path input
type imagePreview struct {
	path  string
	image media.Image
	err   error
}

func (p imagePreview) view() string {
	switch {
	case p.path == "":
		return DimStyle.Render("No image attached")
	case p.err != nil:
		return ErrorStyle.Render(p.err.Error())
	default:
		return SuccessStyle.Render("✓ " + p.image.Preview())
	}
}
