package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flfe/adminctl/internal/client/models"
)

// Field indexes shared by the create and edit forms. The edit form has no
// password requirement and adds a picture path field.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldPicture
)

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, masked bool) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 128
	input.Width = 40
	if masked {
		input.EchoMode = textinput.EchoPassword
	}
	return input
}

// newCreateForm builds the create-user form. All three fields are required.
func newCreateForm() form {
	f := form{
		labels: []string{"Name", "Email", "Password"},
		inputs: []textinput.Model{
			newInput("Jane Doe", false),
			newInput("jane@example.com", false),
			newInput("", true),
		},
	}
	f.inputs[0].Focus()
	return f
}

// newEditForm builds the edit form pre-filled with the record's current
// values. Password and picture are optional: blank keeps the current ones.
func newEditForm(user models.UserRecord) form {
	f := form{
		labels: []string{"Name", "Email", "New password", "New picture"},
		inputs: []textinput.Model{
			newInput("", false),
			newInput("", false),
			newInput("leave blank to keep current", true),
			newInput("path to image file (optional)", false),
		},
	}
	f.inputs[fieldName].SetValue(user.Name)
	f.inputs[fieldEmail].SetValue(user.Email)
	f.inputs[0].Focus()
	return f
}

// update routes a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// nextField moves focus down, wrapping around.
func (f *form) nextField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// prevField moves focus up, wrapping around.
func (f *form) prevField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// value returns the trimmed content of a field.
func (f *form) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// onLastField reports whether the focused field is the bottom one.
func (f *form) onLastField() bool {
	return f.focus == len(f.inputs)-1
}
