package screen

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoro11031/datasave/internal/ui"
)

// Prompter collects input for the screen
type Prompter interface {
	PromptInput(prompt, defaultValue string) (string, error)
	PromptMultiline(prompt, defaultValue string) (string, error)
	PromptSelect(prompt string, options []string) (int, error)
}

// Action is one selectable entry of the screen
type Action int

const (
	ActionEditFileName Action = iota
	ActionEditContent
	ActionSaveInternal
	ActionAppendInternal
	ActionSaveExternal
	ActionExit
)

var actionLabels = []string{
	ActionEditFileName:   "Edit file name",
	ActionEditContent:    "Edit content",
	ActionSaveInternal:   "Save Internal",
	ActionAppendInternal: "Append Internal",
	ActionSaveExternal:   "Save External",
	ActionExit:           "Exit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionLabels[a]
}

// Screen draws the controller state and feeds it user actions
type Screen struct {
	c      *Controller
	ui     *ui.UI
	prompt Prompter
}

// New creates a Screen
func New(c *Controller, out *ui.UI, prompt Prompter) *Screen {
	return &Screen{c: c, ui: out, prompt: prompt}
}

// Run loops until the user exits, the prompt is interrupted, or ctx is done
func (s *Screen) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.c.DeliverPermissionResults()
		s.Render()

		idx, err := s.prompt.PromptSelect("Action", actionLabels)
		if errors.Is(err, ui.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read action: %w", err)
		}

		done, err := s.Handle(Action(idx))
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Handle performs one action. It reports true when the screen should close.
func (s *Screen) Handle(a Action) (bool, error) {
	switch a {
	case ActionEditFileName:
		value, err := s.prompt.PromptInput("File name", s.c.Draft().FileName)
		if err != nil {
			return false, editError(err)
		}
		s.c.SetFileName(value)
	case ActionEditContent:
		value, err := s.prompt.PromptMultiline("Content", s.c.Draft().Content)
		if err != nil {
			return false, editError(err)
		}
		s.c.SetContent(value)
	case ActionSaveInternal:
		s.c.SaveInternal()
	case ActionAppendInternal:
		s.c.AppendInternal()
	case ActionSaveExternal:
		s.c.SaveExternal()
	case ActionExit:
		return true, nil
	default:
		return false, fmt.Errorf("invalid action: %d", int(a))
	}
	return false, nil
}

// editError drops an interrupted edit and keeps the old field value
func editError(err error) error {
	if errors.Is(err, ui.ErrInterrupted) {
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}

// Render draws the screen once
func (s *Screen) Render() {
	d := s.c.Draft()

	s.ui.ClearScreen()
	s.ui.Header("datasave")
	s.ui.Field("File name", d.FileName)
	s.ui.Print("")
	s.ui.Field("Content", d.Content)
	s.ui.Print("")
	s.ui.Separator()
	s.ui.Buttons(actionLabels[ActionSaveInternal], actionLabels[ActionAppendInternal], actionLabels[ActionSaveExternal])
	s.ui.Separator()
	s.ui.Printf("  Storage permission: %s", s.c.PermissionState())

	if t := s.c.Toast(); t.Visible(s.c.now()) {
		s.ui.Print("")
		s.ui.Toast(t)
	}
	s.ui.Print("")
}
