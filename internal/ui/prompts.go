package ui

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted is returned when the user aborts a prompt with Ctrl-C
var ErrInterrupted = errors.New("interrupted")

// ErrNonInteractive is returned when a prompt is needed in non-interactive mode
var ErrNonInteractive = errors.New("input required but running non-interactively")

func (u *UI) ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	if u.nonInteractive {
		return ErrNonInteractive
	}
	err := survey.AskOne(p, response, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

// PromptYesNo prompts the user for a yes/no answer
func (u *UI) PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	var result bool
	p := &survey.Confirm{
		Message: prompt,
		Default: defaultYes,
	}

	err := u.ask(p, &result)
	return result, err
}

// PromptInput prompts the user for single-line text input
func (u *UI) PromptInput(prompt, defaultValue string) (string, error) {
	var result string
	p := &survey.Input{
		Message: prompt,
		Default: defaultValue,
	}

	err := u.ask(p, &result)
	return result, err
}

// PromptMultiline prompts for multi-line text; an empty line finishes input
func (u *UI) PromptMultiline(prompt, defaultValue string) (string, error) {
	var result string
	p := &survey.Multiline{
		Message: prompt,
		Default: defaultValue,
	}

	err := u.ask(p, &result)
	return result, err
}

// PromptSelect prompts the user to select from a list
func (u *UI) PromptSelect(prompt string, options []string) (int, error) {
	var selected string
	p := &survey.Select{
		Message: prompt,
		Options: options,
	}

	if err := u.ask(p, &selected); err != nil {
		return -1, err
	}

	// Find the index of the selected option
	for i, opt := range options {
		if opt == selected {
			return i, nil
		}
	}

	return -1, fmt.Errorf("selected option not found")
}
