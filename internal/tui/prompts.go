package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm shows a yes/no confirmation prompt.
func Confirm(title, description string) (bool, error) {
	var value bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&value).
		Run()
	return value, err
}

// Select shows a single-select prompt.
func Select(title, description string, options []huh.Option[string]) (string, error) {
	var value string
	err := huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Value(&value).
		Run()
	return value, err
}

// Input shows a free-text prompt. initial pre-fills the value and
// suggestions drive completion; a nil validate accepts anything.
func Input(title, description, initial string, suggestions []string, validate func(string) error) (string, error) {
	value := initial
	input := huh.NewInput().
		Title(title).
		Description(description).
		Suggestions(suggestions).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	return value, input.Run()
}

// Spin runs action behind a spinner with the given title.
func Spin(title string, action func()) error {
	return spinner.New().Title(title).Action(action).Run()
}
