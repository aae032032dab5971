package initialize

import (
	"github.com/charmbracelet/huh"
	"github.com/pybump/pybump/internal/tui"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Select(title, description string, options []huh.Option[string]) (string, error)
	Input(title, description, initial string, suggestions []string, validate func(string) error) (string, error)
}

// TUIPrompter implements Prompter using the tui package.
type TUIPrompter struct{}

// NewPrompter creates a new TUIPrompter.
func NewPrompter() Prompter {
	return &TUIPrompter{}
}

// Select shows a single-select prompt.
func (p *TUIPrompter) Select(title, description string, options []huh.Option[string]) (string, error) {
	return tui.Select(title, description, options)
}

// Input shows a free-text prompt.
func (p *TUIPrompter) Input(title, description, initial string, suggestions []string, validate func(string) error) (string, error) {
	return tui.Input(title, description, initial, suggestions, validate)
}
