package prompt

import "errors"

// ErrNonInteractive is returned when prompting in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Prompter asks the user for decisions the CLI cannot make alone.
type Prompter interface {
	// Select presents options and returns the chosen one.
	Select(title string, options []string, defaultValue string) (string, error)

	// Input prompts for text, validated by validate when non-nil.
	Input(title string, defaultValue string, validate func(string) error) (string, error)

	// Confirm prompts for yes/no.
	Confirm(title string, defaultValue bool) (bool, error)
}

// NoopPrompter refuses every prompt. Used with --non-interactive or when
// stdin is not a terminal.
type NoopPrompter struct{}

func (NoopPrompter) Select(string, []string, string) (string, error) {
	return "", ErrNonInteractive
}

func (NoopPrompter) Input(string, string, func(string) error) (string, error) {
	return "", ErrNonInteractive
}

func (NoopPrompter) Confirm(string, bool) (bool, error) {
	return false, ErrNonInteractive
}
