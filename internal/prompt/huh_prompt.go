package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// HuhPrompter implements Prompter using the charmbracelet/huh library.
type HuhPrompter struct{}

// NewHuhPrompter creates a new huh-based prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

func (p *HuhPrompter) Select(title string, options []string, defaultValue string) (string, error) {
	result := defaultValue

	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&result).
		Run()

	return result, userAbort(err)
}

func (p *HuhPrompter) Input(title string, defaultValue string, validate func(string) error) (string, error) {
	result := defaultValue

	input := huh.NewInput().
		Title(title).
		Value(&result)
	if validate != nil {
		input = input.Validate(validate)
	}

	err := input.Run()
	return result, userAbort(err)
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	result := defaultValue

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&result).
		Run()

	return result, userAbort(err)
}

// ErrAborted is returned when the user cancels a prompt (Ctrl+C / Esc).
var ErrAborted = errors.New("aborted")

func userAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}
