package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// PromptConfirm asks a yes/no question on the command's terminal.
func PromptConfirm(command *cobra.Command, prompt string, defaultYes bool) (bool, error) {
	if !IsInteractiveTerminal(command) {
		return false, ValidationError("interactive terminal is required", nil)
	}

	value := defaultYes
	field := huh.NewConfirm().
		Title(normalizePrompt(prompt)).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(field)).
		WithInput(command.InOrStdin()).
		WithOutput(command.OutOrStdout()).
		WithShowHelp(false)

	err := form.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ValidationError("interactive prompt interrupted", nil)
	}
	if err != nil {
		return false, err
	}
	return value, nil
}

// PromptPassword reads the admin password without echo. Used when the
// password argument is given as "-".
func PromptPassword(command *cobra.Command, prompt string) (string, error) {
	file, _, ok := fileFromReader(command.InOrStdin())
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return "", ValidationError("interactive terminal is required to prompt for a password", nil)
	}

	_, _ = fmt.Fprintf(command.ErrOrStderr(), "%s: ", normalizePrompt(prompt))
	raw, err := term.ReadPassword(int(file.Fd()))
	_, _ = fmt.Fprintln(command.ErrOrStderr())
	if err != nil {
		return "", ValidationError("password prompt failed", err)
	}

	password := string(raw)
	if password == "" {
		return "", ValidationError("password must not be empty", nil)
	}
	return password, nil
}

func normalizePrompt(prompt string) string {
	title := strings.TrimSpace(prompt)
	title = strings.TrimSuffix(title, ":")
	if title == "" {
		return "Input"
	}
	return title
}
