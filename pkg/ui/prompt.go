// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// isTerminal checks if stdin is a terminal (interactive) or a pipe
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompter renders interactive prompts with huh, falling back to plain
// stdin reads when input is piped.
type Prompter struct{}

// NewPrompter returns the interactive prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Input prompts for a single line with a pre-filled default; pressing
// enter keeps the default. Piped stdin reads one line instead.
func (p *Prompter) Input(title, description, defaultValue string) (string, error) {
	if !isTerminal() {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			return strings.TrimSpace(scanner.Text()), nil
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return defaultValue, nil
	}

	value := defaultValue
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// Note prints informational text between prompts.
func (p *Prompter) Note(text string) {
	fmt.Println(text)
}

// Confirm shows a yes/no confirmation dialog using huh
func Confirm(prompt string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Value(&confirmed),
		),
	)

	err := form.Run()
	if err != nil {
		return false, err
	}

	return confirmed, nil
}
