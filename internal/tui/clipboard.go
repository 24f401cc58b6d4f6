package tui

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const clipboardTimeout = 5 * time.Second

// clipboardTools are tried in order when no command is configured. Each
// reads the text to copy from stdin.
var clipboardTools = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

var errNoClipboard = errors.New("no clipboard command available (install wl-copy or xclip)")

// clipboardCommand splits the configured command, or returns the first
// installed tool when configured is empty.
func clipboardCommand(configured string) ([]string, error) {
	if args := strings.Fields(configured); len(args) > 0 {
		return args, nil
	}
	for _, tool := range clipboardTools {
		if _, err := exec.LookPath(tool[0]); err == nil {
			return tool, nil
		}
	}
	return nil, errNoClipboard
}

// copyText pipes text into the clipboard command.
func copyText(text, configured string) error {
	args, err := clipboardCommand(configured)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Stdin = strings.NewReader(text)
	return c.Run()
}
