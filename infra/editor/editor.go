// Package editor opens files in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvEditor prepares an external editor command using $VISUAL or $EDITOR
// (fallback: "vi"). It does NOT run the editor itself; callers attach the
// terminal and run the returned *exec.Cmd.
type EnvEditor struct {
	getenv func(string) string
}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{getenv: os.Getenv}
}

// Cmd prepares an *exec.Cmd editing path. Editor variables may carry
// arguments, e.g. "code --wait".
func (e *EnvEditor) Cmd(path string) *exec.Cmd {
	editorCmd := strings.TrimSpace(e.getenv("VISUAL"))
	if editorCmd == "" {
		editorCmd = strings.TrimSpace(e.getenv("EDITOR"))
	}
	if editorCmd == "" {
		editorCmd = "vi"
	}
	fields := strings.Fields(editorCmd)
	return exec.Command(fields[0], append(fields[1:], path)...)
}

// EnsureFile writes template to path unless the file already exists.
func EnsureFile(path, template string) (created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(template); err != nil {
		return true, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
