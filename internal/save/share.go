package save

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Sharer hands a saved file to the system so the user can keep it
type Sharer interface {
	Share(ctx context.Context, path string) error
}

// CommandSharer opens files with an external command, for example
// "xdg-open" or "open -R". The file path is appended as the last argument.
type CommandSharer struct {
	name string
	args []string
	run  func(ctx context.Context, name string, args ...string) error
}

// NewCommandSharer parses command into a program and its leading
// arguments. An empty command yields nil, meaning no share handler.
func NewCommandSharer(command string) *CommandSharer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return &CommandSharer{name: fields[0], args: fields[1:], run: runCommand}
}

// Share runs the command for path
func (s *CommandSharer) Share(ctx context.Context, path string) error {
	if s == nil {
		return fmt.Errorf("no share command configured")
	}
	args := append(append([]string{}, s.args...), path)
	if err := s.run(ctx, s.name, args...); err != nil {
		return fmt.Errorf("share command %s failed: %w", s.name, err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
