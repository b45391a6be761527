package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUnavailable is returned when neither the native clipboard nor a
// fallback command could take the text
var ErrUnavailable = errors.New("no clipboard available")

// CopiedMsg reports the result of a Write
type CopiedMsg struct {
	Label string
	Err   error
}

// Service copies text to the system clipboard
type Service interface {
	// Copy writes text to the clipboard and blocks until done
	Copy(ctx context.Context, text string) error

	// Write copies text in the background and reports a CopiedMsg
	Write(ctx context.Context, text, label string) tea.Cmd
}

// Logger interface for clipboard operations
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

type clipboardService struct {
	logger  Logger
	command string

	writeNative func(string) error
	lookPath    func(string) (string, error)
}

// NewService creates a clipboard service. command overrides the fallback
// utility used when the native clipboard fails; empty picks one per OS.
func NewService(logger Logger, command string) Service {
	return &clipboardService{
		logger:      logger,
		command:     strings.TrimSpace(command),
		writeNative: clipboard.WriteAll,
		lookPath:    exec.LookPath,
	}
}

func (s *clipboardService) Write(ctx context.Context, text, label string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Label: label, Err: s.Copy(ctx, text)}
	}
}

func (s *clipboardService) Copy(ctx context.Context, text string) error {
	err := s.writeNative(text)
	if err == nil {
		s.logger.Debug("copied to clipboard", "text_length", len(text))
		return nil
	}
	s.logger.Warn("native clipboard failed, trying fallback", "error", err)

	parts := s.fallbackCommand()
	if len(parts) == 0 {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)

	if runErr := cmd.Run(); runErr != nil {
		s.logger.Error("clipboard command failed", "command", parts, "error", runErr)
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, parts[0], runErr)
	}

	s.logger.Debug("copied to clipboard", "command", parts[0], "text_length", len(text))
	return nil
}

// fallbackCommand returns the configured command or the first clipboard
// utility found for this platform
func (s *clipboardService) fallbackCommand() []string {
	if s.command != "" {
		return parseCommand(s.command)
	}

	var candidates [][]string
	switch runtime.GOOS {
	case "windows":
		candidates = [][]string{{"clip.exe"}}
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "linux":
		if isWSL() {
			candidates = [][]string{{"clip.exe"}}
		} else {
			candidates = [][]string{
				{"wl-copy"},
				{"xclip", "-selection", "clipboard"},
				{"xsel", "--clipboard", "--input"},
			}
		}
	}

	for _, c := range candidates {
		if _, err := s.lookPath(c[0]); err == nil {
			return c
		}
	}
	return nil
}

// parseCommand splits a command string on spaces, respecting quotes
func parseCommand(command string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	for _, r := range command {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && r == ' ':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// isWSL checks if the application is running in Windows Subsystem for Linux
func isWSL() bool {
	version, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	v := strings.ToLower(string(version))
	return strings.Contains(v, "microsoft") || strings.Contains(v, "wsl")
}
