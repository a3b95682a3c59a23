package shared

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

const appName = "ask"

//go:generate mockgen -destination=mocks/command_runner_mock.go -package=mocks . CommandRunner
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (string, error)
}

//go:generate mockgen -destination=mocks/runtime_info_mock.go -package=mocks . RuntimeInfo
type RuntimeInfo interface {
	GOOS() string
}

//go:generate mockgen -destination=mocks/user_info_mock.go -package=mocks . UserInfo
type UserInfo interface {
	HomeDir() (string, error)
	AskConfigDir() (string, error)
	AskStateDir() (string, error)
	Cwd() (string, error)
}

type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

type DefaultRuntimeInfo struct{}

func (r *DefaultRuntimeInfo) GOOS() string {
	return runtime.GOOS
}

type DefaultUserInfo struct {
	fs *afero.Afero
}

func NewDefaultUserInfo(fs *afero.Afero) *DefaultUserInfo {
	return &DefaultUserInfo{fs: fs}
}

func (u *DefaultUserInfo) HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return homeDir, nil
}

func (u *DefaultUserInfo) AskConfigDir() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, appName)
	if err := u.fs.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

func (u *DefaultUserInfo) AskStateDir() (string, error) {
	stateDir := filepath.Join(xdg.StateHome, appName)
	if err := u.fs.MkdirAll(stateDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return stateDir, nil
}

func (u *DefaultUserInfo) Cwd() (string, error) {
	return os.Getwd()
}

// BrowserLauncher opens URLs with the desktop's default browser.
type BrowserLauncher struct {
	runner  CommandRunner
	runtime RuntimeInfo
}

func NewBrowserLauncher(runner CommandRunner, runtime RuntimeInfo) *BrowserLauncher {
	return &BrowserLauncher{runner: runner, runtime: runtime}
}

func (b *BrowserLauncher) Open(ctx context.Context, url string) error {
	var (
		command string
		args    []string
	)

	switch b.runtime.GOOS() {
	case "darwin":
		command, args = "open", []string{url}
	case "windows":
		command, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		command, args = "xdg-open", []string{url}
	}

	output, err := b.runner.Run(ctx, command, args...)
	if err != nil {
		if output = strings.TrimSpace(output); output != "" {
			return fmt.Errorf("failed to open browser with %s: %w: %s", command, err, output)
		}
		return fmt.Errorf("failed to open browser with %s: %w", command, err)
	}

	return nil
}

var (
	_ UserInfo      = (*DefaultUserInfo)(nil)
	_ CommandRunner = (*DefaultCommandRunner)(nil)
	_ RuntimeInfo   = (*DefaultRuntimeInfo)(nil)
)
