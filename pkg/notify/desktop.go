// Package notify adapts the host's desktop notification mechanism to the
// core.Notifier port.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/avdw/jot/pkg/core"
)

// permissionKey is the storage record holding the resolved permission state.
const permissionKey = "notify-permission"

// Desktop shows notifications through the host's notifier binary
// (notify-send on Linux, osascript on macOS). The tri-state permission model
// is persisted through the Storage port so it survives restarts: it stays
// "default" until the first request, then resolves to granted or denied by
// whether the binary is available.
type Desktop struct {
	command string
	storage core.Storage
	logger  *slog.Logger
}

// Config holds the configuration for the desktop notifier.
type Config struct {
	Command string // notifier binary; defaults per platform
	Storage core.Storage
	Logger  *slog.Logger
}

// NewDesktop creates a desktop notifier.
func NewDesktop(cfg Config) *Desktop {
	command := cfg.Command
	if command == "" {
		command = defaultCommand()
	}
	return &Desktop{
		command: command,
		storage: cfg.Storage,
		logger:  cfg.Logger,
	}
}

func defaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "osascript"
	default:
		return "notify-send"
	}
}

// Supported reports whether the notifier binary is on PATH.
func (d *Desktop) Supported() bool {
	_, err := exec.LookPath(d.command)
	return err == nil
}

// Permission returns the persisted permission state, or PermissionDefault when
// none was recorded yet.
func (d *Desktop) Permission() core.Permission {
	if d.storage == nil {
		return core.PermissionDefault
	}
	data, err := d.storage.Get(context.Background(), permissionKey)
	if err != nil {
		return core.PermissionDefault
	}
	switch p := core.Permission(strings.TrimSpace(string(data))); p {
	case core.PermissionGranted, core.PermissionDenied:
		return p
	default:
		return core.PermissionDefault
	}
}

// RequestPermission resolves and persists the permission state. On a desktop
// host there is no prompt to show: permission is granted exactly when the
// notifier binary exists.
func (d *Desktop) RequestPermission(ctx context.Context) (core.Permission, error) {
	p := core.PermissionDenied
	if d.Supported() {
		p = core.PermissionGranted
	}
	if d.storage != nil {
		if err := d.storage.Set(ctx, permissionKey, []byte(p)); err != nil {
			return p, fmt.Errorf("failed to persist permission: %w", err)
		}
	}
	if d.logger != nil {
		d.logger.Debug("notification permission resolved", "permission", p, "command", d.command)
	}
	return p, nil
}

// Show displays a notification via the notifier binary.
func (d *Desktop) Show(ctx context.Context, title, body string) error {
	if d.logger != nil {
		d.logger.Debug("showing notification", "title", title, "command", d.command)
	}

	var cmd *exec.Cmd
	if strings.Contains(d.command, "osascript") {
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.CommandContext(ctx, d.command, "-e", script)
	} else {
		cmd = exec.CommandContext(ctx, d.command, title, body)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", d.command, err, string(out))
	}
	return nil
}

// Disabled is a Notifier for hosts without any notification capability. The
// scheduler still clears reminders; it just skips the side effect.
type Disabled struct{}

func (Disabled) Supported() bool { return false }

func (Disabled) Permission() core.Permission { return core.PermissionDenied }

func (Disabled) RequestPermission(ctx context.Context) (core.Permission, error) {
	return core.PermissionDenied, nil
}

func (Disabled) Show(ctx context.Context, title, body string) error { return nil }
