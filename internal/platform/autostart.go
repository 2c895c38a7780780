package platform

import (
	"fmt"
	"os"
	"strings"
)

// Autostart manages the "start at login" registration for one executable.
// The mechanism is per-OS: a desktop entry on Linux, a LaunchAgent on
// macOS, a Run registry value on Windows.
type Autostart struct {
	appName  string
	execPath string
}

// NewAutostart builds the registration helper for the current binary.
func NewAutostart(appName string) (*Autostart, error) {
	if strings.TrimSpace(appName) == "" {
		return nil, fmt.Errorf("autostart: app name is empty")
	}
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("autostart: resolve executable: %w", err)
	}
	return &Autostart{appName: appName, execPath: execPath}, nil
}

// slug normalizes the app name for use in file names and labels.
func (auto *Autostart) slug() string {
	name := strings.ToLower(strings.TrimSpace(auto.appName))
	return strings.ReplaceAll(name, " ", "-")
}
