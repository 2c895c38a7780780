//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (auto *Autostart) entryPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("autostart: resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "autostart", auto.slug()+".desktop"), nil
}

// Enable writes a freedesktop autostart entry for the current binary.
func (auto *Autostart) Enable() error {
	entryPath, err := auto.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("autostart: create autostart dir: %w", err)
	}

	execLine := auto.execPath
	if strings.Contains(execLine, " ") {
		execLine = `"` + execLine + `"`
	}
	entry := fmt.Sprintf(
		"[Desktop Entry]\nType=Application\nName=%s\nExec=%s\nX-GNOME-Autostart-enabled=true\nTerminal=false\n",
		auto.appName, execLine,
	)

	if err := os.WriteFile(entryPath, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("autostart: write desktop entry: %w", err)
	}
	return nil
}

// Disable removes the autostart entry. Missing entries are not an error.
func (auto *Autostart) Disable() error {
	entryPath, err := auto.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("autostart: remove desktop entry: %w", err)
	}
	return nil
}

// Enabled reports whether the autostart entry exists.
func (auto *Autostart) Enabled() bool {
	entryPath, err := auto.entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(entryPath)
	return err == nil
}
