//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// Enable registers the binary under the per-user Run key.
func (auto *Autostart) Enable() error {
	quoted := `"` + strings.Trim(auto.execPath, `"`) + `"`
	command := exec.Command("reg", "add", runKey,
		"/v", auto.appName, "/t", "REG_SZ", "/d", quoted, "/f")
	if output, err := command.CombinedOutput(); err != nil {
		return fmt.Errorf("autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Disable deletes the Run value. A missing value is not an error.
func (auto *Autostart) Disable() error {
	command := exec.Command("reg", "delete", runKey, "/v", auto.appName, "/f")
	if output, err := command.CombinedOutput(); err != nil {
		message := strings.TrimSpace(string(output))
		if strings.Contains(message, "unable to find") {
			return nil
		}
		return fmt.Errorf("autostart: reg delete failed: %w: %s", err, message)
	}
	return nil
}

// Enabled reports whether the Run value exists.
func (auto *Autostart) Enabled() bool {
	command := exec.Command("reg", "query", runKey, "/v", auto.appName)
	return command.Run() == nil
}
