//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (auto *Autostart) plistPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("autostart: resolve home dir: %w", err)
	}
	label := "com.focusclock." + auto.slug()
	return filepath.Join(homeDir, "Library", "LaunchAgents", label+".plist"), nil
}

// Enable installs a user LaunchAgent that runs the binary at login.
func (auto *Autostart) Enable() error {
	plistPath, err := auto.plistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(plistPath), 0o755); err != nil {
		return fmt.Errorf("autostart: create LaunchAgents dir: %w", err)
	}

	label := strings.TrimSuffix(filepath.Base(plistPath), ".plist")
	content := fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(label), xmlEscape(auto.execPath),
	)

	if err := os.WriteFile(plistPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("autostart: write plist: %w", err)
	}
	return nil
}

// Disable removes the LaunchAgent. Missing files are not an error.
func (auto *Autostart) Disable() error {
	plistPath, err := auto.plistPath()
	if err != nil {
		return err
	}
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("autostart: remove plist: %w", err)
	}
	return nil
}

// Enabled reports whether the LaunchAgent is installed.
func (auto *Autostart) Enabled() bool {
	plistPath, err := auto.plistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(plistPath)
	return err == nil
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
