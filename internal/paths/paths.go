package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "slate"

// LogPathEnv overrides the log file location when set. Support teams use
// it to redirect diagnostics without touching the install directory.
const LogPathEnv = "SLATE_LOG_PATH"

// AppDataDir returns the application data directory for settings/journal.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Use restrictive permissions for application data
	_ = os.MkdirAll(path, 0700)

	return path
}

// ExecutableDir returns the directory holding the running binary. The
// encoder sidecar and the default log location both live next to it.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// LogFilePath returns the path of the current log file. SLATE_LOG_PATH
// wins when set; otherwise logs live in a logs/ directory next to the
// executable so a portable install keeps its diagnostics with it.
func LogFilePath() string {
	if override := os.Getenv(LogPathEnv); override != "" {
		_ = os.MkdirAll(filepath.Dir(override), 0700)
		return override
	}

	dir := filepath.Join(ExecutableDir(), "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		// The install dir may be read-only (system package). Fall back
		// to the per-user data directory.
		dir = AppDataDir()
	}

	return filepath.Join(dir, "slate.ndjson")
}

// JournalFilePath returns the path of the session journal database.
func JournalFilePath() string {
	return filepath.Join(AppDataDir(), "slate.db")
}

// SettingsFilePath returns the path of the user settings file.
func SettingsFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".slaterc"), nil
}
