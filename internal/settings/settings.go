// Package settings persists recording preferences in a plain key=value
// file the user can edit by hand. Unknown lines and comments survive
// rewrites.
package settings

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Keys in the settings file.
const (
	keyAskWorkDir  = "ask_work_dir"
	keyWorkDir     = "work_dir"
	keyStartHidden = "start_hidden"
)

// Settings is the decoded preference set.
type Settings struct {
	// AskWorkDir makes the session prompt for a working directory on
	// launch even when one is remembered.
	AskWorkDir bool

	// WorkDir is the remembered recording directory.
	WorkDir string

	// StartHidden launches the session with the compact display.
	StartHidden bool
}

// Default returns the out-of-the-box preferences: ask for a directory,
// full display.
func Default() Settings {
	return Settings{AskWorkDir: true}
}

// Store reads and writes one settings file.
type Store struct {
	path string
	log  *zap.Logger
}

func NewStore(path string, log *zap.Logger) *Store {
	return &Store{path: path, log: log.Named("settings")}
}

// Path reports the file this store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file, creating it with defaults on first use. Lines
// that do not parse are skipped so a hand-edit mistake never blocks a
// recording.
func (s *Store) Load() (Settings, error) {
	lines, err := s.readLines()
	if err != nil {
		return Default(), err
	}

	st := Default()
	for _, line := range lines {
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		switch key {
		case keyAskWorkDir:
			st.AskWorkDir = parseBool(value, st.AskWorkDir)
		case keyWorkDir:
			st.WorkDir = value
		case keyStartHidden:
			st.StartHidden = parseBool(value, st.StartHidden)
		}
	}
	return st, nil
}

// Save rewrites the managed keys in place, keeping any other content
// the user put in the file.
func (s *Store) Save(st Settings) error {
	return s.withLock(func() error {
		lines, err := s.readLines()
		if err != nil {
			return err
		}

		lines, _ = setLine(lines, keyAskWorkDir, strconv.FormatBool(st.AskWorkDir))
		lines, _ = setLine(lines, keyWorkDir, quoteIfNeeded(st.WorkDir))
		lines, _ = setLine(lines, keyStartHidden, strconv.FormatBool(st.StartHidden))

		return s.writeLines(lines)
	})
}

// RememberWorkDir stores the directory chosen in the session prompt and
// stops asking on future launches. --ask-path brings the prompt back.
func (s *Store) RememberWorkDir(dir string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	st.WorkDir = dir
	st.AskWorkDir = false
	return s.Save(st)
}

func (s *Store) readLines() ([]string, error) {
	info, err := os.Stat(s.path)
	isNew := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	// Ensure correct permissions if the file already existed.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.log.Warn("could not set permissions on settings file", zap.Error(err))
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		line = strings.TrimSuffix(line, "\r") // Windows CRLF
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if isNew && len(lines) == 0 {
		lines = initialLines()
		if err := s.writeLines(lines); err != nil {
			s.log.Warn("could not write default settings", zap.Error(err))
		}
	}

	return lines, nil
}

func initialLines() []string {
	defaults := Default()
	return []string{
		"# Slate preferences",
		"# Values change in-app; hand edits are kept.",
		"",
		keyAskWorkDir + "=" + strconv.FormatBool(defaults.AskWorkDir),
		keyWorkDir + "=",
		keyStartHidden + "=" + strconv.FormatBool(defaults.StartHidden),
	}
}

// writeLines replaces the file through a temp file and rename so a
// crash mid-write never leaves a torn settings file.
func (s *Store) writeLines(lines []string) error {
	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, ".slaterc.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}

	writer := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return err
	}

	success = true
	return nil
}

// setLine updates key in place, preserving an inline comment after the
// value. Returns the lines and whether the key already existed.
func setLine(lines []string, key, value string) ([]string, bool) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 {
			continue
		}

		if strings.TrimSpace(parts[0]) == key {
			oldValue := parts[1]
			if commentIdx := strings.Index(oldValue, "#"); commentIdx >= 0 {
				comment := strings.TrimSpace(oldValue[commentIdx:])
				lines[i] = key + "=" + value + " " + comment
			} else {
				lines[i] = key + "=" + value
			}
			return lines, true
		}
	}

	lines = append(lines, key+"="+value)
	return lines, false
}

func splitKeyValue(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	parts := strings.SplitN(trimmed, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	key = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])

	if strings.HasPrefix(value, `"`) {
		if end := strings.LastIndex(value, `"`); end > 0 {
			return key, value[1:end], true
		}
	}
	if commentIdx := strings.Index(value, " #"); commentIdx >= 0 {
		value = strings.TrimSpace(value[:commentIdx])
	}
	return key, value, true
}

func parseBool(s string, fallback bool) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

// quoteIfNeeded wraps values containing spaces so they round-trip.
func quoteIfNeeded(v string) string {
	if strings.Contains(v, " ") {
		return `"` + v + `"`
	}
	return v
}
