package paths

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.catchup.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".catchup")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// LogDir returns the log directory.
func LogDir() string {
	return filepath.Join(BaseDir(), "logs")
}

// LogPath returns the application log file path.
func LogPath() string {
	return filepath.Join(LogDir(), "catchup.log")
}

// HistoryDBPath returns the app-owned summary history database path.
func HistoryDBPath() string {
	return filepath.Join(BaseDir(), "history.db")
}

// DefaultChatDBPath returns the macOS Messages database location.
func DefaultChatDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "Messages", "chat.db")
}

// EnsureBase creates the app directory tree with proper permissions.
func EnsureBase() error {
	for _, d := range []string{BaseDir(), LogDir()} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
