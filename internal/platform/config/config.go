package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config resolves every on-disk path from a single data directory so the
// whole tracker can be relocated (or pointed at a temp dir in tests) with
// one flag.
type Config struct {
	DataDir      string
	DBPath       string
	SettingsPath string
	NotifierPath string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".fast")
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "fast.db"),
		SettingsPath: filepath.Join(dataDir, "settings.yaml"),
		NotifierPath: filepath.Join(dataDir, "notifier"),
	}, nil
}
