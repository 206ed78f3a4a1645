package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Exists reports whether an options file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}
	return false, nil
}

// Init writes the default options to path. An existing file is kept unless
// force is set.
func Init(path string, force bool) error {
	exists, err := Exists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := json.MarshalIndent(Defaults(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
