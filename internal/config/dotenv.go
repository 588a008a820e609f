package config

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

// DotEnvFile is the optional local environment file.
const DotEnvFile = ".env"

// loadDotEnv exports the variables of path that are not already set.
// A missing file is not an error.
func loadDotEnv(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	env, err := gotenv.StrictParse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for key, value := range env {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to export %s: %w", key, err)
		}
	}
	return nil
}
