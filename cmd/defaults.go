package cmd

import (
	"path/filepath"
	"runtime"

	"github.com/prysmaticlabs/keystore-import/io/file"
)

// DefaultValidatorDir is the default directory keystores are imported into
// and where the validator definitions file is kept.
func DefaultValidatorDir() string {
	// Try to place the validator folder in the user's home dir
	home := file.HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Eth2Validators")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Local", "Eth2Validators")
		} else {
			return filepath.Join(home, ".eth2validators")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}
