package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const AppName = "emoji-gallery"

func ConfigFilePath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName, "config.yaml"), nil
	case "linux":
		return filepath.Join("/etc", AppName, "config.yaml"), nil
	case "darwin":
		return filepath.Join("/Library/Application Support", AppName, "config.yaml"), nil
	default:
		return "", errors.New("unsupported OS for machine-wide config")
	}
}

// UserConfigFilePath is consulted before the machine-wide file.
func UserConfigFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}
