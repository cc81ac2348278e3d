package config

import (
	"errors"
	"os"
	"path/filepath"

	"church-app-go/pkg/logger"
	"github.com/joho/godotenv"
)

const dotEnvName = ".env"

// loadDotEnv walks up from the working directory and loads the first .env it
// finds. Variables already set in the environment win.
func loadDotEnv(log logger.Logger) error {
	path, err := findDotEnv()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("config: no .env file found")
			return nil
		}
		return err
	}

	if err := godotenv.Load(path); err != nil {
		return err
	}
	log.Info("config: loaded .env", "path", path)
	return nil
}

func findDotEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, dotEnvName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
