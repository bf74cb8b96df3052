package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultDotEnv = ".env"

// LoadDotEnv applies a dotenv file to the process environment without
// overriding variables that are already set. With an empty path the local
// .env is used when present; an explicitly named file must exist.
func LoadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultDotEnv
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if !explicit && errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
