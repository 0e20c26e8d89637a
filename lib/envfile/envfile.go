package envfile

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Upsert sets the given keys in the dotenv file at path, keeping every other
// entry. The file is created if it does not exist.
func Upsert(path string, values map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read env file '%s': %w", path, err)
		}
		env = map[string]string{}
	}
	for k, v := range values {
		env[k] = v
	}
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write env file '%s': %w", path, err)
	}
	return nil
}
