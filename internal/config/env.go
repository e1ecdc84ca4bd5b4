package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Env resolves environment overrides. Process variables win over values
// read from the .env file.
type Env struct {
	file   map[string]string
	lookup func(string) (string, bool)
}

// LoadEnv reads the optional .env file at path.
func LoadEnv(path string) (Env, error) {
	env := Env{lookup: os.LookupEnv}
	if path == "" {
		return env, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return Env{}, fmt.Errorf("failed to stat env file: %w", err)
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return Env{}, fmt.Errorf("failed to read env file: %w", err)
	}
	env.file = vars
	return env, nil
}

// MapEnv builds an Env from fixed values only.
func MapEnv(vars map[string]string) Env {
	return Env{file: vars}
}

// Lookup returns the value of key.
func (e Env) Lookup(key string) (string, bool) {
	if e.lookup != nil {
		if v, ok := e.lookup(key); ok {
			return v, true
		}
	}
	v, ok := e.file[key]
	return v, ok
}
