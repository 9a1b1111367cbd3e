package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type AdminSeed struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type adminSeedFile struct {
	Admins []AdminSeed `yaml:"admins"`
}

// LoadAdminSeed reads console operators from a YAML file. ${VAR} references
// are expanded from the environment so passwords need not be committed.
func LoadAdminSeed(path string) ([]AdminSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var file adminSeedFile
	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	for i, a := range file.Admins {
		if a.Email == "" {
			return nil, fmt.Errorf("admin at index %d missing email", i)
		}
		if a.Password == "" {
			return nil, fmt.Errorf("admin %s missing password", a.Email)
		}
	}
	return file.Admins, nil
}
