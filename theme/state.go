package theme

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// stateFile is the on-disk record of the chosen theme.
type stateFile struct {
	Theme Name `yaml:"theme"`
}

// loadState reads the persisted theme. A missing file yields "".
func loadState(path string) (Name, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading theme state: %w", err)
	}

	var s stateFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("parsing theme state: %w", err)
	}
	switch s.Theme {
	case Dark, Light, "":
		return s.Theme, nil
	}
	return "", fmt.Errorf("theme state %s: %w: %q", path, ErrUnknownTheme, s.Theme)
}

func saveState(path string, name Name) error {
	data, err := yaml.Marshal(stateFile{Theme: name})
	if err != nil {
		return fmt.Errorf("marshaling theme state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing theme state: %w", err)
	}
	return nil
}
