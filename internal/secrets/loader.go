package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or environment.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
}

// Load returns the resolved secret value from the provided source. When File is
// set it takes precedence over Value. The returned secret is always trimmed. An
// error is returned when neither File nor Value contain a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

// LoadPair resolves two secrets that are only meaningful together, such as a
// two-factor shared-secret check. Both failures are reported at once.
func LoadPair(first, second Source) (string, string, error) {
	one, errOne := Load(first)
	two, errTwo := Load(second)
	if err := errors.Join(errOne, errTwo); err != nil {
		return "", "", err
	}
	if one == two {
		return "", "", fmt.Errorf("%s and %s must differ", nameOf(first), nameOf(second))
	}
	return one, two, nil
}

func nameOf(src Source) string {
	if name := strings.TrimSpace(src.Name); name != "" {
		return name
	}
	return "secret"
}
