package descriptor

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes an application descriptor document from YAML (or JSON,
// which is a YAML subset) and validates it.
func Parse(data []byte) (*Application, error) {
	var app Application
	if err := yaml.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor document: %w", err)
	}
	if err := Validate(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// LoadFile reads and parses an application descriptor document from disk.
func LoadFile(path string) (*Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file %q: %w", path, err)
	}
	app, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("descriptor file %q: %w", path, err)
	}
	return app, nil
}

// Validate checks structural constraints on a described application:
// required fields, and uniqueness of the (interface, class) pair among the
// admin objects of each bundle. Interface names alone may repeat across
// admin objects with different classes.
func Validate(app *Application) error {
	if err := validate.Struct(app); err != nil {
		return fmt.Errorf("invalid descriptor: %w", err)
	}

	for _, b := range app.Bundles {
		if err := validateBundle(b); err != nil {
			return err
		}
	}
	return nil
}

func validateBundle(b *Bundle) error {
	type key struct{ intf, class string }
	seen := make(map[key]struct{}, len(b.AdminObjects))
	for _, ao := range b.AdminObjects {
		k := key{ao.InterfaceName, ao.ClassName}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("bundle %q: duplicate admin object (interface=%q, class=%q)",
				b.Name, ao.InterfaceName, ao.ClassName)
		}
		seen[k] = struct{}{}
	}

	for _, ext := range b.Extensions {
		if err := validateBundle(ext); err != nil {
			return err
		}
	}
	return nil
}
