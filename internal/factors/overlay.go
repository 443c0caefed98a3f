package factors

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedSchemaConstraint is the semver range of factor file schemas this
// build can read.
const SupportedSchemaConstraint = ">= 1.0.0, < 2.0.0"

// OverlayFile is the on-disk shape of a factor overlay.
//
// Overlays let a buyer program ship updated or regional factors without a new
// binary. Overlay factors replace built-in factors key by key.
type OverlayFile struct {
	// SchemaVersion declares the file layout version, e.g. "1.0.0".
	SchemaVersion string `yaml:"schema_version"`

	// Factors are the factors to add or override.
	Factors []Factor `yaml:"factors"`
}

// LoadOverlay reads and validates a factor overlay file.
func LoadOverlay(path string) ([]Factor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor overlay: %w", err)
	}

	var file OverlayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing factor overlay %s: %w", path, err)
	}

	if err := checkSchemaVersion(file.SchemaVersion); err != nil {
		return nil, err
	}

	for _, f := range file.Factors {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("factor overlay %s: %w", path, err)
		}
	}

	return file.Factors, nil
}

// checkSchemaVersion validates the declared schema version against the
// supported constraint. An empty version is rejected so old hand-written
// files fail loudly instead of being misread.
func checkSchemaVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}

	constraint, err := semver.NewConstraint(SupportedSchemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedSchema, version, SupportedSchemaConstraint)
	}

	return nil
}
