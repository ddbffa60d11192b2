package mapping

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	rerrors "remapper/internal/errors"
	"remapper/internal/storage"
)

// LoadFile loads and parses a YAML mapping document from path.
func LoadFile(ctx context.Context, fs *storage.Store, path string) (*MappingFile, error) {
	data, err := fs.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, rerrors.Parse(path, 0, "invalid mapping document", err)
	}

	return mf, nil
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	applyDefaults(mf)
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to path.
func WriteFile(ctx context.Context, fs *storage.Store, mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	return fs.Write(ctx, path, data)
}
