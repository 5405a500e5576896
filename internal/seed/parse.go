package seed

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultCatalog []byte

// Parse decodes catalog TOML. It does not validate the contents.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &f, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	f.Source = filepath.Base(path)
	return f, nil
}

// Default returns the built-in catalog.
func Default() *File {
	f, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded catalog: %v", err))
	}
	f.Source = "default.toml"
	return f
}

// Encode renders f as TOML.
func Encode(f *File) ([]byte, error) {
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return data, nil
}
