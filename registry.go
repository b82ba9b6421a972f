package govhdl

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk form of the array-type registry: a mapping
// with a single "arrays" key listing type names. YAML also accepts the
// JSON-style and single-quoted mappings older tools wrote.
type registryFile struct {
	Arrays []string `yaml:"arrays,flow"`
}

// SaveArrayTypes writes the known array type names to a registry file,
// replacing any previous contents.
func (e *Extractor) SaveArrayTypes(path string) error {
	data, err := yaml.Marshal(registryFile{Arrays: e.ArrayTypes()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadArrayTypes merges the names from a registry file into the known
// array types. A file that exists but cannot be parsed is treated as an
// empty registry, not an error; I/O failures are returned.
func (e *Extractor) LoadArrayTypes(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var reg registryFile
	if err := yaml.Unmarshal(content, &reg); err != nil {
		e.Log(slog.LevelDebug, "unreadable array-type registry ignored",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}
	e.AddArrayTypes(reg.Arrays...)
	return nil
}
