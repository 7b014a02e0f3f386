// Package config loads cmd/scssc's project configuration file, the
// compiler-option equivalents of §6.1 as a `.scssc.toml` a project can
// commit instead of repeating flags on every invocation. Grounded on
// github.com/fredcamaral/slicli's internal/adapters/secondary/config
// (a TOMLLoader wrapping BurntSushi/toml's Decode/Encode over a struct
// tagged with `toml:"..."`), repointed at compiler.Options instead of
// slicli's presentation-server settings.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// File is the decoded shape of `.scssc.toml`.
type File struct {
	Style         string   `toml:"style"`          // nested|expanded|compact|compressed
	Precision     int      `toml:"precision"`
	LoadPaths     []string `toml:"load_paths"`
	SourceMap     string   `toml:"source_map"`     // none|inline|linked
	SourceMapFile string   `toml:"source_map_file"`
	Colors        bool     `toml:"colors"`
	Unicode       bool     `toml:"unicode"`
}

// Default returns scssc's built-in defaults, matching dart-sass's own
// (expanded style, precision 10, no source map).
func Default() File {
	return File{
		Style:     "expanded",
		Precision: 10,
		Colors:    true,
		Unicode:   true,
	}
}

// Load reads and decodes path, returning Default() unchanged if path does
// not exist (a project config file is optional).
func Load(path string) (File, error) {
	f := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return f, nil
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path in TOML form, creating or truncating it.
func Save(path string, f File) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return toml.NewEncoder(out).Encode(f)
}
