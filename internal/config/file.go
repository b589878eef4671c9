package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// File is the on-disk configuration consumed by the CLI. It bundles the
// default poster settings, optional named profiles with series assignments,
// and the host hardware decode options.
type File struct {
	Poster      PosterSettings            `toml:"poster"`
	Profiles    map[string]PosterSettings `toml:"profiles"`
	Assignments []Assignment              `toml:"assignments"`
	Encoding    EncodingOptions           `toml:"encoding"`
}

// Load reads and validates a TOML configuration file. Settings omitted from
// the file keep their defaults.
func Load(path string) (*File, error) {
	f := &File{
		Poster:   DefaultPosterSettings(),
		Encoding: DefaultEncodingOptions(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if err := f.Poster.Validate(); err != nil {
		return nil, err
	}
	for name := range f.Profiles {
		p := f.Profiles[name]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}

	return f, nil
}

// NewResolver builds a resolver from the file's profiles and
// assignments.
func (f *File) NewResolver() *Resolver {
	r := NewResolver()
	r.SetDefault(f.Poster)
	for name, p := range f.Profiles {
		r.SetProfile(name, p)
	}
	r.Assign(f.Assignments)
	return r
}

// SettingsHash returns a stable hash of the settings. The host uses it to
// decide whether an episode needs reprocessing after configuration changes.
func SettingsHash(s PosterSettings) string {
	data, err := toml.Marshal(s)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
