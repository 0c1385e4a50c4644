// Package config provides the manifest loader for shed.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the manifest file shed looks for in the working directory.
const DefaultFilename = "shed.yaml"

// supportedVersions lists the manifest schema versions this build understands.
var supportedVersions = map[string]bool{"": true, "1": true}

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the manifest from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Descriptor, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a manifest from the given path and returns the descriptor.
func Load(path string) (*domain.Descriptor, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var shedfile Shedfile
	if err := yaml.Unmarshal(data, &shedfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	return fromDTO(&shedfile)
}

func fromDTO(shedfile *Shedfile) (*domain.Descriptor, error) {
	if !supportedVersions[shedfile.Version] {
		return nil, zerr.With(zerr.New("unsupported manifest version"), "version", shedfile.Version)
	}

	d := domain.NewDescriptor(shedfile.Snapshot)
	d.Overrides = shedfile.Env

	for id, dto := range shedfile.Platforms {
		if len(dto.Packages) == 0 {
			return nil, zerr.With(zerr.New("platform declares no packages"), "platform", id)
		}

		refs := make([]domain.PackageReference, len(dto.Packages))
		for i, name := range dto.Packages {
			if name == "" {
				return nil, zerr.With(zerr.New("empty package reference"), "platform", id)
			}
			refs[i] = domain.NewPackageReference(name)
		}

		// NewEnvironment preserves declaration order and drops duplicates.
		d.AddEnvironment(domain.NewEnvironment(domain.NewPlatform(id), refs))
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}
