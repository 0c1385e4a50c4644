package config

// Shedfile represents the structure of the shed.yaml manifest.
type Shedfile struct {
	Version   string                 `yaml:"version"`
	Snapshot  string                 `yaml:"snapshot"`
	Platforms map[string]PlatformDTO `yaml:"platforms"`
	Env       map[string]string      `yaml:"env"`
}

// PlatformDTO represents one platform entry in the manifest.
type PlatformDTO struct {
	Packages []string `yaml:"packages"`
}
