package nix

import "time"

// buildResults is the JSON shape of `nix build --json` output.
type buildResults []struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}

// flakeMetadata is the JSON shape of `nix flake metadata --json`, trimmed to
// the locked revision we care about.
type flakeMetadata struct {
	Locked struct {
		Rev          string `json:"rev"`
		LastModified int64  `json:"lastModified"`
	} `json:"locked"`
}

// cacheEntry represents a cached resolution result for one package.
type cacheEntry struct {
	Name      string              `json:"name"`
	Version   string              `json:"version"`
	Snapshot  string              `json:"snapshot"`
	Platforms map[string]pinCache `json:"platforms"`
	Timestamp time.Time           `json:"timestamp"`
}

// pinCache represents cached pin data for one platform.
type pinCache struct {
	AttrPath  string `json:"attr_path"`
	Rev       string `json:"rev"`
	StorePath string `json:"store_path,omitempty"`
}

// devEnvOutput is the JSON shape of `nix print-dev-env --json`.
type devEnvOutput struct {
	Variables map[string]devEnvVariable `json:"variables"`
}

type devEnvVariable struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}
