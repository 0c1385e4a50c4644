package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Environment is the ordered set of package references declared for one
// platform. It is constructed once per descriptor evaluation and never mutated.
type Environment struct {
	Platform Platform
	Packages []PackageReference
}

// NewEnvironment creates an Environment, preserving package order and dropping
// duplicate references. The input slice is not retained.
func NewEnvironment(platform Platform, packages []PackageReference) Environment {
	seen := make(map[InternedString]bool, len(packages))
	refs := make([]PackageReference, 0, len(packages))
	for _, ref := range packages {
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		refs = append(refs, ref)
	}
	return Environment{Platform: platform, Packages: refs}
}

// PackageNames returns the package names in declaration order.
func (e Environment) PackageNames() []string {
	names := make([]string, len(e.Packages))
	for i, ref := range e.Packages {
		names[i] = ref.String()
	}
	return names
}

// ID computes a deterministic identifier for the environment, suitable as a
// cache key. Two evaluations of the same descriptor for the same platform and
// snapshot always produce the same ID.
func (e Environment) ID(snapshot string) string {
	var builder strings.Builder
	builder.WriteString(snapshot)
	builder.WriteString(";")
	builder.WriteString(e.Platform.String())
	builder.WriteString(";")
	for _, ref := range e.Packages {
		builder.WriteString(ref.String())
		builder.WriteString(";")
	}

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
