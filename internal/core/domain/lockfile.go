package domain

// LockfileVersion is the current lockfile schema version.
const LockfileVersion = 1

// Lockfile is the serialized record of resolved package pins. It makes a
// resolution reproducible across machines without re-querying the snapshot.
type Lockfile struct {
	// Version is the lockfile format version, kept for schema migrations.
	Version int `json:"version"`

	// Snapshot is the flake reference the pins were resolved against.
	Snapshot string `json:"snapshot"`

	// Packages maps package names to their resolved pins.
	Packages map[string]ResolvedPackage `json:"packages"`
}

// NewLockfile creates an empty lockfile for the given snapshot.
func NewLockfile(snapshot string) *Lockfile {
	return &Lockfile{
		Version:  LockfileVersion,
		Snapshot: snapshot,
		Packages: make(map[string]ResolvedPackage),
	}
}

// Pin records the resolved package, replacing any previous pin of the same name.
func (l *Lockfile) Pin(pkg ResolvedPackage) {
	l.Packages[pkg.Name.String()] = pkg
}

// Lookup returns the pin for the given package name, if present.
func (l *Lockfile) Lookup(name string) (ResolvedPackage, bool) {
	pkg, ok := l.Packages[name]
	return pkg, ok
}
