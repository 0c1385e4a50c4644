package ports

// Verifier defines the interface for verifying materialized store paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// VerifyStorePaths checks that every store path exists on disk.
	// Returns the first missing path, if any.
	VerifyStorePaths(paths []string) (missing string, ok bool, err error)
}
