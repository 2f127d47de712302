package cache

import "strings"

// Keyer builds cache keys for each kind of cached value.
type Keyer interface {
	// ReportKey identifies the canned query report for a graph and question set.
	ReportKey(graphHash string, questions any) string

	// ArtifactKey identifies a rendered image of a graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered image.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Layout string  `json:"layout"`
	Seed   uint64  `json:"seed"`
	Title  string  `json:"title"`
	Scale  float64 `json:"scale"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(graphHash string, questions any) string {
	return hashKey("report", graphHash, questions)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// KeyType returns the kind prefix of a key built by DefaultKeyer, ignoring
// any scope prefix, or "other" for foreign keys.
func KeyType(key string) string {
	for _, kind := range []string{"report", "artifact"} {
		if strings.Contains(key, kind+":") {
			return kind
		}
	}
	return "other"
}
