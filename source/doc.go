// Package source holds the collaborators that turn raw request input into
// (key, value) pairs and upload descriptors for an aggregate: URL query
// strings, JSON, YAML and urlencoded bodies, and multipart file parts.
//
// Decoders here return errors; deciding to absorb them is the caller's job.
package source

// Pair is one decoded top-level (key, value) entry. Value is a string for
// query and form input and a decoded JSON/YAML value (map[string]any, []any,
// json.Number, string, bool or nil) for bodies.
type Pair struct {
	Key   string
	Value any
}
