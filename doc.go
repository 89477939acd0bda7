// Package auda builds a single nested key/value aggregate from request inputs.
//
// It provides:
//
// - A dotted/bracketed path syntax (user.address[0].city, tags[], a.[b.c]) for addressing nested positions
// - Last-write-wins merging, except for protected entries which cannot be downgraded by later writes
// - Collaborators for query strings, JSON/YAML/form bodies and uploaded files (see source/)
// - HTTP glue: FromRequest plus net/http, gin and echo middleware (see middleware/)
//
// Design policy:
// - Keep only public APIs in the root package; decoding collaborators live under source/.
// - Writes never fail. Malformed input, unknown content types and protected overwrites are absorbed and
//   reported through Options.OnIssue and Options.Logger as Issues.
// - An Aggregate is owned by one request; it does no locking.
//
// Typical usage:
//
//	a := auda.New()
//	a.AddFromQueryString("user.name=Ann&tags[]=x&tags[]=y")
//	a.AddProtected("user.role", "admin")
//	a.Add("user.role", "root") // skipped: user.role is protected
//
//	a.Get("user")      // map[string]any{"name": "Ann", "role": "admin"}
//	a.Get("tags")      // []any{"x", "y"}
//	a.GetElement("user.role").Value().Protected() // true
package auda
