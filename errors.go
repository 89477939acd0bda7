package auda

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/auda/i18n"
)

// Issue codes reported through Options.OnIssue.
const (
	CodeParseError           = "parse_error"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodeProtectedSkip        = "protected_skip"
	CodeBodyRead             = "body_read"
	CodeFileUnavailable      = "file_unavailable"
)

// Issue is a diagnostic produced while building an aggregate. Issues never
// change the outcome of a write; they only explain it.
type Issue struct {
	Path    string // Dotted key the issue relates to; empty for whole-body issues.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"content_type": "image/png"})
	// for i18n and logging.
	Params map[string]any
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Code
	}
	return fmt.Sprintf("%s at %s", i.Code, i.Path)
}

func (i Issue) Unwrap() error { return i.Cause }

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var one Issue
	if errors.As(err, &one) {
		return Issues{one}, true
	}
	return nil, false
}

// newIssue builds an Issue whose message comes from the current translator.
func newIssue(code, path string, cause error, kv ...any) Issue {
	params := map[string]any{}
	data := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		params[k] = kv[i+1]
		data[k] = fmt.Sprint(kv[i+1])
	}
	return Issue{Path: path, Code: code, Message: i18n.Message(code, data), Cause: cause, Params: params}
}
