package auda

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/reoring/auda/source"
)

// File describes an uploaded file handed to AddFromRequestBody.
type File = source.File

// Aggregate owns the nested tree built from every input of one request.
// It is not safe for concurrent use; build one per request.
type Aggregate struct {
	root   *Node
	opt    Options
	issues Issues
}

// New returns an empty aggregate. Only the first Options value is used.
func New(opt ...Options) *Aggregate {
	a := &Aggregate{}
	if len(opt) > 0 {
		a.opt = opt[0]
	}
	a.Clear()
	return a
}

// Add stores raw under the dotted key name. By default the key is
// lower-cased and every "$$" in a string value becomes "/", so an encoded
// separator cannot sneak in as a literal one. A write to a protected leaf is
// skipped.
func (a *Aggregate) Add(name string, raw any, opt ...AddOpt) *Aggregate {
	a.put(name, raw, false, mergeAddOpt(a.opt, opt))
	return a
}

// AddProtected is Add for values that later non-protected writes to the same
// path must not replace.
func (a *Aggregate) AddProtected(name string, raw any, opt ...AddOpt) *Aggregate {
	a.put(name, raw, true, mergeAddOpt(a.opt, opt))
	return a
}

// AddFile stores raw (usually the client file name) with tempPath attached.
// The key keeps its case and the value is stored untouched.
func (a *Aggregate) AddFile(name string, raw any, tempPath string) *Aggregate {
	v := NewValue(false, raw)
	v.SetFileTempPath(tempPath)
	a.store(ParsePath(name, false), v)
	return a
}

// AddFromQueryString adds every pair of a URL-encoded query string in order.
func (a *Aggregate) AddFromQueryString(query string) *Aggregate {
	for _, p := range source.Query(query) {
		a.Add(p.Key, p.Value)
	}
	return a
}

// AddFromRequestBody adds the top-level members of body according to
// contentType. JSON, text/plain and an empty content type are decoded as a
// JSON object, YAML as a mapping and urlencoded bodies as a query string.
// For multipart bodies each of files is added with AddFile. A body that does
// not decode to an object adds nothing, and so does an unknown content type;
// both are reported as issues only.
func (a *Aggregate) AddFromRequestBody(contentType string, body []byte, files []File, opt ...AddOpt) *Aggregate {
	switch source.MediaType(contentType) {
	case source.KindJSON, source.KindText, source.KindEmpty:
		a.addDecoded(body, source.DecodeJSON, opt)
	case source.KindYAML:
		a.addDecoded(body, source.DecodeYAML, opt)
	case source.KindForm:
		for _, p := range source.Query(string(body)) {
			a.Add(p.Key, p.Value, opt...)
		}
	case source.KindMultipart:
		for _, f := range files {
			a.AddFile(f.Field, f.FullPath, f.TempPath)
		}
	default:
		a.report(newIssue(CodeUnsupportedMediaType, "", nil, "content_type", contentType))
	}
	return a
}

func (a *Aggregate) addDecoded(body []byte, decode func([]byte) ([]source.Pair, error), opt []AddOpt) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return
	}
	pairs, err := decode(body)
	if err != nil {
		a.report(newIssue(CodeParseError, "", err))
		return
	}
	for _, p := range pairs {
		a.Add(p.Key, p.Value, opt...)
	}
}

// Get returns the plain value at name: the stored value for a leaf, the
// flattened structure for a collection, nil when any segment is missing.
// A trailing "[]" on name is accepted and ignored.
func (a *Aggregate) Get(name string, opt ...GetOpt) any {
	n := a.GetElement(name, opt...)
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return n.value.raw
	}
	return Flatten(n)
}

// GetString returns the string form of the leaf at name.
func (a *Aggregate) GetString(name string, opt ...GetOpt) (string, bool) {
	n := a.GetElement(name, opt...)
	if !n.IsLeaf() {
		return "", false
	}
	return n.value.String(), true
}

// GetElement returns the node at name without flattening it, so callers can
// inspect protection and file metadata. It returns nil when missing.
func (a *Aggregate) GetElement(name string, opt ...GetOpt) *Node {
	o := mergeGetOpt(a.opt, opt)
	return lookup(a.root, lookupPath(name, !o.KeepCase))
}

// All returns the root node as is.
func (a *Aggregate) All() *Node { return a.root }

// Clear drops everything stored so far, including recorded issues.
func (a *Aggregate) Clear() {
	a.root = newCollection()
	a.issues = nil
}

// Issues returns the diagnostics recorded since New or the last Clear.
func (a *Aggregate) Issues() Issues { return append(Issues(nil), a.issues...) }

// Err returns the recorded issues as an error, or nil when there are none.
// Writes have already been applied (or skipped) either way; Err only lets
// strict callers refuse an aggregate built from imperfect input.
func (a *Aggregate) Err() error {
	if len(a.issues) == 0 {
		return nil
	}
	return a.Issues()
}

// RemoveUploads deletes the temp files attached by AddFile.
func (a *Aggregate) RemoveUploads() error {
	var errs []error
	walkLeaves(a.root, func(v *Value) {
		if p, ok := v.FileTempPath(); ok {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

// String summarizes the top level as "AUDA=>name=value,name=object,".
func (a *Aggregate) String() string {
	var b strings.Builder
	b.WriteString("AUDA=>")
	if a.root.IsLeaf() {
		b.WriteString("=" + a.root.value.String() + ",")
		return b.String()
	}
	for _, k := range a.root.keys {
		b.WriteString(k + "=")
		if c := a.root.kids[k]; c.IsLeaf() {
			b.WriteString(c.value.String())
		} else {
			b.WriteString("object")
		}
		b.WriteByte(',')
	}
	return b.String()
}

func (a *Aggregate) put(name string, raw any, protected bool, o AddOpt) {
	if s, ok := raw.(string); ok && !o.KeepEscapes {
		raw = strings.ReplaceAll(s, "$$", "/")
	}
	a.store(ParsePath(name, !o.KeepCase), NewValue(protected, raw))
}

func (a *Aggregate) store(p Path, v *Value) {
	if !setNested(a.root, p, v) {
		a.report(newIssue(CodeProtectedSkip, p.String(), nil))
	}
}

func (a *Aggregate) report(iss Issue) {
	a.issues = append(a.issues, iss)
	attrs := []slog.Attr{slog.String("code", iss.Code)}
	if iss.Path != "" {
		attrs = append(attrs, slog.String("path", iss.Path))
	}
	if iss.Cause != nil {
		attrs = append(attrs, slog.Any("error", iss.Cause))
	}
	a.opt.logger().LogAttrs(context.Background(), slog.LevelDebug, iss.Message, attrs...)
	if a.opt.OnIssue != nil {
		a.opt.OnIssue(iss)
	}
}

func walkLeaves(n *Node, fn func(*Value)) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		fn(n.value)
		return
	}
	for _, k := range n.keys {
		walkLeaves(n.kids[k], fn)
	}
}
