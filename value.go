package auda

import "fmt"

// Value is a terminal entry of the aggregate: the stored value, its protection
// flag and, for uploads, the temp path of the spooled file.
type Value struct {
	protected bool
	raw       any
	tempPath  string
}

// NewValue wraps raw in a Value.
func NewValue(protected bool, raw any) *Value {
	return &Value{protected: protected, raw: raw}
}

// Protected reports whether later non-protected writes to the same path are ignored.
func (v *Value) Protected() bool { return v.protected }

// SetProtected changes the protection flag.
func (v *Value) SetProtected(protected bool) { v.protected = protected }

// Raw returns the stored value: a string for query and form input, the decoded
// JSON/YAML value otherwise.
func (v *Value) Raw() any { return v.raw }

// SetRaw replaces the stored value.
func (v *Value) SetRaw(raw any) { v.raw = raw }

// FileTempPath returns the temp path attached by AddFile.
func (v *Value) FileTempPath() (string, bool) { return v.tempPath, v.tempPath != "" }

// SetFileTempPath attaches the temp path of a spooled upload.
func (v *Value) SetFileTempPath(p string) { v.tempPath = p }

// String renders the stored value; nil renders as "".
func (v *Value) String() string {
	switch x := v.raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
