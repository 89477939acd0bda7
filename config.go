package auda

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxBodyBytes bounds how much of a request body FromRequest reads.
const DefaultMaxBodyBytes int64 = 10 << 20

// Options configures an Aggregate. The zero value gives the default
// behavior: keys are lower-cased and "$$" in string values becomes "/".
type Options struct {
	// KeepCase disables lower-casing of keys for every write and read.
	KeepCase bool `yaml:"keep_case"`
	// KeepEscapes disables the "$$" -> "/" rewrite of string values.
	KeepEscapes bool `yaml:"keep_escapes"`
	// MaxBodyBytes limits request bodies read by FromRequest (0 = DefaultMaxBodyBytes).
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// UploadDir receives spooled multipart uploads ("" = os.TempDir()).
	UploadDir string `yaml:"upload_dir"`

	// Logger receives diagnostics at debug level; nil discards them.
	Logger *slog.Logger `yaml:"-"`
	// OnIssue, when set, is called for every diagnostic.
	OnIssue func(Issue) `yaml:"-"`
}

// AddOpt adjusts a single write. The zero value keeps the defaults.
type AddOpt struct {
	KeepCase    bool
	KeepEscapes bool
}

// GetOpt adjusts a single read.
type GetOpt struct {
	KeepCase bool
}

// DefaultOptions returns the recommended options for HTTP request handling.
func DefaultOptions() Options {
	return Options{MaxBodyBytes: DefaultMaxBodyBytes}
}

// ParseOptions decodes YAML options. Unknown keys are rejected.
func ParseOptions(data []byte) (Options, error) {
	opt := DefaultOptions()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opt); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("auda: decoding options: %w", err)
	}
	if opt.MaxBodyBytes < 0 {
		return Options{}, fmt.Errorf("auda: max_body_bytes must not be negative, got %d", opt.MaxBodyBytes)
	}
	return opt, nil
}

// LoadOptions reads YAML options from path.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("auda: reading options: %w", err)
	}
	return ParseOptions(data)
}

func (o Options) maxBodyBytes() int64 {
	if o.MaxBodyBytes > 0 {
		return o.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func mergeAddOpt(base Options, opt []AddOpt) AddOpt {
	out := AddOpt{KeepCase: base.KeepCase, KeepEscapes: base.KeepEscapes}
	for _, o := range opt {
		out.KeepCase = out.KeepCase || o.KeepCase
		out.KeepEscapes = out.KeepEscapes || o.KeepEscapes
	}
	return out
}

func mergeGetOpt(base Options, opt []GetOpt) GetOpt {
	out := GetOpt{KeepCase: base.KeepCase}
	for _, o := range opt {
		out.KeepCase = out.KeepCase || o.KeepCase
	}
	return out
}
