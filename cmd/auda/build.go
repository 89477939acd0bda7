package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/auda"
	"github.com/reoring/auda/i18n"
)

type buildFlags struct {
	query       string
	body        string
	contentType string
	set         []string
	protect     []string
	get         string
	format      string
	config      string
	keepCase    bool
	keepEscapes bool
	lang        string
	verbose     bool
	strict      bool
}

func newBuildCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Aggregate a query string, a body and explicit key=value writes, then print the result",
		Example: `  auda build --query 'user.name=Ann&tags[]=x&tags[]=y'
  auda build --body req.json --content-type application/json --protect user.role=admin --get user
  echo 'a: 1' | auda build --body - --content-type application/yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.query, "query", "q", "", "URL-encoded query string")
	fl.StringVarP(&f.body, "body", "b", "", "request body file (- for stdin)")
	fl.StringVarP(&f.contentType, "content-type", "t", "application/json", "content type of --body")
	fl.StringArrayVar(&f.set, "set", nil, "key=value write (repeatable)")
	fl.StringArrayVar(&f.protect, "protect", nil, "protected key=value write (repeatable)")
	fl.StringVarP(&f.get, "get", "g", "", "print only the value at this path")
	fl.StringVarP(&f.format, "format", "f", "json", "output format: json or yaml")
	fl.StringVar(&f.config, "config", "", "YAML options file")
	fl.BoolVar(&f.keepCase, "keep-case", false, "do not lower-case keys")
	fl.BoolVar(&f.keepEscapes, "keep-escapes", false, `do not rewrite "$$" to "/"`)
	fl.StringVar(&f.lang, "lang", "en", "diagnostic language (en, ja)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log diagnostics to stderr")
	fl.BoolVar(&f.strict, "strict", false, "fail when any input was skipped or could not be decoded")
	return cmd
}

func runBuild(stdin io.Reader, stdout, stderr io.Writer, f buildFlags) error {
	if f.format != "json" && f.format != "yaml" {
		return fmt.Errorf("unknown format %q (want json or yaml)", f.format)
	}
	opt := auda.DefaultOptions()
	if f.config != "" {
		var err error
		if opt, err = auda.LoadOptions(f.config); err != nil {
			return err
		}
	}
	opt.KeepCase = opt.KeepCase || f.keepCase
	opt.KeepEscapes = opt.KeepEscapes || f.keepEscapes
	i18n.SetLanguage(f.lang)
	if f.verbose {
		opt.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	a := auda.New(opt)
	a.AddFromQueryString(f.query)
	if f.body != "" {
		body, err := readBody(stdin, f.body)
		if err != nil {
			return err
		}
		a.AddFromRequestBody(f.contentType, body, nil)
	}
	for _, kv := range f.set {
		k, v, err := splitAssignment(kv)
		if err != nil {
			return err
		}
		a.Add(k, v)
	}
	for _, kv := range f.protect {
		k, v, err := splitAssignment(kv)
		if err != nil {
			return err
		}
		a.AddProtected(k, v)
	}

	if f.strict {
		if err := a.Err(); err != nil {
			return fmt.Errorf("strict: %w", err)
		}
	}

	var out any
	if f.get != "" {
		out = a.Get(f.get)
	} else {
		out = auda.Flatten(a.All())
	}
	return render(stdout, f.format, out)
}

func readBody(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return b, nil
}

func splitAssignment(kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	if !ok {
		return "", "", fmt.Errorf("expected key=value, got %q", kv)
	}
	return k, v, nil
}

func render(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	b, err := j.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
