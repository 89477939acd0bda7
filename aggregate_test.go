package auda_test

import (
	"os"
	"path/filepath"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/auda"
)

func collect(iss *[]auda.Issue) auda.Options {
	return auda.Options{OnIssue: func(i auda.Issue) { *iss = append(*iss, i) }}
}

func TestAggregate_RoundTrip(t *testing.T) {
	a := auda.New()
	a.Add("a.b.c", "x").Add("name", "Ann").Add("n", 42)

	assert.Equal(t, "x", a.Get("a.b.c"))
	assert.Equal(t, "Ann", a.Get("name"))
	assert.Equal(t, 42, a.Get("n"))
	assert.Equal(t, map[string]any{"b": map[string]any{"c": "x"}}, a.Get("a"))
	assert.Nil(t, a.Get("a.b.missing"))
	assert.Nil(t, a.Get("nope"))
}

func TestAggregate_AppendBuildsOrderedList(t *testing.T) {
	a := auda.New()
	a.Add("list[]", "x").Add("list[]", "y").Add("list[]", "z")

	assert.Equal(t, []any{"x", "y", "z"}, a.Get("list"))
	assert.Equal(t, []any{"x", "y", "z"}, a.Get("list[]"), "trailing [] is a read hint")
}

func TestAggregate_SingletonUnwrap(t *testing.T) {
	a := auda.New()
	a.Add("only[]", "x")
	assert.Equal(t, []any{"x"}, a.Get("only"), "a scalar element keeps its list")

	a.Add("items[].name", "first")
	assert.Equal(t, map[string]any{"name": "first"}, a.Get("items"))

	a.Add("items[].name", "second")
	assert.Equal(t, []any{
		map[string]any{"name": "first"},
		map[string]any{"name": "second"},
	}, a.Get("items"))
}

func TestAggregate_AppendDoesNotShadowKeys(t *testing.T) {
	a := auda.New()
	a.Add("m.1", "a").Add("m[]", "b")

	assert.Equal(t, map[string]any{"1": "a", "2": "b"}, a.Get("m"))
}

func TestAggregate_BracketedPaths(t *testing.T) {
	a := auda.New()
	a.Add("user.address[0].city", "Oslo")
	a.Add("a.[b.c].d", "v")

	assert.Equal(t, "Oslo", a.Get("user.address[0].city"))
	assert.Equal(t, "Oslo", a.Get("user.address.0.city"))
	assert.Equal(t, map[string]any{"address": []any{map[string]any{"city": "Oslo"}}}, a.Get("user"))
	// single list element holding a collection is unwrapped at the top level
	assert.Equal(t, map[string]any{"city": "Oslo"}, a.Get("user.address"))

	assert.Equal(t, map[string]any{"b.c": map[string]any{"d": "v"}}, a.Get("a"))
	assert.Equal(t, "v", a.Get("a.[b.c].d"))
}

func TestAggregate_Protection(t *testing.T) {
	var iss []auda.Issue
	a := auda.New(collect(&iss))

	a.AddProtected("user.role", "admin")
	a.Add("user.role", "root")
	assert.Equal(t, "admin", a.Get("user.role"))
	require.Len(t, iss, 1)
	assert.Equal(t, auda.CodeProtectedSkip, iss[0].Code)
	assert.Equal(t, "user.role", iss[0].Path)

	a.AddProtected("user.role", "owner")
	assert.Equal(t, "owner", a.Get("user.role"))
	assert.True(t, a.GetElement("user.role").Value().Protected())
	assert.Len(t, iss, 1)
}

func TestAggregate_ProtectionOnlyGuardsExactPath(t *testing.T) {
	a := auda.New()
	a.AddProtected("a.b", "keep")
	a.Add("a.c", "other")
	assert.Equal(t, map[string]any{"b": "keep", "c": "other"}, a.Get("a"))

	// replacing the parent wholesale is not a write to the protected path
	a.Add("a", "flat")
	assert.Equal(t, "flat", a.Get("a"))
}

func TestAggregate_ShapeReplacement(t *testing.T) {
	a := auda.New()
	a.Add("a", "x")
	a.Add("a.b", "y")
	assert.Equal(t, map[string]any{"b": "y"}, a.Get("a"))

	a.Add("a", "z")
	assert.Equal(t, "z", a.Get("a"))
	assert.True(t, a.GetElement("a").IsLeaf())
}

func TestAggregate_EmptySegmentReplacesPosition(t *testing.T) {
	a := auda.New()
	a.Add("x.y", "old")
	a.Add("x.", "v")
	assert.Equal(t, "v", a.Get("x"))

	b := auda.New()
	b.Add("", "whole")
	assert.Equal(t, "whole", b.Get(""))
	assert.True(t, b.All().IsLeaf())
}

func TestAggregate_EscapeRewrite(t *testing.T) {
	a := auda.New()
	a.Add("k", "v$$w")
	a.Add("raw", "v$$w", auda.AddOpt{KeepEscapes: true})
	a.AddProtected("p", "$$etc$$passwd")
	a.AddFile("f", "a$$b", "/tmp/x")

	assert.Equal(t, "v/w", a.Get("k"))
	assert.Equal(t, "v$$w", a.Get("raw"))
	assert.Equal(t, "/etc/passwd", a.Get("p"))
	assert.Equal(t, "a$$b", a.Get("f"), "file names are stored untouched")
}

func TestAggregate_CaseFolding(t *testing.T) {
	a := auda.New()
	a.Add("User.Name", "Ann")
	a.Add("Keep.Me", "yes", auda.AddOpt{KeepCase: true})

	assert.Equal(t, "Ann", a.Get("user.name"))
	assert.Equal(t, "Ann", a.Get("USER.NAME"))
	assert.Nil(t, a.Get("Keep.Me"))
	assert.Equal(t, "yes", a.Get("Keep.Me", auda.GetOpt{KeepCase: true}))

	b := auda.New(auda.Options{KeepCase: true})
	b.Add("Mixed", "1")
	assert.Equal(t, "1", b.Get("Mixed"))
	assert.Nil(t, b.Get("mixed"))
}

func TestAggregate_ClearAndAll(t *testing.T) {
	a := auda.New()
	a.Add("a.b", "x").Add("c", "y")
	require.Equal(t, 2, a.All().Len())
	assert.Equal(t, []string{"a", "c"}, a.All().Keys())

	a.Clear()
	assert.Equal(t, 0, a.All().Len())
	assert.Nil(t, a.Get("a.b"))
	assert.Nil(t, a.GetElement("c"))
	assert.Equal(t, map[string]any{}, auda.Flatten(a.All()))
}

func TestAggregate_AddFile(t *testing.T) {
	a := auda.New()
	a.AddFile("Docs[]", "one.pdf", "/tmp/1")
	a.AddFile("Docs[]", "two.pdf", "/tmp/2")

	assert.Nil(t, a.Get("docs"), "file keys keep their case")
	assert.Equal(t, []any{"one.pdf", "two.pdf"}, a.Get("Docs", auda.GetOpt{KeepCase: true}))

	el := a.GetElement("Docs.1", auda.GetOpt{KeepCase: true})
	require.NotNil(t, el)
	p, ok := el.Value().FileTempPath()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/2", p)
	assert.False(t, el.Value().Protected())
}

func TestAggregate_RemoveUploads(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "upload")
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o600))

	a := auda.New()
	a.AddFile("f", "data.txt", p)
	a.AddFile("gone", "x.txt", filepath.Join(dir, "missing"))
	require.NoError(t, a.RemoveUploads())

	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestAggregate_QueryString(t *testing.T) {
	a := auda.New()
	a.AddFromQueryString("?User.Name=Ann+Lee&tags[]=x&tags[]=y&path=a$$b&dup=1&dup=2")

	assert.Equal(t, "Ann Lee", a.Get("user.name"))
	assert.Equal(t, []any{"x", "y"}, a.Get("tags"))
	assert.Equal(t, "a/b", a.Get("path"))
	assert.Equal(t, "2", a.Get("dup"))
}

func TestAggregate_JSONBody(t *testing.T) {
	a := auda.New()
	body := []byte(`{"Name":"x","nested":{"a":1},"path":"a$$b","list":[1,"two"],"user.email":"e@x"}`)
	a.AddFromRequestBody("application/json; charset=utf-8", body, nil)

	assert.Equal(t, "x", a.Get("name"))
	assert.Equal(t, map[string]any{"a": j.Number("1")}, a.Get("nested"))
	assert.Equal(t, "a/b", a.Get("path"))
	assert.Equal(t, []any{j.Number("1"), "two"}, a.Get("list"))
	assert.Equal(t, "e@x", a.Get("user.email"))
	assert.Equal(t, []string{"name", "nested", "path", "list", "user"}, a.All().Keys())
}

func TestAggregate_JSONBodyVariants(t *testing.T) {
	for _, ct := range []string{"text/plain", "", "application/json"} {
		a := auda.New()
		a.AddFromRequestBody(ct, []byte(`{"a":"b"}`), nil)
		assert.Equal(t, "b", a.Get("a"), ct)
	}
}

func TestAggregate_InvalidJSONIsAbsorbed(t *testing.T) {
	for _, body := range []string{`{bad`, `[1,2]`, `"str"`, `{"a":1} trailing`} {
		var iss []auda.Issue
		a := auda.New(collect(&iss))
		a.Add("kept", "yes")
		assert.NotPanics(t, func() { a.AddFromRequestBody("application/json", []byte(body), nil) })
		assert.Equal(t, []string{"kept"}, a.All().Keys(), body)
		require.Len(t, iss, 1, body)
		assert.Equal(t, auda.CodeParseError, iss[0].Code)
	}
}

func TestAggregate_EmptyBodyIsSilent(t *testing.T) {
	var iss []auda.Issue
	a := auda.New(collect(&iss))
	a.AddFromRequestBody("application/json", []byte("  \n"), nil)
	assert.Equal(t, 0, a.All().Len())
	assert.Empty(t, iss)
}

func TestAggregate_YAMLAndFormBodies(t *testing.T) {
	a := auda.New()
	a.AddFromRequestBody("application/yaml", []byte("Title: hello\nmeta:\n  n: 1\n"), nil)
	a.AddFromRequestBody("application/x-www-form-urlencoded", []byte("q=go+lang&tags[]=a"), nil)

	assert.Equal(t, "hello", a.Get("title"))
	assert.Equal(t, map[string]any{"n": 1}, a.Get("meta"))
	assert.Equal(t, "go lang", a.Get("q"))
	assert.Equal(t, []any{"a"}, a.Get("tags"))
}

func TestAggregate_MultipartFiles(t *testing.T) {
	a := auda.New()
	a.AddFromRequestBody("multipart/form-data; boundary=xyz", nil, []auda.File{
		{Field: "Avatar", FullPath: "me.png", TempPath: "/tmp/php1"},
	})

	assert.Equal(t, "me.png", a.Get("Avatar", auda.GetOpt{KeepCase: true}))
	p, ok := a.GetElement("Avatar", auda.GetOpt{KeepCase: true}).Value().FileTempPath()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/php1", p)
}

func TestAggregate_UnknownContentType(t *testing.T) {
	var iss []auda.Issue
	a := auda.New(collect(&iss))
	a.AddFromRequestBody("image/png", []byte(`{"a":"b"}`), nil)

	assert.Equal(t, 0, a.All().Len())
	require.Len(t, iss, 1)
	assert.Equal(t, auda.CodeUnsupportedMediaType, iss[0].Code)
	assert.Equal(t, "image/png", iss[0].Params["content_type"])
	assert.Contains(t, iss[0].Message, "image/png")
}

func TestAggregate_StringAndGetString(t *testing.T) {
	a := auda.New()
	a.Add("a", "1").Add("b.c", "2").Add("n", 3)

	assert.Equal(t, "AUDA=>a=1,b=object,n=3,", a.String())
	s, ok := a.GetString("n")
	assert.True(t, ok)
	assert.Equal(t, "3", s)
	_, ok = a.GetString("b")
	assert.False(t, ok)
}

func TestAggregate_IssuesRecorded(t *testing.T) {
	a := auda.New()
	require.NoError(t, a.Err())

	a.AddProtected("role", "admin")
	a.Add("role", "root")
	a.AddFromRequestBody("application/json", []byte(`{bad`), nil)

	iss := a.Issues()
	require.Len(t, iss, 2)
	assert.Equal(t, auda.CodeProtectedSkip, iss[0].Code)
	assert.Equal(t, auda.CodeParseError, iss[1].Code)

	err := a.Err()
	require.Error(t, err)
	got, ok := auda.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, iss, got)
	assert.Equal(t, "protected_skip at role; parse_error", err.Error())

	a.Clear()
	assert.Empty(t, a.Issues())
	assert.NoError(t, a.Err())
}
