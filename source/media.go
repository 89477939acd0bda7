package source

import (
	"mime"
	"strings"
)

// Kind is the body family selected from a Content-Type header.
type Kind int

const (
	KindOther Kind = iota
	KindEmpty
	KindJSON
	KindText
	KindMultipart
	KindForm
	KindYAML
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindMultipart:
		return "multipart"
	case KindForm:
		return "form"
	case KindYAML:
		return "yaml"
	default:
		return "other"
	}
}

// MediaType classifies a raw Content-Type header value. Parameters such as
// charset or boundary are ignored.
func MediaType(contentType string) Kind {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
		mt = strings.ToLower(strings.TrimSpace(mt))
	}
	switch mt {
	case "":
		return KindEmpty
	case "application/json":
		return KindJSON
	case "text/plain":
		return KindText
	case "multipart/form-data":
		return KindMultipart
	case "application/x-www-form-urlencoded":
		return KindForm
	case "application/yaml", "application/x-yaml", "text/yaml":
		return KindYAML
	default:
		return KindOther
	}
}
