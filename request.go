package auda

import (
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/reoring/auda/source"
)

// FromRequest builds an aggregate from r: the URL query first, then the body.
// It never fails; unreadable bodies and uploads that cannot be spooled are
// reported as issues.
func FromRequest(r *http.Request, opt ...Options) *Aggregate {
	return New(opt...).AddFromRequest(r)
}

// AddFromRequest adds the query string and body of r. Multipart form values
// are added like query pairs and file parts are spooled into
// Options.UploadDir and added with AddFile; callers own those temp files
// (see RemoveUploads).
func (a *Aggregate) AddFromRequest(r *http.Request) *Aggregate {
	if r.URL != nil {
		a.AddFromQueryString(r.URL.RawQuery)
	}
	if r.Body == nil || r.Body == http.NoBody {
		return a
	}
	ct := r.Header.Get("Content-Type")
	limit := a.opt.maxBodyBytes()

	if source.MediaType(ct) == source.KindMultipart {
		r.Body = http.MaxBytesReader(nil, r.Body, limit)
		if err := r.ParseMultipartForm(limit); err != nil {
			a.report(newIssue(CodeBodyRead, "", err))
			return a
		}
		a.addFormValues(r.MultipartForm.Value)
		files, err := source.SpoolMultipart(r.MultipartForm, a.opt.UploadDir)
		if err != nil {
			a.report(newIssue(CodeFileUnavailable, "", err))
		}
		return a.AddFromRequestBody(ct, nil, files)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		a.report(newIssue(CodeBodyRead, "", err))
		return a
	}
	if int64(len(body)) > limit {
		a.report(newIssue(CodeBodyRead, "", errors.New("request body exceeds limit"), "limit", limit))
		return a
	}
	return a.AddFromRequestBody(ct, body, nil)
}

func (a *Aggregate) addFormValues(values map[string][]string) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			a.Add(k, v)
		}
	}
}
