package source

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"sort"
)

// File describes one uploaded file: the form field it arrived under, the
// client-supplied file name and the temp file holding its content.
type File struct {
	Field    string
	FullPath string
	TempPath string
}

// SpoolMultipart copies every file part of form into its own temp file under
// dir ("" means os.TempDir()) and returns their descriptors. Fields are
// visited in sorted order and parts in arrival order. A part that cannot be
// stored is skipped and its error joined into the returned error.
func SpoolMultipart(form *multipart.Form, dir string) ([]File, error) {
	if form == nil {
		return nil, nil
	}
	fields := make([]string, 0, len(form.File))
	for f := range form.File {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var (
		files []File
		errs  []error
	)
	for _, field := range fields {
		for _, fh := range form.File[field] {
			tmp, err := spool(fh, dir)
			if err != nil {
				errs = append(errs, fmt.Errorf("source: spooling %s/%s: %w", field, fh.Filename, err))
				continue
			}
			files = append(files, File{Field: field, FullPath: fh.Filename, TempPath: tmp})
		}
	}
	return files, errors.Join(errs...)
}

func spool(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp(dir, "auda-upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
