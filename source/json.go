package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// ErrNotObject is returned when a body decodes to something other than an
// object/mapping at the top level.
var ErrNotObject = errors.New("source: top-level value is not an object")

// DecodeJSON decodes a JSON object and returns its members in document
// order. Numbers are kept as json.Number. Trailing data after the object is
// an error.
func DecodeJSON(b []byte) ([]Pair, error) {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("source: decoding json: %w", err)
	}
	if d, ok := tok.(j.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}
	var pairs []Pair
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("source: decoding json: %w", err)
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			break
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: decoding json: expected object key, got %v", tok)
		}
		v, err := nextValue(dec)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: v})
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: decoding json: trailing data after object")
	}
	return pairs, nil
}

func nextValue(dec *j.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("source: decoding json: %w", err)
	}
	return valueFrom(dec, tok)
}

func valueFrom(dec *j.Decoder, tok any) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("source: decoding json: unexpected %q", rune(v))
	case float64:
		return j.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	default:
		// string, bool, json.Number, nil
		return v, nil
	}
}

func decodeObject(dec *j.Decoder) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("source: decoding json: %w", err)
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return m, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: decoding json: expected object key, got %v", tok)
		}
		v, err := nextValue(dec)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func decodeArray(dec *j.Decoder) (any, error) {
	arr := []any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("source: decoding json: %w", err)
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return arr, nil
		}
		v, err := valueFrom(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
