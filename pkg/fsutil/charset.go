package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for a charset name the IANA index does not
// know or cannot convert.
var ErrUnknownCharset = errors.New("unknown charset")

// IsUTF8Charset reports whether name selects UTF-8, the default.
func IsUTF8Charset(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

// LookupCharset resolves an IANA charset name.
func LookupCharset(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		enc, err = ianaindex.IANA.Encoding(name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownCharset, name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %s: no converter", ErrUnknownCharset, name)
	}
	return enc, nil
}

// decode converts content from the named charset to UTF-8.
func decode(content []byte, name string) ([]byte, error) {
	if IsUTF8Charset(name) {
		return content, nil
	}
	enc, err := LookupCharset(name)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode from %s: %w", name, err)
	}
	return out, nil
}

// encode converts UTF-8 content back to the named charset.
func encode(content []byte, name string) ([]byte, error) {
	if IsUTF8Charset(name) {
		return content, nil
	}
	enc, err := LookupCharset(name)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), enc.NewEncoder()))
	if err != nil {
		return nil, fmt.Errorf("encode to %s: %w", name, err)
	}
	return out, nil
}
