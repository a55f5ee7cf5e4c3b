// Package fetchfile resolves and reads external DTD subsets and external
// entities (SPEC_FULL.md §4.6 "External subset resolution"). It supports
// only the local forms a SYSTEM identifier can legally take in this
// parser's scope: a `file://` URI, an absolute filesystem path, or a path
// relative to the referring document's base path. Network URIs
// (http://, ftp://, ...) are rejected — fetching external subsets over
// the network is out of scope (spec.md Non-goals: "network I/O").
package fetchfile

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FetchError reports a structured external-resource resolution failure.
type FetchError struct {
	URI    string
	Detail string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetchfile: %s: %s", e.URI, e.Detail)
}

// Fetch resolves uri against basePath (the path of the document that
// referenced it, "" if the referencing document has no known base; a
// relative uri is joined to that document's directory) and returns its
// contents.
func Fetch(uri, basePath string) ([]byte, error) {
	path, err := resolve(uri, basePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{URI: uri, Detail: err.Error()}
	}
	return data, nil
}

// resolve turns a SYSTEM identifier into a local filesystem path.
func resolve(uri, basePath string) (string, error) {
	if uri == "" {
		return "", &FetchError{URI: uri, Detail: "empty system identifier"}
	}

	if strings.Contains(uri, "://") {
		u, err := url.Parse(uri)
		if err != nil {
			return "", &FetchError{URI: uri, Detail: "malformed URI: " + err.Error()}
		}
		if u.Scheme != "file" {
			return "", &FetchError{URI: uri, Detail: fmt.Sprintf("unsupported URI scheme %q; only file:// and local paths are resolvable", u.Scheme)}
		}
		return u.Path, nil
	}

	if filepath.IsAbs(uri) {
		return uri, nil
	}
	if basePath == "" {
		return uri, nil
	}
	return filepath.Join(filepath.Dir(basePath), uri), nil
}
