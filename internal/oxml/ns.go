// Package oxml holds the namespace-prefix bookkeeping shared by every
// component that reads or writes an OOXML part: the template emitter, the
// renderer, the validator and the fixer.
package oxml

import (
	"fmt"
	"strings"
)

// Nsmap maps namespace prefixes to their URIs for every namespace this
// compiler emits or recognizes when reading a .docx part.
var Nsmap = map[string]string{
	"w":   "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	"r":   "http://schemas.openxmlformats.org/officeDocument/2006/relationships",
	"w14": "http://schemas.microsoft.com/office/word/2010/wordml",
	"cp":  "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
	"dc":  "http://purl.org/dc/elements/1.1/",
	"ct":  "http://schemas.openxmlformats.org/package/2006/content-types",
	"rel": "http://schemas.openxmlformats.org/package/2006/relationships",
}

// Pfxmap is the reverse mapping of URI to prefix.
var Pfxmap map[string]string

func init() {
	Pfxmap = make(map[string]string, len(Nsmap))
	for pfx, uri := range Nsmap {
		Pfxmap[uri] = pfx
	}
}

// TryQn converts a namespace-prefixed tag such as "w:p" to Clark notation
// ("{http://...}p"). It returns an error on an unknown prefix instead of
// panicking, for use with spec-supplied or otherwise untrusted tag names.
func TryQn(tag string) (string, error) {
	prefix, local, ok := strings.Cut(tag, ":")
	if !ok {
		return tag, nil
	}
	uri, exists := Nsmap[prefix]
	if !exists {
		return "", fmt.Errorf("oxml: unknown namespace prefix %q in tag %q", prefix, tag)
	}
	return "{" + uri + "}" + local, nil
}

// Qn converts a namespace-prefixed tag to Clark notation and panics on an
// unknown prefix. Only safe for compile-time-constant tags such as "w:p".
func Qn(tag string) string {
	s, err := TryQn(tag)
	if err != nil {
		panic(err)
	}
	return s
}

// Split breaks "w:p" into its prefix and local parts.
func Split(tag string) (prefix, local string) {
	prefix, local, _ = strings.Cut(tag, ":")
	return prefix, local
}
