// Package docpkg implements the OOXML physical package: a .docx file is a
// zip archive of named XML (and binary) parts. Package keeps those parts as
// an ordered map of archive path to byte buffer, the same model the Python
// original's utils/ooxml.DocxPackage uses, rather than reconstructing the
// full OPC relationship graph that a from-scratch word processor needs.
package docpkg

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/beevik/etree"
)

// xmlProcInst is the declaration written at the top of every XML part this
// compiler emits or rewrites, matching every OOXML part Word itself writes.
const xmlProcInst = `version="1.0" encoding="UTF-8" standalone="yes"`

// Package is an in-memory .docx archive: an ordered set of member paths
// ("word/document.xml", "word/styles.xml", "[Content_Types].xml", ...) each
// holding the raw bytes of that archive entry.
type Package struct {
	order   []string
	members map[string][]byte
}

// New returns an empty package.
func New() *Package {
	return &Package{members: make(map[string][]byte)}
}

// Open reads a .docx archive from r.
func Open(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("docpkg: open: %w", err)
	}
	pkg := New()
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("docpkg: open member %q: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("docpkg: read member %q: %w", f.Name, err)
		}
		pkg.Set(f.Name, data)
	}
	return pkg, nil
}

// OpenBytes reads a .docx archive from an in-memory byte slice.
func OpenBytes(data []byte) (*Package, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// OpenFile reads a .docx archive from disk.
func OpenFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docpkg: open file %q: %w", path, err)
	}
	return OpenBytes(data)
}

// Has reports whether a member exists.
func (p *Package) Has(name string) bool {
	_, ok := p.members[name]
	return ok
}

// Get returns the raw bytes of a member, or an error if it is absent.
func (p *Package) Get(name string) ([]byte, error) {
	data, ok := p.members[name]
	if !ok {
		return nil, fmt.Errorf("docpkg: no such member %q", name)
	}
	return data, nil
}

// Set writes (or overwrites) a member's raw bytes, appending it to the
// member order the first time it is seen.
func (p *Package) Set(name string, data []byte) {
	if _, exists := p.members[name]; !exists {
		p.order = append(p.order, name)
	}
	p.members[name] = data
}

// EnsureMember writes a member's bytes only if it does not already exist,
// leaving an existing member untouched. Used by the template emitter (C5)
// when layering generated parts onto a package that may already carry them.
func (p *Package) EnsureMember(name string, data []byte) {
	if p.Has(name) {
		return
	}
	p.Set(name, data)
}

// Delete removes a member, if present.
func (p *Package) Delete(name string) {
	if !p.Has(name) {
		return
	}
	delete(p.members, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Members returns member names in archive order.
func (p *Package) Members() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// ReadXML parses a member as XML and returns the parsed document (its root
// element is doc.Root()). The XML declaration is kept as parsed; WriteXML
// rewrites it to the canonical form when the document is stored again.
func (p *Package) ReadXML(name string) (*etree.Document, error) {
	data, err := p.Get(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("docpkg: parse %q: %w", name, err)
	}
	return doc, nil
}

// WriteXML serializes doc with the canonical OOXML declaration and stores
// it as a member, compact (no pretty-printing) so repeated compiles of the
// same logical content produce byte-identical output.
func (p *Package) WriteXML(name string, doc *etree.Document) error {
	normalizeProcInst(doc)
	doc.WriteSettings.CanonicalEndTags = true
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("docpkg: serialize %q: %w", name, err)
	}
	p.Set(name, data)
	return nil
}

// NewXMLDocument returns a Document pre-populated with the declaration every
// part written from scratch (as opposed to parsed from an upload) needs.
func NewXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlProcInst)
	doc.WriteSettings.CanonicalEndTags = true
	return doc
}

func normalizeProcInst(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = xmlProcInst
			return
		}
	}
	pi := &etree.ProcInst{Target: "xml", Inst: xmlProcInst}
	doc.Child = append([]etree.Token{pi}, doc.Child...)
}

// Save writes the package as a zip archive to w. Members are written in a
// fixed order ([Content_Types].xml first, then everything else sorted by
// path) regardless of the order they were added in memory, so that two
// packages with the same member set always serialize to the same bytes.
func (p *Package) Save(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.orderedForSave() {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("docpkg: write member header %q: %w", name, err)
		}
		if _, err := fw.Write(p.members[name]); err != nil {
			return fmt.Errorf("docpkg: write member %q: %w", name, err)
		}
	}
	return zw.Close()
}

// SaveBytes serializes the package to an in-memory byte slice.
func (p *Package) SaveBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile serializes the package to disk.
func (p *Package) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("docpkg: create %q: %w", path, err)
	}
	defer f.Close()
	return p.Save(f)
}

func (p *Package) orderedForSave() []string {
	names := make([]string, 0, len(p.order))
	hasContentTypes := false
	for _, n := range p.order {
		if n == "[Content_Types].xml" {
			hasContentTypes = true
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	if hasContentTypes {
		names = append([]string{"[Content_Types].xml"}, names...)
	}
	return names
}
