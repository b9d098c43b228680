package oxml

import "github.com/beevik/etree"

// Child returns the first direct child of parent whose namespace prefix
// and local name match, or nil. This mirrors the manual Space/Tag
// comparison every part of this codebase uses instead of etree's
// untyped path queries, so namespace mismatches fail loudly at the
// point of use rather than silently matching the wrong element.
func Child(parent *etree.Element, space, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, c := range parent.ChildElements() {
		if c.Space == space && c.Tag == tag {
			return c
		}
	}
	return nil
}

// Children returns every direct child of parent matching space/tag, in
// document order.
func Children(parent *etree.Element, space, tag string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range parent.ChildElements() {
		if c.Space == space && c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindAll recursively collects every descendant of root matching
// space/tag, in document order (root itself is not included).
func FindAll(root *etree.Element, space, tag string) []*etree.Element {
	if root == nil {
		return nil
	}
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if c.Space == space && c.Tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// Text concatenates the text of every w:t descendant of e, the OOXML
// equivalent of a paragraph's visible text.
func Text(e *etree.Element) string {
	var out string
	for _, t := range FindAll(e, "w", "t") {
		out += t.Text()
	}
	return out
}

// EnsureChild returns the first direct child matching space/tag,
// creating (and appending) one if absent.
func EnsureChild(parent *etree.Element, space, tag string) *etree.Element {
	if existing := Child(parent, space, tag); existing != nil {
		return existing
	}
	child := parent.CreateElement(tag)
	child.Space = space
	return child
}
