package document

import (
	"strings"
	"unicode/utf8"
)

// CurrentVersion tags newly serialized documents. Older stored
// versions are accepted as-is; there is no migration path.
const CurrentVersion = 1

// Document is the rich-text body of a post or draft: a validated
// node tree plus the serialization version it was stored with.
type Document struct {
	Root    *Node
	Version int
}

// New returns an empty document: a root with zero children.
func New() *Document {
	return &Document{
		Root:    &Node{Key: newKey(), Type: NodeRoot},
		Version: CurrentVersion,
	}
}

// IsEmpty reports whether the document has no real content. A root
// with zero children and a root holding a single paragraph with no
// text are both empty.
func (d *Document) IsEmpty() bool {
	if d == nil || d.Root == nil || len(d.Root.Children) == 0 {
		return true
	}
	if len(d.Root.Children) != 1 {
		return false
	}

	only := d.Root.Children[0]
	if only.Type != NodeParagraph {
		return false
	}
	for _, child := range only.Children {
		if child.Type == NodeImage {
			return false
		}
		if strings.TrimSpace(child.Text) != "" {
			return false
		}
	}
	return true
}

// PlainText degrades the document for previews and notifications.
func (d *Document) PlainText() string {
	if d == nil || d.Root == nil {
		return ""
	}
	return strings.TrimSpace(nodePlainText(d.Root))
}

// Preview returns at most limit runes of the plain-text degradation.
func (d *Document) Preview(limit int) string {
	text := d.PlainText()
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "…"
}

// Equal reports structural equality of two documents.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Version == other.Version && d.Root.Equal(other.Root)
}

// Clone deep-copies the document with fresh node keys.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Root: d.Root.Clone(), Version: d.Version}
}
