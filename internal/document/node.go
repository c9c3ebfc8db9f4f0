package document

import (
	"fmt"
	"sync/atomic"
	"time"
)

// NodeType tags one variant of the content node union.
type NodeType string

const (
	NodeRoot      NodeType = "root"
	NodeParagraph NodeType = "paragraph"
	NodeHeading   NodeType = "heading"
	NodeList      NodeType = "list"
	NodeListItem  NodeType = "list-item"
	NodeQuote     NodeType = "quote"
	NodeCodeBlock NodeType = "code"
	NodeImage     NodeType = "image"
	NodeText      NodeType = "text"
)

// FormatFlags is the bitmask of inline text formatting.
type FormatFlags int

const (
	FormatBold FormatFlags = 1 << iota
	FormatItalic
	FormatUnderline
	FormatSubscript
	FormatSuperscript
)

func (f FormatFlags) Has(flag FormatFlags) bool {
	return f&flag != 0
}

// Node is one element of the document tree. A single struct carries
// every variant; the Type tag decides which attribute fields are
// meaningful, and the registry decides which children are legal.
// Nodes are owned by their tree and never shared between trees.
type Node struct {
	// Key is the stable identifier used for diffing during edits.
	Key  string   `json:"key"`
	Type NodeType `json:"type"`

	Children []*Node `json:"children,omitempty"`

	// Heading
	Level int `json:"level,omitempty"`

	// List
	Ordered bool `json:"ordered,omitempty"`

	// CodeBlock
	Language string `json:"language,omitempty"`

	// Image: external reference only, never owned binary data
	Src    string `json:"src,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// TextRun
	Text   string      `json:"text,omitempty"`
	Format FormatFlags `json:"format,omitempty"`
	Style  string      `json:"style,omitempty"`
}

// Attributes carries the variant-specific fields for CreateNode.
type Attributes struct {
	Level    int
	Ordered  bool
	Language string
	Src      string
	Alt      string
	Width    int
	Height   int
	Text     string
	Format   FormatFlags
	Style    string
}

var keyCounter uint64

// newKey mints a node identifier unique within the process.
func newKey() string {
	return fmt.Sprintf("n%x-%x", time.Now().UnixNano(), atomic.AddUint64(&keyCounter, 1))
}

// Clone deep-copies the node and its subtree, assigning fresh keys
// while preserving attributes. Used whenever a node is duplicated by
// editing operations.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	c.Key = newKey()
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// AppendChild attaches child to n without structural validation;
// ValidateTree checks parent/child legality for the whole tree.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Equal reports structural equality, keys included. Two trees that
// round-trip through the serializer compare equal.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Key != other.Key ||
		n.Type != other.Type ||
		n.Level != other.Level ||
		n.Ordered != other.Ordered ||
		n.Language != other.Language ||
		n.Src != other.Src ||
		n.Alt != other.Alt ||
		n.Width != other.Width ||
		n.Height != other.Height ||
		n.Text != other.Text ||
		n.Format != other.Format ||
		n.Style != other.Style {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(fn func(*Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
