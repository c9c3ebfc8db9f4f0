package document

import (
	"strings"

	"inkwell/internal/common"
)

// nodeSpec declares the behavior of one node variant: which children
// it may contain, how its attributes are validated, and how it
// degrades to plain text for previews and notifications. Adding a
// block type means adding a registry entry; traversal code never
// switches on concrete types.
type nodeSpec struct {
	Inline   bool
	Children map[NodeType]bool
	Validate func(n *Node) error
	Text     func(n *Node, sb *strings.Builder)
}

var registry map[NodeType]nodeSpec

func blockText(n *Node, sb *strings.Builder) {
	for _, child := range n.Children {
		registry[child.Type].Text(child, sb)
	}
	sb.WriteString("\n")
}

// The dispatch entries reference each other recursively, so the map
// is populated in init rather than a composite literal.
func init() {
	registry = map[NodeType]nodeSpec{
		NodeRoot: {
			Children: map[NodeType]bool{
				NodeParagraph: true,
				NodeHeading:   true,
				NodeList:      true,
				NodeQuote:     true,
				NodeCodeBlock: true,
			},
			Validate: func(n *Node) error { return nil },
			Text: func(n *Node, sb *strings.Builder) {
				for _, child := range n.Children {
					registry[child.Type].Text(child, sb)
				}
			},
		},
		NodeParagraph: {
			Children: map[NodeType]bool{NodeText: true, NodeImage: true},
			Validate: func(n *Node) error { return nil },
			Text:     blockText,
		},
		NodeHeading: {
			Children: map[NodeType]bool{NodeText: true},
			Validate: func(n *Node) error {
				if n.Level < 1 || n.Level > 3 {
					return common.NewValidationError("level", "heading level must be between 1 and 3")
				}
				return nil
			},
			Text: blockText,
		},
		NodeList: {
			Children: map[NodeType]bool{NodeListItem: true},
			Validate: func(n *Node) error { return nil },
			Text: func(n *Node, sb *strings.Builder) {
				for _, item := range n.Children {
					sb.WriteString("- ")
					registry[item.Type].Text(item, sb)
				}
			},
		},
		NodeListItem: {
			Children: map[NodeType]bool{NodeText: true, NodeImage: true},
			Validate: func(n *Node) error { return nil },
			Text:     blockText,
		},
		NodeQuote: {
			Children: map[NodeType]bool{NodeText: true},
			Validate: func(n *Node) error { return nil },
			Text:     blockText,
		},
		NodeCodeBlock: {
			Children: map[NodeType]bool{NodeText: true},
			Validate: func(n *Node) error { return nil },
			Text:     blockText,
		},
		NodeImage: {
			Inline: true,
			Validate: func(n *Node) error {
				if strings.TrimSpace(n.Src) == "" {
					return common.NewValidationError("src", "image source is required")
				}
				if n.Width < 0 || n.Height < 0 {
					return common.NewValidationError("size", "image dimensions cannot be negative")
				}
				return nil
			},
			Text: func(n *Node, sb *strings.Builder) {
				if n.Alt != "" {
					sb.WriteString("[" + n.Alt + "]")
				}
			},
		},
		NodeText: {
			Inline:   true,
			Validate: func(n *Node) error { return nil },
			Text: func(n *Node, sb *strings.Builder) {
				sb.WriteString(n.Text)
			},
		},
	}
}

// Registered reports whether a type tag resolves through the registry.
func Registered(t NodeType) bool {
	_, ok := registry[t]
	return ok
}

// CreateNode constructs a node of the given variant from attributes,
// minting a fresh key. Attribute violations return a ValidationError.
func CreateNode(t NodeType, attrs Attributes) (*Node, error) {
	spec, ok := registry[t]
	if !ok {
		return nil, &common.UnknownNodeTypeError{Type: string(t)}
	}

	n := &Node{
		Key:      newKey(),
		Type:     t,
		Level:    attrs.Level,
		Ordered:  attrs.Ordered,
		Language: attrs.Language,
		Src:      attrs.Src,
		Alt:      attrs.Alt,
		Width:    attrs.Width,
		Height:   attrs.Height,
		Text:     attrs.Text,
		Format:   attrs.Format,
		Style:    attrs.Style,
	}

	if err := spec.Validate(n); err != nil {
		return nil, err
	}
	return n, nil
}

// ValidateTree checks the whole tree: the root must be a Root node,
// every type tag must be registered, every node's attributes must
// pass its variant validation, and every child must be legal for its
// parent. Inline nodes never appear at the top level.
func ValidateTree(root *Node) error {
	if root == nil {
		return common.NewValidationError("root", "document root is missing")
	}
	if root.Type != NodeRoot {
		return common.NewValidationError("root", "top-level node must be root")
	}
	return validateSubtree(root)
}

func validateSubtree(n *Node) error {
	spec, ok := registry[n.Type]
	if !ok {
		return &common.UnknownNodeTypeError{Type: string(n.Type)}
	}
	if err := spec.Validate(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if child.Type == NodeRoot {
			return common.NewValidationError("root", "root must be the sole top-level node")
		}
		if spec.Children == nil || !spec.Children[child.Type] {
			return common.NewValidationError(string(n.Type),
				"cannot contain "+string(child.Type)+" children")
		}
		if err := validateSubtree(child); err != nil {
			return err
		}
	}
	return nil
}

// nodePlainText degrades a single node to plain text via its
// registry entry.
func nodePlainText(n *Node) string {
	spec, ok := registry[n.Type]
	if !ok {
		return ""
	}
	var sb strings.Builder
	spec.Text(n, &sb)
	return sb.String()
}
