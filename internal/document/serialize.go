package document

import (
	"encoding/json"
	"fmt"

	"inkwell/internal/common"
)

// envelope is the portable JSON form stored in the post record.
type envelope struct {
	Version int             `json:"version"`
	Root    json.RawMessage `json:"root"`
}

// Serialize converts the tree to its storage-safe JSON string. It
// fails only on malformed trees, which node construction through the
// registry normally makes unreachable.
func Serialize(d *Document) (string, error) {
	if d == nil {
		return "", common.NewValidationError("document", "document is nil")
	}
	if err := ValidateTree(d.Root); err != nil {
		return "", err
	}

	version := d.Version
	if version == 0 {
		version = CurrentVersion
	}

	rootJSON, err := json.Marshal(d.Root)
	if err != nil {
		return "", fmt.Errorf("marshal document root: %w", err)
	}

	out, err := json.Marshal(envelope{Version: version, Root: rootJSON})
	if err != nil {
		return "", fmt.Errorf("marshal document envelope: %w", err)
	}
	return string(out), nil
}

// Deserialize parses a stored JSON document back into a tree. Invalid
// JSON or a missing root yields a ParseError; a node type that does
// not resolve through the registry yields an UnknownNodeTypeError
// rather than silently dropping the node.
func Deserialize(s string) (*Document, error) {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return nil, &common.ParseError{Reason: "invalid JSON", Err: err}
	}
	if len(env.Root) == 0 || string(env.Root) == "null" {
		return nil, &common.ParseError{Reason: "missing root field"}
	}
	if env.Version < 1 || env.Version > CurrentVersion {
		return nil, &common.ParseError{
			Reason: fmt.Sprintf("unsupported document version %d", env.Version),
		}
	}

	var root Node
	if err := json.Unmarshal(env.Root, &root); err != nil {
		return nil, &common.ParseError{Reason: "malformed root node", Err: err}
	}

	// Every embedded type tag must resolve through the registry.
	if err := root.Walk(func(n *Node) error {
		if !Registered(n.Type) {
			return &common.UnknownNodeTypeError{Type: string(n.Type)}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := ValidateTree(&root); err != nil {
		return nil, err
	}

	return &Document{Root: &root, Version: env.Version}, nil
}
