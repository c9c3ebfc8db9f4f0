package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
)

func mustNode(t *testing.T, typ NodeType, attrs Attributes) *Node {
	t.Helper()
	n, err := CreateNode(typ, attrs)
	require.NoError(t, err)
	return n
}

func sampleDocument(t *testing.T) *Document {
	t.Helper()

	doc := New()

	heading := mustNode(t, NodeHeading, Attributes{Level: 2})
	heading.AppendChild(mustNode(t, NodeText, Attributes{Text: "Release notes", Format: FormatBold}))

	para := mustNode(t, NodeParagraph, Attributes{})
	para.AppendChild(mustNode(t, NodeText, Attributes{Text: "Hello "}))
	para.AppendChild(mustNode(t, NodeText, Attributes{Text: "world", Format: FormatItalic | FormatUnderline, Style: "color: red"}))
	para.AppendChild(mustNode(t, NodeImage, Attributes{Src: "http://localhost:8080/media/abc", Alt: "diagram", Width: 640, Height: 480}))

	list := mustNode(t, NodeList, Attributes{Ordered: true})
	item := mustNode(t, NodeListItem, Attributes{})
	item.AppendChild(mustNode(t, NodeText, Attributes{Text: "first"}))
	list.AppendChild(item)

	code := mustNode(t, NodeCodeBlock, Attributes{Language: "go"})
	code.AppendChild(mustNode(t, NodeText, Attributes{Text: "fmt.Println(42)"}))

	quote := mustNode(t, NodeQuote, Attributes{})
	quote.AppendChild(mustNode(t, NodeText, Attributes{Text: "said nobody"}))

	doc.Root.AppendChild(heading)
	doc.Root.AppendChild(para)
	doc.Root.AppendChild(list)
	doc.Root.AppendChild(code)
	doc.Root.AppendChild(quote)

	return doc
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	raw, err := Serialize(doc)
	require.NoError(t, err)

	got, err := Deserialize(raw)
	require.NoError(t, err)

	assert.True(t, doc.Equal(got), "round-tripped document differs")
}

func TestSerializeRoundTripEmpty(t *testing.T) {
	doc := New()

	raw, err := Serialize(doc)
	require.NoError(t, err)

	got, err := Deserialize(raw)
	require.NoError(t, err)
	assert.True(t, doc.Equal(got))
	assert.True(t, got.IsEmpty())
}

func TestDeserializeInvalidJSON(t *testing.T) {
	_, err := Deserialize("{not json")

	var pe *common.ParseError
	require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
}

func TestDeserializeMissingRoot(t *testing.T) {
	_, err := Deserialize(`{"version":1}`)

	var pe *common.ParseError
	require.True(t, errors.As(err, &pe))
}

func TestDeserializeUnsupportedVersion(t *testing.T) {
	_, err := Deserialize(`{"version":99,"root":{"key":"a","type":"root"}}`)

	var pe *common.ParseError
	require.True(t, errors.As(err, &pe))
}

func TestDeserializeUnknownNodeType(t *testing.T) {
	raw := `{"version":1,"root":{"key":"a","type":"root","children":[{"key":"b","type":"video","src":"x"}]}}`

	_, err := Deserialize(raw)

	var ue *common.UnknownNodeTypeError
	require.True(t, errors.As(err, &ue), "expected UnknownNodeTypeError, got %v", err)
	assert.Equal(t, "video", ue.Type)
}

func TestDeserializeInlineAtTopLevel(t *testing.T) {
	raw := `{"version":1,"root":{"key":"a","type":"root","children":[{"key":"b","type":"text","text":"loose"}]}}`

	_, err := Deserialize(raw)
	require.Error(t, err)
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  func(t *testing.T) *Document
		want bool
	}{
		{
			name: "zero children",
			doc:  func(t *testing.T) *Document { return New() },
			want: true,
		},
		{
			name: "single empty paragraph",
			doc: func(t *testing.T) *Document {
				d := New()
				d.Root.AppendChild(mustNode(t, NodeParagraph, Attributes{}))
				return d
			},
			want: true,
		},
		{
			name: "single whitespace paragraph",
			doc: func(t *testing.T) *Document {
				d := New()
				p := mustNode(t, NodeParagraph, Attributes{})
				p.AppendChild(mustNode(t, NodeText, Attributes{Text: "   "}))
				d.Root.AppendChild(p)
				return d
			},
			want: true,
		},
		{
			name: "paragraph with text",
			doc: func(t *testing.T) *Document {
				d := New()
				p := mustNode(t, NodeParagraph, Attributes{})
				p.AppendChild(mustNode(t, NodeText, Attributes{Text: "World"}))
				d.Root.AppendChild(p)
				return d
			},
			want: false,
		},
		{
			name: "paragraph with only an image",
			doc: func(t *testing.T) *Document {
				d := New()
				p := mustNode(t, NodeParagraph, Attributes{})
				p.AppendChild(mustNode(t, NodeImage, Attributes{Src: "http://x/y.png"}))
				d.Root.AppendChild(p)
				return d
			},
			want: false,
		},
		{
			name: "two empty paragraphs",
			doc: func(t *testing.T) *Document {
				d := New()
				d.Root.AppendChild(mustNode(t, NodeParagraph, Attributes{}))
				d.Root.AppendChild(mustNode(t, NodeParagraph, Attributes{}))
				return d
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc(t).IsEmpty())
		})
	}
}

func TestCreateNodeValidation(t *testing.T) {
	_, err := CreateNode(NodeImage, Attributes{Alt: "no source"})
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))

	_, err = CreateNode(NodeHeading, Attributes{Level: 4})
	require.True(t, errors.As(err, &ve))

	_, err = CreateNode(NodeHeading, Attributes{Level: 0})
	require.True(t, errors.As(err, &ve))

	_, err = CreateNode(NodeType("marquee"), Attributes{})
	var ue *common.UnknownNodeTypeError
	require.True(t, errors.As(err, &ue))
}

func TestValidateTreeRejectsIllegalChildren(t *testing.T) {
	doc := New()
	list := mustNode(t, NodeList, Attributes{})
	// a paragraph directly under a list is illegal
	list.Children = append(list.Children, mustNode(t, NodeParagraph, Attributes{}))
	doc.Root.AppendChild(list)

	require.Error(t, ValidateTree(doc.Root))
}

func TestValidateTreeRejectsNestedRoot(t *testing.T) {
	doc := New()
	doc.Root.Children = append(doc.Root.Children, &Node{Key: "x", Type: NodeRoot})

	require.Error(t, ValidateTree(doc.Root))
}

func TestCloneAssignsFreshKeys(t *testing.T) {
	doc := sampleDocument(t)
	clone := doc.Clone()

	// attributes preserved, identity refreshed
	require.Equal(t, len(doc.Root.Children), len(clone.Root.Children))
	assert.NotEqual(t, doc.Root.Key, clone.Root.Key)

	keys := map[string]bool{}
	require.NoError(t, doc.Root.Walk(func(n *Node) error {
		keys[n.Key] = true
		return nil
	}))
	require.NoError(t, clone.Root.Walk(func(n *Node) error {
		assert.False(t, keys[n.Key], "clone reused key %s", n.Key)
		return nil
	}))

	// mutating the clone leaves the original alone
	clone.Root.Children[0].Children[0].Text = "changed"
	assert.Equal(t, "Release notes", doc.Root.Children[0].Children[0].Text)
}

func TestPlainTextNestedBlocks(t *testing.T) {
	doc := New()
	list := mustNode(t, NodeList, Attributes{})
	item := mustNode(t, NodeListItem, Attributes{})
	item.AppendChild(mustNode(t, NodeText, Attributes{Text: "alpha"}))
	list.AppendChild(item)
	doc.Root.AppendChild(list)

	// list -> item -> text resolves through the registry recursively
	assert.Equal(t, "- alpha", doc.PlainText())
}

func TestPlainTextDegradation(t *testing.T) {
	doc := sampleDocument(t)

	text := doc.PlainText()
	assert.Contains(t, text, "Release notes")
	assert.Contains(t, text, "Hello world")
	assert.Contains(t, text, "[diagram]")
	assert.Contains(t, text, "- first")
	assert.Contains(t, text, "fmt.Println(42)")

	preview := doc.Preview(5)
	assert.Equal(t, "Relea…", preview)
}
