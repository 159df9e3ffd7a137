package attrtree

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

// WriteXML writes the subtree as an XML document: node types become
// element names, properties become attributes, children keep their order.
func (n *Node) WriteXML(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeNode(enc, n); err != nil {
		return err
	}
	return enc.Flush()
}

func writeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.typ}}
	for _, p := range n.props {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: p.name}, Value: p.value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := writeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// ReadXML parses an XML document written by WriteXML back into a tree.
// Character data is ignored; the charset is detected from the stream.
func ReadXML(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *Node
		stack []*Node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			n := NewNode(se.Name.Local)
			for _, attr := range se.Attr {
				n.SetProperty(attr.Name.Local, attr.Value, nil)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("attrtree: multiple root elements")
				}
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n, nil)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errors.New("attrtree: empty document")
	}
	return root, nil
}
