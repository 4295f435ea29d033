package graphml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// element is the minimal DOM node used to walk GraphML documents
type element struct {
	space    string
	local    string
	attrs    map[string]string
	text     string
	children []*element
}

func (e *element) attr(name string) string {
	return e.attrs[name]
}

// descendants returns all descendants with local name in document order,
// only elements in space are returned unless space is empty
func (e *element) descendants(local, space string) []*element {
	var result []*element
	var visit func(node *element)
	visit = func(node *element) {
		for _, child := range node.children {
			if child.local == local && (space == "" || child.space == space) {
				result = append(result, child)
			}
			visit(child)
		}
	}
	visit(e)
	return result
}

// find returns namespace qualified descendants, falling back to an unqualified search
func (e *element) find(local string) []*element {
	if result := e.descendants(local, Namespace); len(result) > 0 {
		return result
	}
	return e.descendants(local, "")
}

func (e *element) childrenNamed(local string) []*element {
	var result []*element
	for _, child := range e.children {
		if child.local == local {
			result = append(result, child)
		}
	}
	return result
}

func parseDOM(data []byte) (*element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var stack []*element
	var root *element
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			elem := &element{space: t.Name.Space, local: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				elem.attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}
