package graphml

import (
	"errors"
	"fmt"
	"github.com/viant/factgraph/graph"
	"strings"
)

// Namespace is the GraphML XML namespace
const Namespace = "http://graphml.graphdrawing.org/xmlns"

// ErrMalformedDocument is returned for documents that cannot be parsed
var ErrMalformedDocument = errors.New("malformed graph document")

const (
	fieldType        = "type"
	fieldDescription = "description"
	fieldFormula     = "formula"
	fieldLabel       = "label"
	fieldClass       = "class"
)

// keyAliases maps declared attribute names and bare key ids to node/edge fields
var keyAliases = map[string]string{
	"type":        fieldType,
	"description": fieldDescription,
	"name":        fieldDescription,
	"formula":     fieldFormula,
	"label":       fieldLabel,
	"class":       fieldClass,
	"d0":          fieldFormula,
	"d1":          fieldDescription,
}

// Parse parses a GraphML document into raw nodes and edges. Node roles are only set
// when the document carries a class attribute, as consolidated documents do.
func Parse(name string, data []byte) (*graph.Document, error) {
	root, err := parseDOM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrMalformedDocument, name, err)
	}
	keys := map[string]string{}
	for _, key := range root.find("key") {
		if id := key.attr("id"); id != "" {
			keys[id] = strings.ToLower(key.attr("attr.name"))
		}
	}
	doc := &graph.Document{Name: name}
	for _, elem := range root.find("node") {
		id := elem.attr("id")
		if id == "" {
			continue
		}
		node := &graph.Node{ID: id}
		for _, data := range elem.childrenNamed("data") {
			value := strings.TrimSpace(data.text)
			if value == "" {
				continue
			}
			switch resolve(keys, data.attr("key")) {
			case fieldType:
				node.Type = strings.ToLower(value)
			case fieldDescription:
				node.Description = value
			case fieldFormula:
				node.Formula = value
			case fieldClass:
				if role := graph.Role(strings.ToLower(value)); role.IsValid() {
					node.Role = role
				}
			}
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	for _, elem := range root.find("edge") {
		source, target := elem.attr("source"), elem.attr("target")
		if source == "" || target == "" {
			continue
		}
		edge := &graph.Edge{Source: source, Target: target, Label: elem.attr("label")}
		for _, data := range elem.childrenNamed("data") {
			value := strings.TrimSpace(data.text)
			if value != "" && resolve(keys, data.attr("key")) == fieldLabel {
				edge.Label = value
			}
		}
		doc.Edges = append(doc.Edges, edge)
	}
	return doc, nil
}

func resolve(keys map[string]string, key string) string {
	if name, ok := keys[key]; ok && name != "" {
		if field, ok := keyAliases[name]; ok {
			return field
		}
		return name
	}
	return keyAliases[strings.ToLower(key)]
}
