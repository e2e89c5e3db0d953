package storage

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Properties is the XML view of a group's properties:
//
//	<properties>
//	  <kmer_size>31</kmer_size>
//	  <kmers_nb_solid>1234</kmers_nb_solid>
//	</properties>
type Properties struct {
	root *xmlquery.Node
}

func ParseProperties(doc string) (*Properties, error) {
	root, err := xmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("storage: parsing properties: %w", err)
	}
	return &Properties{root: root}, nil
}

// Get returns the text of the property named key.
func (p *Properties) Get(key string) (string, bool) {
	node, err := xmlquery.Query(p.root, "/properties/"+key)
	if err != nil || node == nil {
		return "", false
	}
	return strings.TrimSpace(node.InnerText()), true
}

func (p *Properties) Int(key string) (int64, error) {
	s, ok := p.Get(key)
	if !ok {
		return 0, fmt.Errorf("storage: property %q not found", key)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("storage: property %q: %w", key, err)
	}
	return v, nil
}

// Keys returns the property names in document order.
func (p *Properties) Keys() []string {
	var keys []string
	for _, n := range xmlquery.Find(p.root, "/properties/*") {
		keys = append(keys, n.Data)
	}
	return keys
}

func (p *Properties) XML() string {
	return p.root.OutputXML(false)
}

func renderProperties(kvs [][2]string) string {
	var buf bytes.Buffer
	buf.WriteString("<properties>")
	for _, kv := range kvs {
		buf.WriteString("\n  <" + kv[0] + ">")
		_ = xml.EscapeText(&buf, []byte(kv[1]))
		buf.WriteString("</" + kv[0] + ">")
	}
	buf.WriteString("\n</properties>")
	return buf.String()
}
