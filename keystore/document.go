package keystore

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the document format of a persisted store.
type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	}
	return "invalid"
}

// FormatForPath picks the format from the file extension, XML unless the
// extension is .yaml or .yml.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatXML
}

type pair struct {
	Name  string `xml:"name" yaml:"name"`
	Value string `xml:"value" yaml:"value"`
}

type xmlDocument struct {
	XMLName xml.Name `xml:"values"`
	Pairs   []pair   `xml:"pair"`
}

type yamlDocument struct {
	Values []pair `yaml:"values"`
}

// sortedPairs returns the map as pairs ordered by name.
func sortedPairs(m map[string]string) []pair {
	pairs := make([]pair, 0, len(m))
	for name, value := range m {
		pairs = append(pairs, pair{Name: name, Value: value})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Name < pairs[j].Name
	})
	return pairs
}

func encodeDocument(w io.Writer, format Format, m map[string]string) error {
	pairs := sortedPairs(m)
	switch format {
	case FormatXML:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(xmlDocument{Pairs: pairs}); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlDocument{Values: pairs}); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %v", format)
}

func decodeDocument(r io.Reader, format Format) (map[string]string, error) {
	var pairs []pair
	switch format {
	case FormatXML:
		var doc xmlDocument
		if err := xml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
		pairs = doc.Pairs
	case FormatYAML:
		var doc yamlDocument
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, err
		}
		pairs = doc.Values
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Name] = p.Value
	}
	return m, nil
}
