package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bluenviron/gosdp/pkg/format"
	"github.com/bluenviron/gosdp/pkg/sdp"
)

// Document is the machine-readable form of a set of results.
type Document struct {
	Total  int            `yaml:"total"`
	Passed int            `yaml:"passed"`
	Failed int            `yaml:"failed"`
	Files  []FileDocument `yaml:"files"`
}

// FileDocument is the machine-readable form of a result.
type FileDocument struct {
	File    string           `yaml:"file"`
	Status  Kind             `yaml:"status"`
	Error   string           `yaml:"error,omitempty"`
	Session *SessionDocument `yaml:"session,omitempty"`
}

// SessionDocument is the machine-readable form of a session.
type SessionDocument struct {
	Name        string              `yaml:"name"`
	Origin      string              `yaml:"origin"`
	Timing      string              `yaml:"timing"`
	Unbounded   bool                `yaml:"unbounded"`
	Information *string             `yaml:"information,omitempty"`
	URI         *string             `yaml:"uri,omitempty"`
	Emails      []string            `yaml:"emails,omitempty"`
	Phones      []string            `yaml:"phones,omitempty"`
	Connection  string              `yaml:"connection,omitempty"`
	Bandwidths  []string            `yaml:"bandwidths,omitempty"`
	Attributes  []AttributeDocument `yaml:"attributes,omitempty"`
	Media       []MediaDocument     `yaml:"media,omitempty"`
}

// MediaDocument is the machine-readable form of a media section.
type MediaDocument struct {
	Type       string              `yaml:"type"`
	Port       int                 `yaml:"port"`
	PortCount  int                 `yaml:"port_count"`
	Protocol   string              `yaml:"protocol"`
	Formats    []string            `yaml:"formats"`
	Codecs     []string            `yaml:"codecs,omitempty"`
	Details    []string            `yaml:"details,omitempty"`
	Connection string              `yaml:"connection,omitempty"`
	Bandwidths []string            `yaml:"bandwidths,omitempty"`
	Attributes []AttributeDocument `yaml:"attributes,omitempty"`
}

// AttributeDocument is the machine-readable form of a group of attributes.
type AttributeDocument struct {
	Name   string   `yaml:"name"`
	Flag   bool     `yaml:"flag,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

func newAttributeDocuments(attrs []sdp.Attribute) []AttributeDocument {
	groups := GroupAttributes(attrs)
	if groups == nil {
		return nil
	}

	ret := make([]AttributeDocument, len(groups))
	for i, g := range groups {
		ret[i] = AttributeDocument{Name: g.Name}
		if g.IsFlag() {
			ret[i].Flag = true
		} else {
			ret[i].Values = g.Values
		}
	}
	return ret
}

func bandwidthStrings(bws []sdp.Bandwidth) []string {
	if len(bws) == 0 {
		return nil
	}

	ret := make([]string, len(bws))
	for i, bw := range bws {
		ret[i] = bw.String()
	}
	return ret
}

func newSessionDocument(s *sdp.Session) *SessionDocument {
	doc := &SessionDocument{
		Name:        s.SessionName,
		Origin:      s.Origin.String(),
		Timing:      DescribeTiming(s.Timing),
		Unbounded:   s.Timing.IsUnbounded(),
		Information: s.Information,
		URI:         s.URI,
		Emails:      s.Emails,
		Phones:      s.Phones,
		Bandwidths:  bandwidthStrings(s.Bandwidths),
		Attributes:  newAttributeDocuments(s.Attributes),
	}

	if s.Connection != nil {
		doc.Connection = s.Connection.String()
	}

	for _, m := range s.Media {
		md := MediaDocument{
			Type:       m.Type,
			Port:       m.Port,
			PortCount:  m.PortCount,
			Protocol:   m.Protocol,
			Formats:    m.Formats,
			Bandwidths: bandwidthStrings(m.Bandwidths),
			Attributes: newAttributeDocuments(m.Attributes),
		}

		if m.Connection != nil {
			md.Connection = m.Connection.String()
		}

		for _, f := range format.FromMedia(m) {
			md.Codecs = append(md.Codecs, f.String())
			if d := f.Details(); d != "" {
				md.Details = append(md.Details, f.String()+": "+d)
			}
		}

		doc.Media = append(doc.Media, md)
	}

	return doc
}

// NewDocument builds a Document from results.
func NewDocument(results []Result) Document {
	passed, failed := Count(results)

	doc := Document{
		Total:  len(results),
		Passed: passed,
		Failed: failed,
		Files:  make([]FileDocument, len(results)),
	}

	for i, r := range results {
		doc.Files[i] = FileDocument{
			File:   r.File,
			Status: r.Kind(),
		}

		if r.Err != nil {
			doc.Files[i].Error = r.Err.Error()
		} else {
			doc.Files[i].Session = newSessionDocument(r.Session)
		}
	}

	return doc
}

// WriteYAML writes results in YAML form.
func WriteYAML(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(NewDocument(results))
	if err != nil {
		return err
	}

	return enc.Close()
}
