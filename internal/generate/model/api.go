// Package model contains the JSON documents of an AWS service model: the API
// description, its paginators and its documentation.
package model

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

type API struct {
	Version       string               `json:"version"`
	Metadata      Metadata             `json:"metadata"`
	Operations    map[string]Operation `json:"operations"`
	Shapes        map[string]Shape     `json:"shapes"`
	Documentation string               `json:"documentation"`
}

type Metadata struct {
	APIVersion          string `json:"apiVersion"`
	EndpointPrefix      string `json:"endpointPrefix"`
	Protocol            string `json:"protocol"`
	ServiceAbbreviation string `json:"serviceAbbreviation"`
	ServiceFullName     string `json:"serviceFullName"`
	ServiceID           string `json:"serviceId"`
	SignatureVersion    string `json:"signatureVersion"`
	UID                 string `json:"uid"`
}

type Operation struct {
	Name          string     `json:"name"`
	HTTP          HTTP       `json:"http"`
	Input         *ShapeRef  `json:"input"`
	Output        *ShapeRef  `json:"output"`
	Errors        []ShapeRef `json:"errors"`
	Documentation string     `json:"documentation"`
	Deprecated    bool       `json:"deprecated"`
}

type HTTP struct {
	Method     string `json:"method"`
	RequestURI string `json:"requestUri"`
}

type ShapeRef struct {
	Shape            string `json:"shape"`
	Documentation    string `json:"documentation"`
	LocationName     string `json:"locationName"`
	Location         string `json:"location"`
	Deprecated       bool   `json:"deprecated"`
	IdempotencyToken bool   `json:"idempotencyToken"`
}

type Shape struct {
	Type          string       `json:"type"`
	Members       Members      `json:"members"`
	Required      []string     `json:"required"`
	Member        *ShapeRef    `json:"member"`
	Key           *ShapeRef    `json:"key"`
	Value         *ShapeRef    `json:"value"`
	Enum          []string     `json:"enum"`
	Min           *json.Number `json:"min"`
	Max           *json.Number `json:"max"`
	Pattern       string       `json:"pattern"`
	Sensitive     bool         `json:"sensitive"`
	Deprecated    bool         `json:"deprecated"`
	Exception     bool         `json:"exception"`
	Document      bool         `json:"document"`
	Documentation string       `json:"documentation"`
}

// Member is one entry of a structure shape.
type Member struct {
	Name string
	Ref  ShapeRef
}

// Members keeps structure members in the order they are declared in the model.
type Members []Member

func (m *Members) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Newf("members: expected object, got %v", tok)
	}

	*m = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return errors.Newf("members: expected member name, got %v", tok)
		}

		var ref ShapeRef
		if err := dec.Decode(&ref); err != nil {
			return errors.Wrapf(err, "member %s", name)
		}
		*m = append(*m, Member{Name: name, Ref: ref})
	}

	_, err = dec.Token()
	return err
}

func (m Members) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, member := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(member.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(member.Ref)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the member with the given name.
func (m Members) Get(name string) (ShapeRef, bool) {
	for _, member := range m {
		if member.Name == name {
			return member.Ref, true
		}
	}
	return ShapeRef{}, false
}

type Paginators struct {
	Pagination map[string]Paginator `json:"pagination"`
}

type Paginator struct {
	InputToken  StringOrList `json:"input_token"`
	OutputToken StringOrList `json:"output_token"`
	LimitKey    string       `json:"limit_key"`
	MoreResults string       `json:"more_results"`
	ResultKey   StringOrList `json:"result_key"`
}

// StringOrList decodes paginator keys that are either a single string or a
// list of strings.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Wrap(err, "expected string or list of strings")
	}
	*s = list
	return nil
}

// Docs is the separate documentation document shipped with SDK models
// (docs-2.json).
type Docs struct {
	Service    string               `json:"service"`
	Operations map[string]string    `json:"operations"`
	Shapes     map[string]ShapeDocs `json:"shapes"`
}

type ShapeDocs struct {
	Base string            `json:"base"`
	Refs map[string]string `json:"refs"`
}

// ApplyDocs fills in documentation that is missing from the API document.
// Member documentation is keyed "Shape$Member" in the docs document.
func (a *API) ApplyDocs(d *Docs) {
	if d == nil {
		return
	}

	if a.Documentation == "" {
		a.Documentation = d.Service
	}

	for name, op := range a.Operations {
		if op.Documentation == "" {
			op.Documentation = d.Operations[name]
			a.Operations[name] = op
		}
	}

	refDocs := make(map[string]string)
	for _, sd := range d.Shapes {
		for key, doc := range sd.Refs {
			refDocs[key] = doc
		}
	}

	for name, s := range a.Shapes {
		if sd, ok := d.Shapes[name]; ok && s.Documentation == "" {
			s.Documentation = sd.Base
		}
		for i, member := range s.Members {
			if member.Ref.Documentation != "" {
				continue
			}
			if doc, ok := refDocs[name+"$"+member.Name]; ok {
				s.Members[i].Ref.Documentation = doc
			} else if sd, ok := d.Shapes[member.Ref.Shape]; ok {
				s.Members[i].Ref.Documentation = sd.Base
			}
		}
		a.Shapes[name] = s
	}
}
