// Package config reads the per-service customization files that adjust how
// operations and parameters of a service model are turned into cmdlets.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Service holds the customizations of one service. The zero value means no
// customization at all.
type Service struct {
	// Prefix is prepended to every noun, e.g. "EC2" in Get-EC2Instance.
	Prefix string `yaml:"prefix"`
	// Package overrides the name of the generated Go package.
	Package string `yaml:"package"`
	// SDKPackage overrides the import path of the SDK service package.
	SDKPackage string `yaml:"sdkPackage"`
	// Client overrides the client type name of the SDK service package.
	Client string `yaml:"client"`
	// Exclude lists operations that are not generated.
	Exclude []string `yaml:"exclude"`
	// Params apply to parameters of the same name in every operation.
	Params     map[string]Param     `yaml:"params"`
	Operations map[string]Operation `yaml:"operations"`
}

type Operation struct {
	Verb    string `yaml:"verb"`
	Noun    string `yaml:"noun"`
	Select  string `yaml:"select"`
	Exclude bool   `yaml:"exclude"`
	// NoPaging disables auto-iteration even if the model has a paginator.
	NoPaging bool             `yaml:"noPaging"`
	Params   map[string]Param `yaml:"params"`
}

type Param struct {
	// Name renames the parameter; the model member name stays the key.
	Name     string   `yaml:"name"`
	Aliases  []string `yaml:"aliases"`
	Position *int     `yaml:"position"`
	// Emitter forces a registered emitter rule by name.
	Emitter string `yaml:"emitter"`
	Exclude bool   `yaml:"exclude"`
}

// Operation returns the customization of the named operation.
func (s Service) Operation(name string) Operation {
	return s.Operations[name]
}

// Excluded reports whether the operation must be skipped.
func (s Service) Excluded(operation string) bool {
	return slices.Contains(s.Exclude, operation) || s.Operations[operation].Exclude
}

// Param merges the service wide customization of a parameter with the one of
// the operation. Fields set on the operation win.
func (s Service) Param(operation, member string) Param {
	p := s.Params[member]
	o, ok := s.Operations[operation].Params[member]
	if !ok {
		return p
	}

	if o.Name != "" {
		p.Name = o.Name
	}
	if o.Aliases != nil {
		p.Aliases = o.Aliases
	}
	if o.Position != nil {
		p.Position = o.Position
	}
	if o.Emitter != "" {
		p.Emitter = o.Emitter
	}
	p.Exclude = p.Exclude || o.Exclude

	return p
}

// Decode reads a customization document. Unknown keys are rejected so typos
// do not silently change nothing.
func Decode(r io.Reader) (Service, error) {
	var s Service

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Service{}, err
	}

	return s, nil
}

// Load reads the customization file at path.
func Load(path string) (Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Service{}, err
	}

	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Service{}, errors.Wrapf(err, "parsing customization %s", path)
	}
	return s, nil
}

// LoadDir reads <dir>/<serviceID>.yaml. A missing file or an empty dir yields
// the zero Service.
func LoadDir(dir, serviceID string) (Service, error) {
	if dir == "" {
		return Service{}, nil
	}

	path := filepath.Join(dir, FileName(serviceID))
	s, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Service{}, nil
	}
	return s, err
}

// FileName returns the customization file name for a service id.
func FileName(serviceID string) string {
	return strings.ToLower(strings.ReplaceAll(serviceID, " ", "")) + ".yaml"
}
