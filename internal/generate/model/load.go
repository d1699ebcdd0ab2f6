package model

import (
	"encoding/json"
	"io/fs"
	"path"

	"github.com/cockroachdb/errors"
)

const (
	APIFile        = "api-2.json"
	ServiceFile    = "service-2.json"
	PaginatorsFile = "paginators-1.json"
	DocsFile       = "docs-2.json"
)

// ErrModelNotFound is returned when a model directory contains no API document.
var ErrModelNotFound = errors.New("service model not found")

// Bundle holds the documents of one service model version.
type Bundle struct {
	Dir        string
	API        *API
	Paginators *Paginators
}

// Load reads the service model stored in dir of fsys. The API document is
// required, paginators and documentation are optional.
func Load(fsys fs.FS, dir string) (*Bundle, error) {
	var api API
	err := readJSON(fsys, path.Join(dir, APIFile), &api)
	if errors.Is(err, fs.ErrNotExist) {
		err = readJSON(fsys, path.Join(dir, ServiceFile), &api)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrModelNotFound, "%s", dir)
	}
	if err != nil {
		return nil, err
	}

	var docs Docs
	switch err := readJSON(fsys, path.Join(dir, DocsFile), &docs); {
	case err == nil:
		api.ApplyDocs(&docs)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	bundle := &Bundle{Dir: dir, API: &api}

	var paginators Paginators
	switch err := readJSON(fsys, path.Join(dir, PaginatorsFile), &paginators); {
	case err == nil:
		bundle.Paginators = &paginators
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	return bundle, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "parsing %s", name)
	}
	return nil
}
