package main

import (
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/damedic/aws-toolbox-go/internal/generate/model"
)

// serviceModel is one version directory of a service model, laid out as
// <service>/<version>/api-2.json.
type serviceModel struct {
	Name    string
	Version string
	Dir     string
}

const modelPattern = "**/{" + model.APIFile + "," + model.ServiceFile + "}"

// discover finds the latest model version of every service in fsys. Only the
// given services are returned unless the list is empty.
func discover(fsys fs.FS, services []string) ([]serviceModel, error) {
	matches, err := doublestar.Glob(fsys, modelPattern)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]serviceModel)
	for _, m := range matches {
		dir := path.Dir(m)
		if dir == "." {
			continue
		}
		serviceDir := path.Dir(dir)
		sm := serviceModel{
			Name:    path.Base(serviceDir),
			Version: path.Base(dir),
			Dir:     dir,
		}
		if !selected(sm.Name, services) {
			continue
		}
		if cur, ok := latest[serviceDir]; ok && cur.Version >= sm.Version {
			continue
		}
		latest[serviceDir] = sm
	}

	models := make([]serviceModel, 0, len(latest))
	for _, sm := range latest {
		models = append(models, sm)
	}
	slices.SortFunc(models, func(a, b serviceModel) int {
		return strings.Compare(a.Dir, b.Dir)
	})
	return models, nil
}

func selected(name string, services []string) bool {
	if len(services) == 0 {
		return true
	}
	return slices.ContainsFunc(services, func(s string) bool {
		return strings.EqualFold(s, name)
	})
}
