package main

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openModels opens the service models at path, either a directory or a zip
// archive of one.
func openModels(path string) (fs.FS, io.Closer, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		zap.S().Debugf("opening zip archive %s", path)
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening models")
		}
		return r, r, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening models")
	}
	if !info.IsDir() {
		return nil, nil, errors.WithHint(
			errors.Newf("models %s is neither a directory nor a zip archive", path),
			"pass the directory containing <service>/<version>/api-2.json",
		)
	}
	return os.DirFS(path), nopCloser{}, nil
}
