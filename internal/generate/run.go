package generate

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RunOptions struct {
	Generators []Generator
	// Workers limits how many operations are generated at once. Zero uses
	// one worker per CPU.
	Workers int
}

// Files maps slash separated paths, relative to the output directory, to the
// generated source.
type Files map[string][]byte

// Run generates the package of svc in memory. Operations are generated
// concurrently, service wide files afterwards.
func Run(ctx context.Context, svc ir.Service, opts RunOptions) (Files, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rendered := make([][]byte, len(svc.Operations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, op := range svc.Operations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			zap.S().Debugf("%s: generating %s for %s", svc.ID, op.CmdletName, op.Name)

			f := newFile(svc)
			for _, gen := range opts.Generators {
				if err := gen.GenerateOperation(f, svc, op); err != nil {
					return errors.Wrapf(err, "%s: operation %s", svc.ID, op.Name)
				}
			}

			b, err := render(f)
			if err != nil {
				return errors.Wrapf(err, "%s: rendering %s", svc.ID, op.Name)
			}
			rendered[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make(Files, len(svc.Operations))
	for i, op := range svc.Operations {
		files[path.Join(svc.PackageName, op.FileName+".go")] = rendered[i]
	}

	additional := make(map[string]*File)
	get := func(fileName string) *File {
		if f, ok := additional[fileName]; ok {
			return f
		}
		f := newFile(svc)
		additional[fileName] = f
		return f
	}
	for _, gen := range opts.Generators {
		if err := gen.GenerateAdditional(get, svc); err != nil {
			return nil, errors.Wrapf(err, "%s", svc.ID)
		}
	}
	for fileName, f := range additional {
		name := path.Join(svc.PackageName, fileName+".go")
		if _, ok := files[name]; ok {
			return nil, errors.Newf("%s: %s is generated twice", svc.ID, name)
		}
		b, err := render(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: rendering %s", svc.ID, fileName)
		}
		files[name] = b
	}

	zap.S().Infof("%s: generated %d cmdlets in package %s", svc.ID, len(svc.Operations), svc.PackageName)
	return files, nil
}

func newFile(svc ir.Service) *File {
	f := NewFile(svc.PackageName)
	f.HeaderComment(Header)
	return f
}

func render(f *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Names returns the file names in lexical order.
func (fs Files) Names() []string {
	names := make([]string, 0, len(fs))
	for name := range fs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Write writes the files below dir and removes generated files of the same
// packages that are no longer produced.
func (fs Files) Write(dir string) error {
	for _, name := range fs.Names() {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, fs[name], 0o644); err != nil {
			return err
		}
	}

	orphans, err := fs.orphans(dir)
	if err != nil {
		return err
	}
	for _, name := range orphans {
		zap.S().Infof("removing %s", name)
		if err := os.Remove(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
			return err
		}
	}
	return nil
}

// Check returns the files below dir that are missing, differ from the
// generated content, or were generated but are no longer produced.
func (fs Files) Check(dir string) ([]string, error) {
	var stale []string
	for _, name := range fs.Names() {
		b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if errors.Is(err, os.ErrNotExist) {
			stale = append(stale, name)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(b, fs[name]) {
			stale = append(stale, name)
		}
	}

	orphans, err := fs.orphans(dir)
	if err != nil {
		return nil, err
	}
	stale = append(stale, orphans...)
	slices.Sort(stale)
	return stale, nil
}

// orphans lists generated Go files in the package directories of fs that fs
// does not contain.
func (fs Files) orphans(dir string) ([]string, error) {
	pkgs := make(map[string]bool)
	for name := range fs {
		pkgs[path.Dir(name)] = true
	}

	var orphans []string
	for pkg := range pkgs {
		entries, err := os.ReadDir(filepath.Join(dir, filepath.FromSlash(pkg)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name := path.Join(pkg, e.Name())
			if e.IsDir() || !strings.HasSuffix(name, ".go") || fs[name] != nil {
				continue
			}
			generated, err := isGenerated(filepath.Join(dir, filepath.FromSlash(name)))
			if err != nil {
				return nil, err
			}
			if generated {
				orphans = append(orphans, name)
			}
		}
	}
	slices.Sort(orphans)
	return orphans, nil
}

func isGenerated(file string) (bool, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}
	return bytes.HasPrefix(b, []byte("// "+Header)), nil
}
