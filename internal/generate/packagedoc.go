package generate

import (
	"fmt"

	"github.com/damedic/aws-toolbox-go/internal/generate/doc"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

type PkgDocGenerator struct {
	NoOpGenerator
}

func (g PkgDocGenerator) GenerateAdditional(f func(fileName string) *File, svc ir.Service) error {
	file := f("doc")

	name := svc.FullName
	if name == "" {
		name = svc.ID
	}
	file.PackageComment(fmt.Sprintf("Package %s provides generated cmdlets for %s (API version %s).", svc.PackageName, name, svc.APIVersion))

	if lines := doc.Lines(svc.Doc); len(lines) > 0 {
		file.PackageComment("")
		for _, l := range lines {
			file.PackageComment(l)
		}
	}
	return nil
}
