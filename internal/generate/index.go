package generate

import (
	"slices"
	"strings"

	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// IndexGenerator writes the functions returning all commands of a package.
type IndexGenerator struct {
	NoOpGenerator
}

func (g IndexGenerator) GenerateAdditional(f func(fileName string) *File, svc ir.Service) error {
	file := f("commands")
	newClient := Id("newClient").Func().Params().Params(Id("API"), Error())

	ops := slices.Clone(svc.Operations)
	slices.SortFunc(ops, func(a, b ir.Operation) int {
		return strings.Compare(a.CommandName, b.CommandName)
	})

	file.Comment("Commands returns the commands of all cmdlets of this package, sorted by name.")
	file.Func().Id("Commands").Params(newClient.Clone()).Index().Op("*").Qual(cobraPkg, "Command").Block(
		Return(Index().Op("*").Qual(cobraPkg, "Command").ValuesFunc(func(g *Group) {
			for _, op := range ops {
				g.Line().Id(commandFunc(op)).Call(Id("newClient"))
			}
			g.Line()
		})),
	)

	name := svc.FullName
	if name == "" {
		name = svc.ID
	}
	file.Commentf("NewCommand groups the commands of %s.", svc.ID)
	file.Func().Id("NewCommand").Params(newClient.Clone()).Op("*").Qual(cobraPkg, "Command").Block(
		Id("cmd").Op(":=").Op("&").Qual(cobraPkg, "Command").Values(Dict{
			Id("Use"):   Lit(strings.ToLower(svc.Prefix)),
			Id("Short"): Lit(name),
		}),
		Id("cmd").Dot("AddCommand").Call(Id("Commands").Call(Id("newClient")).Op("...")),
		Return(Id("cmd")),
	)
	return nil
}
