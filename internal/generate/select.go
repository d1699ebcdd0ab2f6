package generate

import (
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// SelectGenerator writes the output selectors of a cmdlet: the whole
// response, each output member and each parameter echoed back with "^".
type SelectGenerator struct {
	NoOpGenerator
}

func (g SelectGenerator) GenerateOperation(f *File, svc ir.Service, op ir.Operation) error {
	output := Op("*").Qual(svc.SDKImportPath, op.Name+"Output")
	selector := func(ret Code) Code {
		return Func().Params(receiver(op), Id("o").Add(output.Clone())).Any().Block(Return(ret))
	}

	f.Var().Id(selectorsVar(op)).Op("=").Map(String()).Func().Params(
		Op("*").Id(op.TypeName),
		output.Clone(),
	).Any().Values(DictFunc(func(d Dict) {
		d[Lit(ir.SelectAll)] = selector(Id("o"))
		for _, out := range op.Outputs {
			d[Lit(out.Name)] = selector(Id("o").Dot(ir.GoName(out.Name)))
		}
		for _, p := range op.Parameters {
			d[Lit("^"+p.FieldName)] = selector(Id(emit.Receiver).Dot(p.FieldName))
		}
	}))

	f.Var().Id(selectorNamesVar(op)).Op("=").Index().String().ValuesFunc(func(g *Group) {
		for _, s := range ir.Selectors(op) {
			g.Lit(s)
		}
	})

	return nil
}
