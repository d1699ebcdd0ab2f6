package generate

import (
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// ImplCmdletGenerator implements cmdlet.Cmdlet.
type ImplCmdletGenerator struct {
	NoOpGenerator
}

func (g ImplCmdletGenerator) GenerateOperation(f *File, svc ir.Service, op ir.Operation) error {
	f.Var().Id("_").Qual(emit.RuntimePkg, "Cmdlet").Op("=").Parens(Op("*").Id(op.TypeName)).Parens(Nil())

	f.Func().Params(receiver(op)).Id("CmdletName").Params().String().Block(
		Return(Lit(op.CmdletName)),
	)
	f.Func().Params(receiver(op)).Id("OperationName").Params().String().Block(
		Return(Lit(op.Name)),
	)
	return nil
}
