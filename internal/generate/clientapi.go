package generate

import (
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// ClientAPIGenerator writes the API interface listing the SDK client methods
// the cmdlets call, and a constructor for the SDK client.
type ClientAPIGenerator struct {
	NoOpGenerator
}

func (g ClientAPIGenerator) GenerateAdditional(f func(fileName string) *File, svc ir.Service) error {
	file := f("api")
	client := Qual(svc.SDKImportPath, svc.ClientType)

	file.Commentf("API is the part of the %s client used by the cmdlets of this package.", svc.ID)
	file.Type().Id("API").InterfaceFunc(func(g *Group) {
		for _, op := range svc.Operations {
			g.Id(op.Name+"WithContext").
				Params(
					Qual(emit.AWSPkg, "Context"),
					Op("*").Qual(svc.SDKImportPath, op.Name+"Input"),
					Op("...").Qual(requestPkg, "Option"),
				).
				Params(
					Op("*").Qual(svc.SDKImportPath, op.Name+"Output"),
					Error(),
				)
		}
	})

	file.Var().Id("_").Id("API").Op("=").Parens(Op("*").Add(client.Clone())).Parens(Nil())

	file.Comment("NewClient creates an SDK client from the shared configuration and environment.")
	file.Func().Id("NewClient").Params().Params(Id("API"), Error()).Block(
		List(Id("sess"), Err()).Op(":=").Qual(sessionPkg, "NewSessionWithOptions").Call(
			Qual(sessionPkg, "Options").Values(Dict{
				Id("SharedConfigState"): Qual(sessionPkg, "SharedConfigEnable"),
			}),
		),
		If(Err().Op("!=").Nil()).Block(
			Return(Nil(), Err()),
		),
		Return(Qual(svc.SDKImportPath, "New").Call(Id("sess")), Nil()),
	)
	return nil
}
