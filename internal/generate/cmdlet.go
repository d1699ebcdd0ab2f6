package generate

import (
	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/doc"
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// CmdletGenerator writes the cmdlet struct, its context and Execute.
type CmdletGenerator struct {
	NoOpGenerator
	Registry *emit.Registry
}

func (g CmdletGenerator) GenerateOperation(f *File, svc ir.Service, op ir.Operation) error {
	rules := make([]emit.Rule, len(op.Parameters))
	for i, p := range op.Parameters {
		rule, err := g.Registry.Lookup(op, p)
		if err != nil {
			return err
		}
		rules[i] = rule
	}

	a := emit.NewAnalyzer(svc, op)

	if err := generateCmdletStruct(f, a, op, rules); err != nil {
		return err
	}
	generateContextStruct(f, a, op)
	if err := generateBuildContext(f, op, rules); err != nil {
		return err
	}
	generateNewInput(f, a, op)
	generateExecute(f, op)

	return nil
}

func generateCmdletStruct(f *File, a *emit.Analyzer, op ir.Operation, rules []emit.Rule) error {
	f.Commentf("%s is the %s cmdlet. It calls the %s operation.", op.TypeName, op.CmdletName, op.Name)
	if lines := doc.Lines(op.Doc); len(lines) > 0 {
		f.Comment("")
		for _, l := range lines {
			f.Comment(l)
		}
	}
	if op.Deprecated {
		f.Comment("")
		f.Commentf("Deprecated: %s is deprecated by the service.", op.Name)
	}

	var err error
	f.Type().Id(op.TypeName).StructFunc(func(g *Group) {
		for i, p := range op.Parameters {
			if e := rules[i].Emitter.WriteParams(g, a, p, p.Custom); e != nil {
				err = errors.Wrapf(e, "%s.%s: emitter %s", op.Name, p.Name, rules[i].Name)
				return
			}
		}

		if len(op.Parameters) > 0 {
			g.Line()
		}
		g.Commentf("Select chooses the output, %q by default.", op.DefaultSelect)
		g.Id("Select").String().Tag(map[string]string{"flag": "select"})
		if op.Paging != nil {
			g.Comment("NoAutoIteration returns the first page only.")
			g.Id("NoAutoIteration").Bool().Tag(map[string]string{"flag": "no-auto-iteration"})
		}
	})
	return err
}

func generateContextStruct(f *File, a *emit.Analyzer, op ir.Operation) {
	f.Type().Id(contextType(op)).StructFunc(func(g *Group) {
		for _, p := range op.Parameters {
			g.Id(p.FieldName).Add(a.ParamType(p.Shape))
		}
	})
}

func generateBuildContext(f *File, op ir.Operation, rules []emit.Rule) error {
	var err error
	f.Func().Params(receiver(op)).Id("buildContext").Params().Params(Op("*").Id(contextType(op)), Error()).BlockFunc(func(g *Group) {
		g.Id("ctx").Op(":=").Op("&").Id(contextType(op)).Values()
		for i, p := range op.Parameters {
			if e := rules[i].Emitter.WriteContextMembers(g, "ctx", p, p.Custom); e != nil {
				err = errors.Wrapf(e, "%s.%s: emitter %s", op.Name, p.Name, rules[i].Name)
				return
			}
		}
		g.Return(Id("ctx"), Nil())
	})
	return err
}

func generateNewInput(f *File, a *emit.Analyzer, op ir.Operation) {
	input := a.SDK(op.Name + "Input")

	f.Func().Params(Id("ctx").Op("*").Id(contextType(op))).Id("newInput").Params().Op("*").Add(input.Clone()).BlockFunc(func(g *Group) {
		g.Id("input").Op(":=").Op("&").Add(input.Clone()).Values()
		for _, p := range op.Parameters {
			g.If(Id("ctx").Dot(p.FieldName).Op("!=").Nil()).Block(
				Id("input").Dot(ir.GoName(p.Name)).Op("=").Add(a.ToSDK(p.Shape, Id("ctx").Dot(p.FieldName))),
			)
		}
		g.Return(Id("input"))
	})
}

func generateExecute(f *File, op ir.Operation) {
	call := func() []Code {
		return []Code{
			List(Id("output"), Err()).Op(":=").Id("client").Dot(op.Name+"WithContext").Call(Id("ctx"), Id("input")),
			If(Err().Op("!=").Nil()).Block(Return(Nil(), Err())),
		}
	}

	f.Commentf("Execute validates the parameters, calls %s and returns the selected output.", op.Name)
	if op.Paging != nil {
		f.Comment("Pages are requested until the service returns no further token.")
	}
	f.Func().Params(receiver(op)).Id("Execute").Params(
		Id("ctx").Qual("context", "Context"),
		Id("client").Id("API"),
	).Params(Any(), Error()).BlockFunc(func(g *Group) {
		g.If(Err().Op(":=").Qual(emit.RuntimePkg, "Validate").Call(Id(emit.Receiver)), Err().Op("!=").Nil()).Block(
			Return(Nil(), Err()),
		)

		g.Id("sel").Op(":=").Id(emit.Receiver).Dot("Select")
		g.If(Id("sel").Op("==").Lit("")).Block(
			Id("sel").Op("=").Lit(op.DefaultSelect),
		)
		g.List(Id("selector"), Id("ok")).Op(":=").Id(selectorsVar(op)).Index(Id("sel"))
		g.If(Op("!").Id("ok")).Block(
			Return(Nil(), Qual(emit.RuntimePkg, "UnknownSelectorError").Call(Id("sel"), Id(selectorNamesVar(op)))),
		)

		g.List(Id("params"), Err()).Op(":=").Id(emit.Receiver).Dot("buildContext").Call()
		g.If(Err().Op("!=").Nil()).Block(Return(Nil(), Err()))
		g.Id("input").Op(":=").Id("params").Dot("newInput").Call()

		if op.Paging == nil {
			for _, c := range call() {
				g.Add(c)
			}
			g.Return(Id("selector").Call(Id(emit.Receiver), Id("output")), Nil())
			return
		}

		g.If(Id(emit.Receiver).Dot("NoAutoIteration")).Block(
			append(call(), Return(Id("selector").Call(Id(emit.Receiver), Id("output")), Nil()))...,
		)

		g.Line()
		g.Var().Id("pages").Index().Any()
		g.Id("seen").Op(":=").Map(String()).Bool().Values()
		g.For().BlockFunc(func(g *Group) {
			for _, c := range call() {
				g.Add(c)
			}
			g.Id("pages").Op("=").Append(Id("pages"), Id("selector").Call(Id(emit.Receiver), Id("output")))

			if op.Paging.MoreResults != "" {
				g.If(Op("!").Qual(emit.AWSPkg, "BoolValue").Call(Id("output").Dot(ir.GoName(op.Paging.MoreResults)))).Block(Break())
			}

			g.Id("key").Op(":=").Qual(emit.RuntimePkg, "PageKey").CallFunc(func(g *Group) {
				for _, t := range op.Paging.OutputTokens {
					g.Id("output").Dot(ir.GoName(t))
				}
			})
			g.If(Id("key").Op("==").Lit("")).Block(Break())
			g.If(Id("seen").Index(Id("key"))).Block(
				Return(Nil(), Qual(emit.RuntimePkg, "RepeatedTokenError").Call(Id("key"))),
			)
			g.Id("seen").Index(Id("key")).Op("=").True()
			for i, t := range op.Paging.InputTokens {
				g.Id("input").Dot(ir.GoName(t)).Op("=").Id("output").Dot(ir.GoName(op.Paging.OutputTokens[i]))
			}
		})
		g.Return(Qual(emit.RuntimePkg, "Flatten").Call(Id("pages")), Nil())
	})
}
