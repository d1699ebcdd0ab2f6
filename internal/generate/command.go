package generate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/damedic/aws-toolbox-go/internal/generate/doc"
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	"github.com/damedic/aws-toolbox-go/internal/generate/text"
	. "github.com/dave/jennifer/jen"
)

// CommandGenerator writes the cobra command of a cmdlet.
type CommandGenerator struct {
	NoOpGenerator
	Registry *emit.Registry
}

func (g CommandGenerator) GenerateOperation(f *File, svc ir.Service, op ir.Operation) error {
	help, err := g.help(svc, op)
	if err != nil {
		return err
	}
	f.Const().Id(helpConst(op)).Op("=").Lit(help)

	f.Commentf("%s returns the %s command. newClient is called once per run.", commandFunc(op), op.CommandName)
	f.Func().Id(commandFunc(op)).Params(
		Id("newClient").Func().Params().Params(Id("API"), Error()),
	).Op("*").Qual(cobraPkg, "Command").BlockFunc(func(g *Group) {
		g.Id(emit.Receiver).Op(":=").Op("&").Id(op.TypeName).Values()
		g.Id("cmd").Op(":=").Op("&").Qual(cobraPkg, "Command").Values(Dict{
			Id("Use"):     Lit(usage(op)),
			Id("Aliases"): Index().String().Values(Lit(op.CmdletName)),
			Id("Short"):   Lit(short(op)),
			Id("Long"):    Id(helpConst(op)),
			Id("RunE"): Func().Params(Id("cmd").Op("*").Qual(cobraPkg, "Command"), Id("args").Index().String()).Error().Block(
				If(Err().Op(":=").Qual(emit.RuntimePkg, "BindArgs").Call(Id("cmd").Dot("Flags").Call(), Id(emit.Receiver), Id("args")), Err().Op("!=").Nil()).Block(
					Return(Err()),
				),
				List(Id("client"), Err()).Op(":=").Id("newClient").Call(),
				If(Err().Op("!=").Nil()).Block(
					Return(Err()),
				),
				List(Id("out"), Err()).Op(":=").Id(emit.Receiver).Dot("Execute").Call(Id("cmd").Dot("Context").Call(), Id("client")),
				If(Err().Op("!=").Nil()).Block(
					Return(Qual(emit.RuntimePkg, "Failed").Call(Id(emit.Receiver), Err())),
				),
				Return(Qual(emit.RuntimePkg, "Print").Call(Id("cmd").Dot("OutOrStdout").Call(), Id("out"))),
			),
		})
		g.Qual(emit.RuntimePkg, "MustBindFlags").Call(Id("cmd").Dot("Flags").Call(), Id(emit.Receiver))
		for _, p := range op.Parameters {
			if e := enumOf(p); e != nil {
				g.Id("_").Op("=").Id("cmd").Dot("RegisterFlagCompletionFunc").Call(
					Lit(p.FlagName),
					Qual(cobraPkg, "FixedCompletions").Call(Id(enumVar(e)), Qual(cobraPkg, "ShellCompDirectiveNoFileComp")),
				)
			}
		}
		g.Return(Id("cmd"))
	})
	return nil
}

// positional returns the parameters bound by position, in position order.
func positional(op ir.Operation) []ir.Parameter {
	var params []ir.Parameter
	for _, p := range op.Parameters {
		if p.Custom.Position != nil {
			params = append(params, p)
		}
	}
	slices.SortStableFunc(params, func(a, b ir.Parameter) int {
		return *a.Custom.Position - *b.Custom.Position
	})
	return params
}

func usage(op ir.Operation) string {
	use := []string{op.CommandName}
	for _, p := range positional(op) {
		use = append(use, "["+p.FlagName+"]")
	}
	return strings.Join(use, " ")
}

// short returns the first sentence of the operation documentation.
func short(op ir.Operation) string {
	text := strings.Join(strings.Fields(doc.Text(op.Doc)), " ")
	if text == "" {
		return "Calls " + op.Name + "."
	}
	if i := strings.Index(text, ". "); i != -1 {
		return text[:i+1]
	}
	return text
}

// help renders the long help of a command.
func (g CommandGenerator) help(svc ir.Service, op ir.Operation) (string, error) {
	w := text.NewWriter("  ")

	w.Linef("%s calls the %s operation of %s.", op.CmdletName, op.Name, svc.ID)
	if lines := doc.Lines(op.Doc); len(lines) > 0 {
		w.Line("")
		w.Line(strings.Join(lines, "\n"))
	}
	if op.Deprecated {
		w.Line("")
		w.Line("This operation is deprecated.")
	}

	w.Line("")
	var err error
	w.Block("Parameters:", func() {
		for _, p := range op.Parameters {
			rule, e := g.Registry.Lookup(op, p)
			if e != nil {
				err = e
				return
			}

			w.Line("--" + p.FlagName)
			w.Block("", func() {
				if aliases := emit.Aliases(rule.Emitter, p.Custom); len(aliases) > 0 {
					flags := make([]string, len(aliases))
					for i, a := range aliases {
						flags[i] = "--" + ir.FlagName(a)
					}
					w.Line("Aliases: " + strings.Join(flags, ", "))
				}
				if p.Custom.Position != nil {
					w.Linef("Position: %d", *p.Custom.Position)
				}
				if p.Required && !p.IsPagingToken {
					w.Line("Required.")
				}
				if p.IsPagingToken {
					w.Line("Pagination token; set to resume paging.")
				}
				if lines := doc.Lines(p.Doc); len(lines) > 0 {
					w.Line(strings.Join(lines, "\n"))
				}
			})
		}

		w.Line("--select")
		w.Block("", func() {
			w.Linef("Default: %s", op.DefaultSelect)
			w.Line("One of: " + strings.Join(ir.Selectors(op), ", "))
		})

		if op.Paging != nil {
			w.Line("--no-auto-iteration")
			w.Block("", func() {
				w.Line(paging(op.Paging))
			})
		}
	})
	if err != nil {
		return "", err
	}

	return w.String(), nil
}

func paging(p *ir.Paging) string {
	s := fmt.Sprintf("Returns the first page only. Otherwise pages are requested while %s is set.", strings.Join(p.OutputTokens, ", "))
	if p.LimitKey != "" {
		s += fmt.Sprintf(" --%s sets the page size.", ir.FlagName(p.LimitKey))
	}
	return s
}
