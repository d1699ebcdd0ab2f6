// Package emit writes the per-parameter parts of generated cmdlets. Each
// parameter is handled by exactly one ParamEmitter, chosen by a Registry.
package emit

import (
	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/doc"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

const (
	// Receiver is the receiver name of generated cmdlet methods.
	Receiver = "c"
	// RuntimePkg is imported by generated code for binding and normalization.
	RuntimePkg = "github.com/damedic/aws-toolbox-go/cmdlet"
	// AWSPkg provides the pointer conversion helpers of the SDK.
	AWSPkg = "github.com/aws/aws-sdk-go/aws"
)

var ErrShapeMismatch = errors.New("shape mismatch")

// ParamEmitter writes the code of one parameter of a cmdlet.
type ParamEmitter interface {
	// WriteParams writes the documented, tagged field declaration into the
	// cmdlet struct.
	WriteParams(g *Group, a *Analyzer, p ir.Parameter, c config.Param) error
	// WriteContextMembers writes the statements of buildContext that copy the
	// field into ctxVar, normalized to the type the request needs. They may
	// return nil and an error. Nothing is assigned when the field is nil.
	WriteContextMembers(g *Group, ctxVar string, p ir.Parameter, c config.Param) error
}

// Aliaser is implemented by emitters that add aliases to the customized ones.
type Aliaser interface {
	Aliases(c config.Param) []string
}

// Aliases returns the aliases e declares for a parameter customized by c.
func Aliases(e ParamEmitter, c config.Param) []string {
	if a, ok := e.(Aliaser); ok {
		return a.Aliases(c)
	}
	return c.Aliases
}

// writeDoc writes the documentation of p followed by extra paragraphs.
func writeDoc(g *Group, p ir.Parameter, extra ...string) {
	lines := doc.Lines(p.Doc)
	for _, e := range extra {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, e)
	}
	if p.Deprecated {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Deprecated: "+p.Name+" is deprecated by the service.")
	}

	for _, l := range lines {
		g.Comment(l)
	}
}

// field is the cmdlet field of p.
func field(p ir.Parameter) *Statement {
	return Id(Receiver).Dot(p.FieldName)
}

// guard wraps body into a nil check of the cmdlet field of p.
func guard(p ir.Parameter, body ...Code) *Statement {
	return If(field(p).Op("!=").Nil()).Block(body...)
}

// normalize assigns the result of a fallible runtime conversion of the field.
func normalize(g *Group, ctxVar string, p ir.Parameter, fn string) {
	g.Add(guard(p,
		List(Id("v"), Err()).Op(":=").Qual(RuntimePkg, fn).Call(field(p)),
		If(Err().Op("!=").Nil()).Block(
			Return(Nil(), Qual(RuntimePkg, "ParameterError").Call(Lit(p.FieldName), Err())),
		),
		Id(ctxVar).Dot(p.FieldName).Op("=").Id("v"),
	))
}
