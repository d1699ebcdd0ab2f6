package emit

import (
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// PassThrough declares the field with the parameter type of its shape and copies
// it into the context unchanged.
type PassThrough struct{}

func (PassThrough) WriteParams(g *Group, a *Analyzer, p ir.Parameter, c config.Param) error {
	writeDoc(g, p)
	g.Id(p.FieldName).Add(a.ParamType(p.Shape)).Tag(a.Tags(p, c.Aliases))
	return nil
}

func (PassThrough) WriteContextMembers(g *Group, ctxVar string, p ir.Parameter, c config.Param) error {
	g.Add(guard(p,
		Id(ctxVar).Dot(p.FieldName).Op("=").Add(field(p)),
	))
	return nil
}
