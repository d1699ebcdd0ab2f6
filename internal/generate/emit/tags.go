package emit

import (
	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// Tags takes a list of Key/Value tag structures as a map.
type Tags struct{}

func (Tags) WriteParams(g *Group, a *Analyzer, p ir.Parameter, c config.Param) error {
	if err := checkTagShape(p.Shape); err != nil {
		return err
	}

	writeDoc(g, p, "Tags are given as key=value pairs.")
	g.Id(p.FieldName).Map(String()).String().Tag(a.Tags(p, c.Aliases))
	return nil
}

func (Tags) WriteContextMembers(g *Group, ctxVar string, p ir.Parameter, c config.Param) error {
	if err := checkTagShape(p.Shape); err != nil {
		return err
	}

	g.Add(guard(p,
		Qual(RuntimePkg, "AppendTags").Call(Op("&").Id(ctxVar).Dot(p.FieldName), field(p)),
	))
	return nil
}

func checkTagShape(s *ir.ShapeInfo) error {
	if s.Kind != ir.KindList || s.Elem.Kind != ir.KindStructure {
		return errors.Wrapf(ErrShapeMismatch, "tags need a list of structures, got %s", s.Signature())
	}
	for _, name := range []string{"Key", "Value"} {
		f, ok := s.Elem.Field(name)
		if !ok || f.Shape.Kind != ir.KindString {
			return errors.Wrapf(ErrShapeMismatch, "tag structure %s has no string member %s", s.Elem.Name, name)
		}
	}
	return nil
}
