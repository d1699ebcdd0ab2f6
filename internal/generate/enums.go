package generate

import (
	"slices"
	"strings"

	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// EnumsGenerator writes the allowed values of every enum shape used by a
// parameter. Commands offer them as flag completions.
type EnumsGenerator struct {
	NoOpGenerator
}

func (g EnumsGenerator) GenerateAdditional(f func(fileName string) *File, svc ir.Service) error {
	enums := collectEnums(svc)
	if len(enums) == 0 {
		return nil
	}

	file := f("enums")
	for _, e := range enums {
		file.Commentf("%s lists the values of %s.", enumVar(e), e.Name)
		file.Var().Id(enumVar(e)).Op("=").Index().String().ValuesFunc(func(g *Group) {
			for _, v := range e.Enum {
				g.Lit(v)
			}
		})
	}
	return nil
}

// enumOf returns the enum shape of a parameter, looking into lists.
func enumOf(p ir.Parameter) *ir.ShapeInfo {
	s := p.Shape
	if s.Kind == ir.KindList {
		s = s.Elem
	}
	if len(s.Enum) == 0 {
		return nil
	}
	return s
}

func enumVar(s *ir.ShapeInfo) string {
	return ir.GoName(s.Name) + "Values"
}

// collectEnums returns the enum shapes of all parameters ordered by name.
func collectEnums(svc ir.Service) []*ir.ShapeInfo {
	seen := make(map[string]bool)
	var enums []*ir.ShapeInfo
	for _, op := range svc.Operations {
		for _, p := range op.Parameters {
			e := enumOf(p)
			if e == nil || seen[enumVar(e)] {
				continue
			}
			seen[enumVar(e)] = true
			enums = append(enums, e)
		}
	}
	slices.SortFunc(enums, func(a, b *ir.ShapeInfo) int {
		return strings.Compare(enumVar(a), enumVar(b))
	})
	return enums
}
