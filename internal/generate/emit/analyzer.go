package emit

import (
	"slices"
	"strconv"
	"strings"

	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// Analyzer maps model shapes of one operation to Go types.
//
// ParamType is the type users set and the context holds: scalars are pointers,
// lists and maps of scalars hold values. SDKType is the type of the request
// field, where every scalar is a pointer.
type Analyzer struct {
	Service   ir.Service
	Operation ir.Operation
}

func NewAnalyzer(svc ir.Service, op ir.Operation) *Analyzer {
	return &Analyzer{Service: svc, Operation: op}
}

// SDK qualifies name with the SDK service package.
func (a *Analyzer) SDK(name string) *Statement {
	return Qual(a.Service.SDKImportPath, name)
}

func (a *Analyzer) ParamType(s *ir.ShapeInfo) *Statement {
	switch s.Kind {
	case ir.KindList:
		if scalar(s.Elem) {
			return Index().Add(valueType(s.Elem))
		}
	case ir.KindMap:
		if scalar(s.Value) {
			return Map(valueType(s.Key)).Add(valueType(s.Value))
		}
	case ir.KindBlob:
		return Index().Byte()
	}

	if scalar(s) {
		return Op("*").Add(valueType(s))
	}
	return a.SDKType(s)
}

func (a *Analyzer) SDKType(s *ir.ShapeInfo) *Statement {
	switch s.Kind {
	case ir.KindList:
		return Index().Add(a.SDKType(s.Elem))
	case ir.KindMap:
		return Map(valueType(s.Key)).Add(a.SDKType(s.Value))
	case ir.KindStructure:
		return Op("*").Add(a.SDK(ir.GoName(s.Name)))
	case ir.KindBlob:
		return Index().Byte()
	}
	return Op("*").Add(valueType(s))
}

// ToSDK converts v from ParamType to SDKType of s.
func (a *Analyzer) ToSDK(s *ir.ShapeInfo, v Code) *Statement {
	switch {
	case s.Kind == ir.KindList && scalar(s.Elem):
		return Qual(AWSPkg, converter(s.Elem)+"Slice").Call(v)
	case s.Kind == ir.KindMap && scalar(s.Value):
		return Qual(AWSPkg, converter(s.Value)+"Map").Call(v)
	}
	return Add(v)
}

// Tags returns the struct tags binding p to the command line.
func (a *Analyzer) Tags(p ir.Parameter, aliases []string) map[string]string {
	tags := map[string]string{"flag": p.FlagName}

	if len(aliases) > 0 {
		tags["alias"] = strings.Join(aliases, ",")
	}
	if p.Custom.Position != nil {
		tags["position"] = strconv.Itoa(*p.Custom.Position)
	}

	var validate []string
	if p.Required && !p.IsPagingToken {
		validate = append(validate, "required")
	}
	if p.Shape.Min != nil {
		validate = append(validate, "min="+p.Shape.Min.String())
	}
	if p.Shape.Max != nil {
		validate = append(validate, "max="+p.Shape.Max.String())
	}
	if len(validate) > 0 {
		tags["validate"] = strings.Join(validate, ",")
	}

	if len(p.Shape.Enum) > 0 {
		tags["enum"] = strings.Join(p.Shape.Enum, ",")
	}

	return tags
}

// scalar reports whether s is represented by a single Go value; blobs are
// byte slices and therefore not.
func scalar(s *ir.ShapeInfo) bool {
	return s.IsScalar() && s.Kind != ir.KindBlob
}

func valueType(s *ir.ShapeInfo) *Statement {
	switch s.Kind {
	case ir.KindString:
		return String()
	case ir.KindInteger, ir.KindLong:
		return Int64()
	case ir.KindBoolean:
		return Bool()
	case ir.KindFloat, ir.KindDouble:
		return Float64()
	case ir.KindTimestamp:
		return Qual("time", "Time")
	}
	// Shapes are validated by ir.Parse.
	panic("no value type for " + s.Signature())
}

// converter names the aws helper family, e.g. aws.StringSlice.
func converter(s *ir.ShapeInfo) string {
	switch s.Kind {
	case ir.KindInteger, ir.KindLong:
		return "Int64"
	case ir.KindBoolean:
		return "Bool"
	case ir.KindFloat, ir.KindDouble:
		return "Float64"
	case ir.KindTimestamp:
		return "Time"
	}
	return "String"
}

// withAlias appends alias to aliases unless present.
func withAlias(aliases []string, alias string) []string {
	if slices.Contains(aliases, alias) {
		return aliases
	}
	return append(slices.Clone(aliases), alias)
}
