package ir

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
)

// Kind is the modeled type of a shape.
type Kind string

const (
	KindString    Kind = "string"
	KindInteger   Kind = "integer"
	KindLong      Kind = "long"
	KindBoolean   Kind = "boolean"
	KindFloat     Kind = "float"
	KindDouble    Kind = "double"
	KindTimestamp Kind = "timestamp"
	KindBlob      Kind = "blob"
	KindList      Kind = "list"
	KindMap       Kind = "map"
	KindStructure Kind = "structure"
)

// ShapeInfo is a resolved model shape. Structure shapes are shared by pointer,
// so recursive models form cycles.
type ShapeInfo struct {
	Name string
	Kind Kind

	// Elem is the member of a list.
	Elem *ShapeInfo
	// Key and Value are set for maps.
	Key   *ShapeInfo
	Value *ShapeInfo
	// Fields lists the members of a structure in model order.
	Fields []Field

	Enum      []string
	Min       *apd.Decimal
	Max       *apd.Decimal
	Sensitive bool
}

type Field struct {
	Name  string
	Shape *ShapeInfo
}

// Signature is the key emitters are matched on, e.g. "list<string>",
// "map<string,string>" or "list<structure:Tag>".
func (s *ShapeInfo) Signature() string {
	switch s.Kind {
	case KindList:
		return "list<" + s.Elem.Signature() + ">"
	case KindMap:
		return "map<" + s.Key.Signature() + "," + s.Value.Signature() + ">"
	case KindStructure:
		return "structure:" + s.Name
	default:
		return string(s.Kind)
	}
}

// IsScalar reports whether the shape is neither a list, a map nor a structure.
func (s *ShapeInfo) IsScalar() bool {
	switch s.Kind {
	case KindList, KindMap, KindStructure:
		return false
	}
	return true
}

// Field returns the structure member with the given name.
func (s *ShapeInfo) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

type Service struct {
	// ID is the model service id, e.g. "EC2".
	ID string
	// FullName is the human readable service name.
	FullName   string
	APIVersion string
	// Prefix is prepended to every cmdlet noun.
	Prefix string
	// PackageName is the name of the generated Go package.
	PackageName string
	// SDKImportPath is the import path of the SDK service package.
	SDKImportPath string
	// ClientType is the client type of the SDK service package, e.g. "EC2".
	ClientType string
	Doc           string
	Operations    []Operation
}

type Operation struct {
	// Name is the model operation name, e.g. "DescribeInstances".
	Name string
	Verb string
	Noun string
	// CmdletName is Verb-Noun, e.g. "Get-EC2Instance".
	CmdletName string
	// TypeName is the Go type of the generated cmdlet.
	TypeName string
	// CommandName is the name of the generated cobra command.
	CommandName string
	// FileName is the generated file name without extension.
	FileName   string
	Doc        string
	Deprecated bool

	Parameters []Parameter
	Outputs    []Field
	Paging     *Paging
	// DefaultSelect is the selector used when the caller does not choose one.
	DefaultSelect string
}

// Parameter describes one bindable parameter of an operation.
type Parameter struct {
	// Name is the model member name of the input shape.
	Name string
	// FieldName is the Go field name on the cmdlet and its context.
	FieldName string
	// FlagName is the command line flag name.
	FlagName      string
	Doc           string
	Shape         *ShapeInfo
	Required      bool
	Deprecated    bool
	IsPagingToken bool
	Custom        config.Param
}

// Paging describes how to auto-iterate an operation. Tokens are member names
// of the input and output shapes, pairwise.
type Paging struct {
	InputTokens  []string
	OutputTokens []string
	LimitKey     string
	MoreResults  string
	ResultKeys   []string
}

// FilterPaged returns the operations that auto-iterate.
func FilterPaged(ops []Operation) []Operation {
	var paged []Operation
	for _, op := range ops {
		if op.Paging != nil {
			paged = append(paged, op)
		}
	}
	return paged
}
