package generate

import (
	"strings"

	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

const (
	moduleName = "github.com/damedic/aws-toolbox-go"
	cobraPkg   = "github.com/spf13/cobra"
	requestPkg = "github.com/aws/aws-sdk-go/aws/request"
	sessionPkg = "github.com/aws/aws-sdk-go/aws/session"

	// Header starts every generated file.
	Header = "Code generated by awsgen. DO NOT EDIT."
)

// Generator contributes code to the generated package of a service.
type Generator interface {
	// GenerateOperation adds to the file of a single operation.
	GenerateOperation(f *File, svc ir.Service, op ir.Operation) error
	// GenerateAdditional adds service wide code. f returns the file of the
	// given name, creating it on first use.
	GenerateAdditional(f func(fileName string) *File, svc ir.Service) error
}

type NoOpGenerator struct{}

func (g NoOpGenerator) GenerateOperation(f *File, svc ir.Service, op ir.Operation) error {
	return nil
}

func (g NoOpGenerator) GenerateAdditional(f func(fileName string) *File, svc ir.Service) error {
	return nil
}

// DefaultGenerators returns the generators of a complete cmdlet package.
func DefaultGenerators(r *emit.Registry) []Generator {
	return []Generator{
		CmdletGenerator{Registry: r},
		ImplCmdletGenerator{},
		SelectGenerator{},
		CommandGenerator{Registry: r},
		ClientAPIGenerator{},
		IndexGenerator{},
		EnumsGenerator{},
		PkgDocGenerator{},
	}
}

func baseName(op ir.Operation) string {
	return strings.TrimSuffix(op.TypeName, "Cmdlet")
}

func contextType(op ir.Operation) string {
	return ir.Unexported(baseName(op)) + "Context"
}

func selectorsVar(op ir.Operation) string {
	return ir.Unexported(baseName(op)) + "Selectors"
}

func selectorNamesVar(op ir.Operation) string {
	return ir.Unexported(baseName(op)) + "SelectorNames"
}

func helpConst(op ir.Operation) string {
	return ir.Unexported(baseName(op)) + "Help"
}

func commandFunc(op ir.Operation) string {
	return "New" + baseName(op) + "Command"
}

func receiver(op ir.Operation) *Statement {
	return Id(emit.Receiver).Op("*").Id(op.TypeName)
}
