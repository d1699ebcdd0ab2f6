package emit

import (
	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// InstanceAlias is always accepted for instance id parameters.
const InstanceAlias = "Instance"

// InstanceIDs widens a list of instance ids to accept ids, instances and
// reservations, so the output of Get-EC2Instance can be passed on directly.
type InstanceIDs struct{}

func (InstanceIDs) WriteParams(g *Group, a *Analyzer, p ir.Parameter, c config.Param) error {
	if p.Shape.Signature() != "list<string>" {
		return errors.Wrapf(ErrShapeMismatch, "instance ids need list<string>, got %s", p.Shape.Signature())
	}

	writeDoc(g, p, "Accepts instance ids as well as ec2.Instance and ec2.Reservation values.")
	g.Id(p.FieldName).Index().Any().Tag(a.Tags(p, InstanceIDs{}.Aliases(c)))
	return nil
}

// Aliases keeps the customized aliases in order and appends InstanceAlias
// unless present.
func (InstanceIDs) Aliases(c config.Param) []string {
	return withAlias(c.Aliases, InstanceAlias)
}

func (InstanceIDs) WriteContextMembers(g *Group, ctxVar string, p ir.Parameter, c config.Param) error {
	normalize(g, ctxVar, p, "InstanceIDs")
	return nil
}
