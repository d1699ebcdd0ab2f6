package emit

import (
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
)

// Blob accepts binary content as bytes, string, reader or file.
type Blob struct{}

func (Blob) WriteParams(g *Group, a *Analyzer, p ir.Parameter, c config.Param) error {
	writeDoc(g, p, "Accepts []byte, string, io.Reader or cmdlet.File; on the command line @path reads a file.")
	g.Id(p.FieldName).Any().Tag(a.Tags(p, c.Aliases))
	return nil
}

func (Blob) WriteContextMembers(g *Group, ctxVar string, p ir.Parameter, c config.Param) error {
	normalize(g, ctxVar, p, "ReadBlob")
	return nil
}
