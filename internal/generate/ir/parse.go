package ir

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/model"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedShape   = errors.New("unsupported shape")
	ErrDuplicateCmdlet    = errors.New("duplicate cmdlet name")
	ErrDuplicateParameter = errors.New("duplicate parameter")
	ErrReservedName       = errors.New("reserved parameter name")
	ErrInvalidSelect      = errors.New("invalid select")
)

// SDKBase is the import path prefix of the SDK service packages.
const SDKBase = "github.com/aws/aws-sdk-go/service/"

// SelectAll selects the whole response.
const SelectAll = "*"

// reservedFields are the field and method names of generated cmdlets that
// parameters must not shadow.
var reservedFields = []string{"Select", "NoAutoIteration", "Execute", "CmdletName", "OperationName"}

// Parse parses a service model into the intermediate representation, applying
// the customizations of the service.
func Parse(bundle *model.Bundle, cust config.Service) (Service, error) {
	api := bundle.API

	id := serviceID(api.Metadata)
	svc := Service{
		ID:            id,
		FullName:      api.Metadata.ServiceFullName,
		APIVersion:    api.Metadata.APIVersion,
		Prefix:        cust.Prefix,
		PackageName:   cust.Package,
		SDKImportPath: cust.SDKPackage,
		ClientType:    cust.Client,
		Doc:           api.Documentation,
	}
	if svc.Prefix == "" {
		svc.Prefix = prefixOf(id)
	}
	if svc.PackageName == "" {
		svc.PackageName = strings.ToLower(svc.Prefix) + "cmdlets"
	}
	if svc.ClientType == "" {
		svc.ClientType = svc.Prefix
	}
	if svc.SDKImportPath == "" {
		svc.SDKImportPath = SDKBase + strings.ToLower(strings.ReplaceAll(id, " ", ""))
	}

	var names []string
	for name := range api.Operations {
		names = append(names, name)
	}
	slices.Sort(names)

	p := parser{
		api:        api,
		paginators: bundle.Paginators,
		cust:       cust,
		prefix:     svc.Prefix,
		shapes:     make(map[string]*ShapeInfo),
	}

	cmdlets := make(map[string]string)
	for _, name := range names {
		if cust.Excluded(name) {
			zap.S().Debugf("%s: skipping excluded operation %s", id, name)
			continue
		}

		op, err := p.operation(name, api.Operations[name])
		if err != nil {
			return Service{}, errors.Wrapf(err, "operation %s", name)
		}

		if other, ok := cmdlets[op.CmdletName]; ok {
			err := errors.Wrapf(ErrDuplicateCmdlet, "%s is derived from %s and %s", op.CmdletName, other, name)
			return Service{}, errors.WithHintf(err, "set verb or noun of %s in %s", name, config.FileName(id))
		}
		cmdlets[op.CmdletName] = name

		svc.Operations = append(svc.Operations, op)
	}

	return svc, nil
}

func serviceID(m model.Metadata) string {
	switch {
	case m.ServiceID != "":
		return m.ServiceID
	case m.ServiceAbbreviation != "":
		id := strings.TrimPrefix(m.ServiceAbbreviation, "Amazon ")
		return strings.TrimPrefix(id, "AWS ")
	default:
		return strings.ToUpper(m.EndpointPrefix)
	}
}

type parser struct {
	api        *model.API
	paginators *model.Paginators
	cust       config.Service
	prefix     string
	// shapes memoizes resolved shapes by name.
	shapes map[string]*ShapeInfo
}

func (p *parser) operation(name string, mo model.Operation) (Operation, error) {
	oc := p.cust.Operation(name)

	verb, noun := verbNoun(name)
	noun = p.prefix + noun
	if oc.Verb != "" {
		verb = oc.Verb
	}
	if oc.Noun != "" {
		noun = oc.Noun
	}

	op := Operation{
		Name:        name,
		Verb:        verb,
		Noun:        noun,
		CmdletName:  verb + "-" + noun,
		TypeName:    verb + noun + "Cmdlet",
		CommandName: commandName(verb, noun),
		FileName:    fileName(name),
		Doc:         mo.Documentation,
		Deprecated:  mo.Deprecated,
	}

	var in, out *ShapeInfo
	if mo.Input != nil {
		params, shape, err := p.parameters(name, mo.Input.Shape)
		if err != nil {
			return Operation{}, err
		}
		op.Parameters, in = params, shape
	}
	if mo.Output != nil {
		shape, err := p.shape(mo.Output.Shape)
		if err != nil {
			return Operation{}, errors.Wrap(err, "output")
		}
		op.Outputs, out = shape.Fields, shape
	}

	if pg, ok := p.paginator(name); ok && !oc.NoPaging {
		paging, err := parsePaging(pg, in, out)
		if err != nil {
			zap.S().Warnf("%s: generating without auto-iteration: %v", name, err)
		} else {
			op.Paging = paging
			for i, param := range op.Parameters {
				op.Parameters[i].IsPagingToken = slices.Contains(paging.InputTokens, param.Name)
			}
		}
	}

	sel, err := defaultSelect(op, oc.Select)
	if err != nil {
		return Operation{}, err
	}
	op.DefaultSelect = sel

	return op, nil
}

func (p *parser) paginator(operation string) (model.Paginator, bool) {
	if p.paginators == nil {
		return model.Paginator{}, false
	}
	pg, ok := p.paginators.Pagination[operation]
	return pg, ok
}

func (p *parser) parameters(operation, input string) ([]Parameter, *ShapeInfo, error) {
	shape, ok := p.api.Shapes[input]
	if !ok {
		return nil, nil, errors.Newf("input shape %s not found", input)
	}
	info, err := p.shape(input)
	if err != nil {
		return nil, nil, errors.Wrap(err, "input")
	}

	var (
		params []Parameter
		fields = make(map[string]string)
		flags  = make(map[string]string)
	)
	for _, m := range shape.Members {
		c := p.cust.Param(operation, m.Name)
		if c.Exclude {
			continue
		}

		si, err := p.shape(m.Ref.Shape)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "parameter %s", m.Name)
		}

		name := m.Name
		if c.Name != "" {
			name = c.Name
		}
		param := Parameter{
			Name:       m.Name,
			FieldName:  GoName(name),
			FlagName:   FlagName(name),
			Doc:        m.Ref.Documentation,
			Shape:      si,
			Required:   slices.Contains(shape.Required, m.Name),
			Deprecated: m.Ref.Deprecated,
			Custom:     c,
		}

		if slices.Contains(reservedFields, param.FieldName) {
			err := errors.Wrapf(ErrReservedName, "parameter %s", m.Name)
			return nil, nil, errors.WithHintf(err, "rename %s in %s", m.Name, config.FileName(p.api.Metadata.ServiceID))
		}
		if other, ok := fields[param.FieldName]; ok {
			return nil, nil, errors.Wrapf(ErrDuplicateParameter, "%s and %s both map to %s", other, m.Name, param.FieldName)
		}
		if other, ok := flags[param.FlagName]; ok {
			return nil, nil, errors.Wrapf(ErrDuplicateParameter, "%s and %s both map to flag --%s", other, m.Name, param.FlagName)
		}
		fields[param.FieldName] = m.Name
		flags[param.FlagName] = m.Name

		params = append(params, param)
	}

	return params, info, nil
}

func (p *parser) shape(name string) (*ShapeInfo, error) {
	if si, ok := p.shapes[name]; ok {
		return si, nil
	}

	s, ok := p.api.Shapes[name]
	if !ok {
		return nil, errors.Newf("shape %s not found", name)
	}

	si := &ShapeInfo{
		Name:      name,
		Kind:      Kind(s.Type),
		Enum:      s.Enum,
		Sensitive: s.Sensitive,
	}
	if s.Document {
		return nil, errors.Wrapf(ErrUnsupportedShape, "%s is a document", name)
	}

	var err error
	if si.Min, err = decimal(s.Min); err != nil {
		return nil, errors.Wrapf(err, "shape %s: min", name)
	}
	if si.Max, err = decimal(s.Max); err != nil {
		return nil, errors.Wrapf(err, "shape %s: max", name)
	}

	// Registered before resolving members, recursive shapes end here.
	p.shapes[name] = si

	switch si.Kind {
	case KindString, KindInteger, KindLong, KindBoolean, KindFloat, KindDouble, KindTimestamp, KindBlob:
	case KindList:
		if s.Member == nil {
			return nil, errors.Newf("list shape %s has no member", name)
		}
		if si.Elem, err = p.shape(s.Member.Shape); err != nil {
			return nil, err
		}
	case KindMap:
		if s.Key == nil || s.Value == nil {
			return nil, errors.Newf("map shape %s needs key and value", name)
		}
		if si.Key, err = p.shape(s.Key.Shape); err != nil {
			return nil, err
		}
		if si.Value, err = p.shape(s.Value.Shape); err != nil {
			return nil, err
		}
	case KindStructure:
		for _, m := range s.Members {
			f, err := p.shape(m.Ref.Shape)
			if err != nil {
				return nil, errors.Wrapf(err, "member %s.%s", name, m.Name)
			}
			si.Fields = append(si.Fields, Field{Name: m.Name, Shape: f})
		}
	default:
		delete(p.shapes, name)
		return nil, errors.Wrapf(ErrUnsupportedShape, "%s has type %q", name, s.Type)
	}

	return si, nil
}

func decimal(n *json.Number) (*apd.Decimal, error) {
	if n == nil {
		return nil, nil
	}
	d, _, err := apd.NewFromString(n.String())
	return d, err
}

// parsePaging validates a paginator against the input and output shapes.
// Only tokens that are plain string members can be iterated.
func parsePaging(pg model.Paginator, in, out *ShapeInfo) (*Paging, error) {
	if in == nil || out == nil {
		return nil, errors.New("operation has no input or output")
	}
	if len(pg.InputToken) == 0 || len(pg.InputToken) != len(pg.OutputToken) {
		return nil, errors.Newf("%d input tokens for %d output tokens", len(pg.InputToken), len(pg.OutputToken))
	}

	paging := &Paging{}
	for i := range pg.InputToken {
		if !isMemberOf(in, pg.InputToken[i], KindString) {
			return nil, errors.Newf("input token %q is not a string member", pg.InputToken[i])
		}
		if !isMemberOf(out, pg.OutputToken[i], KindString) {
			return nil, errors.Newf("output token %q is not a string member", pg.OutputToken[i])
		}
		paging.InputTokens = append(paging.InputTokens, pg.InputToken[i])
		paging.OutputTokens = append(paging.OutputTokens, pg.OutputToken[i])
	}

	if pg.MoreResults != "" {
		if !isMemberOf(out, pg.MoreResults, KindBoolean) {
			return nil, errors.Newf("more results %q is not a boolean member", pg.MoreResults)
		}
		paging.MoreResults = pg.MoreResults
	}
	if isMemberOf(in, pg.LimitKey, KindInteger) || isMemberOf(in, pg.LimitKey, KindLong) {
		paging.LimitKey = pg.LimitKey
	}
	for _, key := range pg.ResultKey {
		if _, ok := out.Field(key); ok {
			paging.ResultKeys = append(paging.ResultKeys, key)
		}
	}

	return paging, nil
}

func isMemberOf(s *ShapeInfo, name string, kind Kind) bool {
	f, ok := s.Field(name)
	return ok && f.Shape.Kind == kind
}

func defaultSelect(op Operation, custom string) (string, error) {
	if custom != "" {
		if !slices.Contains(Selectors(op), custom) {
			return "", errors.Wrapf(ErrInvalidSelect, "%q is not one of %s", custom, strings.Join(Selectors(op), ", "))
		}
		return custom, nil
	}
	if op.Paging != nil && len(op.Paging.ResultKeys) == 1 {
		return op.Paging.ResultKeys[0], nil
	}
	return SelectAll, nil
}

// Selectors lists the valid output selectors of an operation: the whole
// response, each output member and each parameter prefixed by "^".
func Selectors(op Operation) []string {
	sel := []string{SelectAll}
	for _, f := range op.Outputs {
		sel = append(sel, f.Name)
	}
	for _, p := range op.Parameters {
		sel = append(sel, "^"+p.FieldName)
	}
	return sel
}
