package emit

import (
	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
)

var (
	ErrNoEmitter      = errors.New("no emitter")
	ErrUnknownEmitter = errors.New("unknown emitter")
)

// FallbackName is the rule name of the fallback emitter.
const FallbackName = "default"

// Rule registers an emitter. A rule with a Parameter matches parameters of
// that model member name, whose shape must then have the signature Shape. A
// rule without Parameter matches every parameter with signature Shape.
type Rule struct {
	Name      string
	Parameter string
	Shape     string
	Emitter   ParamEmitter
}

// Registry selects the emitter of a parameter. Rules are tried in
// registration order, the fallback last.
type Registry struct {
	rules    []Rule
	fallback *Rule
}

// NewRegistry returns a registry that uses fallback, if not nil, when no rule
// matches.
func NewRegistry(fallback ParamEmitter, rules ...Rule) *Registry {
	r := &Registry{}
	if fallback != nil {
		r.fallback = &Rule{Name: FallbackName, Emitter: fallback}
	}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// DefaultRegistry holds the built-in rules.
func DefaultRegistry() *Registry {
	return NewRegistry(PassThrough{},
		Rule{Name: "instance-ids", Parameter: "InstanceIds", Shape: "list<string>", Emitter: InstanceIDs{}},
		Rule{Name: "tags", Parameter: "Tags", Shape: "list<structure:Tag>", Emitter: Tags{}},
		Rule{Name: "blob", Shape: "blob", Emitter: Blob{}},
	)
}

// Register adds rule with the lowest priority so far.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules lists the rules in priority order, the fallback last.
func (r *Registry) Rules() []Rule {
	rules := append([]Rule(nil), r.rules...)
	if r.fallback != nil {
		rules = append(rules, *r.fallback)
	}
	return rules
}

// Lookup returns the rule handling p. An emitter forced by the customization
// of p wins over matching.
func (r *Registry) Lookup(op ir.Operation, p ir.Parameter) (Rule, error) {
	sig := p.Shape.Signature()

	if name := p.Custom.Emitter; name != "" {
		rule, ok := r.byName(name)
		if !ok {
			return Rule{}, errors.Wrapf(ErrUnknownEmitter, "%s.%s: %q", op.Name, p.Name, name)
		}
		if rule.Shape != "" && rule.Shape != sig {
			return Rule{}, errors.Wrapf(ErrShapeMismatch, "%s.%s: emitter %s needs %s, got %s", op.Name, p.Name, name, rule.Shape, sig)
		}
		return rule, nil
	}

	for _, rule := range r.rules {
		if rule.Parameter != "" {
			if rule.Parameter != p.Name {
				continue
			}
			if rule.Shape != "" && rule.Shape != sig {
				err := errors.Wrapf(ErrShapeMismatch, "%s.%s: emitter %s needs %s, got %s", op.Name, p.Name, rule.Name, rule.Shape, sig)
				return Rule{}, errors.WithHintf(err, "set emitter: %s for %s in the customization", FallbackName, p.Name)
			}
			return rule, nil
		}
		if rule.Shape == sig {
			return rule, nil
		}
	}

	if r.fallback == nil {
		return Rule{}, errors.Wrapf(ErrNoEmitter, "%s.%s (%s)", op.Name, p.Name, sig)
	}
	return *r.fallback, nil
}

func (r *Registry) byName(name string) (Rule, bool) {
	for _, rule := range r.Rules() {
		if rule.Name == name {
			return rule, true
		}
	}
	return Rule{}, false
}
