package cmdlet

import (
	"encoding/json"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
)

var timeType = reflect.TypeFor[time.Time]()

// binding is a tagged field of a cmdlet.
type binding struct {
	flag     string
	aliases  []string
	position int
	field    reflect.Value
}

func bindings(v any) ([]binding, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, errors.Newf("cannot bind %T, need a pointer to a struct", v)
	}
	rv = rv.Elem()

	var bs []binding
	for i := 0; i < rv.NumField(); i++ {
		sf := rv.Type().Field(i)
		name, ok := sf.Tag.Lookup("flag")
		if !ok || !sf.IsExported() {
			continue
		}

		b := binding{flag: name, position: -1, field: rv.Field(i)}
		if aliases := sf.Tag.Get("alias"); aliases != "" {
			b.aliases = strings.Split(aliases, ",")
		}
		if pos, ok := sf.Tag.Lookup("position"); ok {
			n, err := strconv.Atoi(pos)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s: position", sf.Name)
			}
			b.position = n
		}
		bs = append(bs, b)
	}
	return bs, nil
}

// BindFlags registers one flag per tagged field of the struct v points to.
// Aliases and flag names are matched case insensitively.
func BindFlags(fs *pflag.FlagSet, v any) error {
	bs, err := bindings(v)
	if err != nil {
		return err
	}

	aliases := make(map[string]string)
	for _, b := range bs {
		for _, a := range b.aliases {
			aliases[strings.ToLower(a)] = b.flag
			aliases[strcase.ToKebab(a)] = b.flag
		}
	}
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		name = strings.ToLower(name)
		if flag, ok := aliases[name]; ok {
			name = flag
		}
		return pflag.NormalizedName(name)
	})

	for _, b := range bs {
		value, err := newValue(b.field)
		if err != nil {
			return errors.Wrapf(err, "flag --%s", b.flag)
		}
		f := fs.VarPF(value, b.flag, "", "")
		if value.Type() == "bool" {
			f.NoOptDefVal = "true"
		}
	}
	return nil
}

// MustBindFlags is BindFlags panicking on error. Generated cmdlets always
// bind.
func MustBindFlags(fs *pflag.FlagSet, v any) {
	if err := BindFlags(fs, v); err != nil {
		panic(err)
	}
}

// BindArgs assigns positional arguments to the fields with a position tag in
// position order, skipping fields already set by flag. A slice field in last
// position takes all remaining arguments.
func BindArgs(fs *pflag.FlagSet, v any, args []string) error {
	bs, err := bindings(v)
	if err != nil {
		return err
	}

	var positional []binding
	for _, b := range bs {
		if b.position >= 0 && !fs.Changed(b.flag) {
			positional = append(positional, b)
		}
	}
	slices.SortStableFunc(positional, func(a, b binding) int {
		return a.position - b.position
	})

	for i, b := range positional {
		if len(args) == 0 {
			return nil
		}
		f := fs.Lookup(b.flag)
		if f == nil {
			return errors.Newf("flag --%s is not bound", b.flag)
		}

		n := 1
		if i == len(positional)-1 && b.field.Kind() == reflect.Slice {
			n = len(args)
		}
		for _, arg := range args[:n] {
			if err := f.Value.Set(arg); err != nil {
				return ParameterError(b.flag, err)
			}
		}
		f.Changed = true
		args = args[n:]
	}

	if len(args) > 0 {
		return errors.Newf("unexpected arguments: %s", strings.Join(args, " "))
	}
	return nil
}

// value is a pflag.Value setting a struct field.
type value struct {
	field reflect.Value
	typ   string
	set   func(s string) error
}

func (v *value) Set(s string) error { return v.set(s) }
func (v *value) Type() string       { return v.typ }

func (v *value) String() string {
	if !v.field.IsValid() || v.field.IsZero() {
		return ""
	}
	f := v.field
	if f.Kind() == reflect.Pointer {
		f = f.Elem()
	}
	if b, ok := f.Interface().([]byte); ok {
		return string(b)
	}
	if s, ok := f.Interface().(string); ok {
		return s
	}
	data, err := json.Marshal(f.Interface())
	if err != nil {
		return ""
	}
	return string(data)
}

func newValue(field reflect.Value) (*value, error) {
	t := field.Type()
	v := &value{field: field}

	switch {
	case t.Kind() == reflect.Interface:
		v.typ = "blob"
		v.set = func(s string) error {
			if path, ok := strings.CutPrefix(s, "@"); ok {
				field.Set(reflect.ValueOf(File(path)))
			} else {
				field.Set(reflect.ValueOf(s))
			}
			return nil
		}
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		v.typ = "blob"
		v.set = func(s string) error {
			b, err := readArg(s)
			if err != nil {
				return err
			}
			field.SetBytes(b)
			return nil
		}
	case t.Kind() == reflect.Pointer && isScalar(t.Elem()):
		v.typ = scalarName(t.Elem())
		v.set = func(s string) error {
			x, err := parseScalar(t.Elem(), s)
			if err != nil {
				return err
			}
			p := reflect.New(t.Elem())
			p.Elem().Set(x)
			field.Set(p)
			return nil
		}
	case isScalar(t):
		v.typ = scalarName(t)
		v.set = func(s string) error {
			x, err := parseScalar(t, s)
			if err != nil {
				return err
			}
			field.Set(x)
			return nil
		}
	case t.Kind() == reflect.Slice && (isScalar(t.Elem()) || t.Elem().Kind() == reflect.Interface):
		v.typ = "strings"
		elem := t.Elem()
		if elem.Kind() == reflect.Interface {
			elem = reflect.TypeFor[string]()
		}
		v.set = func(s string) error {
			for _, part := range strings.Split(s, ",") {
				x, err := parseScalar(elem, strings.TrimSpace(part))
				if err != nil {
					return err
				}
				field.Set(reflect.Append(field, x.Convert(elem)))
			}
			return nil
		}
	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String && isScalar(t.Elem()):
		v.typ = "key=value"
		v.set = func(s string) error {
			if field.IsNil() {
				field.Set(reflect.MakeMap(t))
			}
			for _, pair := range strings.Split(s, ",") {
				k, val, ok := strings.Cut(pair, "=")
				if !ok {
					return errors.Newf("%q is not key=value", pair)
				}
				x, err := parseScalar(t.Elem(), val)
				if err != nil {
					return err
				}
				field.SetMapIndex(reflect.ValueOf(strings.TrimSpace(k)), x)
			}
			return nil
		}
	default:
		v.typ = "json"
		v.set = func(s string) error {
			return setJSON(field, s)
		}
	}

	return v, nil
}

// setJSON decodes s into field. Slices accept a single element or an array
// per call and accumulate.
func setJSON(field reflect.Value, s string) error {
	t := field.Type()
	if t.Kind() == reflect.Slice && !strings.HasPrefix(strings.TrimSpace(s), "[") {
		elem := reflect.New(t.Elem())
		if err := json.Unmarshal([]byte(s), elem.Interface()); err != nil {
			return errors.Wrap(err, "decoding JSON")
		}
		field.Set(reflect.Append(field, elem.Elem()))
		return nil
	}

	x := reflect.New(t)
	if err := json.Unmarshal([]byte(s), x.Interface()); err != nil {
		return errors.Wrap(err, "decoding JSON")
	}
	if t.Kind() == reflect.Slice {
		field.Set(reflect.AppendSlice(field, x.Elem()))
	} else {
		field.Set(x.Elem())
	}
	return nil
}

func readArg(s string) ([]byte, error) {
	if path, ok := strings.CutPrefix(s, "@"); ok {
		return os.ReadFile(path)
	}
	return []byte(s), nil
}

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		return true
	}
	return t == timeType
}

func scalarName(t reflect.Type) string {
	if t == timeType {
		return "time"
	}
	return t.Kind().String()
}

func parseScalar(t reflect.Type, s string) (reflect.Value, error) {
	if t == timeType {
		x, err := time.Parse(time.RFC3339, s)
		return reflect.ValueOf(x), err
	}

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(s).Convert(t), nil
	case reflect.Bool:
		x, err := strconv.ParseBool(s)
		return reflect.ValueOf(x).Convert(t), err
	case reflect.Int, reflect.Int64:
		x, err := strconv.ParseInt(s, 10, 64)
		return reflect.ValueOf(x).Convert(t), err
	case reflect.Float64:
		x, err := strconv.ParseFloat(s, 64)
		return reflect.ValueOf(x).Convert(t), err
	}
	return reflect.Value{}, errors.Newf("unsupported type %s", t)
}
