package cmdlet

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// Validate checks the validate and enum tags of the struct v points to.
// Numbers are compared by value, everything else by length. Unset optional
// fields are not checked.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errors.Newf("cannot validate %T, need a pointer to a struct", v)
	}
	rv = rv.Elem()

	for i := 0; i < rv.NumField(); i++ {
		sf := rv.Type().Field(i)
		name := sf.Tag.Get("flag")
		if name == "" {
			name = sf.Name
		}
		if err := validateField(rv.Field(i), sf.Tag); err != nil {
			return ParameterError(name, err)
		}
	}
	return nil
}

func validateField(f reflect.Value, tag reflect.StructTag) error {
	if empty(f) {
		if slices.Contains(strings.Split(tag.Get("validate"), ","), "required") {
			return errors.New("value is required")
		}
		return nil
	}

	for _, rule := range strings.Split(tag.Get("validate"), ",") {
		key, bound, ok := strings.Cut(rule, "=")
		if !ok {
			continue
		}
		limit, _, err := apd.NewFromString(bound)
		if err != nil {
			return errors.Wrapf(err, "bad %s bound %q", key, bound)
		}
		got, ok := measure(f)
		if !ok {
			continue
		}
		switch c := got.Cmp(limit); {
		case key == "min" && c < 0:
			return errors.Newf("%s is less than the minimum %s", got, limit)
		case key == "max" && c > 0:
			return errors.Newf("%s is greater than the maximum %s", got, limit)
		}
	}

	if enum, ok := tag.Lookup("enum"); ok {
		allowed := strings.Split(enum, ",")
		for _, s := range strValues(f) {
			if !slices.Contains(allowed, s) {
				return errors.Newf("%q is not one of %s", s, strings.Join(allowed, ", "))
			}
		}
	}
	return nil
}

func empty(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Pointer, reflect.Interface:
		return f.IsNil()
	case reflect.Slice, reflect.Map:
		return f.Len() == 0
	}
	return f.IsZero()
}

// measure returns the value of a number or the length of anything else.
// Strings count runes, except in blob fields where they are sent as bytes.
// The size of files and readers is unknown until read.
func measure(f reflect.Value) (*apd.Decimal, bool) {
	blob := f.Kind() == reflect.Interface
	for f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface {
		if f.IsNil() {
			return nil, false
		}
		f = f.Elem()
	}
	if f.Type() == reflect.TypeFor[File]() {
		return nil, false
	}

	switch f.Kind() {
	case reflect.Int, reflect.Int64:
		return apd.New(f.Int(), 0), true
	case reflect.Float64:
		d, _, err := apd.NewFromString(strconv.FormatFloat(f.Float(), 'f', -1, 64))
		return d, err == nil
	case reflect.String:
		if blob {
			return apd.New(int64(len(f.String())), 0), true
		}
		return apd.New(int64(utf8.RuneCountInString(f.String())), 0), true
	case reflect.Slice, reflect.Map:
		return apd.New(int64(f.Len()), 0), true
	}
	return nil, false
}

func strValues(f reflect.Value) []string {
	for f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface {
		if f.IsNil() {
			return nil
		}
		f = f.Elem()
	}
	switch {
	case f.Kind() == reflect.String:
		return []string{f.String()}
	case f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String:
		var s []string
		for i := 0; i < f.Len(); i++ {
			s = append(s, f.Index(i).String())
		}
		return s
	}
	return nil
}
