package cmdlet

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"
)

// PageKey identifies a page by its continuation tokens. It is empty when no
// token is set, i.e. on the last page.
func PageKey(tokens ...*string) string {
	var parts []string
	empty := true
	for _, t := range tokens {
		if t != nil && *t != "" {
			empty = false
			parts = append(parts, *t)
		} else {
			parts = append(parts, "")
		}
	}
	if empty {
		return ""
	}
	return strings.Join(parts, "\x00")
}

// Flatten merges the values selected from each page. Slices are
// concatenated; a single page is returned as is.
func Flatten(pages []any) any {
	if len(pages) == 1 {
		return pages[0]
	}

	out := []any{}
	for _, p := range pages {
		if p == nil {
			continue
		}
		rv := reflect.ValueOf(p)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				out = append(out, rv.Index(i).Interface())
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// Print writes v as indented JSON.
func Print(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
