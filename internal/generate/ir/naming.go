package ir

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// verbs maps the leading word of an operation name to the approved verb of the
// generated cmdlet.
var verbs = map[string]string{
	"Add":          "Add",
	"Associate":    "Register",
	"Attach":       "Add",
	"Copy":         "Copy",
	"Create":       "New",
	"Delete":       "Remove",
	"Deregister":   "Unregister",
	"Describe":     "Get",
	"Detach":       "Dismount",
	"Disable":      "Disable",
	"Disassociate": "Unregister",
	"Enable":       "Enable",
	"Export":       "Export",
	"Get":          "Get",
	"Import":       "Import",
	"List":         "Get",
	"Modify":       "Edit",
	"Put":          "Write",
	"Reboot":       "Restart",
	"Register":     "Register",
	"Remove":       "Remove",
	"Reset":        "Reset",
	"Run":          "New",
	"Send":         "Send",
	"Start":        "Start",
	"Stop":         "Stop",
	"Tag":          "Add",
	"Terminate":    "Remove",
	"Test":         "Test",
	"Unregister":   "Unregister",
	"Untag":        "Remove",
	"Update":       "Update",
}

// InvokeVerb is used for operations without a known leading verb.
const InvokeVerb = "Invoke"

// splitOperation splits an operation name into its leading word and the rest,
// e.g. "DescribeInstances" into "Describe" and "Instances".
func splitOperation(name string) (string, string) {
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			return name[:i], name[i:]
		}
	}
	return name, ""
}

// verbNoun derives verb and noun (without prefix) of an operation.
func verbNoun(operation string) (string, string) {
	word, rest := splitOperation(operation)
	verb, ok := verbs[word]
	if !ok || rest == "" {
		return InvokeVerb, operation
	}
	return verb, singular(rest)
}

// singular strips the plural suffix of the last word of a noun.
func singular(noun string) string {
	switch {
	case strings.HasSuffix(noun, "ies"):
		return strings.TrimSuffix(noun, "ies") + "y"
	case strings.HasSuffix(noun, "sses"),
		strings.HasSuffix(noun, "xes"),
		strings.HasSuffix(noun, "ches"),
		strings.HasSuffix(noun, "shes"):
		return strings.TrimSuffix(noun, "es")
	case strings.HasSuffix(noun, "ss"),
		strings.HasSuffix(noun, "us"),
		strings.HasSuffix(noun, "is"):
		return noun
	case strings.HasSuffix(noun, "s"):
		return strings.TrimSuffix(noun, "s")
	}
	return noun
}

// GoName returns a model member name as exported Go identifier. Model names
// are already Pascal case; acronyms such as "DB" are kept.
func GoName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
	if name == "" {
		return name
	}
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}

// Unexported lowers the first rune of an identifier.
func Unexported(name string) string {
	if name == "" {
		return name
	}
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[n:]
}

// FlagName returns the command line flag of a parameter, e.g. "instance-ids".
func FlagName(name string) string {
	return strcase.ToKebab(name)
}

func fileName(operation string) string {
	return strcase.ToSnake(operation)
}

func commandName(verb, noun string) string {
	return strings.ToLower(verb + "-" + noun)
}

// prefixOf derives the noun prefix from a service id, e.g. "Elastic Beanstalk"
// becomes "ElasticBeanstalk".
func prefixOf(serviceID string) string {
	return GoName(strings.ReplaceAll(serviceID, " ", ""))
}
