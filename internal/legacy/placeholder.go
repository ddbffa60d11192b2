package legacy

import (
	"regexp"
	"strconv"
	"strings"

	"remapper/internal/entry"
)

var (
	methodPattern = regexp.MustCompile(`^func_\d+_.+$`)
	fieldPattern  = regexp.MustCompile(`^field_\d+_.+$`)
	paramPattern  = regexp.MustCompile(`^p_i?\d+_\d+_.*$`)
)

// IsPlaceholderMethod reports whether name looks like func_<id>_<suffix>.
func IsPlaceholderMethod(name string) bool { return methodPattern.MatchString(name) }

// IsPlaceholderField reports whether name looks like field_<id>_<suffix>.
func IsPlaceholderField(name string) bool { return fieldPattern.MatchString(name) }

// IsPlaceholderParam reports whether name looks like p_<id>_<index>_.
func IsPlaceholderParam(name string) bool { return paramPattern.MatchString(name) }

// IsPlaceholder reports whether name matches any placeholder pattern.
func IsPlaceholder(name string) bool {
	return IsPlaceholderField(name) || IsPlaceholderMethod(name) || IsPlaceholderParam(name)
}

// PlaceholderID returns the id segment of a placeholder: "123" for
// func_123_a, "i4" for p_i4_1_.
func PlaceholderID(name string) string {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

// ConstructorID renders the method id of constructor n.
func ConstructorID(n int) string {
	return "i" + strconv.Itoa(n)
}

// ParamPlaceholder returns the placeholder of argument slot index of the
// method with the given id.
func ParamPlaceholder(methodID string, index int) string {
	return "p_" + methodID + "_" + strconv.Itoa(index) + "_"
}

// ParamSlot is an argument slot and its placeholder name.
type ParamSlot struct {
	Index       int
	Placeholder string
}

// ParamPlaceholders lists the argument slots of a method. Numbering starts
// at 0 for static methods and 1 otherwise, and each argument advances it
// by its slot width.
func ParamPlaceholders(methodID string, desc entry.MethodDescriptor, static bool) []ParamSlot {
	idx := 1
	if static {
		idx = 0
	}

	args := desc.Args()
	out := make([]ParamSlot, 0, len(args))

	for _, arg := range args {
		out = append(out, ParamSlot{Index: idx, Placeholder: ParamPlaceholder(methodID, idx)})
		idx += arg.Size()
	}

	return out
}
