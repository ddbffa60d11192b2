package entry

import (
	"fmt"
	"strings"
)

// TypeDescriptor is a JVM field type descriptor such as "I", "[J" or "Ljava/lang/String;".
type TypeDescriptor string

// ParseTypeDescriptor validates s as a single field type descriptor.
func ParseTypeDescriptor(s string) (TypeDescriptor, error) {
	n, err := scanType(s, 0, false)
	if err != nil {
		return "", err
	}

	if n != len(s) {
		return "", fmt.Errorf("invalid type descriptor %q: trailing data at %d", s, n)
	}

	return TypeDescriptor(s), nil
}

// ObjectType returns the descriptor of class c.
func ObjectType(c ClassEntry) TypeDescriptor {
	return TypeDescriptor("L" + c.FullName() + ";")
}

// IsPrimitive returns true for the primitive descriptors, including void.
func (t TypeDescriptor) IsPrimitive() bool {
	return len(t) == 1
}

// IsArray returns true for array descriptors.
func (t TypeDescriptor) IsArray() bool {
	return strings.HasPrefix(string(t), "[")
}

// IsObject returns true for class reference descriptors.
func (t TypeDescriptor) IsObject() bool {
	return strings.HasPrefix(string(t), "L")
}

// Element returns the innermost element type of an array descriptor.
func (t TypeDescriptor) Element() TypeDescriptor {
	return TypeDescriptor(strings.TrimLeft(string(t), "["))
}

// Class returns the class referenced by an object descriptor.
func (t TypeDescriptor) Class() (ClassEntry, bool) {
	if !t.IsObject() {
		return ClassEntry{}, false
	}

	return Class(string(t[1 : len(t)-1])), true
}

// Size returns the number of local variable slots a value of this type occupies.
func (t TypeDescriptor) Size() int {
	switch t {
	case "J", "D":
		return 2
	case "V":
		return 0
	default:
		return 1
	}
}

// Remap rewrites the referenced class, if any, through fn.
func (t TypeDescriptor) Remap(fn func(ClassEntry) ClassEntry) TypeDescriptor {
	elem := t.Element()

	c, ok := elem.Class()
	if !ok {
		return t
	}

	dims := len(t) - len(elem)

	return TypeDescriptor(strings.Repeat("[", dims)) + ObjectType(fn(c))
}

// String implements fmt.Stringer.
func (t TypeDescriptor) String() string { return string(t) }

// MethodDescriptor is a JVM method descriptor such as "(IJ)Ljava/lang/String;".
type MethodDescriptor string

// ParseMethodDescriptor validates s as a method descriptor.
func ParseMethodDescriptor(s string) (MethodDescriptor, error) {
	if _, _, err := splitMethod(s); err != nil {
		return "", err
	}

	return MethodDescriptor(s), nil
}

// NewMethodDescriptor builds a descriptor from argument and return types.
func NewMethodDescriptor(ret TypeDescriptor, args ...TypeDescriptor) MethodDescriptor {
	var b strings.Builder

	b.WriteByte('(')

	for _, a := range args {
		b.WriteString(string(a))
	}

	b.WriteByte(')')
	b.WriteString(string(ret))

	return MethodDescriptor(b.String())
}

// Args returns the argument types. An invalid descriptor yields nil.
func (m MethodDescriptor) Args() []TypeDescriptor {
	args, _, err := splitMethod(string(m))
	if err != nil {
		return nil
	}

	return args
}

// Return returns the return type. An invalid descriptor yields "".
func (m MethodDescriptor) Return() TypeDescriptor {
	_, ret, err := splitMethod(string(m))
	if err != nil {
		return ""
	}

	return ret
}

// ArgSlots returns the total slot width of the arguments.
func (m MethodDescriptor) ArgSlots() int {
	total := 0
	for _, a := range m.Args() {
		total += a.Size()
	}

	return total
}

// Classes returns every class referenced by the descriptor, in order.
func (m MethodDescriptor) Classes() []ClassEntry {
	var out []ClassEntry

	for _, t := range append(m.Args(), m.Return()) {
		if c, ok := t.Element().Class(); ok {
			out = append(out, c)
		}
	}

	return out
}

// Remap rewrites every referenced class through fn.
func (m MethodDescriptor) Remap(fn func(ClassEntry) ClassEntry) MethodDescriptor {
	args, ret, err := splitMethod(string(m))
	if err != nil {
		return m
	}

	mapped := make([]TypeDescriptor, len(args))
	for i, a := range args {
		mapped[i] = a.Remap(fn)
	}

	return NewMethodDescriptor(ret.Remap(fn), mapped...)
}

// String implements fmt.Stringer.
func (m MethodDescriptor) String() string { return string(m) }

func splitMethod(s string) ([]TypeDescriptor, TypeDescriptor, error) {
	if !strings.HasPrefix(s, "(") {
		return nil, "", fmt.Errorf("invalid method descriptor %q: missing '('", s)
	}

	var args []TypeDescriptor

	pos := 1
	for pos < len(s) && s[pos] != ')' {
		end, err := scanType(s, pos, false)
		if err != nil {
			return nil, "", fmt.Errorf("invalid method descriptor %q: %w", s, err)
		}

		args = append(args, TypeDescriptor(s[pos:end]))
		pos = end
	}

	if pos >= len(s) {
		return nil, "", fmt.Errorf("invalid method descriptor %q: missing ')'", s)
	}

	pos++

	end, err := scanType(s, pos, true)
	if err != nil {
		return nil, "", fmt.Errorf("invalid method descriptor %q: %w", s, err)
	}

	if end != len(s) {
		return nil, "", fmt.Errorf("invalid method descriptor %q: trailing data at %d", s, end)
	}

	return args, TypeDescriptor(s[pos:end]), nil
}

// scanType returns the end offset of the type descriptor starting at pos.
func scanType(s string, pos int, allowVoid bool) (int, error) {
	if pos >= len(s) {
		return 0, fmt.Errorf("unexpected end of descriptor %q", s)
	}

	switch s[pos] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return pos + 1, nil
	case 'V':
		if !allowVoid {
			return 0, fmt.Errorf("void is not a value type at %d in %q", pos, s)
		}

		return pos + 1, nil
	case '[':
		return scanType(s, pos+1, false)
	case 'L':
		end := strings.IndexByte(s[pos:], ';')
		if end <= 1 {
			return 0, fmt.Errorf("unterminated class reference at %d in %q", pos, s)
		}

		return pos + end + 1, nil
	default:
		return 0, fmt.Errorf("unknown type %q at %d in %q", s[pos], pos, s)
	}
}
