package classfile

// Access flags used by the mapping engine.
const (
	AccPublic    uint16 = 0x0001
	AccPrivate   uint16 = 0x0002
	AccProtected uint16 = 0x0004
	AccStatic    uint16 = 0x0008
	AccFinal     uint16 = 0x0010
	AccInterface uint16 = 0x0200
	AccAbstract  uint16 = 0x0400
	AccSynthetic uint16 = 0x1000
	AccEnum      uint16 = 0x4000
)

const magic uint32 = 0xCAFEBABE

// Default version written by Encode (Java 8).
const (
	DefaultMajor uint16 = 52
	DefaultMinor uint16 = 0
)

// Attribute names.
const (
	attrVisibleAnnotations   = "RuntimeVisibleAnnotations"
	attrInvisibleAnnotations = "RuntimeInvisibleAnnotations"
)

// ClassFile is the parsed metadata of one class.
type ClassFile struct {
	Major       uint16
	Minor       uint16
	Access      uint16
	Name        string // internal name, e.g. "a/b/Foo$Bar"
	Super       string // "" for java/lang/Object itself
	Interfaces  []string
	Fields      []Member
	Methods     []Member
	Annotations []Annotation
}

// Member is a declared field or method.
type Member struct {
	Access      uint16
	Name        string
	Descriptor  string
	Annotations []Annotation
}

// IsStatic returns true if the member is static.
func (m Member) IsStatic() bool {
	return m.Access&AccStatic != 0
}

// Annotation is a runtime annotation with its element values.
type Annotation struct {
	Type     string // field descriptor of the annotation type
	Visible  bool
	Elements []Element
}

// Element is a named annotation element.
type Element struct {
	Name  string
	Value Value
}

// Value tags, as defined by the class file format.
const (
	TagByte       byte = 'B'
	TagChar       byte = 'C'
	TagDouble     byte = 'D'
	TagFloat      byte = 'F'
	TagInt        byte = 'I'
	TagLong       byte = 'J'
	TagShort      byte = 'S'
	TagBoolean    byte = 'Z'
	TagString     byte = 's'
	TagEnum       byte = 'e'
	TagClass      byte = 'c'
	TagAnnotation byte = '@'
	TagArray      byte = '['
)

// Value is an annotation element value. Which fields are set depends on Tag:
// constants use Const (int32, int64, float32, float64 or string), enums use
// EnumType and EnumName, classes use Class (a return descriptor), nested
// annotations use Annotation and arrays use Array.
type Value struct {
	Tag        byte
	Const      any
	EnumType   string
	EnumName   string
	Class      string
	Annotation *Annotation
	Array      []Value
}

// EnumValue creates an enum constant value.
func EnumValue(typeDesc, name string) Value {
	return Value{Tag: TagEnum, EnumType: typeDesc, EnumName: name}
}

// ClassValue creates a class literal value.
func ClassValue(desc string) Value {
	return Value{Tag: TagClass, Class: desc}
}

// StringValue creates a string constant value.
func StringValue(s string) Value {
	return Value{Tag: TagString, Const: s}
}

// IntValue creates an int constant value.
func IntValue(v int32) Value {
	return Value{Tag: TagInt, Const: v}
}

// Element returns the element named name.
func (a Annotation) Element(name string) (Value, bool) {
	for _, e := range a.Elements {
		if e.Name == name {
			return e.Value, true
		}
	}

	return Value{}, false
}
