package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Constant pool tags.
const (
	cpUtf8               = 1
	cpInteger            = 3
	cpFloat              = 4
	cpLong               = 5
	cpDouble             = 6
	cpClass              = 7
	cpString             = 8
	cpFieldref           = 9
	cpMethodref          = 10
	cpInterfaceMethodref = 11
	cpNameAndType        = 12
	cpMethodHandle       = 15
	cpMethodType         = 16
	cpDynamic            = 17
	cpInvokeDynamic      = 18
	cpModule             = 19
	cpPackage            = 20
)

var errTruncated = errors.New("truncated class file")

type cpEntry struct {
	tag   byte
	str   string
	ref   uint16
	value any
}

type reader struct {
	data []byte
	pos  int
	err  error
	pool []cpEntry
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}

	if n < 0 || r.pos+n > len(r.data) {
		r.fail(errTruncated)
		return nil
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b
}

func (r *reader) u1() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (r *reader) u2() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}

	return binary.BigEndian.Uint16(b)
}

func (r *reader) u4() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return binary.BigEndian.Uint32(b)
}

func (r *reader) u8() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return binary.BigEndian.Uint64(b)
}

func (r *reader) entry(idx uint16, tag byte) cpEntry {
	if r.err != nil {
		return cpEntry{}
	}

	if int(idx) <= 0 || int(idx) >= len(r.pool) || r.pool[idx].tag != tag {
		r.fail(fmt.Errorf("constant pool index %d is not of tag %d", idx, tag))
		return cpEntry{}
	}

	return r.pool[idx]
}

func (r *reader) utf8(idx uint16) string {
	return r.entry(idx, cpUtf8).str
}

func (r *reader) className(idx uint16) string {
	if idx == 0 {
		return ""
	}

	return r.utf8(r.entry(idx, cpClass).ref)
}

// Parse reads class metadata from data.
func Parse(data []byte) (*ClassFile, error) {
	r := &reader{data: data}

	if m := r.u4(); r.err == nil && m != magic {
		return nil, fmt.Errorf("bad magic 0x%08X", m)
	}

	cf := &ClassFile{}
	cf.Minor = r.u2()
	cf.Major = r.u2()

	r.readPool()

	cf.Access = r.u2()
	cf.Name = r.className(r.u2())
	cf.Super = r.className(r.u2())

	n := int(r.u2())
	for i := 0; i < n && r.err == nil; i++ {
		cf.Interfaces = append(cf.Interfaces, r.className(r.u2()))
	}

	cf.Fields = r.readMembers()
	cf.Methods = r.readMembers()
	cf.Annotations = r.readAttributes()

	if r.err != nil {
		return nil, fmt.Errorf("failed to parse class file: %w", r.err)
	}

	return cf, nil
}

func (r *reader) readPool() {
	count := int(r.u2())
	r.pool = make([]cpEntry, count)

	for i := 1; i < count && r.err == nil; i++ {
		tag := r.u1()
		e := cpEntry{tag: tag}

		switch tag {
		case cpUtf8:
			e.str = string(r.take(int(r.u2())))
		case cpInteger:
			e.value = int32(r.u4())
		case cpFloat:
			e.value = math.Float32frombits(r.u4())
		case cpLong:
			e.value = int64(r.u8())
		case cpDouble:
			e.value = math.Float64frombits(r.u8())
		case cpClass, cpString, cpMethodType, cpModule, cpPackage:
			e.ref = r.u2()
		case cpFieldref, cpMethodref, cpInterfaceMethodref, cpNameAndType, cpDynamic, cpInvokeDynamic:
			e.ref = r.u2()
			r.u2()
		case cpMethodHandle:
			r.u1()
			e.ref = r.u2()
		default:
			r.fail(fmt.Errorf("unknown constant pool tag %d at index %d", tag, i))
		}

		r.pool[i] = e

		// 8-byte constants take two slots
		if tag == cpLong || tag == cpDouble {
			i++
		}
	}
}

func (r *reader) readMembers() []Member {
	n := int(r.u2())
	members := make([]Member, 0, n)

	for i := 0; i < n && r.err == nil; i++ {
		m := Member{
			Access:     r.u2(),
			Name:       r.utf8(r.u2()),
			Descriptor: r.utf8(r.u2()),
		}
		m.Annotations = r.readAttributes()
		members = append(members, m)
	}

	return members
}

// readAttributes skips every attribute except runtime annotations.
func (r *reader) readAttributes() []Annotation {
	var out []Annotation

	n := int(r.u2())
	for i := 0; i < n && r.err == nil; i++ {
		name := r.utf8(r.u2())
		length := int(r.u4())

		switch name {
		case attrVisibleAnnotations, attrInvisibleAnnotations:
			end := r.pos + length
			visible := name == attrVisibleAnnotations

			count := int(r.u2())
			for j := 0; j < count && r.err == nil; j++ {
				a := r.readAnnotation()
				a.Visible = visible
				out = append(out, a)
			}

			if r.err == nil && r.pos != end {
				r.fail(fmt.Errorf("annotation attribute length mismatch: %d != %d", r.pos, end))
			}
		default:
			r.take(length)
		}
	}

	return out
}

func (r *reader) readAnnotation() Annotation {
	a := Annotation{Type: r.utf8(r.u2())}

	n := int(r.u2())
	for i := 0; i < n && r.err == nil; i++ {
		name := r.utf8(r.u2())
		a.Elements = append(a.Elements, Element{Name: name, Value: r.readValue()})
	}

	return a
}

func (r *reader) readValue() Value {
	v := Value{Tag: r.u1()}

	switch v.Tag {
	case TagByte, TagChar, TagInt, TagShort, TagBoolean:
		v.Const = r.entry(r.u2(), cpInteger).value
	case TagFloat:
		v.Const = r.entry(r.u2(), cpFloat).value
	case TagLong:
		v.Const = r.entry(r.u2(), cpLong).value
	case TagDouble:
		v.Const = r.entry(r.u2(), cpDouble).value
	case TagString:
		v.Const = r.utf8(r.u2())
	case TagEnum:
		v.EnumType = r.utf8(r.u2())
		v.EnumName = r.utf8(r.u2())
	case TagClass:
		v.Class = r.utf8(r.u2())
	case TagAnnotation:
		nested := r.readAnnotation()
		v.Annotation = &nested
	case TagArray:
		n := int(r.u2())
		for i := 0; i < n && r.err == nil; i++ {
			v.Array = append(v.Array, r.readValue())
		}
	default:
		r.fail(fmt.Errorf("unknown element value tag %q", v.Tag))
	}

	return v
}
