package classfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

type poolKey struct {
	tag byte
	str string
	num uint64
}

type writer struct {
	pool    []byte
	count   uint16
	indices map[poolKey]uint16
	err     error
}

func newWriter() *writer {
	return &writer{count: 1, indices: make(map[poolKey]uint16)}
}

func (w *writer) add(key poolKey, body []byte, slots uint16) uint16 {
	if idx, ok := w.indices[key]; ok {
		return idx
	}

	idx := w.count
	w.indices[key] = idx
	w.pool = append(w.pool, key.tag)
	w.pool = append(w.pool, body...)
	w.count += slots

	return idx
}

func (w *writer) utf8(s string) uint16 {
	if len(s) > math.MaxUint16 {
		w.err = fmt.Errorf("string constant too long: %d bytes", len(s))
		return 0
	}

	body := binary.BigEndian.AppendUint16(nil, uint16(len(s)))
	body = append(body, s...)

	return w.add(poolKey{tag: cpUtf8, str: s}, body, 1)
}

func (w *writer) class(name string) uint16 {
	ref := w.utf8(name)
	return w.add(poolKey{tag: cpClass, str: name}, binary.BigEndian.AppendUint16(nil, ref), 1)
}

func (w *writer) constant(tag byte, v any) uint16 {
	switch tag {
	case TagFloat:
		f, _ := v.(float32)
		bits := math.Float32bits(f)

		return w.add(poolKey{tag: cpFloat, num: uint64(bits)}, binary.BigEndian.AppendUint32(nil, bits), 1)
	case TagLong:
		n, _ := v.(int64)
		return w.add(poolKey{tag: cpLong, num: uint64(n)}, binary.BigEndian.AppendUint64(nil, uint64(n)), 2)
	case TagDouble:
		f, _ := v.(float64)
		bits := math.Float64bits(f)

		return w.add(poolKey{tag: cpDouble, num: bits}, binary.BigEndian.AppendUint64(nil, bits), 2)
	case TagString:
		s, _ := v.(string)
		return w.utf8(s)
	default:
		n, _ := v.(int32)
		return w.add(poolKey{tag: cpInteger, num: uint64(uint32(n))}, binary.BigEndian.AppendUint32(nil, uint32(n)), 1)
	}
}

func u2(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) }

func (w *writer) annotations(anns []Annotation) []byte {
	var visible, invisible []Annotation

	for _, a := range anns {
		if a.Visible {
			visible = append(visible, a)
		} else {
			invisible = append(invisible, a)
		}
	}

	var out []byte

	count := uint16(0)

	for _, group := range []struct {
		name string
		anns []Annotation
	}{{attrVisibleAnnotations, visible}, {attrInvisibleAnnotations, invisible}} {
		if len(group.anns) == 0 {
			continue
		}

		body := u2(nil, uint16(len(group.anns)))
		for _, a := range group.anns {
			body = w.annotation(body, a)
		}

		out = u2(out, w.utf8(group.name))
		out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
		out = append(out, body...)
		count++
	}

	return append(u2(nil, count), out...)
}

func (w *writer) annotation(b []byte, a Annotation) []byte {
	b = u2(b, w.utf8(a.Type))
	b = u2(b, uint16(len(a.Elements)))

	for _, e := range a.Elements {
		b = u2(b, w.utf8(e.Name))
		b = w.value(b, e.Value)
	}

	return b
}

func (w *writer) value(b []byte, v Value) []byte {
	b = append(b, v.Tag)

	switch v.Tag {
	case TagEnum:
		b = u2(b, w.utf8(v.EnumType))
		b = u2(b, w.utf8(v.EnumName))
	case TagClass:
		b = u2(b, w.utf8(v.Class))
	case TagAnnotation:
		var nested Annotation
		if v.Annotation != nil {
			nested = *v.Annotation
		}

		b = w.annotation(b, nested)
	case TagArray:
		b = u2(b, uint16(len(v.Array)))
		for _, item := range v.Array {
			b = w.value(b, item)
		}
	default:
		b = u2(b, w.constant(v.Tag, v.Const))
	}

	return b
}

func (w *writer) members(members []Member) []byte {
	b := u2(nil, uint16(len(members)))

	for _, m := range members {
		b = u2(b, m.Access)
		b = u2(b, w.utf8(m.Name))
		b = u2(b, w.utf8(m.Descriptor))
		b = append(b, w.annotations(m.Annotations)...)
	}

	return b
}

// Encode writes the metadata of cf as a class file without method bodies.
func Encode(cf *ClassFile) ([]byte, error) {
	w := newWriter()

	var body []byte

	body = u2(body, cf.Access)
	body = u2(body, w.class(cf.Name))

	if cf.Super == "" {
		body = u2(body, 0)
	} else {
		body = u2(body, w.class(cf.Super))
	}

	body = u2(body, uint16(len(cf.Interfaces)))
	for _, i := range cf.Interfaces {
		body = u2(body, w.class(i))
	}

	body = append(body, w.members(cf.Fields)...)
	body = append(body, w.members(cf.Methods)...)
	body = append(body, w.annotations(cf.Annotations)...)

	if w.err != nil {
		return nil, w.err
	}

	major, minor := cf.Major, cf.Minor
	if major == 0 {
		major, minor = DefaultMajor, DefaultMinor
	}

	out := binary.BigEndian.AppendUint32(nil, magic)
	out = u2(out, minor)
	out = u2(out, major)
	out = u2(out, w.count)
	out = append(out, w.pool...)
	out = append(out, body...)

	return out, nil
}
