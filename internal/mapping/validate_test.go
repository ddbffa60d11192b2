package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remapper/internal/classfile"
	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	"remapper/internal/index"
)

func testIndex() *index.Index {
	block := entry.Class("a/b")

	return index.FromClasses(
		&index.ClassInfo{
			Entry: block,
			Fields: []index.MemberInfo{
				{Entry: entry.Field(block, "field_1_a", "I")},
			},
			Methods: []index.MemberInfo{
				{Entry: entry.Method(block, "func_2_b", "(ILjava/lang/String;)V")},
				{Entry: entry.Method(block, "func_3_c", "(J)V"), Access: classfile.AccStatic},
				{Entry: entry.Method(block, "<init>", "()V")},
			},
		},
		&index.ClassInfo{Entry: entry.InnerClass(block, "c")},
		&index.ClassInfo{Entry: entry.Class("a/Blocks")},
	)
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestValidateValidDocument(t *testing.T) {
	mf, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	res := Validate(mf, testIndex())
	assert.True(t, res.IsValid(), res.Error())
	assert.Empty(t, res.Warnings)
}

func TestValidateWithoutIndex(t *testing.T) {
	mf, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	mf.Classes = append(mf.Classes, ClassMapping{Obf: "z/NotInArchive", Deobf: "Fine"})

	res := Validate(mf, nil)
	assert.True(t, res.IsValid(), res.Error())
	assert.Equal(t, []string{diagnostic.CodeSkipped}, codes(res.Infos))
}

func TestValidateNil(t *testing.T) {
	res := Validate(nil, nil)
	assert.Equal(t, []string{diagnostic.CodeInvalid}, codes(res.Errors))
}

func TestValidateUnknownClassSuggests(t *testing.T) {
	mf := &MappingFile{Classes: []ClassMapping{{Obf: "a/Blokc", Deobf: "X"}}}

	res := Validate(mf, testIndex())
	require.Len(t, res.Errors, 1)

	d := res.Errors[0]
	assert.Equal(t, diagnostic.CodeUnknownClass, d.Code)
	assert.Equal(t, "a/Blokc", d.Subject)
	assert.Contains(t, d.Suggestions, "a/Blocks")
}

func TestValidateUnknownMember(t *testing.T) {
	mf := &MappingFile{Classes: []ClassMapping{{
		Obf:     "a/b",
		Fields:  []FieldMapping{{Obf: "field_1_b", Desc: "I", Deobf: "x"}},
		Methods: []MethodMapping{{Obf: "func_2_b", Desc: "()V", Deobf: "y"}},
	}}}

	res := Validate(mf, testIndex())
	require.Len(t, res.Errors, 2)

	assert.Equal(t, []string{diagnostic.CodeUnknownMember, diagnostic.CodeUnknownMember}, codes(res.Errors))
	assert.Contains(t, res.Errors[0].Suggestions, "field_1_a")
	assert.Equal(t, "func_2_b", res.Errors[1].Member)
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name string
		mf   *MappingFile
		want []string
	}{
		{
			name: "duplicate class",
			mf:   &MappingFile{Classes: []ClassMapping{{Obf: "a/b"}, {Obf: "a/b"}}},
			want: []string{diagnostic.CodeDuplicate},
		},
		{
			name: "duplicate package",
			mf:   &MappingFile{Packages: []PackageMapping{{Obf: "a", Deobf: "x"}, {Obf: "a", Deobf: "y"}}},
			want: []string{diagnostic.CodeDuplicate},
		},
		{
			name: "missing obf",
			mf:   &MappingFile{Classes: []ClassMapping{{Deobf: "X"}}},
			want: []string{diagnostic.CodeInvalid},
		},
		{
			name: "invalid descriptor",
			mf: &MappingFile{Classes: []ClassMapping{{
				Obf:    "a/b",
				Fields: []FieldMapping{{Obf: "field_1_a", Desc: "Lfoo"}},
			}}},
			want: []string{diagnostic.CodeInvalid},
		},
		{
			name: "duplicate method",
			mf: &MappingFile{Classes: []ClassMapping{{
				Obf: "a/b",
				Methods: []MethodMapping{
					{Obf: "<init>", Desc: "()V"},
					{Obf: "<init>", Desc: "()V"},
				},
			}}},
			want: []string{diagnostic.CodeDuplicate},
		},
		{
			name: "parameter slot past the descriptor",
			mf: &MappingFile{Classes: []ClassMapping{{
				Obf: "a/b",
				Methods: []MethodMapping{{
					Obf:    "func_2_b",
					Desc:   "(ILjava/lang/String;)V",
					Params: VarList{{Index: 3, Name: "extra"}},
				}},
			}}},
			want: []string{diagnostic.CodeInvalid},
		},
		{
			name: "this slot of an instance method",
			mf: &MappingFile{Classes: []ClassMapping{{
				Obf: "a/b",
				Methods: []MethodMapping{{
					Obf:    "func_2_b",
					Desc:   "(ILjava/lang/String;)V",
					Params: VarList{{Index: 0, Name: "self"}},
				}},
			}}},
			want: []string{diagnostic.CodeInvalid},
		},
		{
			name: "slot named twice",
			mf: &MappingFile{Classes: []ClassMapping{{
				Obf: "a/b",
				Methods: []MethodMapping{{
					Obf:    "func_2_b",
					Desc:   "(ILjava/lang/String;)V",
					Params: VarList{{Index: 1, Name: "a"}},
					Locals: VarList{{Index: 1, Name: "b"}},
				}},
			}}},
			want: []string{diagnostic.CodeDuplicate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.mf, testIndex())
			assert.Equal(t, tt.want, codes(res.Errors))
		})
	}
}

func TestValidateStaticSlots(t *testing.T) {
	mf := &MappingFile{Classes: []ClassMapping{{
		Obf: "a/b",
		Methods: []MethodMapping{{
			Obf:    "func_3_c",
			Desc:   "(J)V",
			Params: VarList{{Index: 0, Name: "time"}},
			Locals: VarList{{Index: 1, Name: "half"}},
		}},
	}}}

	res := Validate(mf, testIndex())
	assert.True(t, res.IsValid(), res.Error())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "func_3_c(J)V", res.Warnings[0].Member)
}
