package legacy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"remapper/internal/classfile"
	"remapper/internal/format"
	"remapper/internal/index"
	"remapper/internal/logging"
	"remapper/internal/storage"
)

const (
	onlyInDesc = "Lnet/minecraftforge/api/distmarker/OnlyIn;"
	distDesc   = "Lnet/minecraftforge/api/distmarker/Dist;"

	tsrgText = "a net/minecraft/Block\n" +
		"\tb field_100_a\n" +
		"\tc (La;)V func_200_b\n" +
		"\td (IJ)V func_300_c\n" +
		"\te ()V tick\n" +
		"a$f net/minecraft/Block$Builder\n"

	constructorsText = "7 net/minecraft/Block (D)V\n"
)

func sideOnly(name string) classfile.Annotation {
	return classfile.Annotation{
		Type:     onlyInDesc,
		Visible:  true,
		Elements: []classfile.Element{{Name: "value", Value: classfile.EnumValue(distDesc, name)}},
	}
}

func fixtureClasses() []*classfile.ClassFile {
	return []*classfile.ClassFile{
		{
			Name:  "net/minecraft/Block",
			Super: "java/lang/Object",
			Fields: []classfile.Member{
				{Name: "field_100_a", Descriptor: "I", Annotations: []classfile.Annotation{sideOnly("CLIENT")}},
			},
			Methods: []classfile.Member{
				{Name: "<init>", Descriptor: "(D)V"},
				{Name: "func_200_b", Descriptor: "(Lnet/minecraft/Block;)V"},
				{Name: "func_300_c", Descriptor: "(IJ)V", Access: classfile.AccStatic},
				{Name: "tick", Descriptor: "()V"},
			},
		},
		{
			Name:        "net/minecraft/Block$Builder",
			Super:       "java/lang/Object",
			Annotations: []classfile.Annotation{sideOnly("DEDICATED_SERVER")},
		},
	}
}

func fixtureJar(t *testing.T) []byte {
	t.Helper()

	data, err := index.JarBytes(fixtureClasses()...)
	require.NoError(t, err)

	return data
}

// writeDir creates a mapping directory. Files with empty content are left
// out.
func writeDir(t *testing.T, fs *storage.Store, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, fs.Write(t.Context(), storage.Join(dir, JarFile), fixtureJar(t)))

	for name, content := range files {
		if content == "" {
			continue
		}

		require.NoError(t, fs.Write(t.Context(), storage.Join(dir, name), []byte(content)))
	}

	return dir
}

func fixtureFiles() map[string]string {
	return map[string]string{
		TsrgFile:         tsrgText,
		ConstructorsFile: constructorsText,
		Fields.File():    fieldsCSV,
		Methods.File():   "searge,name,side,desc\nfunc_200_b,setParent,2,\n",
		Params.File():    paramsCSV,
	}
}

func newRegistry(t *testing.T) *format.Registry {
	t.Helper()

	cache, err := NewFactsCache(4, 2)
	require.NoError(t, err)

	r := format.NewRegistry(storage.New(), logging.NewDiscardLogger())
	require.NoError(t, r.Register(New(cache)))

	return r
}
