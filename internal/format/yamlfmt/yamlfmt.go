package yamlfmt

import (
	"context"
	"log/slog"
	"strconv"

	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/mapping"
	"remapper/internal/tree"
)

// Name is the registry name of the format.
const Name = "yaml"

// Variant names.
const (
	VariantFile      = "file"
	VariantDirectory = "directory"
)

// OptionValidate enables validation of read documents against the jar.
const OptionValidate = "validate"

// New returns the yaml format.
func New() *format.Format {
	return &format.Format{
		Name: Name,
		Readers: []format.NamedReader{
			{Name: VariantFile, Reader: fileReader{}},
			{Name: VariantDirectory, Reader: dirReader{}},
		},
		Writers: []format.NamedWriter{
			{Name: VariantFile, Writer: fileWriter{}},
			{Name: VariantDirectory, Writer: dirWriter{}},
		},
	}
}

var readOptions = []format.Option{
	{
		Name:        OptionValidate,
		Description: "check every class and member against the jar before reading",
		Default:     "false",
		Validate:    format.OneOf("true", "false"),
	},
}

// toTree validates mf when requested and converts it.
func toTree(_ context.Context, req format.ReadRequest, mf *mapping.MappingFile) (tree.Tree, error) {
	if on, _ := strconv.ParseBool(req.Options.Get(OptionValidate)); on {
		ix, err := req.Jar()
		if err != nil {
			return nil, err
		}

		res := mapping.Validate(mf, ix)
		for _, w := range res.Warnings {
			logger(req.Logger).Warn("mapping warning", "path", req.Path, "detail", w.String())
		}

		if res.HasErrors() {
			return nil, rerrors.Config("mappings at "+req.Path+" do not match the jar", res.Error())
		}
	}

	t, err := mf.ToTree()
	if err != nil {
		return nil, err
	}

	return t, nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}

	return l
}
