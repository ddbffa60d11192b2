package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning(CodeSkipped, "not a placeholder", "a/B", "x")
	assert.True(t, d.IsValid())

	d.AddError(CodeMissingFile, "file is missing", "mcp", "methods.csv")
	d.AddErrorWithSuggestions(CodeUnknownClass, "no such class", "a/Foo", "", []string{"a/Fob"})

	assert.False(t, d.IsValid())
	assert.Len(t, d.All(), 3)
	assert.EqualError(t, d.Error(),
		"[mcp] methods.csv: [missing_file] file is missing; [a/Foo]: [unknown_class] no such class (did you mean a/Fob?)")
}

func TestAllOrdersBySeverity(t *testing.T) {
	var d Diagnostics

	d.AddInfo(CodeSkipped, "no archive given", "", "")
	d.AddWarning(CodeSkipped, "not a placeholder", "a/B", "x")
	d.AddError(CodeInvalid, "bad", "", "")

	var got []Severity
	for _, x := range d.All() {
		got = append(got, x.Severity)
	}

	assert.Equal(t, []Severity{SeverityError, SeverityWarning, SeverityInfo}, got)
	assert.Equal(t, "[invalid] bad", d.Errors[0].String())
	assert.EqualError(t, d.Error(), "[invalid] bad", "only errors are joined")

	var none *Diagnostics
	assert.False(t, none.HasErrors())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
