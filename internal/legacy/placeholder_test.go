package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"remapper/internal/entry"
)

func TestPatterns(t *testing.T) {
	tests := []struct {
		name                 string
		method, field, param bool
	}{
		{name: "func_123_a", method: true},
		{name: "func_123_"},
		{name: "func_x_a"},
		{name: "field_77_b", field: true},
		{name: "p_55_0_", param: true},
		{name: "p_i7_1_", param: true},
		{name: "p_55_0"},
		{name: "doThing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.method, IsPlaceholderMethod(tt.name))
			assert.Equal(t, tt.field, IsPlaceholderField(tt.name))
			assert.Equal(t, tt.param, IsPlaceholderParam(tt.name))
			assert.Equal(t, tt.method || tt.field || tt.param, IsPlaceholder(tt.name))
		})
	}
}

func TestPlaceholderID(t *testing.T) {
	assert.Equal(t, "123", PlaceholderID("func_123_a"))
	assert.Equal(t, "77", PlaceholderID("field_77_b_c"))
	assert.Equal(t, "i7", PlaceholderID("p_i7_1_"))
	assert.Empty(t, PlaceholderID("plain"))
}

func TestParamPlaceholders(t *testing.T) {
	static := ParamPlaceholders("55", "(IJ)V", true)
	assert.Equal(t, []ParamSlot{{0, "p_55_0_"}, {1, "p_55_1_"}}, static)

	instance := ParamPlaceholders("7", "(D)V", false)
	assert.Equal(t, []ParamSlot{{1, "p_7_1_"}}, instance)

	wide := ParamPlaceholders(ConstructorID(3), entry.MethodDescriptor("(DLjava/lang/String;)V"), false)
	assert.Equal(t, []ParamSlot{{1, "p_i3_1_"}, {3, "p_i3_3_"}}, wide)

	assert.Empty(t, ParamPlaceholders("9", "()V", false))
}
