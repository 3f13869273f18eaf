package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedThing struct {
	Name  string   `json:"name" validate:"required"`
	Score *float64 `json:"score" validate:"required,gte=0,lte=10"`
	Kind  string   `json:"kind" validate:"omitempty,thingkind"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()
	v.RegisterEnum("thingkind", "{0} must be one of A or B", "A", "B")

	zero, eleven := 0.0, 11.0

	tests := []struct {
		name      string
		thing     validatedThing
		wantField map[string]string
	}{
		{name: "valid", thing: validatedThing{Name: "x", Score: &zero, Kind: "A"}},
		{name: "valid without kind", thing: validatedThing{Name: "x", Score: &zero}},
		{
			name:      "missing",
			thing:     validatedThing{},
			wantField: map[string]string{"name": "name is required", "score": "score is required"},
		},
		{
			name:      "out of range",
			thing:     validatedThing{Name: "x", Score: &eleven},
			wantField: map[string]string{"score": "score must be 10 or less"},
		},
		{
			name:      "unknown kind",
			thing:     validatedThing{Name: "x", Score: &zero, Kind: "C"},
			wantField: map[string]string{"kind": "kind must be one of A or B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.thing)
			if tt.wantField == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.FieldMap())
		})
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "IT101", CleanString("  IT101\t"))
	assert.Equal(t, "admin@educhain.com", CleanString(" Admin@EduChain.com ", true))
	assert.Nil(t, CleanStringPtr(nil))
	assert.Equal(t, "x", *CleanStringPtr(strPtr(" x ")))
	assert.Equal(t, 8.33, Round2(25.0/3))
}

func strPtr(s string) *string { return &s }
