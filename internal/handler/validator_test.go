package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBoosterKind(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{name: "tapper boost", kind: "tapper_boost", wantErr: false},
		{name: "full energy", kind: "full_energy", wantErr: false},
		{name: "uppercase is normalized", kind: "Tapper_Boost", wantErr: false},
		{name: "unknown kind", kind: "mega_boost", wantErr: true},
		{name: "empty kind fails required", kind: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(DailyBoosterRequest{UserID: "user-1", Kind: tt.kind})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(TapRequest{InputCount: 99})
	require.Error(t, err)

	formatted := FormatValidationError(err)
	assert.Equal(t, "This field is required", formatted["userid"])
	assert.Equal(t, "Must be at most 10", formatted["inputcount"])
}
