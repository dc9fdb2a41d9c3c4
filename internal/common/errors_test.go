package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewMissingFieldsError("phoneNumber"))

	assert.True(t, errors.Is(err, ErrorValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"phoneNumber"}, ve.Fields)
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "missing required fields: a, b", NewMissingFieldsError("a", "b").Error())
	assert.Equal(t, "limit must be positive", (&ValidationError{Fields: []string{"limit"}, Reason: "limit must be positive"}).Error())
}

func TestRequireFields(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		missing []string
	}{
		{name: "all set", values: map[string]string{"a": "1", "b": "2"}},
		{name: "one blank", values: map[string]string{"a": "1", "b": "  "}, missing: []string{"b"}},
		{name: "all missing", values: map[string]string{}, missing: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireFields([]string{"a", "b"}, tt.values)
			if tt.missing == nil {
				require.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.missing, ve.Fields)
		})
	}
}
