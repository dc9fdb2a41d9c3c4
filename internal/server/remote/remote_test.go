package remote

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"type only", &Error{Code: 400, Type: "PHONE_CODE_INVALID"}, "rpc error code 400: PHONE_CODE_INVALID"},
		{"same message", &Error{Code: 400, Type: "X", Message: "X"}, "rpc error code 400: X"},
		{"with message", &Error{Code: 420, Type: "FLOOD_WAIT", Message: "wait 30s"}, "rpc error code 420: FLOOD_WAIT: wait 30s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_As(t *testing.T) {
	err := fmt.Errorf("sign in: %w", &Error{Code: 400, Type: "PHONE_CODE_EXPIRED"})

	var rerr *Error
	assert.True(t, errors.As(err, &rerr))
	assert.Equal(t, "PHONE_CODE_EXPIRED", rerr.Type)
}
