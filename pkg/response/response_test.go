package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	assert.Equal(t, ErrorResponse{Error: "url not found"}, Error("url not found"))
}

func TestInternalError(t *testing.T) {
	tests := []struct {
		name   string
		detail any
		want   ErrorResponse
	}{
		{
			name:   "error",
			detail: errors.New("boom"),
			want:   ErrorResponse{Error: "internal error: boom"},
		},
		{
			name:   "panic string",
			detail: "index out of range",
			want:   ErrorResponse{Error: "internal error: index out of range"},
		},
		{
			name:   "nil",
			detail: nil,
			want:   ErrorResponse{Error: "internal error: <nil>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InternalError(tt.detail))
		})
	}
}
