package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeValidation, "term is blank"),
			want: "VALIDATION: term is blank",
		},
		{
			name: "with cause",
			err:  TransportError(io.ErrUnexpectedEOF),
			want: "TRANSPORT: http exchange failed (caused by: unexpected EOF)",
		},
		{
			name: "status error",
			err:  HTTPStatusError(404),
			want: "HTTP_STATUS: unexpected status: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIs_WrappedErrors(t *testing.T) {
	base := DecodeError(io.ErrUnexpectedEOF)
	wrapped := fmt.Errorf("search batman: %w", base)

	assert.True(t, Is(wrapped, ErrCodeDecode))
	assert.False(t, Is(wrapped, ErrCodeTransport))
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
	assert.Equal(t, ErrCodeDecode, GetCode(wrapped))
}

func TestGetHTTPCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationError("term", "must not be blank"), http.StatusBadRequest},
		{"not found", NotFound("movie", 3), http.StatusNotFound},
		{"transport", TransportError(io.EOF), http.StatusBadGateway},
		{"external", ExternalServiceError("player", io.EOF), http.StatusBadGateway},
		{"config", ConfigError("server.port", "out of range"), http.StatusInternalServerError},
		{"plain error", io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPCode(tt.err))
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := ValidationError("term", "must not be blank")

	assert.Equal(t, "term", err.Details["field"])
	assert.Equal(t, "must not be blank", err.Details["reason"])
	assert.Equal(t, ErrCodeInternal, GetCode(io.EOF))
}
