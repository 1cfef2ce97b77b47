package errors

import (
	"fmt"
	"net/http"
	"testing"

	"telcochurn/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnerCode(t *testing.T) {
	inner := ModelError("scaler.json", fmt.Errorf("bad json"))
	err := Wrap(inner, "load artifacts")

	assert.Equal(t, CodeModelError, GetCode(err))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "load artifacts: scaler.json: bad json", err.Error())
}

func TestWrapClassifiesDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"invalid fold", fmt.Errorf("remediate: %w", core.ErrInvalidFold), CodeInvalidInput, http.StatusBadRequest},
		{"missing column", core.NewMissingColumnError("tenure"), CodeInvalidInput, http.StatusBadRequest},
		{"unknown run", core.ErrRunNotFound, CodeNotFound, http.StatusNotFound},
		{"plain failure", fmt.Errorf("disk full"), CodeInternalError, http.StatusInternalServerError},
		{"validation", ValidationError("tenure is required"), CodeValidationError, http.StatusBadRequest},
		{"backend down", ExternalServiceError("backend", fmt.Errorf("refused")), CodeExternalService, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "context")
			assert.Equal(t, tt.code, GetCode(wrapped))
			assert.Equal(t, tt.status, HTTPStatus(wrapped))
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestWithCodeAndNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "noop"))
	assert.Nil(t, WithCode(CodeDatabaseError, nil))

	err := WithCode(CodeDatabaseError, fmt.Errorf("connection reset"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeDatabaseError, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}
