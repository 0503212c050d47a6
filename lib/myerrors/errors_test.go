package myerrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"invalid input", NewInvalidInputError(fmt.Errorf("bad field")), http.StatusBadRequest},
		{"not found", NewNotFoundError(fmt.Errorf("no such session")), http.StatusNotFound},
		{"internal", NewInternalError(fmt.Errorf("boom")), http.StatusInternalServerError},
		{"unavailable", NewUnavailableError(fmt.Errorf("down")), http.StatusServiceUnavailable},
		{"not implemented", NewNotImplementedError(fmt.Errorf("todo")), http.StatusNotImplemented},
		{"plain error", fmt.Errorf("plain"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, GetHttpStatus(tc.err))
		})
	}
}

func TestErrorMessagePreserved(t *testing.T) {
	err := NewInvalidInputErrorf("field %s is mandatory", "email")
	assert.Equal(t, "field email is mandatory", err.Error())
}
