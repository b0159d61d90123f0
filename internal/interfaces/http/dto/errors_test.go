package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"INVALID_ROLE", http.StatusBadRequest},
		{"INVALID_PRICE", http.StatusBadRequest},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"INVALID_STATUS_TRANSITION", http.StatusUnprocessableEntity},
		{"REVIEW_NOT_ELIGIBLE", http.StatusUnprocessableEntity},
		{"SELF_DELETE", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"INVALID_OWNER", http.StatusForbidden},
		{"ROLE_NOT_SET", http.StatusForbidden},
		{"NOT_FOUND", http.StatusNotFound},
		{"USERNAME_TAKEN", http.StatusConflict},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestGetHTTPStatus_UnknownCodeDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Product not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"k": "v"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}
