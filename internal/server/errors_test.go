package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/priya/resume-builder/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &types.ErrValidation{Field: "payload", Message: "bad"}, http.StatusBadRequest},
		{"item not found", &types.ErrItemNotFound{Section: types.SectionSkill, ID: uuid.New()}, http.StatusNotFound},
		{"order conflict", &types.ErrOrderConflict{Section: types.SectionSkill}, http.StatusConflict},
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HTTPStatus(tc.err))
		})
	}
}

func TestHTTPStatus_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("updating item: %w", &types.ErrItemNotFound{Section: types.SectionSkill, ID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}
