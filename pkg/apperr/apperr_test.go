package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CodeInvalid, "failed to create profile")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsCode(err, CodeInvalid))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Contains(t, err.Error(), "boom")
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(CodeConflict, "email already registered")
	outer := fmt.Errorf("signup: %w", inner)

	assert.True(t, IsCode(outer, CodeConflict))
	assert.Equal(t, "email already registered", Message(outer))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(CodeInvalid, "x"), http.StatusBadRequest},
		{New(CodeNotFound, "x"), http.StatusNotFound},
		{New(CodeConflict, "x"), http.StatusConflict},
		{New(CodeUnauthorized, "x"), http.StatusUnauthorized},
		{New(CodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err))
	}
}
