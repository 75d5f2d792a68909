package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/escobarvape/backend/pkg/apperr"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.Unauthenticated, http.StatusUnauthorized},
		{apperr.Forbidden, http.StatusForbidden},
		{apperr.NotFound, http.StatusNotFound},
		{apperr.InvalidInput, http.StatusBadRequest},
		{apperr.Conflict, http.StatusConflict},
		{apperr.Unavailable, http.StatusServiceUnavailable},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, apperr.Status(apperr.New(c.kind, "x")))
	}
}

func TestStatusDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap(apperr.Unavailable, cause, "order store unreachable")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, apperr.Is(err, apperr.Unavailable))
	assert.Contains(t, err.Error(), "order store unreachable")
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := apperr.New(apperr.NotFound, "order %q not found", "ORD-1001")
	outer := fmt.Errorf("list orders: %w", inner)

	assert.Equal(t, apperr.NotFound, apperr.KindOf(outer))
	assert.Equal(t, http.StatusNotFound, apperr.Status(outer))
}
