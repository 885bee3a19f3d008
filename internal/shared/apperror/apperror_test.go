package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	notFound := New(KindNotFound, "Post not found")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", notFound, KindNotFound},
		{"wrapped sentinel", errors.Wrap(notFound, "load post"), KindNotFound},
		{"fmt wrapped", fmt.Errorf("handler: %w", notFound), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"upstream", Upstream(errors.New("dial tcp"), "Image storage unavailable"), KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	sentinel := New(KindConflict, "User already exists")
	wrapped := errors.WithMessage(errors.WithStack(sentinel), "register")

	assert.True(t, errors.Is(wrapped, sentinel))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Post not found", PublicMessage(New(KindNotFound, "Post not found")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("pq: relation does not exist")))
	assert.Equal(t, "Invalid request: title: cannot be blank.",
		PublicMessage(Validation("Invalid request", errors.New("title: cannot be blank."))))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindAuthentication))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindAuthorization))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(KindUpstream))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(KindUpstream, nil, "noop"))
}
