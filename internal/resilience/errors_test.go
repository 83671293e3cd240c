package resilience

import (
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient wrapper", NewTransientError(eris.New("503 from upstream"), 503), true},
		{"wrapped transient", fmt.Errorf("call failed: %w", NewTransientError(eris.New("x"), 429)), true},
		{"connection reset message", eris.New("read tcp: connection reset by peer"), true},
		{"timeout message", eris.New("dial: i/o timeout"), true},
		{"plain error", eris.New("invalid persona"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestTransientErrorUnwrap(t *testing.T) {
	inner := eris.New("gateway busy")
	te := NewTransientError(inner, 429)

	assert.Equal(t, "gateway busy", te.Error())
	assert.Equal(t, 429, te.StatusCode)
	assert.Equal(t, inner, te.Unwrap())
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "code %d", code)
	}
	for _, code := range []int{200, 201, 400, 401, 403, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), "code %d", code)
	}
}
