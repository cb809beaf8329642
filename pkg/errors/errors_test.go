package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := HTTPStatus(429)
	assert.Equal(t, "http_status error (code 429): unexpected status code: 429", err.Error())

	terr := Transport(stderrors.New("connection refused"))
	assert.Equal(t, "transport error: network error: connection refused", terr.Error())
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Filesystem("write record", cause)

	assert.True(t, stderrors.Is(err, cause))
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(Decode(stderrors.New("bad json")), ErrorTypeDecode))
	assert.False(t, IsType(Decode(stderrors.New("bad json")), ErrorTypeTransport))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeTransport))
	assert.False(t, IsType(nil, ErrorTypeTransport))
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	inner := HTTPStatus(503)
	wrapped := fmt.Errorf("window failed: %w", inner)

	assert.True(t, IsType(wrapped, ErrorTypeHTTPStatus))

	var typed *Error
	require.True(t, stderrors.As(wrapped, &typed))
	assert.Equal(t, 503, typed.Code)
}
