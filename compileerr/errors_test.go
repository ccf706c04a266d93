package compileerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsAs(t *testing.T) {
	var err error = &LexError{Pos: 3, Message: "unexpected character '$'"}

	var lexErr *LexError
	assert.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 3, lexErr.Pos)

	var synErr *SyntaxError
	assert.False(t, errors.As(err, &synErr))
}

func TestResourceErrorMessage(t *testing.T) {
	err := &ResourceError{Resource: "symbol table", Capacity: 256}
	assert.Contains(t, err.Error(), "symbol table")
	assert.Contains(t, err.Error(), "256")
}
