package icterrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_IsClassifiesBySentinel(t *testing.T) {
	assert := assert.New(t)

	underlying := errors.New("undefined symbol \"foo\"")
	err := InvalidGrammar(underlying)

	assert.True(errors.Is(err, ErrInvalidGrammar))
	assert.False(errors.Is(err, ErrLexerConflict))
	assert.True(errors.Is(err, underlying))
}

func Test_Error_MessageIncludesCause(t *testing.T) {
	assert := assert.New(t)

	err := LexerConflict("id", "keyword", ErrLexerConflict)
	assert.Contains(err.Error(), "id")
	assert.Contains(err.Error(), "keyword")
}

func Test_JoinList(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("a, b, and c", JoinList([]string{"a", "b", "c"}))
}
