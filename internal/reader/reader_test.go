package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukamm/elvm/internal/reader"
)

func TestTokenWord(t *testing.T) {
	r := reader.New([]byte("  mov   A, 1\n"))
	assert.Equal(t, "mov", r.TokenWord())
	assert.Equal(t, "A", r.TokenWord())
}

func TestAcceptRestoresPositionOnMismatch(t *testing.T) {
	r := reader.New([]byte(".text"))
	assert.False(t, r.Accept(".data"))
	assert.Equal(t, ".text", r.TokenWord())
}

func TestAcceptConsumesOnMatch(t *testing.T) {
	r := reader.New([]byte(".data 1"))
	assert.True(t, r.Accept(".data"))
	assert.Equal(t, "1", r.TokenWord())
}

func TestLiteralProcessesEscapesAndAppendsNUL(t *testing.T) {
	r := reader.New([]byte(`"a\nb\t\\\""`))
	s, err := r.Literal()
	require.NoError(t, err)
	assert.Equal(t, "a\nb\t\\\"\x00", s)
}

func TestLiteralUnterminatedIsFatal(t *testing.T) {
	r := reader.New([]byte(`"abc`))
	_, err := r.Literal()
	require.Error(t, err)
	var lexErr *reader.Error
	require.ErrorAs(t, err, &lexErr)
}

func TestExpectMismatchReportsLine(t *testing.T) {
	r := reader.New([]byte("\n\nfoo"))
	r.SkipSpaces()
	err := r.Expect(",")
	require.Error(t, err)
	assert.Equal(t, 2, r.Line())
}

func TestSkipUntilRetStopsAtNewline(t *testing.T) {
	r := reader.New([]byte("# comment\nmov"))
	r.SkipUntilRet()
	assert.Equal(t, "mov", r.TokenWord())
}

func TestIsIdent(t *testing.T) {
	assert.True(t, reader.IsIdent('_'))
	assert.True(t, reader.IsIdent('.'))
	assert.True(t, reader.IsIdent('9'))
	assert.False(t, reader.IsIdent(','))
	assert.False(t, reader.IsIdent(' '))
}
