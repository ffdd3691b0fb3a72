package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpTokens(t *testing.T) {
	var buf bytes.Buffer
	err := dumpTokens(&buf, []byte(`mov A, "hi"`))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "WORD mov")
	assert.Contains(t, out, "WORD A")
	assert.Contains(t, out, "COMMA")
	assert.Contains(t, out, `STR "hi`)
}
