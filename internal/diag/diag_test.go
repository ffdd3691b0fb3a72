package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukamm/elvm/internal/diag"
	"github.com/harukamm/elvm/internal/parser"
)

func TestDumpModule(t *testing.T) {
	module, err := parser.Load([]byte("main:\n  putc 65\n  exit\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	diag.DumpModule(&buf, module)

	out := buf.String()
	assert.Contains(t, out, "0-th,PUTC")
	assert.Contains(t, out, "1-th,EXIT")
	assert.True(t, strings.Contains(out, "entry: 0"))
	assert.True(t, strings.Contains(out, "_edata: 0"))
}
