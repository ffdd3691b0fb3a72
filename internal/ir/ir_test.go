package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harukamm/elvm/internal/ir"
)

func TestRegisterByName(t *testing.T) {
	r, ok := ir.RegisterByName("BP")
	assert.True(t, ok)
	assert.Equal(t, ir.BP, r)

	_, ok = ir.RegisterByName("ZZ")
	assert.False(t, ok)
}

func TestLookupOp(t *testing.T) {
	assert.Equal(t, ir.MOV, ir.LookupOp("mov"))
	assert.Equal(t, ir.OpUnset, ir.LookupOp("nope"))
}

func TestOpPredicates(t *testing.T) {
	assert.True(t, ir.EQ.IsComparison())
	assert.False(t, ir.JEQ.IsComparison())
	assert.True(t, ir.JEQ.IsConditionalJump())
	assert.False(t, ir.JMP.IsConditionalJump())
}

func TestImmValueWrapsIntoWordDomain(t *testing.T) {
	v := ir.ImmValue(ir.WordMod + 5)
	assert.Equal(t, uint32(5), v.Imm)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "reg/A", ir.RegValue(ir.A).String())
	assert.Equal(t, "imm/42", ir.ImmValue(42).String())
	assert.Equal(t, "tmp/loop", ir.LabelValue("loop").String())
}
