package compute_budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetComputeUnitLimit(t *testing.T) {
	instruction := SetComputeUnitLimit(400_000)
	assert.EqualValues(t, ProgramKey[:], instruction.Program)
	assert.Empty(t, instruction.Accounts)

	parsed, err := ParseSetComputeUnitLimitIxnData(instruction.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 400_000, parsed)

	_, err = ParseSetComputeUnitLimitIxnData(instruction.Data[:4])
	assert.Error(t, err)

	_, err = ParseSetComputeUnitLimitIxnData(SetComputeUnitPrice(1).Data)
	assert.Error(t, err)
}

func TestSetComputeUnitPrice(t *testing.T) {
	instruction := SetComputeUnitPrice(10_000)
	assert.EqualValues(t, ProgramKey[:], instruction.Program)

	parsed, err := ParseSetComputeUnitPriceIxnData(instruction.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 10_000, parsed)

	_, err = ParseSetComputeUnitPriceIxnData(SetComputeUnitLimit(1).Data)
	assert.Error(t, err)
}
