package warning

import (
	"testing"

	"github.com/pattyshack/gt/parseutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	collector := NewCollector()
	collector.Warn(parseutil.StartEndPos{}, "statement not reached")
	collector.Warning(
		ShadowingVariable,
		parseutil.StartEndPos{},
		"shadowing outer local variable - x")

	warnings := collector.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, Generic, warnings[0].Id)
	assert.Equal(t, ShadowingVariable, warnings[1].Id)

	assert.Equal(
		t,
		[]string{
			"statement not reached",
			"shadowing outer local variable - x",
		},
		collector.Messages())

	assert.Contains(t, warnings[0].String(), "warning: statement not reached")
	assert.NotContains(t, warnings[0].String(), "[")
	assert.Contains(t, warnings[1].String(), "[shadowing-variable]")

	// Returned slices are copies.
	warnings[0].Message = "mutated"
	assert.Equal(t, "statement not reached", collector.Warnings()[0].Message)
}
