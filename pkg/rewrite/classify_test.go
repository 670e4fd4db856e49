package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input     string
		property  string
		magnitude string
		unit      string
	}{
		{"w20p", "w", "20", "p"},
		{"h30vh", "h", "30", "vh"},
		{"p10vw", "p", "10", "vw"},
		{"m5%", "m", "5", "%"},
		{"p10px", "p", "10", "px"},
		{"max-h30vh", "max-h", "30", "vh"},
		{"gap-x10p", "gap-x", "10", "p"},
		{"translate-y5vw", "translate-y", "5", "vw"},
		{"top-20p", "top-", "20", "p"},
		{"left-30vh", "left-", "30", "vh"},
		{"translate-x-5vw", "translate-x-", "5", "vw"},
		{"maxH40vh", "maxH", "40", "vh"},
		{"MinW30r", "MinW", "30", "r"},
		{"w5q", "w", "5", "q"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			tok, ok := Classify(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.input, tok.Fragment)
			assert.Equal(t, tc.property, tok.Property)
			assert.Equal(t, tc.magnitude, tok.Magnitude)
			assert.Equal(t, tc.unit, tok.Unit)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"w",
		"w20",
		"m-10",
		"min-w20",
		"123",
		"w-",
		"-10px",
		"20px",
		"w20P",
		"w-[20px]",
		"w1.5r",
	}
	for _, in := range inputs {
		_, ok := Classify(in)
		assert.False(t, ok, "expected no match for %q", in)
	}
}

func TestInClassAttribute(t *testing.T) {
	assert.True(t, InClassAttribute(`<div class="flex w20p`))
	assert.True(t, InClassAttribute(`<div className="`))
	assert.True(t, InClassAttribute(`<div className='p-2 m4r`))
	assert.False(t, InClassAttribute(`<div class="flex" w20p`))
	assert.False(t, InClassAttribute(`const w20p`))
	assert.False(t, InClassAttribute(`<div id="w20p`))
}

func TestWordBeforeCursor(t *testing.T) {
	word, start, ok := WordBeforeCursor(`<div class="flex hover:w20p`)
	require.True(t, ok)
	assert.Equal(t, "w20p", word)
	assert.Equal(t, len(`<div class="flex hover:`), start)

	_, _, ok = WordBeforeCursor(`<div class="flex `)
	assert.False(t, ok)
}

func TestClassifyLine(t *testing.T) {
	tok, ok := ClassifyLine(`<div className="flex maxH40vh`)
	require.True(t, ok)
	assert.Equal(t, "maxH", tok.Property)

	// Same fragment outside any class attribute.
	_, ok = ClassifyLine(`const maxH40vh`)
	assert.False(t, ok)

	_, ok = ClassifyLine(`<div class="flex w20`)
	assert.False(t, ok)
}

func TestShouldRetrigger(t *testing.T) {
	assert.True(t, ShouldRetrigger(`<div class="w20p`))
	assert.True(t, ShouldRetrigger(`<div className="top-2r`))
	assert.False(t, ShouldRetrigger(`<div class="w20`))
	assert.False(t, ShouldRetrigger(`<div class="w`))
	assert.False(t, ShouldRetrigger(`w20p`))
}
