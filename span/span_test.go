package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embedlang/macrolang/span"
)

func TestIsEscapedCountsConsecutiveBackslashes(t *testing.T) {
	cases := []struct {
		source string
		pos    int
		want   bool
	}{
		{`a\b`, 2, true},
		{`a\\b`, 3, false},
		{`a\\\b`, 4, true},
		{`ab`, 1, false},
		{`a\b`, 0, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, span.IsEscaped(c.source, c.pos), "source=%q pos=%d", c.source, c.pos)
	}
}

func TestIsEscapedOutOfRangeIsFalse(t *testing.T) {
	assert.False(t, span.IsEscaped("abc", -1))
	assert.False(t, span.IsEscaped("abc", 10))
}

func TestSpanArithmetic(t *testing.T) {
	s := span.New(3, 7)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, span.New(5, 9), s.Offset(2))
	assert.Equal(t, "hello world"[3:7], s.Slice("hello world"))
}

func TestSpanContains(t *testing.T) {
	outer := span.New(0, 10)
	assert.True(t, outer.Contains(span.New(2, 5)))
	assert.True(t, outer.Contains(span.New(0, 10)))
	assert.False(t, outer.Contains(span.New(5, 11)))
	assert.False(t, outer.Contains(span.New(-1, 5)))
}
