package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassCovers(t *testing.T) {
	cases := []struct {
		owned, required string
		want            bool
	}{
		{"III", "III", true},
		{"IV", "II", true},
		{"VIII", "I", true},
		{"II", "III", false},
		{"I", "VIII", false},
		{"", "I", false},
		{"I", "", false},
		{"IX", "I", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassCovers(c.owned, c.required),
			"owned=%q required=%q", c.owned, c.required)
	}
}

func TestClassCeilingEUR(t *testing.T) {
	ceiling, unbounded, ok := ClassCeilingEUR("I")
	assert.True(t, ok)
	assert.False(t, unbounded)
	assert.Equal(t, 258000.0, ceiling)

	ceiling, unbounded, ok = ClassCeilingEUR("VII")
	assert.True(t, ok)
	assert.False(t, unbounded)
	assert.Equal(t, 10329000.0, ceiling)

	_, unbounded, ok = ClassCeilingEUR("VIII")
	assert.True(t, ok)
	assert.True(t, unbounded)

	_, _, ok = ClassCeilingEUR("X")
	assert.False(t, ok)
}

func TestSOAClassRank(t *testing.T) {
	assert.Equal(t, 1, SOAClassRank("I"))
	assert.Equal(t, 8, SOAClassRank("VIII"))
	assert.Equal(t, 0, SOAClassRank("not-a-class"))
}
