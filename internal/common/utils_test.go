package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("lundi et mardi", "mardi"))
	assert.False(t, HasAny("lundi", "mardi", "jeudi"))
	assert.False(t, HasAny("lundi"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"97101", "97105"}, SplitList(" 97101, ,97105,"))
	assert.Nil(t, SplitList(""))
}
