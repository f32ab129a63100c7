package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("sleep-and-memory"))
	assert.True(t, IsSlug("week1"))
	assert.False(t, IsSlug("Sleep"))
	assert.False(t, IsSlug("double--hyphen"))
	assert.False(t, IsSlug("-leading"))
	assert.False(t, IsSlug(""))
}

func TestIsCurrency(t *testing.T) {
	assert.True(t, IsCurrency("USD"))
	assert.False(t, IsCurrency("usd"))
	assert.False(t, IsCurrency("EURO"))
}

func TestIsTitle(t *testing.T) {
	assert.True(t, IsTitle("Intro"))
	assert.False(t, IsTitle(" a "))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "what-is-psychology", Slugify("What Is Psychology?"))
	assert.Equal(t, "week-2-biases", Slugify("  Week 2: Biases! "))
	assert.Equal(t, "", Slugify("???"))
}
