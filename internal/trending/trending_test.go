package trending

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevelopers(t *testing.T) {
	assert.Len(t, Developers, 8)
	seen := map[string]bool{}
	for _, d := range Developers {
		assert.NotEmpty(t, d.Login)
		assert.NotEmpty(t, d.Category, d.Login)
		assert.False(t, seen[d.Login], "duplicate %s", d.Login)
		seen[d.Login] = true
	}
	assert.Len(t, SampleSearches, 8)
}
