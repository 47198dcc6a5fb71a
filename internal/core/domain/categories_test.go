package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArticleCategories(t *testing.T) {
	categories := DefaultArticleCategories()
	require.NotEmpty(t, categories)

	assert.Equal(t, []string{"Article 5"}, categories.Labels("principles"))
	assert.Contains(t, categories.Labels("rights"), "Article 17")
	assert.Nil(t, categories.Labels("astrology"))
}

func TestDefaultArticleCategories_CopiesAreIndependent(t *testing.T) {
	first := DefaultArticleCategories()
	first["principles"][0] = "mutated"
	first["rights"] = nil

	second := DefaultArticleCategories()
	assert.Equal(t, []string{"Article 5"}, second.Labels("principles"))
	assert.NotEmpty(t, second.Labels("rights"))
}

func TestArticleCategories_Names_Sorted(t *testing.T) {
	names := DefaultArticleCategories().Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestArticleCategories_Labels_ReturnsCopy(t *testing.T) {
	categories := DefaultArticleCategories()
	labels := categories.Labels("breaches")
	require.NotEmpty(t, labels)

	labels[0] = "mutated"
	assert.Equal(t, "Article 33", categories.Labels("breaches")[0])
}
