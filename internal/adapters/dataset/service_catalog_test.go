package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
)

func TestServiceCatalog_GetBySlug(t *testing.T) {
	c := NewServiceCatalog()

	s, err := c.GetBySlug("cryolipolyse-minceur")
	require.NoError(t, err)
	assert.Equal(t, "cryo", s.ID)
	assert.Equal(t, "Cryolipolyse", s.Name)

	_, err = c.GetBySlug("soin-inexistant")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestServiceCatalog_All(t *testing.T) {
	all := NewServiceCatalog().All()
	require.Len(t, all, 4)

	ids := make(map[string]struct{}, len(all))
	for _, s := range all {
		ids[s.ID] = struct{}{}
		assert.NotEmpty(t, s.Slug)
		assert.NotEmpty(t, s.Description)
		assert.NotEmpty(t, s.HeroImage)
	}
	assert.Len(t, ids, 4, "service ids are unique")
}

func TestServiceCatalog_Slugs(t *testing.T) {
	assert.Equal(t,
		[]string{"epilation-laser", "cryolipolyse-minceur", "soin-hydrafacial", "injections-esthetique"},
		NewServiceCatalog().Slugs())
}
