package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
)

// stubListings is an in-memory ListingRepository for tests
type stubListings struct {
	items []entities.Listing
}

func (s *stubListings) All() []entities.Listing { return s.items }

func (s *stubListings) Replace(listings []entities.Listing) error {
	s.items = listings
	return nil
}

var (
	laserService = entities.Service{ID: "laser", Name: "Épilation Laser", Slug: "epilation-laser"}
	cryoService  = entities.Service{ID: "cryo", Name: "Cryolipolyse", Slug: "cryolipolyse-minceur"}

	lyonCity = entities.City{
		Name: "Lyon", Slug: "lyon", Zip: "69000", DepartmentCode: "69", Population: 522969,
	}
	chamberyCity = entities.City{
		Name: "Chambéry", Slug: "chambery", Zip: "73000", DepartmentCode: "73", Population: 60100,
	}
	villageCity = entities.City{
		Name: "Audenge", Slug: "audenge", Zip: "33980", DepartmentCode: "33", Population: 8500,
	}
)

func newTestEngine(listings ...entities.Listing) *ContentEngine {
	e := NewContentEngine(&stubListings{items: listings})
	e.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func TestGenerateContent_Deterministic(t *testing.T) {
	a := newTestEngine().GenerateContent(laserService, lyonCity)
	b := newTestEngine().GenerateContent(laserService, lyonCity)
	assert.Equal(t, a, b)

	// memoized path returns the same value too
	e := newTestEngine()
	assert.Equal(t, e.GenerateContent(laserService, lyonCity), e.GenerateContent(laserService, lyonCity))
}

func TestGenerateContent_FixedFormats(t *testing.T) {
	content := newTestEngine().GenerateContent(laserService, lyonCity)

	assert.Equal(t, "Top 10 Épilation Laser à Lyon (69000) - Avis & Prix 2026", content.H1)
	assert.Equal(t, "Épilation Laser Lyon : Meilleurs Centres & Prix 2026", content.MetaTitle)
	assert.Equal(t,
		"Comparez les meilleurs centres de épilation laser à Lyon (69). Avis clients, prix et disponibilités 2026.",
		content.MetaDescription)
}

func TestGenerateContent_TierSelectsTemplatePool(t *testing.T) {
	fill := func(pool []string, service entities.Service, city entities.City) []string {
		out := make([]string, len(pool))
		for i, tpl := range pool {
			out[i] = fillTemplate(tpl, service, city)
		}
		return out
	}

	metro := newTestEngine().GenerateContent(laserService, lyonCity)
	assert.Contains(t, fill(metropolisIntros, laserService, lyonCity), metro.Introduction)
	assert.Contains(t, fill(whyChooseMetropolis, laserService, lyonCity), metro.WhyChooseCity)

	urban := newTestEngine().GenerateContent(laserService, chamberyCity)
	assert.Contains(t, fill(urbanIntros, laserService, chamberyCity), urban.Introduction)

	rural := newTestEngine().GenerateContent(laserService, villageCity)
	assert.Contains(t, fill(ruralIntros, laserService, villageCity), rural.Introduction)
	// non-metropolis description has no qualifier
	assert.Contains(t, rural.MetaDescription, "Comparez les centres de")
}

func TestGenerateContent_SubstitutesPlaceholders(t *testing.T) {
	content := newTestEngine().GenerateContent(laserService, lyonCity)

	assert.NotContains(t, content.Introduction, "{city}")
	assert.NotContains(t, content.Introduction, "{service}")
	assert.Contains(t, content.Introduction, "Lyon")
	assert.Contains(t, content.Introduction, "épilation laser")
}

func TestGenerateFAQ_Deterministic(t *testing.T) {
	faq := newTestEngine().GenerateFAQ(cryoService, lyonCity)

	require.Len(t, faq, 2)
	assert.Equal(t, "Quel est le prix moyen pour Cryolipolyse à Lyon ?", faq[0].Question)
	assert.Contains(t, faq[0].Answer, "Lyon")
	assert.Contains(t, faq[1].Answer, "Lyon")
	assert.Equal(t, faq, newTestEngine().GenerateFAQ(cryoService, lyonCity))
}

func TestGenerateMockedCentres_SyntheticFallback(t *testing.T) {
	e := newTestEngine()

	centres := e.GenerateMockedCentres(laserService, lyonCity)

	require.GreaterOrEqual(t, len(centres), 3)
	require.LessOrEqual(t, len(centres), 5)
	for i, c := range centres {
		assert.False(t, c.IsReal)
		assert.True(t, strings.HasPrefix(c.ID, "mock-lyon-"), "id %q", c.ID)
		assert.GreaterOrEqual(t, c.Rating, 3.5)
		assert.LessOrEqual(t, c.Rating, 5.0)
		assert.GreaterOrEqual(t, c.ReviewCount, 20)
		assert.Less(t, c.ReviewCount, 220)
		assert.Contains(t, c.Address, "69000 Lyon")
		if i > 0 {
			assert.LessOrEqual(t, c.Rating, centres[i-1].Rating, "not sorted by rating")
		}
	}

	assert.Equal(t, centres, newTestEngine().GenerateMockedCentres(laserService, lyonCity))
}

func TestGenerateMockedCentres_RealListingsWin(t *testing.T) {
	real := entities.Listing{
		ID: "centre-laser-lyon-69001", Name: "Centre Laser Lyon", ServiceID: "laser",
		City: "Lyon", ZipCode: "69001", Rating: 4.7, ReviewCount: 321,
		ImageURL: "https://example.com/photo.jpg", Address: "12 rue de la République 69001 Lyon",
	}
	other := entities.Listing{
		ID: "institut-cryo-lyon-69002", Name: "Institut Cryo", ServiceID: "cryo",
		City: "Lyon", ZipCode: "69002", Rating: 4.2,
	}

	centres := newTestEngine(real, other).GenerateMockedCentres(laserService, lyonCity)

	require.Len(t, centres, 1, "only the matching service should be returned, never a mix")
	assert.True(t, centres[0].IsReal)
	assert.True(t, centres[0].Verified)
	assert.Equal(t, "centre-laser-lyon-69001", centres[0].ID)
	assert.Equal(t, 4.7, centres[0].Rating)
}

func TestGenerateMockedCentres_CityMatchByZip(t *testing.T) {
	listing := entities.Listing{
		ID: "centre-laser-69000", Name: "Centre Laser", ServiceID: "laser",
		City: "Lyon 3e Arrondissement", ZipCode: "69000", Rating: 4.0,
	}

	centres := newTestEngine(listing).GenerateMockedCentres(laserService, lyonCity)

	require.Len(t, centres, 1)
	assert.True(t, centres[0].IsReal)
}

func TestGenerateMockedCentres_DeduplicatesByID(t *testing.T) {
	dup := entities.Listing{
		ID: "centre-laser-69000", Name: "Centre Laser", ServiceID: "laser",
		City: "Lyon", ZipCode: "69000", Rating: 4.0,
	}

	centres := newTestEngine(dup, dup).GenerateMockedCentres(laserService, lyonCity)
	assert.Len(t, centres, 1)
}

func TestGenerateMockedCentres_MissingFieldsDegrade(t *testing.T) {
	listing := entities.Listing{
		ID: "spa-lyon-69000", Name: "Spa Lyon", ServiceID: "laser",
		City: "Lyon", ZipCode: "69000", Rating: 4.0,
		Address: "", ImageURL: "not-a-url",
	}

	centres := newTestEngine(listing).GenerateMockedCentres(laserService, lyonCity)

	require.Len(t, centres, 1)
	assert.Equal(t, "69000 Lyon", centres[0].Address)
	assert.Equal(t, placeholderListingImage, centres[0].ImageURL)
}

func TestGenerateMockedCentres_UnknownServiceSlugFallsBackToID(t *testing.T) {
	exotic := entities.Service{ID: "peeling", Name: "Peeling", Slug: "peeling-visage"}
	listing := entities.Listing{
		ID: "institut-peeling-69000", Name: "Institut Peeling", ServiceID: "peeling",
		City: "Lyon", ZipCode: "69000", Rating: 4.9,
	}

	centres := newTestEngine(listing).GenerateMockedCentres(exotic, lyonCity)

	require.Len(t, centres, 1)
	assert.True(t, centres[0].IsReal)
}

func TestGenerateMockedCentres_DistinctPairsDiffer(t *testing.T) {
	e := newTestEngine()

	lyon := e.GenerateMockedCentres(laserService, lyonCity)
	chambery := e.GenerateMockedCentres(laserService, chamberyCity)

	assert.NotEqual(t, fmt.Sprint(lyon), fmt.Sprint(chambery))
}
