package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
)

func TestRawCity_FieldVariants(t *testing.T) {
	c := rawCity{Name: "Lyon", Zip: "69000", Lat: 45.76, Lng: 4.84}.toCity()
	assert.Equal(t, "69000", c.Zip)
	assert.Equal(t, "lyon", c.Slug, "slug derives from the name when absent")
	assert.Equal(t, 45.76, c.Coordinates.Lat)

	c = rawCity{Name: "Nice", ZipCode: "06000"}.toCity()
	assert.Equal(t, "06000", c.Zip)

	c = rawCity{Name: "Pau", PostalCode: "64000"}.toCity()
	assert.Equal(t, "64000", c.Zip)

	nested := rawCity{Name: "Brest", Zip: "29200"}
	nested.Coordinates = &struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}{Lat: 48.39, Lng: -4.49}
	c = nested.toCity()
	assert.Equal(t, 48.39, c.Coordinates.Lat)
	assert.Equal(t, -4.49, c.Coordinates.Lng)
}

func TestRawCity_AccentedNameSlug(t *testing.T) {
	c := rawCity{Name: "Saint-Étienne", Zip: "42000"}.toCity()
	assert.Equal(t, "saint-etienne", c.Slug)
}

func TestNormalizeCities_SortDedupAndPatch(t *testing.T) {
	raw := []rawCity{
		{Name: "Audenge", Zip: "33980", Population: 8500},
		{Name: "Paris", Slug: "paris-1er-arrondissement", Zip: "75001", Population: 2100000},
		{Name: "paris", Zip: "75002", Population: 900}, // duplicate, loses to the populated record
		{Name: "Lyon", Zip: "69000", Population: 522969},
	}

	cities := normalizeCities(raw)

	require.Len(t, cities, 3)
	assert.Equal(t, "Paris", cities[0].Name)
	assert.Equal(t, "paris", cities[0].Slug, "flagship slug replaces the arrondissement slug")
	assert.Equal(t, "Lyon", cities[1].Name)
	assert.Equal(t, "lyon", cities[1].Slug)
	assert.Equal(t, "Audenge", cities[2].Name)
}

func TestPatchMajorCitySlugs_DoesNotMutateInput(t *testing.T) {
	in := []entities.City{{Name: "Paris", Slug: "paris-75", Zip: "75001"}}
	out := patchMajorCitySlugs(in)

	assert.Equal(t, "paris-75", in[0].Slug)
	assert.Equal(t, "paris", out[0].Slug)
}

func TestPatchMajorCitySlugs_OnlyFirstMatchPerMajor(t *testing.T) {
	in := []entities.City{
		{Name: "Lyon", Slug: "lyon-1er", Zip: "69001"},
		{Name: "Lyon", Slug: "lyon-2e", Zip: "69002"},
	}
	out := patchMajorCitySlugs(in)

	assert.Equal(t, "lyon", out[0].Slug)
	assert.Equal(t, "lyon-2e", out[1].Slug)
}

func testDataset() *CityDataset {
	return NewCityDataset([]entities.City{
		{Name: "Paris", Slug: "paris", Zip: "75000", DepartmentCode: "75", Region: "Île-de-France", Population: 2100000},
		{Name: "Lyon", Slug: "lyon", Zip: "69000", DepartmentCode: "69", Region: "Auvergne-Rhône-Alpes", Population: 522969},
		{Name: "Saint-Étienne", Slug: "saint-etienne", Zip: "42000", DepartmentCode: "42", Region: "Auvergne-Rhône-Alpes", Population: 171924},
		{Name: "Audenge", Slug: "audenge", Zip: "33980", DepartmentCode: "33", Region: "Nouvelle-Aquitaine", Population: 8500},
	})
}

func TestCityDataset_GetBySlug(t *testing.T) {
	d := testDataset()

	c, err := d.GetBySlug("lyon")
	require.NoError(t, err)
	assert.Equal(t, "Lyon", c.Name)

	_, err = d.GetBySlug("atlantis")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCityDataset_Top(t *testing.T) {
	d := testDataset()

	top := d.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Paris", top[0].Name)
	assert.Equal(t, "Lyon", top[1].Name)

	assert.Len(t, d.Top(100), 4, "limit clamps to the registry size")
	assert.Empty(t, d.Top(-1))
}

func TestCityDataset_SearchAccentInsensitive(t *testing.T) {
	d := testDataset()

	results := d.Search("etienne", 10)
	require.Len(t, results, 1)
	assert.Equal(t, "Saint-Étienne", results[0].Name)

	results = d.Search("Étienne", 10)
	require.Len(t, results, 1)

	results = d.Search("a", 2)
	assert.Len(t, results, 2, "limit caps the result set")

	assert.Empty(t, d.Search("zzz", 10))
}

func TestCityDataset_ByDepartmentAndRegion(t *testing.T) {
	d := testDataset()

	assert.Len(t, d.ByDepartment("42"), 1)
	assert.Empty(t, d.ByDepartment("99"))

	region := d.ByRegion("Auvergne-Rhône-Alpes")
	require.Len(t, region, 2)
	assert.Equal(t, "Lyon", region[0].Name)
}

func TestCityDataset_SlugsAndCount(t *testing.T) {
	d := testDataset()
	assert.Equal(t, []string{"paris", "lyon", "saint-etienne", "audenge"}, d.Slugs())
	assert.Equal(t, 4, d.Count())
	assert.Len(t, d.All(), 4)
}

func TestLoadCityDataset_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	payload := `[
		{"name":"Lyon","zip":"69000","population":522969,"lat":45.76,"lng":4.84},
		{"name":"Nice","zipCode":"06000","population":342669,"coordinates":{"lat":43.7,"lng":7.27}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	d, err := LoadCityDataset(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Count())

	nice, err := d.GetBySlug("nice")
	require.NoError(t, err)
	assert.Equal(t, "06000", nice.Zip)
	assert.Equal(t, 43.7, nice.Coordinates.Lat)
}

func TestLoadCityDataset_Errors(t *testing.T) {
	_, err := LoadCityDataset(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadCityDataset(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
