package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
)

func rawRow(cells ...string) []string { return cells }

func TestCleanRow_StreetPatternBeatsStatusText(t *testing.T) {
	row := rawRow(
		"https://www.google.fr/maps/place/Centre+Laser",
		"Centre Laser Lyon",
		"4,8",
		"(321)",
		"",
		"",
		"12 rue de la République 69001 Lyon",
		"Ouvert · Ferme à 19h",
	)

	out, ok := cleanRow(row)
	require.True(t, ok)
	assert.Equal(t, "Centre Laser Lyon", out[1])
	assert.Equal(t, "4,8", out[2])
	assert.Equal(t, "(321)", out[3])
	assert.Equal(t, "12 rue de la République 69001 Lyon", out[4])
	assert.Empty(t, out[5], "status text must never become an address line")
}

func TestCleanRow_TwoAddressLinesZipFirst(t *testing.T) {
	row := rawRow(
		"https://www.google.fr/maps/place/Institut",
		"Institut Beauté",
		"4,5",
		"(87)",
		"",
		"Bâtiment A",
		"3 avenue Victor Hugo 33000 Bordeaux",
	)

	out, ok := cleanRow(row)
	require.True(t, ok)
	assert.Equal(t, "3 avenue Victor Hugo 33000 Bordeaux", out[4], "cell with postal code ranks first")
	assert.Equal(t, "Bâtiment A", out[5])
}

func TestCleanRow_LooseScanFallback(t *testing.T) {
	row := rawRow(
		"https://www.google.fr/maps/place/Spa",
		"Spa Détente",
		"4,2",
		"(12)",
		"",
		"lieu-dit 4 Chênes", // no street keyword, digit-bearing
	)

	out, ok := cleanRow(row)
	require.True(t, ok)
	assert.Equal(t, "lieu-dit 4 Chênes", out[4])
}

func TestCleanRow_DropsNonListingRows(t *testing.T) {
	_, ok := cleanRow(rawRow("https://www.google.fr/search?q=laser", "Résultats"))
	assert.False(t, ok, "rows without a maps place link are not listings")

	_, ok = cleanRow(rawRow("https://www.google.fr/maps/place/X", "   "))
	assert.False(t, ok, "rows without a name are dropped")

	_, ok = cleanRow(nil)
	assert.False(t, ok)
}

func TestCleanRow_ExtractsPlacePhoto(t *testing.T) {
	photo := "https://lh5.googleusercontent.com/p/AF1QipABC=w80-h106-k-no"
	row := rawRow(
		"https://www.google.fr/maps/place/Clinique",
		"Clinique Esthétique",
		"4,9",
		"(41)",
		"",
		"8 cours Pasteur 33000 Bordeaux",
		photo,
		"https://lh3.googleusercontent.com/a/default_user=s64",
	)

	out, ok := cleanRow(row)
	require.True(t, ok)
	assert.Equal(t, photo, out[6])
}

func TestIsStreetAddress_RejectsKnownNonAddresses(t *testing.T) {
	assert.False(t, isStreetAddress("Ouvert · Ferme à 19h"))
	assert.False(t, isStreetAddress("Centre Laser Lyon"))
	assert.False(t, isStreetAddress("https://doctolib.fr/centre"))
	assert.False(t, isStreetAddress("1 ru"))
	assert.True(t, isStreetAddress("12 rue de la République 69001 Lyon"))
	assert.True(t, isStreetAddress("boulevard Haussmann 75008"))
}

func TestCleanFile_WritesCanonicalCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.csv")
	out := filepath.Join(dir, "cleaned.csv")

	raw := [][]string{
		{"https://www.google.fr/maps/place/Centre+Laser", "Centre Laser Lyon", "4,8", "(321)", "", "", "12 rue de la République 69001 Lyon", "Ouvert · Ferme à 19h"},
		{"https://www.google.fr/search?q=laser", "not a listing"},
		{"https://www.google.fr/maps/place/Institut", "Institut Beauté", "4,5", "(87)"},
	}
	writeCSVFixture(t, in, raw)

	summary, err := NewCSVCleanService().CleanFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.RowsRead)
	assert.Equal(t, 2, summary.RowsKept)
	assert.Equal(t, 1, summary.RowsDropped)
	assert.Equal(t, 1, summary.WithAddress)
	assert.Equal(t, 0, summary.WithImage)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, cleanedHeaders, rows[0])
	assert.Equal(t, "Centre Laser Lyon", rows[1][1])
	assert.Equal(t, "Institut Beauté", rows[2][1])
	assert.Empty(t, rows[2][4])
}

func TestCleanFile_MissingInputIsInternalError(t *testing.T) {
	_, err := NewCSVCleanService().CleanFile(filepath.Join(t.TempDir(), "nope.csv"), filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func writeCSVFixture(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
}
