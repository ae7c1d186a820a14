package services

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"github.com/rs/zerolog/log"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/slug"
)

// sentinelCity marks listings whose city could not be resolved
const (
	sentinelCity = "Inconnu"
	sentinelZip  = "00000"
)

// scraperArtifactMarker shows up in rows the scraper emitted from
// navigation chrome rather than listings
const scraperArtifactMarker = "Jn12ke"

const maxIDSlugLen = 50

var (
	// leading status text ("Ouvert · Ferme à 19h") mistaken for an address line
	statusLineRe = regexp.MustCompile(`(?i)^(Ouvert|Fermé|·)`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
	// capitalized place name directly after a postal code, up to "France"
	cityAfterZipRe = regexp.MustCompile(`(?i)^([A-Za-zÀ-ÿ\-\s]+?)(?:\s+France|\s*$)`)
)

// zipPrefixCity is the postal-code-prefix fallback, covering the metro
// areas this dataset targets. Ported faithfully; do not extend without
// new fixtures.
var zipPrefixCity = map[string]string{
	"69": "Lyon",
	"75": "Paris",
	"33": "Bordeaux",
	"13": "Marseille",
	"31": "Toulouse",
	"06": "Nice",
	"44": "Nantes",
	"67": "Strasbourg",
	"34": "Montpellier",
	"59": "Lille",
	"42": "Saint-Étienne",
}

// cityPattern recognizes one known city in free text, by whole-word
// keywords, extra regexes for spelling variants, and zip-code shapes
type cityPattern struct {
	Name       string
	Keywords   []string
	Regexes    []*regexp.Regexp
	DefaultZip string
}

// cityPatterns order is the match priority: earlier entries win
var cityPatterns = []cityPattern{
	{Name: "Lyon", Keywords: []string{"lyon"}, Regexes: zipRegexes(`69\d{3}`), DefaultZip: "69000"},
	{Name: "Paris", Keywords: []string{"paris"}, Regexes: zipRegexes(`75\d{3}`), DefaultZip: "75000"},
	{Name: "Bordeaux", Keywords: []string{"bordeaux"}, Regexes: zipRegexes(`33\d{3}`), DefaultZip: "33000"},
	{Name: "Marseille", Keywords: []string{"marseille"}, Regexes: zipRegexes(`13\d{3}`), DefaultZip: "13000"},
	{Name: "Toulouse", Keywords: []string{"toulouse"}, Regexes: zipRegexes(`31\d{3}`), DefaultZip: "31000"},
	{Name: "Nice", Keywords: []string{"nice"}, Regexes: zipRegexes(`06\d{3}`), DefaultZip: "06000"},
	{Name: "Villeurbanne", Keywords: []string{"villeurbanne"}, Regexes: zipRegexes(`69100`), DefaultZip: "69100"},
	{Name: "Ecully", Keywords: []string{"ecully"}, Regexes: zipRegexes(`69130`), DefaultZip: "69130"},
	{Name: "Oullins", Keywords: []string{"oullins"}, Regexes: zipRegexes(`69600`), DefaultZip: "69600"},
	{Name: "Tassin", Keywords: []string{"tassin"}, Regexes: zipRegexes(`69160`), DefaultZip: "69160"},
	{Name: "Le Bouscat", Keywords: []string{"bouscat"}, Regexes: zipRegexes(`33110`), DefaultZip: "33110"},
	{Name: "Arcachon", Keywords: []string{"arcachon"}, Regexes: zipRegexes(`33120`), DefaultZip: "33120"},
	{Name: "Eysines", Keywords: []string{"eysines"}, Regexes: zipRegexes(`33320`), DefaultZip: "33320"},
	{Name: "Audenge", Keywords: []string{"audenge"}, Regexes: zipRegexes(`33980`), DefaultZip: "33980"},
	{Name: "Saint-Étienne", Regexes: append(zipRegexes(`42\d{3}`), regexp.MustCompile(`(?i)\bst[.\s-]?etienne\b`)), DefaultZip: "42000"},
	{Name: "La Teste-de-Buch", Regexes: append(zipRegexes(`33260`), regexp.MustCompile(`(?i)\bla\s*teste\b`)), DefaultZip: "33260"},
}

func zipRegexes(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// cityKeywordMatcher scans free text for all plain city keywords in one
// pass; matched words map back to their pattern's priority rank
var (
	cityKeywordMatcher ahocorasick.AhoCorasick
	cityKeywordRank    map[string]int
)

func init() {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
	})

	var keywords []string
	cityKeywordRank = make(map[string]int)
	for rank, cp := range cityPatterns {
		for _, kw := range cp.Keywords {
			keywords = append(keywords, kw)
			cityKeywordRank[kw] = rank
		}
	}
	cityKeywordMatcher = builder.Build(keywords)
}

// cityZip is a resolved city name and postal code pair
type cityZip struct {
	City string
	Zip  string
}

// CSVImportSummary reports one import run
type CSVImportSummary struct {
	RowsRead         int
	Imported         int
	Skipped          int
	CityDistribution map[string]int
}

// CSVImportService turns the cleaned 7-column CSV into listings
type CSVImportService struct {
	placeholderImage string
	defaultServiceID string
}

// NewCSVImportService creates a CSV importer
func NewCSVImportService(placeholderImage, defaultServiceID string) *CSVImportService {
	return &CSVImportService{
		placeholderImage: placeholderImage,
		defaultServiceID: defaultServiceID,
	}
}

// ImportFile parses the cleaned CSV at path into listings. Rows are
// consumed by column name, not position. Unresolvable fields degrade
// (sentinel city, zero rating) rather than reject the row.
func (s *CSVImportService) ImportFile(path string) ([]entities.Listing, *CSVImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("opening cleaned CSV", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperrors.NewValidationError("parsing cleaned CSV", err)
	}
	if len(rows) == 0 {
		return nil, nil, apperrors.NewValidationError("cleaned CSV has no header row", nil)
	}

	header := rows[0]
	records := rows[1:]

	summary := &CSVImportSummary{
		RowsRead:         len(records),
		CityDistribution: make(map[string]int),
	}

	listings := make([]entities.Listing, 0, len(records))
	seenIDs := make(map[string]struct{}, len(records))

	for _, row := range records {
		rec := rowToMap(header, row)
		listing, ok := s.parseRow(rec)
		if !ok {
			summary.Skipped++
			continue
		}

		// resolve id collisions within the run with a numeric suffix
		uniqueID := listing.ID
		for counter := 1; ; counter++ {
			if _, taken := seenIDs[uniqueID]; !taken {
				break
			}
			uniqueID = fmt.Sprintf("%s-%d", listing.ID, counter)
		}
		listing.ID = uniqueID
		seenIDs[uniqueID] = struct{}{}

		listings = append(listings, listing)
		summary.Imported++
		summary.CityDistribution[listing.City]++
	}

	if unknown := summary.CityDistribution[sentinelCity]; unknown > 0 {
		log.Warn().
			Int("count", unknown).
			Msg("listings with unresolved city, consider re-cleaning the CSV")
	}

	return listings, summary, nil
}

func rowToMap(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(row) {
			rec[col] = row[i]
		}
	}
	return rec
}

func (s *CSVImportService) parseRow(rec map[string]string) (entities.Listing, bool) {
	name := strings.TrimSpace(rec["name"])
	if name == "" || strings.EqualFold(name, "name") || strings.Contains(name, scraperArtifactMarker) {
		return entities.Listing{}, false
	}

	address1 := strings.TrimSpace(firstNonEmpty(rec["address_1"], rec["W4Efsd 5"]))
	address2 := strings.TrimSpace(firstNonEmpty(rec["address_2"], rec["W4Efsd 6"]))
	if statusLineRe.MatchString(address2) {
		address2 = ""
	}
	fullAddress := collapseSpaces(address1 + " " + address2)

	resolved := resolveCityZip(fullAddress, name)

	rating := parseRating(rec["rating"])
	reviewCount := parseReviewCount(rec["reviews"])

	imageURL := strings.TrimSpace(rec["image"])
	if imageURL == "" || strings.Contains(imageURL, "streetviewpixels") || !strings.HasPrefix(imageURL, "http") {
		imageURL = s.placeholderImage
	}

	return entities.Listing{
		ID:          slug.MakeMax(name, maxIDSlugLen) + "-" + resolved.Zip,
		Name:        name,
		ServiceID:   s.defaultServiceID,
		Address:     fullAddress,
		City:        resolved.City,
		ZipCode:     resolved.Zip,
		Rating:      rating,
		ReviewCount: reviewCount,
		ImageURL:    imageURL,
		GmapsURL:    strings.TrimSpace(rec["gmaps_link"]),
	}, true
}

// parseRating accepts a comma decimal separator and keeps one decimal
func parseRating(raw string) float64 {
	cleaned := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	r, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return math.Round(r*10) / 10
}

// parseReviewCount strips everything but digits, handling the
// thousands-separator spaces of "1 234"
func parseReviewCount(raw string) int {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// cityZipStrategies are the resolution tiers, tried in order; the first
// success wins, and the sentinel pair is the final fallback
var cityZipStrategies = []func(fullAddress, name string) (cityZip, bool){
	resolveFromAddressZip,
	func(_, name string) (cityZip, bool) { return resolveFromKnownCities(name) },
	func(fullAddress, _ string) (cityZip, bool) { return resolveFromKnownCities(fullAddress) },
}

func resolveCityZip(fullAddress, name string) cityZip {
	for _, strategy := range cityZipStrategies {
		if cz, ok := strategy(fullAddress, name); ok {
			return cz
		}
	}
	return cityZip{City: sentinelCity, Zip: sentinelZip}
}

// resolveFromAddressZip finds a 5-digit postal code in the address and
// reads the place name right after it; failing that, it falls back to
// the postal-code-prefix table
func resolveFromAddressZip(fullAddress, _ string) (cityZip, bool) {
	zip := postalCodeRe.FindString(fullAddress)
	if zip == "" {
		return cityZip{}, false
	}

	afterZip := strings.TrimSpace(fullAddress[strings.Index(fullAddress, zip)+len(zip):])
	if m := cityAfterZipRe.FindStringSubmatch(afterZip); m != nil {
		if city := strings.TrimSpace(m[1]); len(city) > 1 {
			return cityZip{City: titleCaseCityName(city), Zip: zip}, true
		}
	}

	if city, ok := zipPrefixCity[zip[:2]]; ok {
		return cityZip{City: city, Zip: zip}, true
	}
	return cityZip{}, false
}

// resolveFromKnownCities matches the known city keywords and zip shapes
// against free text; the earliest cityPatterns entry that matches wins
func resolveFromKnownCities(text string) (cityZip, bool) {
	if text == "" {
		return cityZip{}, false
	}
	normalized := strings.ToLower(text)

	best := len(cityPatterns)
	for _, match := range cityKeywordMatcher.FindAll(normalized) {
		word := normalized[match.Start():match.End()]
		if rank, ok := cityKeywordRank[word]; ok && rank < best {
			best = rank
		}
	}
	for rank, cp := range cityPatterns {
		if rank >= best {
			break
		}
		for _, re := range cp.Regexes {
			if re.MatchString(normalized) {
				best = rank
				break
			}
		}
	}
	if best == len(cityPatterns) {
		return cityZip{}, false
	}

	matched := cityPatterns[best]
	zip := matched.DefaultZip
	if found := postalCodeRe.FindString(text); found != "" {
		zip = found
	}
	return cityZip{City: matched.Name, Zip: zip}, true
}

// titleCaseCityName rejoins hyphen/space separated words with hyphens,
// title-casing each word
func titleCaseCityName(city string) string {
	words := strings.FieldsFunc(city, func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, "-")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
