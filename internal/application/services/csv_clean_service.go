package services

import (
	"encoding/csv"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
)

// cleanedHeaders is the canonical 7-column shape the cleaner reduces
// arbitrary scraped rows to
var cleanedHeaders = []string{"gmaps_link", "name", "rating", "reviews", "address_1", "address_2", "image"}

const mapsPlaceMarker = "google.fr/maps/place"

// Cells starting with these are status text, institution names or
// navigation markers, never street addresses
var nonAddressPrefix = regexp.MustCompile(`(?i)^(http|Ouvert|Fermé|·|Centre|Clinique|Institut|Cabinet|Médecin|Spa|Club)`)

// Street patterns tuned for French addressing conventions. Narrowly fit
// to the metro areas present in the scrape, not a general address parser.
var streetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s*(rue|avenue|av\.|boulevard|bd\.|cours|cr\s|chemin|chem\.|place|pl\.|allée|all\.|quai|route|rte\.?|impasse|passage)`),
	regexp.MustCompile(`(?i)\b(rue|avenue|boulevard|cours|chemin|place|allée|quai|route)\s+\w+`),
	regexp.MustCompile(`(?i)\bBâtiment\b`),
	regexp.MustCompile(`(?i)\bEspace\b`),
	regexp.MustCompile(`(?i)\d{1,3}(,?\s*bis)?\s+(rue|av|bd|cr)`),
}

var (
	postalCodeRe = regexp.MustCompile(`\b\d{5}\b`)
	digitRe      = regexp.MustCompile(`\d`)
)

// nonAddressDomains appear in scraped cells that carry links or images,
// never postal addresses
var nonAddressDomains = []string{
	"gstatic.com",
	"googleusercontent",
	"google.com/maps",
	"doctolib.fr",
	"planity.com",
}

// CSVCleanSummary reports a cleaning run for operator review
type CSVCleanSummary struct {
	RowsRead    int
	RowsKept    int
	RowsDropped int
	WithAddress int
	WithImage   int
}

// CSVCleanService reduces raw scraped CSV dumps, whose column count and
// order vary row to row, to the canonical 7-column listing shape.
type CSVCleanService struct{}

// NewCSVCleanService creates a CSV cleaner
func NewCSVCleanService() *CSVCleanService {
	return &CSVCleanService{}
}

// CleanFile reads the raw CSV at inputPath and writes the canonical
// 7-column CSV (with header row) to outputPath. Rows that do not look
// like listings are dropped silently beyond a count.
func (s *CSVCleanService) CleanFile(inputPath, outputPath string) (*CSVCleanSummary, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, apperrors.NewInternalError("opening raw CSV", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewValidationError("parsing raw CSV", err)
	}

	summary := &CSVCleanSummary{RowsRead: len(rows)}

	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		out, ok := cleanRow(row)
		if !ok {
			summary.RowsDropped++
			continue
		}
		summary.RowsKept++
		if out[4] != "" {
			summary.WithAddress++
		}
		if out[6] != "" {
			summary.WithImage++
		}
		cleaned = append(cleaned, out)
	}

	if err := writeCleanedCSV(outputPath, cleaned); err != nil {
		return nil, err
	}

	log.Info().
		Int("rows_read", summary.RowsRead).
		Int("rows_kept", summary.RowsKept).
		Int("with_address", summary.WithAddress).
		Int("with_image", summary.WithImage).
		Str("output", outputPath).
		Msg("cleaned raw CSV")

	return summary, nil
}

// cleanRow reduces one raw row to the canonical column order, or reports
// that the row is not a listing at all
func cleanRow(row []string) ([]string, bool) {
	if len(row) == 0 || !strings.Contains(row[0], mapsPlaceMarker) {
		return nil, false
	}

	name := ""
	if len(row) > 1 {
		name = strings.TrimSpace(row[1])
	}
	if name == "" {
		return nil, false
	}

	rating, reviews := "", ""
	if len(row) > 2 {
		rating = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		reviews = strings.TrimSpace(row[3])
	}

	addr := extractAddress(row)
	image := extractImage(row)

	return []string{row[0], name, rating, reviews, addr.Line1, addr.Line2, image}, true
}

// addressExtraction is the pair of address lines recovered from a row
type addressExtraction struct {
	Line1 string
	Line2 string
}

// addressStrategies are tried in order; the first success wins
var addressStrategies = []func(row []string) (addressExtraction, bool){
	extractByStreetPattern,
	extractByLooseScan,
}

func extractAddress(row []string) addressExtraction {
	for _, strategy := range addressStrategies {
		if addr, ok := strategy(row); ok {
			return addr
		}
	}
	return addressExtraction{}
}

type addressCandidate struct {
	value  string
	hasZip bool
	index  int
}

// extractByStreetPattern scans columns 4 through 14 for cells matching
// the French street patterns. Candidates carrying a postal code rank
// first, then earlier columns win.
func extractByStreetPattern(row []string) (addressExtraction, bool) {
	var candidates []addressCandidate

	end := len(row)
	if end > 15 {
		end = 15
	}
	for i := 4; i < end; i++ {
		cell := strings.TrimSpace(row[i])
		if cell == "" || !isStreetAddress(cell) {
			continue
		}
		candidates = append(candidates, addressCandidate{
			value:  cell,
			hasZip: postalCodeRe.MatchString(cell),
			index:  i,
		})
	}

	if len(candidates) == 0 {
		return addressExtraction{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].hasZip != candidates[j].hasZip {
			return candidates[i].hasZip
		}
		return candidates[i].index < candidates[j].index
	})

	addr := addressExtraction{Line1: candidates[0].value}
	if len(candidates) > 1 {
		addr.Line2 = candidates[1].value
	}
	return addr, true
}

// extractByLooseScan is the fallback tier: columns 5 through 7, any
// short digit-bearing cell that is not a status or a CDN link
func extractByLooseScan(row []string) (addressExtraction, bool) {
	for i := 5; i <= 7 && i < len(row); i++ {
		cell := strings.TrimSpace(row[i])
		if cell == "" || cell == "·" || utf8.RuneCountInString(cell) <= 3 {
			continue
		}
		if strings.HasPrefix(cell, "http") ||
			strings.HasPrefix(cell, "Ouvert") ||
			strings.HasPrefix(cell, "Fermé") ||
			strings.HasPrefix(cell, "· ") ||
			strings.Contains(cell, "googleusercontent") ||
			strings.Contains(cell, "gstatic") {
			continue
		}
		if digitRe.MatchString(cell) && utf8.RuneCountInString(cell) < 100 {
			return addressExtraction{Line1: cell}, true
		}
	}
	return addressExtraction{}, false
}

// isStreetAddress reports whether a cell looks like a French street
// address
func isStreetAddress(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < 5 || n > 150 {
		return false
	}
	if nonAddressPrefix.MatchString(text) {
		return false
	}
	for _, domain := range nonAddressDomains {
		if strings.Contains(text, domain) {
			return false
		}
	}
	for _, p := range streetPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// extractImage scans every column for a place photo on a known image
// CDN, skipping generic default-avatar images
func extractImage(row []string) string {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if strings.Contains(cell, "googleusercontent.com") &&
			(strings.Contains(cell, "/p/AF") || strings.Contains(cell, "gpscss")) &&
			!strings.Contains(cell, "default_user") {
			return cell
		}
	}
	return ""
}

func writeCleanedCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError("creating cleaned CSV", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cleanedHeaders); err != nil {
		return apperrors.NewInternalError("writing cleaned CSV header", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return apperrors.NewInternalError("writing cleaned CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.NewInternalError("flushing cleaned CSV", err)
	}
	return nil
}
