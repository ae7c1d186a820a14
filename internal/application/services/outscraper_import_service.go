package services

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/repositories"
	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/slug"
)

// Business statuses that exclude a record from import. Only these two
// values are recognized; other closure vocabulary imports as active.
const (
	statusClosedPermanently = "CLOSED_PERMANENTLY"
	statusClosedTemporarily = "CLOSED_TEMPORARILY"
)

// OutscraperRecord is one flat business record from an Outscraper export
type OutscraperRecord struct {
	Query                  string          `json:"query"`
	Name                   string          `json:"name"`
	City                   string          `json:"city"`
	PostalCode             flexString      `json:"postal_code"`
	Street                 string          `json:"street"`
	Address                string          `json:"address"`
	Latitude               flexFloat       `json:"latitude"`
	Longitude              flexFloat       `json:"longitude"`
	Phone                  string          `json:"phone"`
	Website                string          `json:"website"`
	Rating                 flexFloat       `json:"rating"`
	Reviews                flexFloat       `json:"reviews"`
	ReviewsPerScore        map[string]int  `json:"reviews_per_score"`
	ReviewsLink            string          `json:"reviews_link"`
	Photo                  string          `json:"photo"`
	LocationLink           string          `json:"location_link"`
	Verified               bool            `json:"verified"`
	BusinessStatus         string          `json:"business_status"`
	WorkingHours           json.RawMessage `json:"working_hours"`
	BookingAppointmentLink string          `json:"booking_appointment_link"`
}

// flexString tolerates numeric postal codes in the export
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat tolerates quoted numbers and nulls in the export
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(parsed)
	return nil
}

// serviceKeyword pairs a query keyword with the serviceId it indicates
type serviceKeyword struct {
	Keyword   string
	ServiceID string
	Priority  int
}

// serviceKeywords groups are checked in priority order: hair-removal
// terms beat cryolipolysis terms beat hydrafacial terms beat injection
// terms when a query mentions several
var serviceKeywords = []serviceKeyword{
	{Keyword: "épilation", ServiceID: "laser", Priority: 0},
	{Keyword: "epilation", ServiceID: "laser", Priority: 0},
	{Keyword: "laser", ServiceID: "laser", Priority: 0},
	{Keyword: "cryolipolyse", ServiceID: "cryo", Priority: 1},
	{Keyword: "cryo", ServiceID: "cryo", Priority: 1},
	{Keyword: "hydrafacial", ServiceID: "hydra", Priority: 2},
	{Keyword: "hydra", ServiceID: "hydra", Priority: 2},
	{Keyword: "injection", ServiceID: "injections", Priority: 3},
	{Keyword: "botox", ServiceID: "injections", Priority: 3},
	{Keyword: "esthétique", ServiceID: "injections", Priority: 3},
	{Keyword: "medecine", ServiceID: "injections", Priority: 3},
}

// substring semantics, so "cryolipolyse" also hits via "cryo"
var (
	serviceKeywordMatcher ahocorasick.AhoCorasick
	serviceKeywordByIndex []serviceKeyword
)

func init() {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
	})
	patterns := make([]string, len(serviceKeywords))
	for i, sk := range serviceKeywords {
		patterns[i] = sk.Keyword
	}
	serviceKeywordByIndex = serviceKeywords
	serviceKeywordMatcher = builder.Build(patterns)
}

// detectServiceID infers a serviceId from the free-text query field
func detectServiceID(query, fallback string) string {
	q := strings.ToLower(query)

	best := -1
	for _, match := range serviceKeywordMatcher.FindAll(q) {
		idx := match.Pattern()
		if best == -1 || serviceKeywordByIndex[idx].Priority < serviceKeywordByIndex[best].Priority {
			best = idx
		}
	}
	if best >= 0 {
		return serviceKeywordByIndex[best].ServiceID
	}
	return fallback
}

// OutscraperImportSummary is the operator-facing report of one run
type OutscraperImportSummary struct {
	RunID       uuid.UUID
	RecordsRead int
	Added       int
	Skipped     int
	Duplicates  int
	Total       int
	ByService   map[string]int
	ByCity      map[string]int
}

// OutscraperImportService merges Outscraper exports into the persisted
// listings collection without introducing duplicates
type OutscraperImportService struct {
	repo             repositories.ListingRepository
	placeholderImage string
	defaultServiceID string
}

// NewOutscraperImportService creates an Outscraper importer over the
// given listing repository
func NewOutscraperImportService(repo repositories.ListingRepository, placeholderImage, defaultServiceID string) *OutscraperImportService {
	return &OutscraperImportService{
		repo:             repo,
		placeholderImage: placeholderImage,
		defaultServiceID: defaultServiceID,
	}
}

// ImportFile ingests an Outscraper export (.json array or .xlsx sheet).
// forceServiceID, when non-empty, overrides keyword detection. Existing
// listings are never mutated; surviving new records are appended, the
// merged collection re-sorted by rating and persisted as a whole.
func (s *OutscraperImportService) ImportFile(path, forceServiceID string) (*OutscraperImportSummary, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	existing := s.repo.All()
	existingIDs := make(map[string]struct{}, len(existing))
	existingURLs := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		existingIDs[l.ID] = struct{}{}
		if l.GmapsURL != "" {
			existingURLs[l.GmapsURL] = struct{}{}
		}
	}

	summary := &OutscraperImportSummary{
		RunID:       uuid.New(),
		RecordsRead: len(records),
		ByService:   make(map[string]int),
		ByCity:      make(map[string]int),
	}

	var newListings []entities.Listing
	for _, record := range records {
		if record.Name == "" {
			summary.Skipped++
			continue
		}
		if record.BusinessStatus == statusClosedPermanently || record.BusinessStatus == statusClosedTemporarily {
			summary.Skipped++
			continue
		}

		listing := s.transformRecord(record, forceServiceID)

		if _, dup := existingIDs[listing.ID]; dup {
			summary.Duplicates++
			continue
		}
		if listing.GmapsURL != "" {
			if _, dup := existingURLs[listing.GmapsURL]; dup {
				summary.Duplicates++
				continue
			}
		}

		newListings = append(newListings, listing)
		existingIDs[listing.ID] = struct{}{}
		if listing.GmapsURL != "" {
			existingURLs[listing.GmapsURL] = struct{}{}
		}
		summary.Added++
	}

	merged := make([]entities.Listing, 0, len(existing)+len(newListings))
	merged = append(merged, existing...)
	merged = append(merged, newListings...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Rating > merged[j].Rating
	})

	if err := s.repo.Replace(merged); err != nil {
		return nil, err
	}
	summary.Total = len(merged)

	for _, l := range merged {
		summary.ByService[l.ServiceID]++
		summary.ByCity[l.City]++
	}

	log.Info().
		Str("run_id", summary.RunID.String()).
		Int("records", summary.RecordsRead).
		Int("added", summary.Added).
		Int("skipped", summary.Skipped).
		Int("duplicates", summary.Duplicates).
		Int("total", summary.Total).
		Msg("outscraper import finished")

	return summary, nil
}

// transformRecord maps one export record into the listing schema
func (s *OutscraperImportService) transformRecord(record OutscraperRecord, forceServiceID string) entities.Listing {
	serviceID := forceServiceID
	if serviceID == "" {
		serviceID = detectServiceID(record.Query, s.defaultServiceID)
	}

	zipCode := padZip(string(record.PostalCode))

	address := record.Street
	if address == "" {
		address = record.Address
	}

	imageURL := record.Photo
	if !strings.HasPrefix(imageURL, "http") {
		imageURL = s.placeholderImage
	}

	bookingURL := record.BookingAppointmentLink
	if bookingURL == "" {
		bookingURL = record.Website
	}

	return entities.Listing{
		ID:              slug.Make(record.Name + "-" + zipCode),
		Name:            record.Name,
		ServiceID:       serviceID,
		Address:         address,
		City:            record.City,
		ZipCode:         zipCode,
		Lat:             float64(record.Latitude),
		Lng:             float64(record.Longitude),
		Phone:           record.Phone,
		Website:         record.Website,
		Rating:          float64(record.Rating),
		ReviewCount:     int(math.Floor(float64(record.Reviews))),
		ReviewsPerScore: record.ReviewsPerScore,
		ReviewsLink:     record.ReviewsLink,
		ImageURL:        imageURL,
		GmapsURL:        record.LocationLink,
		Verified:        record.Verified,
		WorkingHours:    record.WorkingHours,
		BookingURL:      bookingURL,
	}
}

// padZip left-pads a postal code with zeros to 5 digits
func padZip(zip string) string {
	for len(zip) < 5 {
		zip = "0" + zip
	}
	return zip
}

func readRecords(path string) ([]OutscraperRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXRecords(path)
	}
	return readJSONRecords(path)
}

func readJSONRecords(path string) ([]OutscraperRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewInternalError("reading export file", err)
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, apperrors.NewValidationError("parsing export JSON", err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, apperrors.NewValidationError("export JSON root is not an array", nil)
	}

	var records []OutscraperRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewValidationError("decoding export records", err)
	}
	return records, nil
}

// readXLSXRecords converts the first sheet of an XLSX export into
// records, keyed by the header row, feeding the same transform path as
// the JSON format
func readXLSXRecords(path string) ([]OutscraperRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewValidationError("opening export workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("export workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewValidationError("reading export sheet", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("export sheet has no header row", nil)
	}

	header := rows[0]
	records := make([]OutscraperRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, recordFromFields(rowToMap(header, row)))
	}
	return records, nil
}

// recordFromFields builds a record from string cells
func recordFromFields(rec map[string]string) OutscraperRecord {
	out := OutscraperRecord{
		Query:                  rec["query"],
		Name:                   rec["name"],
		City:                   rec["city"],
		PostalCode:             flexString(rec["postal_code"]),
		Street:                 rec["street"],
		Address:                rec["address"],
		Latitude:               flexFloat(parseFloatCell(rec["latitude"])),
		Longitude:              flexFloat(parseFloatCell(rec["longitude"])),
		Phone:                  rec["phone"],
		Website:                rec["website"],
		Rating:                 flexFloat(parseFloatCell(rec["rating"])),
		Reviews:                flexFloat(parseFloatCell(rec["reviews"])),
		ReviewsLink:            rec["reviews_link"],
		Photo:                  rec["photo"],
		LocationLink:           rec["location_link"],
		Verified:               parseBoolCell(rec["verified"]),
		BusinessStatus:         rec["business_status"],
		BookingAppointmentLink: rec["booking_appointment_link"],
	}
	if raw := strings.TrimSpace(rec["reviews_per_score"]); raw != "" {
		var scores map[string]int
		if err := json.Unmarshal([]byte(raw), &scores); err == nil {
			out.ReviewsPerScore = scores
		}
	}
	if raw := strings.TrimSpace(rec["working_hours"]); raw != "" && json.Valid([]byte(raw)) {
		out.WorkingHours = json.RawMessage(raw)
	}
	return out
}

func parseFloatCell(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBoolCell(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(raw)))
	return err == nil && v
}
