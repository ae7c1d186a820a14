package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/repositories"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/slug"
)

// Population thresholds for the content tiers
const (
	metropolisPopulation = 100000
	urbanPopulation      = 10000
)

const placeholderListingImage = "/images/placeholder-listing.jpg"

// Intro template pools, one per population tier
var metropolisIntros = []string{
	"Découvrez les meilleurs centres de {service} à {city}. Notre sélection des professionnels les plus qualifiés de la métropole vous garantit des résultats exceptionnels.",
	"À {city}, profitez de l'expertise des plus grands spécialistes en {service}. Comparez les avis, Prix et disponibilités des instituts de référence.",
	"La métropole de {city} regroupe l'élite des praticiens en {service}. Trouvez le centre idéal parmi notre sélection rigoureuse de professionnels certifiés.",
}

var urbanIntros = []string{
	"Trouvez le meilleur centre de {service} à {city}. Notre guide compare les instituts de la ville pour vous aider à faire le bon choix.",
	"À {city}, de nombreux professionnels proposent des soins de {service} de qualité. Découvrez notre sélection des meilleurs centres de la ville.",
	"Besoin d'un spécialiste en {service} à {city} ? Consultez notre comparatif des centres les plus recommandés de votre ville.",
}

var ruralIntros = []string{
	"Trouvez un spécialiste en {service} proche de {city}. Même dans votre région, des professionnels qualifiés vous accueillent pour des soins de qualité.",
	"À {city} et ses environs, découvrez les praticiens en {service} qui se déplacent ou proposent leurs services à proximité.",
	"Pas besoin d'aller loin ! Des experts en {service} exercent près de {city}. Trouvez un professionnel proche de chez vous.",
}

var whyChooseMetropolis = []string{
	"En tant que grande métropole française, {city} dispose d'un large éventail de centres spécialisés en {service}. Les professionnels de la ville suivent régulièrement des formations aux techniques les plus récentes.",
	"Choisir {city} pour votre {service}, c'est accéder aux meilleurs praticiens de France. La concurrence entre les établissements garantit un niveau de service optimal.",
}

var whyChooseUrban = []string{
	"À {city}, vous trouverez plusieurs centres de {service} répondant à vos attentes. La ville offre un bon équilibre entre qualité de soins et accessibilité.",
	"{city} propose une offre variée en matière de {service}. Comparez les établissements et choisissez celui qui correspond le mieux à vos besoins.",
}

var whyChooseRural = []string{
	"Bien que {city} soit une commune de taille modeste, des praticiens qualifiés proposent des services de {service} dans les environs. La proximité n'exclut pas la qualité.",
	"Les habitants de {city} ont accès à des centres de {service} de qualité à distance raisonnable. Découvrez les options disponibles dans votre secteur.",
}

// serviceIDMap maps display service slugs to the serviceId vocabulary of
// the persisted listings, which is coarser than the display taxonomy
var serviceIDMap = map[string][]string{
	"epilation-laser":       {"laser"},
	"cryolipolyse-minceur":  {"cryo", "cryolipolyse"},
	"soin-hydrafacial":      {"hydra", "hydrafacial"},
	"injections-esthetique": {"injections", "botox"},
}

// Building blocks for synthetic centre names and addresses
var (
	mockPrefixes    = []string{"Institut", "Centre", "Clinique", "Espace", "Studio"}
	mockNames       = []string{"Beauté", "Esthétique", "Harmonie", "Élégance", "Prestige", "Sérénité", "Éclat"}
	mockStreetTypes = []string{"rue", "avenue", "boulevard"}
	mockStreetNames = []string{"de la République", "Victor Hugo", "Jean Jaurès"}
)

const mockImageURL = "https://images.unsplash.com/photo-1629198688000-71f23e745b6e?auto=format&fit=crop&w=800&q=80"

// ContentEngine produces stable SEO copy and listing sets for a
// (service, city) pair. Output is a pure function of the pair plus the
// fixed template tables and the loaded listings dataset, so results are
// memoized without risk of staleness within a process.
type ContentEngine struct {
	listings repositories.ListingRepository
	memo     *cache.Cache
	now      func() time.Time
}

// NewContentEngine creates a content engine over the given listings
func NewContentEngine(listings repositories.ListingRepository) *ContentEngine {
	return &ContentEngine{
		listings: listings,
		memo:     cache.New(cache.NoExpiration, cache.NoExpiration),
		now:      time.Now,
	}
}

// GenerateContent derives the SEO copy for a (service, city) pair.
// The intro and why-choose paragraphs are drawn from the tier's template
// pool with the seeded generator; headings and meta fields use fixed
// formats with no randomness.
func (e *ContentEngine) GenerateContent(service entities.Service, city entities.City) entities.GeneratedContent {
	key := "content:" + city.Slug + ":" + service.Slug
	if v, ok := e.memo.Get(key); ok {
		return v.(entities.GeneratedContent)
	}

	random := newSeededRand(city.Slug + "-" + service.Slug)

	isMetropolis := city.Population > metropolisPopulation
	isUrban := city.Population >= urbanPopulation

	var introTemplates, whyChooseTemplates []string
	switch {
	case isMetropolis:
		introTemplates = metropolisIntros
		whyChooseTemplates = whyChooseMetropolis
	case isUrban:
		introTemplates = urbanIntros
		whyChooseTemplates = whyChooseUrban
	default:
		introTemplates = ruralIntros
		whyChooseTemplates = whyChooseRural
	}

	intro := fillTemplate(pick(introTemplates, random), service, city)
	whyChoose := fillTemplate(pick(whyChooseTemplates, random), service, city)

	qualifier := ""
	if isMetropolis {
		qualifier = "meilleurs "
	}

	content := entities.GeneratedContent{
		H1:        fmt.Sprintf("Top 10 %s à %s (%s) - Avis & Prix 2026", service.Name, city.Name, city.Zip),
		MetaTitle: fmt.Sprintf("%s %s : Meilleurs Centres & Prix 2026", service.Name, city.Name),
		MetaDescription: fmt.Sprintf(
			"Comparez les %scentres de %s à %s (%s). Avis clients, prix et disponibilités %d.",
			qualifier, strings.ToLower(service.Name), city.Name, city.DepartmentCode, e.now().Year(),
		),
		Introduction:  intro,
		WhyChooseCity: whyChoose,
	}

	e.memo.Set(key, content, cache.NoExpiration)
	return content
}

// GenerateFAQ returns the question/answer pairs for a (service, city)
// pair. No seeded draws today, but the signature leaves room for them
// without breaking the determinism contract.
func (e *ContentEngine) GenerateFAQ(service entities.Service, city entities.City) []entities.FAQItem {
	return []entities.FAQItem{
		{
			Question: fmt.Sprintf("Quel est le prix moyen pour %s à %s ?", service.Name, city.Name),
			Answer:   fmt.Sprintf("Les tarifs à %s varient généralement selon la renommée du praticien et la complexité de l'intervention. Comptez en moyenne entre 50€ et 300€ par séance.", city.Name),
		},
		{
			Question: fmt.Sprintf("Comment choisir son praticien à %s ?", city.Name),
			Answer:   fmt.Sprintf("Vérifiez les avis certifiés, l'hygiène du cabinet et l'expérience du professionnel. BeautyBeauté vous aide à comparer les meilleurs centres de %s.", city.Name),
		},
	}
}

// GenerateMockedCentres returns the listing set for a (service, city)
// pair: real scraped listings when any match, otherwise a deterministic
// synthetic fallback. Real and synthetic results are never mixed.
func (e *ContentEngine) GenerateMockedCentres(service entities.Service, city entities.City) []entities.CentreResult {
	validServiceIDs := serviceIDMap[service.Slug]
	if validServiceIDs == nil {
		validServiceIDs = []string{service.ID}
	}

	if real := e.findRealCentres(city, validServiceIDs); len(real) > 0 {
		return real
	}

	return e.buildSyntheticCentres(service, city)
}

func (e *ContentEngine) findRealCentres(city entities.City, validServiceIDs []string) []entities.CentreResult {
	seen := make(map[string]struct{})
	var out []entities.CentreResult

	for _, l := range e.listings.All() {
		cityMatch := strings.EqualFold(l.City, city.Name) || l.ZipCode == city.Zip
		if !cityMatch || !containsString(validServiceIDs, l.ServiceID) {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}

		address := l.Address
		if address == "" {
			address = l.ZipCode + " " + l.City
		}
		imageURL := l.ImageURL
		if !strings.HasPrefix(imageURL, "http") {
			imageURL = placeholderListingImage
		}

		out = append(out, entities.CentreResult{
			ID:              l.ID,
			Name:            l.Name,
			Address:         address,
			Rating:          l.Rating,
			ReviewCount:     l.ReviewCount,
			Verified:        true,
			Phone:           l.Phone,
			ImageURL:        imageURL,
			Slug:            l.ID,
			IsReal:          true,
			ReviewsPerScore: l.ReviewsPerScore,
			ReviewsLink:     l.ReviewsLink,
			GmapsURL:        l.GmapsURL,
			Lat:             l.Lat,
			Lng:             l.Lng,
			Zip:             l.ZipCode,
		})
	}
	return out
}

// buildSyntheticCentres fabricates 3 to 5 plausible placeholder centres.
// The draw order feeding each field is part of the determinism contract.
func (e *ContentEngine) buildSyntheticCentres(service entities.Service, city entities.City) []entities.CentreResult {
	random := newSeededRand("centres-" + city.Slug + "-" + service.Slug)

	count := 3 + int(random.next()*3)
	if count > 5 {
		count = 5
	}

	centres := make([]entities.CentreResult, 0, count)
	for i := 0; i < count; i++ {
		prefix := pick(mockPrefixes, random)
		name := pick(mockNames, random)
		rating := math.Round((3.5+random.next()*1.5)*10) / 10
		fullName := fmt.Sprintf("%s %s %s", prefix, name, city.Name)

		streetNumber := int(random.next()*150) + 1
		streetType := pick(mockStreetTypes, random)
		streetName := pick(mockStreetNames, random)

		centres = append(centres, entities.CentreResult{
			ID:          fmt.Sprintf("mock-%s-%d", city.Slug, i),
			Name:        fullName,
			Address:     fmt.Sprintf("%d %s %s, %s %s", streetNumber, streetType, streetName, city.Zip, city.Name),
			Rating:      rating,
			ReviewCount: int(random.next()*200) + 20,
			Verified:    random.next() > 0.8,
			Phone:       "01 00 00 00 00",
			ImageURL:    mockImageURL,
			Slug:        slug.Make(fmt.Sprintf("%s-%s-%s", prefix, name, city.Name)),
			IsReal:      false,
		})
	}

	sort.SliceStable(centres, func(i, j int) bool {
		return centres[i].Rating > centres[j].Rating
	})
	return centres
}

func fillTemplate(tpl string, service entities.Service, city entities.City) string {
	out := strings.ReplaceAll(tpl, "{city}", city.Name)
	return strings.ReplaceAll(out, "{service}", strings.ToLower(service.Name))
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
