// Package catalog defines the closed value domains and numeric ranges
// consumed by the generators. The catalog is pure configuration data:
// it performs no drawing itself and holds no mutable state.
package catalog

import (
	"math/rand"

	"github.com/arkilian/clickforge/pkg/types"
)

// IntRange is a closed integer range [Min, Max].
type IntRange struct {
	Min, Max int
}

// Draw returns a uniform draw from the range, inclusive on both ends.
func (r IntRange) Draw(rnd *rand.Rand) int {
	return r.Min + rnd.Intn(r.Max-r.Min+1)
}

// FloatRange is a closed floating-point range [Min, Max].
type FloatRange struct {
	Min, Max float64
}

// Draw returns a uniform draw from the range.
func (r FloatRange) Draw(rnd *rand.Rand) float64 {
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

// Catalog enumerates the admissible values for every categorical field
// and the closed range for every numeric field used by generation.
type Catalog struct {
	// Country is fixed for the whole dataset.
	Country string

	EventNames        []string
	Genders           []string
	MaritalStatuses   []string
	Educations        []string
	EmploymentStates  []string
	LoginMethods      []string
	ProductCategories []string
	Devices           []string
	OSes              []string
	Browsers          []string
	Platforms         []string
	Resolutions       []string
	Languages         []string
	ConnectionTypes   []string
	InteractionTypes  []string
	CampaignTypes     []string
	Timezones         []string

	FirstNames    []string
	LastNames     []string
	StateCodes    []string
	Cities        []string
	Neighborhoods []string
	Brands        []string
	Words         []string
	EmailDomains  []string

	Age              IntRange
	Latitude         FloatRange
	Longitude        FloatRange
	Income           FloatRange
	Price            FloatRange
	Discount         FloatRange
	Stock            IntRange
	PageDepth        IntRange
	ScrollDepth      FloatRange
	AvgTimePerPage   FloatRange
	ClicksPerSession IntRange
	InteractionScore FloatRange
	CartItems        IntRange
	ProductsViewed   IntRange
	WishlistItems    IntRange

	// EventGapMinutes bounds the gap between consecutive events of a
	// session; strictly positive, so timestamps strictly increase.
	EventGapMinutes IntRange

	// SessionBackdateDays bounds how far in the past a session starts.
	SessionBackdateDays IntRange

	// EventsPerUser is the default events-per-user range; the run
	// configuration may override it.
	EventsPerUser IntRange

	// ReleaseDateBackdateDays bounds product release dates (roughly the
	// last decade).
	ReleaseDateBackdateDays IntRange
}

// Pick returns a uniform draw from a closed value set.
func Pick(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}

// Default returns the catalog used by the standard clickstream dataset.
func Default() *Catalog {
	return &Catalog{
		Country: "Brasil",

		EventNames:        types.EventNames,
		Genders:           []string{"male", "female", "non_binary"},
		MaritalStatuses:   []string{"single", "married", "divorced"},
		Educations:        []string{"high_school", "bachelor", "master", "phd"},
		EmploymentStates:  []string{"employed", "unemployed", "student", "retired"},
		LoginMethods:      []string{"email", "google", "facebook"},
		ProductCategories: []string{"eletrônicos", "livros", "moda", "casa", "esportes"},
		Devices:           []string{"mobile", "desktop", "tablet"},
		OSes:              []string{"iOS", "Android", "Windows", "MacOS", "Linux"},
		Browsers:          []string{"Chrome", "Firefox", "Safari", "Edge"},
		Platforms:         []string{"web", "app"},
		Resolutions:       []string{"1920x1080", "1366x768", "1440x900", "1280x720"},
		Languages:         []string{"pt-BR", "en-US", "es-ES"},
		ConnectionTypes:   []string{"wifi", "4g", "5g", "cable"},
		InteractionTypes:  []string{"view", "hover", "zoom", "compare"},
		CampaignTypes:     []string{"awareness", "conversion", "retargeting"},
		Timezones: []string{
			"America/Sao_Paulo", "America/Manaus", "America/Fortaleza",
			"America/Recife", "America/Cuiaba", "America/Rio_Branco",
		},

		FirstNames: []string{
			"Ana", "Beatriz", "Bruno", "Camila", "Carlos", "Daniel",
			"Eduarda", "Felipe", "Fernanda", "Gabriel", "Gustavo",
			"Helena", "Isabela", "João", "Juliana", "Larissa", "Lucas",
			"Mariana", "Mateus", "Paulo", "Rafael", "Sofia", "Thiago",
			"Vitória",
		},
		LastNames: []string{
			"Almeida", "Alves", "Barbosa", "Carvalho", "Costa",
			"Ferreira", "Gomes", "Lima", "Martins", "Nascimento",
			"Oliveira", "Pereira", "Ribeiro", "Rocha", "Rodrigues",
			"Santos", "Silva", "Souza",
		},
		StateCodes: []string{
			"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA",
			"MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI", "RJ", "RN",
			"RS", "RO", "RR", "SC", "SP", "SE", "TO",
		},
		Cities: []string{
			"São Paulo", "Rio de Janeiro", "Belo Horizonte", "Salvador",
			"Fortaleza", "Curitiba", "Manaus", "Recife", "Porto Alegre",
			"Goiânia", "Belém", "Campinas", "São Luís", "Natal",
		},
		Neighborhoods: []string{
			"Centro", "Jardim das Flores", "Vila Nova", "Boa Vista",
			"Santa Cruz", "São José", "Alto da Serra", "Parque Industrial",
			"Bela Vista", "Lagoa Seca",
		},
		Brands: []string{
			"Aurora", "Vetra", "Lumio", "Nexa", "Orvale", "Pilar",
			"Quanta", "Solara", "Tropical", "Veleiro",
		},
		Words: []string{
			"casa", "tempo", "vida", "mundo", "forma", "parte", "lugar",
			"grupo", "ponto", "campo", "valor", "jogo", "momento",
			"palavra", "estado", "noite", "ideia", "conta", "terra",
			"porta",
		},
		EmailDomains: []string{
			"gmail.com", "hotmail.com", "outlook.com", "yahoo.com.br",
			"uol.com.br", "bol.com.br",
		},

		Age:              IntRange{Min: 18, Max: 65},
		Latitude:         FloatRange{Min: -90, Max: 90},
		Longitude:        FloatRange{Min: -180, Max: 180},
		Income:           FloatRange{Min: 1500, Max: 15000},
		Price:            FloatRange{Min: 20, Max: 500},
		Discount:         FloatRange{Min: 0, Max: 0.5},
		Stock:            IntRange{Min: 0, Max: 1000},
		PageDepth:        IntRange{Min: 1, Max: 10},
		ScrollDepth:      FloatRange{Min: 10, Max: 100},
		AvgTimePerPage:   FloatRange{Min: 5, Max: 60},
		ClicksPerSession: IntRange{Min: 1, Max: 30},
		InteractionScore: FloatRange{Min: 0.1, Max: 1.0},
		CartItems:        IntRange{Min: 1, Max: 3},
		ProductsViewed:   IntRange{Min: 1, Max: 5},
		WishlistItems:    IntRange{Min: 0, Max: 2},

		EventGapMinutes:         IntRange{Min: 1, Max: 10},
		SessionBackdateDays:     IntRange{Min: 1, Max: 60},
		EventsPerUser:           IntRange{Min: 5, Max: 15},
		ReleaseDateBackdateDays: IntRange{Min: 0, Max: 3650},
	}
}
