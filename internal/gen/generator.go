// Package gen produces the synthetic clickstream records. All randomness
// flows through one explicit *rand.Rand used in document order (one user
// fully generated, including its events, before the next), so a fixed
// seed and reference time reproduce the dataset exactly.
package gen

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arkilian/clickforge/internal/catalog"
	"github.com/arkilian/clickforge/pkg/types"
)

const day = 24 * time.Hour

// Generator synthesizes users, products, and session event records from
// a field domain catalog and a seeded random source.
type Generator struct {
	cat *catalog.Catalog
	rnd *rand.Rand
	now time.Time
}

// New creates a generator. now is the reference time for backdated
// fields (birth dates, session starts, release dates); callers pass a
// fixed value to make runs reproducible.
func New(cat *catalog.Catalog, rnd *rand.Rand, now time.Time) *Generator {
	return &Generator{cat: cat, rnd: rnd, now: now}
}

// ID returns a random 128-bit identifier drawn from the generator's
// seeded source, so identifiers stay deterministic under a fixed seed.
func (g *Generator) ID() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rnd)).String()
}

// User generates one synthetic user profile for the given identity.
func (g *Generator) User(id string) types.User {
	// Draw the target age first, then backdate the birth date by
	// age*365 + [0,365) days so floor(days/365) lands exactly on it.
	age := g.cat.Age.Draw(g.rnd)
	birthDate := g.now.Add(-time.Duration(age*365+g.rnd.Intn(365)) * day)

	first := catalog.Pick(g.rnd, g.cat.FirstNames)
	last := catalog.Pick(g.rnd, g.cat.LastNames)

	return types.User{
		UserID:           id,
		Name:             first + " " + last,
		Email:            strings.ToLower(first) + "." + strings.ToLower(last) + "@" + catalog.Pick(g.rnd, g.cat.EmailDomains),
		Phone:            g.phone(),
		BirthDate:        birthDate,
		Age:              AgeAt(g.now, birthDate),
		Gender:           catalog.Pick(g.rnd, g.cat.Genders),
		MaritalStatus:    catalog.Pick(g.rnd, g.cat.MaritalStatuses),
		Education:        catalog.Pick(g.rnd, g.cat.Educations),
		EmploymentStatus: catalog.Pick(g.rnd, g.cat.EmploymentStates),
		Income:           Round2(g.cat.Income.Draw(g.rnd)),
		Country:          g.cat.Country,
		State:            catalog.Pick(g.rnd, g.cat.StateCodes),
		City:             catalog.Pick(g.rnd, g.cat.Cities),
		Neighborhood:     catalog.Pick(g.rnd, g.cat.Neighborhoods),
		Zipcode:          g.zipcode(),
		Latitude:         g.cat.Latitude.Draw(g.rnd),
		Longitude:        g.cat.Longitude.Draw(g.rnd),
		Timezone:         catalog.Pick(g.rnd, g.cat.Timezones),
		IsLoggedIn:       false,
		HasNewsletter:    g.rnd.Intn(2) == 0,
		LoginMethod:      catalog.Pick(g.rnd, g.cat.LoginMethods),
		HasPaymentMethod: g.rnd.Intn(2) == 0,
		FidelityProgram:  g.rnd.Intn(2) == 0,
	}
}

// Product synthesizes one product. A fresh product is drawn per event.
func (g *Generator) Product() types.Product {
	price := Round2(g.cat.Price.Draw(g.rnd))
	discount := Round2(g.cat.Discount.Draw(g.rnd))

	return types.Product{
		ProductID:          g.ID(),
		ProductName:        capitalize(catalog.Pick(g.rnd, g.cat.Words)),
		ProductCategory:    catalog.Pick(g.rnd, g.cat.ProductCategories),
		ProductSubcategory: catalog.Pick(g.rnd, g.cat.Words),
		Brand:              catalog.Pick(g.rnd, g.cat.Brands),
		PriceOriginal:      price,
		Discount:           discount,
		PriceFinal:         Round2(price * (1 - discount)),
		StockQty:           int64(g.cat.Stock.Draw(g.rnd)),
		Available:          g.rnd.Intn(2) == 0,
		ReleaseDate:        g.now.Add(-time.Duration(g.cat.ReleaseDateBackdateDays.Draw(g.rnd)) * day),
	}
}

func (g *Generator) phone() string {
	ddd := 11 + g.rnd.Intn(89)
	return fmt.Sprintf("+55 %02d 9%04d-%04d", ddd, g.rnd.Intn(10000), g.rnd.Intn(10000))
}

func (g *Generator) zipcode() string {
	return fmt.Sprintf("%05d-%03d", g.rnd.Intn(100000), g.rnd.Intn(1000))
}

func (g *Generator) words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = catalog.Pick(g.rnd, g.cat.Words)
	}
	return out
}

// AgeAt derives a user's age from a birth date relative to a reference
// time: floor(days between / 365).
func AgeAt(now, birthDate time.Time) int64 {
	days := int64(now.Sub(birthDate).Hours() / 24)
	return days / 365
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
