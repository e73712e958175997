package gen

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	gopterGen "github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arkilian/clickforge/internal/catalog"
	"github.com/arkilian/clickforge/pkg/types"
)

// TestProperty_GenerationDeterminism validates that any seed and
// reference time reproduce the exact same dataset across two runs.
func TestProperty_GenerationDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("same seed and reference time reproduce the dataset", prop.ForAll(
		func(seed int64, users int) bool {
			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			p := Params{NumUsers: users, MinEvents: 2, MaxEvents: 6}

			a, errA := New(catalog.Default(), rand.New(rand.NewSource(seed)), now).Dataset(p)
			b, errB := New(catalog.Default(), rand.New(rand.NewSource(seed)), now).Dataset(p)
			if errA != nil || errB != nil {
				return false
			}

			return reflect.DeepEqual(a, b)
		},
		gopterGen.Int64(),
		gopterGen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

// TestProperty_SessionInvariants validates the per-session invariants
// for arbitrary seeds and event counts: strictly increasing timestamps,
// per-event elapsed durations, and cart fields gated on event name.
func TestProperty_SessionInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("timestamps strictly increase and durations accumulate", prop.ForAll(
		func(seed int64, count int) bool {
			g := New(catalog.Default(), rand.New(rand.NewSource(seed)), time.Now())
			records := g.Session(count)
			if len(records) != count {
				return false
			}

			start := records[0].SessionStart
			last := start
			for _, rec := range records {
				if !rec.EventTimestamp.After(last) {
					return false
				}
				if rec.SessionDurationSec != int64(rec.EventTimestamp.Sub(start)/time.Second) {
					return false
				}
				last = rec.EventTimestamp
			}
			return true
		},
		gopterGen.Int64(),
		gopterGen.IntRange(1, 50),
	))

	properties.Property("cart fields are non-zero exactly on cart events", prop.ForAll(
		func(seed int64, count int) bool {
			g := New(catalog.Default(), rand.New(rand.NewSource(seed)), time.Now())
			for _, rec := range g.Session(count) {
				isCart := types.CartEvent(rec.EventName)
				hasCart := rec.CartValueTotal != 0 || rec.CartItemsCount != 0
				if isCart != hasCart {
					return false
				}
			}
			return true
		},
		gopterGen.Int64(),
		gopterGen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

// TestProperty_UserAgeConsistency validates that the stored age always
// equals the age derived from the birth date at the reference time.
func TestProperty_UserAgeConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("stored age matches age derived from birth date", prop.ForAll(
		func(seed int64) bool {
			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			g := New(catalog.Default(), rand.New(rand.NewSource(seed)), now)

			u := g.User(g.ID())
			return u.Age >= 18 && u.Age <= 65 && AgeAt(now, u.BirthDate) == u.Age
		},
		gopterGen.Int64(),
	))

	properties.TestingRun(t)
}
