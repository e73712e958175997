package gen

import (
	"time"

	"github.com/arkilian/clickforge/internal/catalog"
	"github.com/arkilian/clickforge/pkg/types"
)

// Events generates the ordered event records of one session. Each
// event's timestamp is the previous one's plus a 1-10 minute gap, so
// timestamps strictly increase within the session. Event names are
// drawn independently and uniformly per event; sequences are not
// guaranteed to follow a purchase funnel.
//
// Every record carries the session's fixed start, its own timestamp as
// the session end, and the duration elapsed up to that event.
//
// The device context (device, OS, browser, and the rest of the client
// block) is drawn once per session: a session happens on one device, so
// partitioning by device keeps all of a user's events in one partition.
func (g *Generator) Events(user types.User, sessionID string, sessionStart time.Time, count int) []types.Record {
	records := make([]types.Record, 0, count)

	device := catalog.Pick(g.rnd, g.cat.Devices)
	os := catalog.Pick(g.rnd, g.cat.OSes)
	browser := catalog.Pick(g.rnd, g.cat.Browsers)
	platform := catalog.Pick(g.rnd, g.cat.Platforms)
	resolution := catalog.Pick(g.rnd, g.cat.Resolutions)
	language := catalog.Pick(g.rnd, g.cat.Languages)
	connection := catalog.Pick(g.rnd, g.cat.ConnectionTypes)

	last := sessionStart
	for i := 0; i < count; i++ {
		product := g.Product()
		timestamp := last.Add(time.Duration(g.cat.EventGapMinutes.Draw(g.rnd)) * time.Minute)
		eventName := catalog.Pick(g.rnd, g.cat.EventNames)

		rec := types.Record{
			User:    user,
			Product: product,

			EventID:        g.ID(),
			EventName:      eventName,
			EventTimestamp: timestamp,
			SessionID:      sessionID,

			Device:           device,
			OS:               os,
			Browser:          browser,
			Platform:         platform,
			ScreenResolution: resolution,
			Language:         language,
			ConnectionType:   connection,

			PageDepth:          int64(g.cat.PageDepth.Draw(g.rnd)),
			ScrollDepthPercent: Round2(g.cat.ScrollDepth.Draw(g.rnd)),
			ProductsViewed:     g.words(g.cat.ProductsViewed.Draw(g.rnd)),
			WishlistItems:      g.words(g.cat.WishlistItems.Draw(g.rnd)),

			ProductInteractionType: catalog.Pick(g.rnd, g.cat.InteractionTypes),
			AvgTimePerPage:         Round2(g.cat.AvgTimePerPage.Draw(g.rnd)),
			ClicksPerSession:       int64(g.cat.ClicksPerSession.Draw(g.rnd)),
			InteractionScore:       Round2(g.cat.InteractionScore.Draw(g.rnd)),

			GCLID:        g.ID()[:10],
			FBCLID:       g.ID()[:10],
			CampaignType: catalog.Pick(g.rnd, g.cat.CampaignTypes),
			AdGroupName:  catalog.Pick(g.rnd, g.cat.Words),
			AdCreativeID: g.ID()[:8],

			SessionStart:       sessionStart,
			SessionEnd:         timestamp,
			SessionDurationSec: int64(timestamp.Sub(sessionStart) / time.Second),
		}

		// Cart aggregates exist only for cart-bearing events, and must
		// be exactly zero otherwise.
		if types.CartEvent(eventName) {
			rec.CartValueTotal = product.PriceFinal
			rec.CartItemsCount = int64(g.cat.CartItems.Draw(g.rnd))
		}

		records = append(records, rec)
		last = timestamp
	}

	return records
}

// Session generates one complete session for a fresh user: a new user
// profile, a new session identifier, a session start backdated within
// the catalog's window, and count events.
func (g *Generator) Session(count int) []types.Record {
	user := g.User(g.ID())
	sessionID := g.ID()
	start := g.now.Add(-time.Duration(g.cat.SessionBackdateDays.Draw(g.rnd)) * day)
	return g.Events(user, sessionID, start, count)
}
