package gen

import (
	"github.com/arkilian/clickforge/internal/catalog"
	cferrors "github.com/arkilian/clickforge/internal/errors"
	"github.com/arkilian/clickforge/pkg/types"
)

// Params configures one generation run.
type Params struct {
	// NumUsers is the number of users (and therefore sessions).
	NumUsers int

	// MinEvents and MaxEvents bound the uniform per-user event count.
	MinEvents int
	MaxEvents int
}

// Validate checks the parameters before any generation starts.
func (p Params) Validate() error {
	if p.NumUsers <= 0 {
		return cferrors.Newf(cferrors.ErrCategoryConfig, cferrors.CodeInvalidRange,
			"num_users must be positive, got %d", p.NumUsers)
	}
	if p.MinEvents <= 0 || p.MaxEvents <= 0 {
		return cferrors.Newf(cferrors.ErrCategoryConfig, cferrors.CodeInvalidRange,
			"event counts must be positive, got min=%d max=%d", p.MinEvents, p.MaxEvents)
	}
	if p.MinEvents > p.MaxEvents {
		return cferrors.Newf(cferrors.ErrCategoryConfig, cferrors.CodeInvalidRange,
			"min_events (%d) must not exceed max_events (%d)", p.MinEvents, p.MaxEvents)
	}
	return nil
}

// Dataset generates the full record set for a run: one session per
// user, user-major and event-minor in generation order.
func (g *Generator) Dataset(p Params) ([]types.Record, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	span := catalog.IntRange{Min: p.MinEvents, Max: p.MaxEvents}
	records := make([]types.Record, 0, p.NumUsers*(p.MinEvents+p.MaxEvents)/2)

	for i := 0; i < p.NumUsers; i++ {
		records = append(records, g.Session(span.Draw(g.rnd))...)
	}

	return records, nil
}
