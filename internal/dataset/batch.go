package dataset

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arkilian/clickforge/pkg/types"
)

// NewRecordBatch encodes rows into one Arrow record batch with the
// dataset schema. The caller owns the returned record and must Release
// it.
func NewRecordBatch(mem memory.Allocator, schema *arrow.Schema, rows []types.Record) arrow.Record {
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for i := range rows {
		appendRecord(b, &rows[i])
	}

	return b.NewRecord()
}

// appendRecord appends one row's values to the builders in schema
// column order. The call sequence here must match Schema exactly.
func appendRecord(b *array.RecordBuilder, rec *types.Record) {
	i := 0
	str := func(v string) {
		b.Field(i).(*array.StringBuilder).Append(v)
		i++
	}
	i64 := func(v int64) {
		b.Field(i).(*array.Int64Builder).Append(v)
		i++
	}
	f64 := func(v float64) {
		b.Field(i).(*array.Float64Builder).Append(v)
		i++
	}
	boolean := func(v bool) {
		b.Field(i).(*array.BooleanBuilder).Append(v)
		i++
	}
	date := func(v time.Time) {
		b.Field(i).(*array.Date32Builder).Append(arrow.Date32FromTime(v))
		i++
	}
	ts := func(v time.Time) {
		b.Field(i).(*array.TimestampBuilder).Append(arrow.Timestamp(v.UnixMilli()))
		i++
	}
	strList := func(vs []string) {
		lb := b.Field(i).(*array.ListBuilder)
		lb.Append(true)
		vb := lb.ValueBuilder().(*array.StringBuilder)
		for _, s := range vs {
			vb.Append(s)
		}
		i++
	}

	str(rec.UserID)
	str(rec.Name)
	str(rec.Email)
	str(rec.Phone)
	date(rec.BirthDate)
	i64(rec.Age)
	str(rec.Gender)
	str(rec.MaritalStatus)
	str(rec.Education)
	str(rec.EmploymentStatus)
	f64(rec.Income)
	str(rec.Country)
	str(rec.State)
	str(rec.City)
	str(rec.Neighborhood)
	str(rec.Zipcode)
	f64(rec.Latitude)
	f64(rec.Longitude)
	str(rec.Timezone)
	boolean(rec.IsLoggedIn)
	boolean(rec.HasNewsletter)
	str(rec.LoginMethod)
	boolean(rec.HasPaymentMethod)
	boolean(rec.FidelityProgram)

	str(rec.ProductID)
	str(rec.ProductName)
	str(rec.ProductCategory)
	str(rec.ProductSubcategory)
	str(rec.Brand)
	f64(rec.PriceOriginal)
	f64(rec.Discount)
	f64(rec.PriceFinal)
	i64(rec.StockQty)
	boolean(rec.Available)
	date(rec.ReleaseDate)

	str(rec.EventID)
	str(rec.EventName)
	ts(rec.EventTimestamp)
	str(rec.SessionID)
	str(rec.Device)
	str(rec.OS)
	str(rec.Browser)
	str(rec.Platform)
	str(rec.ScreenResolution)
	str(rec.Language)
	str(rec.ConnectionType)
	i64(rec.PageDepth)
	f64(rec.ScrollDepthPercent)
	strList(rec.ProductsViewed)
	f64(rec.CartValueTotal)
	i64(rec.CartItemsCount)
	strList(rec.WishlistItems)
	str(rec.ProductInteractionType)
	f64(rec.AvgTimePerPage)
	i64(rec.ClicksPerSession)
	f64(rec.InteractionScore)
	str(rec.GCLID)
	str(rec.FBCLID)
	str(rec.CampaignType)
	str(rec.AdGroupName)
	str(rec.AdCreativeID)
	ts(rec.SessionStart)
	ts(rec.SessionEnd)
	i64(rec.SessionDurationSec)
}
