// Package dataset assembles generated records into a single in-memory
// table and defines the Arrow schema the partitioned writer encodes.
package dataset

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Schema returns the Arrow schema of the denormalized event record.
// Column order is fixed: user profile, product, then event/session
// fields, matching generation order of the flattened record.
func Schema() *arrow.Schema {
	str := arrow.BinaryTypes.String
	i64 := arrow.PrimitiveTypes.Int64
	f64 := arrow.PrimitiveTypes.Float64
	boolean := arrow.FixedWidthTypes.Boolean
	date := arrow.FixedWidthTypes.Date32
	ts := arrow.FixedWidthTypes.Timestamp_ms
	strList := arrow.ListOf(arrow.BinaryTypes.String)

	fields := []arrow.Field{
		{Name: "user_id", Type: str},
		{Name: "name", Type: str},
		{Name: "email", Type: str},
		{Name: "phone", Type: str},
		{Name: "birth_date", Type: date},
		{Name: "age", Type: i64},
		{Name: "gender", Type: str},
		{Name: "marital_status", Type: str},
		{Name: "education", Type: str},
		{Name: "employment_status", Type: str},
		{Name: "income", Type: f64},
		{Name: "country", Type: str},
		{Name: "state", Type: str},
		{Name: "city", Type: str},
		{Name: "neighborhood", Type: str},
		{Name: "zipcode", Type: str},
		{Name: "latitude", Type: f64},
		{Name: "longitude", Type: f64},
		{Name: "timezone", Type: str},
		{Name: "is_logged_in", Type: boolean},
		{Name: "has_newsletter", Type: boolean},
		{Name: "login_method", Type: str},
		{Name: "has_payment_method", Type: boolean},
		{Name: "fidelity_program", Type: boolean},

		{Name: "product_id", Type: str},
		{Name: "product_name", Type: str},
		{Name: "product_category", Type: str},
		{Name: "product_subcategory", Type: str},
		{Name: "brand", Type: str},
		{Name: "price_original", Type: f64},
		{Name: "discount", Type: f64},
		{Name: "price_final", Type: f64},
		{Name: "stock_qty", Type: i64},
		{Name: "available", Type: boolean},
		{Name: "release_date", Type: date},

		{Name: "event_id", Type: str},
		{Name: "event_name", Type: str},
		{Name: "event_timestamp", Type: ts},
		{Name: "session_id", Type: str},
		{Name: "device", Type: str},
		{Name: "os", Type: str},
		{Name: "browser", Type: str},
		{Name: "platform", Type: str},
		{Name: "screen_resolution", Type: str},
		{Name: "language", Type: str},
		{Name: "connection_type", Type: str},
		{Name: "page_depth", Type: i64},
		{Name: "scroll_depth_percent", Type: f64},
		{Name: "products_viewed", Type: strList},
		{Name: "cart_value_total", Type: f64},
		{Name: "cart_items_count", Type: i64},
		{Name: "wishlist_items", Type: strList},
		{Name: "product_interaction_type", Type: str},
		{Name: "avg_time_per_page", Type: f64},
		{Name: "clicks_per_session", Type: i64},
		{Name: "interaction_score", Type: f64},
		{Name: "gclid", Type: str},
		{Name: "fbclid", Type: str},
		{Name: "campaign_type", Type: str},
		{Name: "ad_group_name", Type: str},
		{Name: "ad_creative_id", Type: str},
		{Name: "session_start", Type: ts},
		{Name: "session_end", Type: ts},
		{Name: "session_duration_sec", Type: i64},
	}

	return arrow.NewSchema(fields, nil)
}

// ColumnNames returns the schema's column names in order.
func ColumnNames() []string {
	schema := Schema()
	names := make([]string, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		names[i] = schema.Field(i).Name
	}
	return names
}
