// Package types provides core data types for clickforge.
package types

import "time"

// Event names emitted by the session generator. The set is closed: every
// generated record carries exactly one of these values.
const (
	EventLogin         = "login"
	EventViewProduct   = "view_product"
	EventAddToCart     = "add_to_cart"
	EventBeginCheckout = "begin_checkout"
	EventPurchase      = "purchase"
)

// EventNames lists the closed event-name enum in draw order.
var EventNames = []string{
	EventLogin,
	EventViewProduct,
	EventAddToCart,
	EventBeginCheckout,
	EventPurchase,
}

// CartEvent reports whether an event name carries cart aggregates.
// Cart fields are non-zero only for these three event types.
func CartEvent(name string) bool {
	switch name {
	case EventAddToCart, EventBeginCheckout, EventPurchase:
		return true
	}
	return false
}

// User is one synthetic user profile. A user is generated once per run
// and embedded verbatim into every event record of its session.
type User struct {
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	BirthDate        time.Time `json:"birth_date"`
	Age              int64     `json:"age"`
	Gender           string    `json:"gender"`
	MaritalStatus    string    `json:"marital_status"`
	Education        string    `json:"education"`
	EmploymentStatus string    `json:"employment_status"`
	Income           float64   `json:"income"`
	Country          string    `json:"country"`
	State            string    `json:"state"`
	City             string    `json:"city"`
	Neighborhood     string    `json:"neighborhood"`
	Zipcode          string    `json:"zipcode"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Timezone         string    `json:"timezone"`
	IsLoggedIn       bool      `json:"is_logged_in"`
	HasNewsletter    bool      `json:"has_newsletter"`
	LoginMethod      string    `json:"login_method"`
	HasPaymentMethod bool      `json:"has_payment_method"`
	FidelityProgram  bool      `json:"fidelity_program"`
}

// Product is one synthetic product. A fresh product is synthesized per
// event; products are never shared across events.
type Product struct {
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductCategory    string    `json:"product_category"`
	ProductSubcategory string    `json:"product_subcategory"`
	Brand              string    `json:"brand"`
	PriceOriginal      float64   `json:"price_original"`
	Discount           float64   `json:"discount"`
	PriceFinal         float64   `json:"price_final"`
	StockQty           int64     `json:"stock_qty"`
	Available          bool      `json:"available"`
	ReleaseDate        time.Time `json:"release_date"`
}

// Record is the fully denormalized row written to the dataset: one
// user snapshot, one product snapshot, and the event/session fields.
type Record struct {
	User
	Product

	EventID        string    `json:"event_id"`
	EventName      string    `json:"event_name"`
	EventTimestamp time.Time `json:"event_timestamp"`
	SessionID      string    `json:"session_id"`

	Device           string `json:"device"`
	OS               string `json:"os"`
	Browser          string `json:"browser"`
	Platform         string `json:"platform"`
	ScreenResolution string `json:"screen_resolution"`
	Language         string `json:"language"`
	ConnectionType   string `json:"connection_type"`

	PageDepth          int64    `json:"page_depth"`
	ScrollDepthPercent float64  `json:"scroll_depth_percent"`
	ProductsViewed     []string `json:"products_viewed"`
	CartValueTotal     float64  `json:"cart_value_total"`
	CartItemsCount     int64    `json:"cart_items_count"`
	WishlistItems      []string `json:"wishlist_items"`

	ProductInteractionType string  `json:"product_interaction_type"`
	AvgTimePerPage         float64 `json:"avg_time_per_page"`
	ClicksPerSession       int64   `json:"clicks_per_session"`
	InteractionScore       float64 `json:"interaction_score"`

	GCLID        string `json:"gclid"`
	FBCLID       string `json:"fbclid"`
	CampaignType string `json:"campaign_type"`
	AdGroupName  string `json:"ad_group_name"`
	AdCreativeID string `json:"ad_creative_id"`

	SessionStart       time.Time `json:"session_start"`
	SessionEnd         time.Time `json:"session_end"`
	SessionDurationSec int64     `json:"session_duration_sec"`
}

// StringField returns the value of a string-typed column by its dataset
// column name. Partition keys are resolved through this lookup, so only
// string columns can act as partition keys.
func (r *Record) StringField(name string) (string, bool) {
	switch name {
	case "user_id":
		return r.UserID, true
	case "gender":
		return r.Gender, true
	case "marital_status":
		return r.MaritalStatus, true
	case "education":
		return r.Education, true
	case "employment_status":
		return r.EmploymentStatus, true
	case "country":
		return r.Country, true
	case "state":
		return r.State, true
	case "city":
		return r.City, true
	case "timezone":
		return r.Timezone, true
	case "login_method":
		return r.LoginMethod, true
	case "product_category":
		return r.ProductCategory, true
	case "brand":
		return r.Brand, true
	case "event_name":
		return r.EventName, true
	case "session_id":
		return r.SessionID, true
	case "device":
		return r.Device, true
	case "os":
		return r.OS, true
	case "browser":
		return r.Browser, true
	case "platform":
		return r.Platform, true
	case "language":
		return r.Language, true
	case "connection_type":
		return r.ConnectionType, true
	case "campaign_type":
		return r.CampaignType, true
	}
	return "", false
}
