package types

import "testing"

func TestCartEvent(t *testing.T) {
	tests := []struct {
		event string
		want  bool
	}{
		{EventAddToCart, true},
		{EventBeginCheckout, true},
		{EventPurchase, true},
		{EventLogin, false},
		{EventViewProduct, false},
		{"unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := CartEvent(tt.event); got != tt.want {
			t.Errorf("CartEvent(%q) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestEventNames_Complete(t *testing.T) {
	if len(EventNames) != 5 {
		t.Fatalf("expected 5 event names, got %d", len(EventNames))
	}

	seen := make(map[string]bool)
	for _, name := range EventNames {
		if seen[name] {
			t.Fatalf("duplicate event name %q", name)
		}
		seen[name] = true
	}
	for _, want := range []string{EventLogin, EventViewProduct, EventAddToCart, EventBeginCheckout, EventPurchase} {
		if !seen[want] {
			t.Fatalf("event name %q missing", want)
		}
	}
}

func TestRecord_StringField(t *testing.T) {
	rec := &Record{
		User: User{
			UserID:  "u-1",
			Country: "Brasil",
			State:   "SP",
		},
		Device:    "mobile",
		EventName: EventPurchase,
	}

	tests := []struct {
		field string
		want  string
		ok    bool
	}{
		{"user_id", "u-1", true},
		{"country", "Brasil", true},
		{"state", "SP", true},
		{"device", "mobile", true},
		{"event_name", EventPurchase, true},
		{"age", "", false},
		{"price_final", "", false},
		{"no_such_column", "", false},
	}

	for _, tt := range tests {
		got, ok := rec.StringField(tt.field)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StringField(%q) = (%q, %v), want (%q, %v)", tt.field, got, ok, tt.want, tt.ok)
		}
	}
}
