package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means zero date expected
	}{
		{"bare date", `"2025-03-15"`, "2025-03-15"},
		{"iso datetime", `"2025-03-15T10:30:00"`, "2025-03-15"},
		{"rfc3339", `"2025-03-15T10:30:00Z"`, "2025-03-15"},
		{"empty string", `""`, ""},
		{"null", `null`, ""},
		{"garbage", `"not-a-date"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if tt.want == "" {
				if !d.IsZero() {
					t.Errorf("expected zero date, got %v", d.Time)
				}
				return
			}
			if got := d.Format("2006-01-02"); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDate_MarshalJSON_ZeroIsNull(t *testing.T) {
	b, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("got %s, want null", b)
	}
}

func TestDate_DaysSince(t *testing.T) {
	asOf := time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		d    Date
		want int
	}{
		{"ten days past", NewDate(2025, 3, 5), 10},
		{"today", NewDate(2025, 3, 15), 0},
		{"five days ahead", NewDate(2025, 3, 20), -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.DaysSince(asOf); got != tt.want {
				t.Errorf("DaysSince() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocument_Key(t *testing.T) {
	d := Document{Type: "FACT", Number: "001234"}
	if got := d.Key(); got != "FACT_001234" {
		t.Errorf("Key() = %s, want FACT_001234", got)
	}
}

func TestMetaForType_Unknown(t *testing.T) {
	m := MetaForType("XYZ")
	if m.Name != "XYZ" || m.Letter != "X" {
		t.Errorf("unexpected placeholder meta: %+v", m)
	}
}
