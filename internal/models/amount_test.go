package models

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"number", "12.5", "12.50", false},
		{"number with two decimals", "12.50", "12.50", false},
		{"quoted string", `"12.50"`, "12.50", false},
		{"integer", "7", "7.00", false},
		{"negative", "-3.1", "-3.10", false},
		{"rounds to two decimals", "0.125", "0.13", false},
		{"non-numeric string", `"twelve"`, "", true},
		{"empty string", `""`, "", true},
		{"json null", "null", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) succeeded, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) failed: %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got.String(), tt.want)
			}
		})
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`"12.5"`), &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "12.50" {
		t.Errorf("Marshal = %s, want 12.50", out)
	}
}

func TestAmountEqual(t *testing.T) {
	a, _ := ParseAmountString("12.5")
	b, _ := ParseAmountString("12.50")
	if !a.Equal(b) {
		t.Error("expected 12.5 and 12.50 to be equal")
	}
}
