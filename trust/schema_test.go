package trust

import (
	"sort"
	"testing"
)

func TestIsValidAttribute(t *testing.T) {
	valid := []string{"country", "country_code", "city", "continent", "isp", "org", "timezone_id", "current_time"}
	for _, name := range valid {
		if !IsValidAttribute(name) {
			t.Fatalf("IsValidAttribute(%q) false negative", name)
		}
	}

	invalid := []string{"", "ip", "flag", "Country", "connection", "timezone"}
	for _, name := range invalid {
		if IsValidAttribute(name) {
			t.Fatalf("IsValidAttribute(%q) false positive", name)
		}
	}
}

func TestParseAttribute(t *testing.T) {
	a, ok := ParseAttribute("country")
	if !ok || a != AttrCountry {
		t.Fatalf("ParseAttribute(country) = %v, %v", a, ok)
	}

	if _, ok = ParseAttribute("hostname"); ok {
		t.Fatalf("ParseAttribute accepted an attribute outside the schema")
	}
}

func TestAttributesSortedAndComplete(t *testing.T) {
	aa := Attributes()
	if len(aa) != len(validAttributes) {
		t.Fatalf("Attributes returned %d entries, want %d", len(aa), len(validAttributes))
	}

	if !sort.SliceIsSorted(aa, func(i, j int) bool { return aa[i] < aa[j] }) {
		t.Fatalf("Attributes not sorted: %v", aa)
	}
}
