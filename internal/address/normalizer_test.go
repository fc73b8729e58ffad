package address

import (
	"testing"
)

func TestNewNormalizer(t *testing.T) {
	n := NewNormalizer()
	if n == nil {
		t.Fatal("NewNormalizer returned nil")
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name   string
		input  string
		street string
		line2  string
		city   string
		state  string
		zip    string
	}{
		{
			name:   "comma separated",
			input:  "1234 Elm St, Los Angeles, CA 90001",
			street: "1234 Elm St",
			city:   "Los Angeles",
			state:  "CA",
			zip:    "90001",
		},
		{
			name:   "no commas with street suffix",
			input:  "500 Sunset Blvd Fresno CA 93701",
			street: "500 Sunset Blvd",
			city:   "Fresno",
			state:  "CA",
			zip:    "93701",
		},
		{
			name:   "zip plus four",
			input:  "77 Oak Ave, Sacramento, CA 95814-2233",
			street: "77 Oak Ave",
			city:   "Sacramento",
			state:  "CA",
			zip:    "95814",
		},
		{
			name:   "unit becomes line2",
			input:  "900 Main St Suite 210, San Diego, CA 92101",
			street: "900 Main St",
			line2:  "Suite 210",
			city:   "San Diego",
			state:  "CA",
			zip:    "92101",
		},
		{
			name:   "scraper artifact stripped",
			input:  "12 Maple Dr, Oakland, CA 94601 Google Map Link opens new browser tab",
			street: "12 Maple Dr",
			city:   "Oakland",
			state:  "CA",
			zip:    "94601",
		},
		{
			name:   "no recognizable city boundary keeps street",
			input:  "1 Infinite Loop",
			street: "1 Infinite Loop",
		},
		{
			name:  "empty input degrades to empty fields",
			input: "",
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Parse(tt.input)

			if got.Street != tt.street {
				t.Errorf("Street = %q, want %q", got.Street, tt.street)
			}

			if got.Line2 != tt.line2 {
				t.Errorf("Line2 = %q, want %q", got.Line2, tt.line2)
			}

			if got.City != tt.city {
				t.Errorf("City = %q, want %q", got.City, tt.city)
			}

			if got.State != tt.state {
				t.Errorf("State = %q, want %q", got.State, tt.state)
			}

			if got.Zip != tt.zip {
				t.Errorf("Zip = %q, want %q", got.Zip, tt.zip)
			}

			if got.Raw != tt.input {
				t.Errorf("Raw = %q, want original input %q", got.Raw, tt.input)
			}
		})
	}
}

func TestNormalizer_Parse_Idempotent(t *testing.T) {
	n := NewNormalizer()

	input := "1234 Elm St, Los Angeles, CA 90001"

	first := n.Parse(input)
	second := n.Parse(input)

	if first != second {
		t.Errorf("repeated Parse differs: %+v vs %+v", first, second)
	}

	// Re-parsing the canonical rendering of the parsed components must
	// yield the same components.
	rendered := first.Street + ", " + first.City + ", " + first.State + " " + first.Zip

	reparsed := n.Parse(rendered)
	if reparsed.Street != first.Street || reparsed.City != first.City ||
		reparsed.State != first.State || reparsed.Zip != first.Zip {
		t.Errorf("re-parse of %q = %+v, want components of %+v", rendered, reparsed, first)
	}
}

func TestCityKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Los   Angeles", "los angeles"},
		{"los angeles", "los angeles"},
		{"  FRESNO ", "fresno"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CityKey(tt.input); got != tt.want {
			t.Errorf("CityKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	// Key normalization is idempotent.
	if CityKey(CityKey("Los   Angeles")) != CityKey("Los   Angeles") {
		t.Error("CityKey is not idempotent")
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("123 Main St Link opens new browser tab  Google Map")
	if got != "123 Main St" {
		t.Errorf("CleanText = %q, want %q", got, "123 Main St")
	}
}
