// Package address parses free-text school addresses into structured
// components and provides the city-key normalization shared with the
// demographic index.
package address

import (
	"regexp"
	"strings"

	"schoolleads/internal/models"
	"schoolleads/pkg/utils"
)

// artifactPatterns matches phrases the upstream scraper leaves embedded in
// text fields.
var artifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Link opens new browser tab`),
	regexp.MustCompile(`(?i)Google Map(?: Link)?`),
	regexp.MustCompile(`(?i)Link opens new Email`),
}

var (
	zipPattern  = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
	unitPattern = regexp.MustCompile(`(?i)\b(?:suite|ste\.?|unit|apt\.?|apartment|bldg\.?|building|rm\.?|room|#)\s*([\w-]+)`)
)

// stateCodes is the set of USPS state abbreviations.
var stateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "DC": true, "FL": true, "GA": true, "HI": true,
	"ID": true, "IL": true, "IN": true, "IA": true, "KS": true, "KY": true,
	"LA": true, "ME": true, "MD": true, "MA": true, "MI": true, "MN": true,
	"MS": true, "MO": true, "MT": true, "NE": true, "NV": true, "NH": true,
	"NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true,
	"TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true,
	"WV": true, "WI": true, "WY": true,
}

// streetSuffixes marks the token that usually ends the street portion when
// no commas separate street from city.
var streetSuffixes = map[string]bool{
	"st": true, "street": true, "ave": true, "avenue": true, "blvd": true,
	"boulevard": true, "rd": true, "road": true, "dr": true, "drive": true,
	"ln": true, "lane": true, "way": true, "ct": true, "court": true,
	"pl": true, "place": true, "cir": true, "circle": true, "terr": true,
	"terrace": true, "loop": true, "hwy": true, "highway": true,
	"pkwy": true, "parkway": true,
}

// Normalizer parses free-text address strings. It never fails: components
// it cannot place are left empty and the raw input is always retained.
type Normalizer struct{}

// NewNormalizer creates a new address normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// CleanText strips scraper artifacts and collapses whitespace.
func CleanText(text string) string {
	for _, p := range artifactPatterns {
		text = p.ReplaceAllString(text, "")
	}

	return utils.NormalizeWhitespace(text)
}

// CityKey normalizes a city name for index lookup: case-folded with
// whitespace collapsed, so "Los   Angeles" and "los angeles" share a key.
func CityKey(city string) string {
	return strings.ToLower(utils.NormalizeWhitespace(city))
}

// Parse extracts structured components from a free-text address. Malformed
// input degrades to empty fields; Raw always carries the original string.
func (n *Normalizer) Parse(raw string) models.NormalizedAddress {
	addr := models.NormalizedAddress{Raw: raw}

	text := CleanText(raw)
	if text == "" {
		return addr
	}

	// Zip: take the last 5-digit group, which in US addresses trails the
	// state.
	if locs := zipPattern.FindAllStringSubmatchIndex(text, -1); len(locs) > 0 {
		last := locs[len(locs)-1]
		addr.Zip = text[last[2]:last[3]]
		text = strings.TrimSpace(text[:last[0]] + text[last[1]:])
	}

	// State: a USPS two-letter code, expected as the trailing token once
	// the zip is gone.
	tokens := strings.Fields(text)
	if len(tokens) > 0 {
		candidate := strings.ToUpper(strings.Trim(tokens[len(tokens)-1], ".,"))
		if stateCodes[candidate] {
			addr.State = candidate
			text = strings.Join(tokens[:len(tokens)-1], " ")
		}
	}

	// Unit / occupancy info becomes line 2.
	if loc := unitPattern.FindStringIndex(text); loc != nil {
		addr.Line2 = strings.Trim(text[loc[0]:loc[1]], " ,")
		text = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	}

	text = strings.Trim(text, " ,")

	addr.Street, addr.City = splitStreetCity(text)

	return addr
}

// splitStreetCity separates the street portion from the city. A comma is
// authoritative when present; otherwise the split falls after the last
// known street-suffix token.
func splitStreetCity(text string) (street, city string) {
	if text == "" {
		return "", ""
	}

	if idx := strings.LastIndex(text, ","); idx >= 0 {
		street = strings.Trim(text[:idx], " ,")
		city = strings.Trim(text[idx+1:], " ,")

		return street, city
	}

	tokens := strings.Fields(text)
	lastSuffix := -1

	for i, tok := range tokens {
		if streetSuffixes[strings.ToLower(strings.Trim(tok, ".,"))] {
			lastSuffix = i
		}
	}

	if lastSuffix >= 0 && lastSuffix < len(tokens)-1 {
		return strings.Join(tokens[:lastSuffix+1], " "), strings.Join(tokens[lastSuffix+1:], " ")
	}

	// No recognizable boundary: keep everything as street rather than
	// guessing a city.
	return text, ""
}
