package crmfill

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// "IL 62704", "il,62704", "IL 62704-1234"
	stateZipRe = regexp.MustCompile(`(?i)^([a-z]{2})\s*,?\s*(\d{5}(?:-\d{4})?)$`)

	trailingZipRe = regexp.MustCompile(`\d{5}(?:-\d{4})?$`)
	bareZipRe     = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
)

// AddressComponents holds the parts of a free-text postal address.
// Street is always set. City, State and Zip are empty unless they could
// be parsed.
type AddressComponents struct {
	Street string `json:"street"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// ParseAddress splits a free-text US postal address into components.
//
// Line breaks count as commas. At least three comma-separated segments are
// required; otherwise the untouched input is returned as Street. The first
// segment is the street, the second-to-last is the city and the last holds
// the state and zip. Segments between the street and the city (suite
// numbers, building names) are dropped.
//
// ParseAddress never fails.
func ParseAddress(address string) AddressComponents {
	normalized := strings.ReplaceAll(address, "\n", ", ")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")

	parts := strings.Split(normalized, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 3 {
		return AddressComponents{Street: address}
	}

	// "Springfield, IL, 62704": fold the bare zip back onto the state.
	if n := len(parts); n >= 4 && bareZipRe.MatchString(parts[n-1]) {
		parts = append(parts[:n-2], parts[n-2]+", "+parts[n-1])
	}

	n := len(parts)
	street, city, last := parts[0], parts[n-2], parts[n-1]

	if m := stateZipRe.FindStringSubmatch(last); m != nil {
		return AddressComponents{Street: street, City: city, State: m[1], Zip: m[2]}
	}

	if zip := trailingZipRe.FindString(last); zip != "" {
		state := strings.TrimSpace(strings.Replace(last, zip, "", 1))
		state = strings.TrimSpace(strings.TrimSuffix(state, ","))
		return AddressComponents{Street: street, City: city, State: state, Zip: zip}
	}

	return AddressComponents{Street: street, City: city}
}
