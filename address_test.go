package crmfill_test

import (
	"testing"

	"github.com/fwojciec/crmfill"
	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		want    crmfill.AddressComponents
	}{
		{
			name:    "street, city, state and zip",
			address: "123 Main St, Springfield, IL 62704",
			want:    crmfill.AddressComponents{Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			name:    "comma between state and zip",
			address: "123 Main St, Springfield, IL, 62704",
			want:    crmfill.AddressComponents{Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			name:    "zip plus four",
			address: "9 Depot Rd, Joliet, IL 60431-1234",
			want:    crmfill.AddressComponents{Street: "9 Depot Rd", City: "Joliet", State: "IL", Zip: "60431-1234"},
		},
		{
			name:    "lowercase state keeps its case",
			address: "9 Depot Rd, Joliet, il 60431",
			want:    crmfill.AddressComponents{Street: "9 Depot Rd", City: "Joliet", State: "il", Zip: "60431"},
		},
		{
			name:    "two segments are returned untouched",
			address: "123 Main St, Springfield",
			want:    crmfill.AddressComponents{Street: "123 Main St, Springfield"},
		},
		{
			name:    "single line without commas",
			address: "123 Main St Springfield IL 62704",
			want:    crmfill.AddressComponents{Street: "123 Main St Springfield IL 62704"},
		},
		{
			name:    "empty input",
			address: "",
			want:    crmfill.AddressComponents{Street: ""},
		},
		{
			name:    "newline becomes a segment break",
			address: "100 Elm St\nSuite 2, Denver, CO 80202",
			want:    crmfill.AddressComponents{Street: "100 Elm St", City: "Denver", State: "CO", Zip: "80202"},
		},
		{
			name:    "irregular whitespace is collapsed",
			address: "  77   Oak Ave ,\tSt.  Louis ,  MO   63101  ",
			want:    crmfill.AddressComponents{Street: "77 Oak Ave", City: "St. Louis", State: "MO", Zip: "63101"},
		},
		{
			name:    "full state name before zip",
			address: "1 Harbor Way, Chicago, Illinois 60601",
			want:    crmfill.AddressComponents{Street: "1 Harbor Way", City: "Chicago", State: "Illinois", Zip: "60601"},
		},
		{
			name:    "zip without state",
			address: "1 Harbor Way, Chicago, 60601",
			want:    crmfill.AddressComponents{Street: "1 Harbor Way", City: "Chicago", Zip: "60601"},
		},
		{
			name:    "no zip leaves state and zip empty",
			address: "1 Harbor Way, Chicago, Illinois",
			want:    crmfill.AddressComponents{Street: "1 Harbor Way", City: "Chicago"},
		},
		{
			name:    "four digit zip is not a zip",
			address: "1 Harbor Way, Chicago, IL 6060",
			want:    crmfill.AddressComponents{Street: "1 Harbor Way", City: "Chicago"},
		},
		{
			name:    "windows line endings",
			address: "100 Elm St\r\nDenver\r\nCO 80202",
			want:    crmfill.AddressComponents{Street: "100 Elm St", City: "Denver", State: "CO", Zip: "80202"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, crmfill.ParseAddress(tt.address))
		})
	}
}

// Only the first segment and the last two are consulted. Everything in
// between is dropped, even when it looks like part of the street.
func TestParseAddress_DropsMiddleSegments(t *testing.T) {
	t.Parallel()

	got := crmfill.ParseAddress("Acme Fuel Depot, 500 Industrial Pkwy, Building C, Peoria, IL 61602")

	assert.Equal(t, crmfill.AddressComponents{
		Street: "Acme Fuel Depot",
		City:   "Peoria",
		State:  "IL",
		Zip:    "61602",
	}, got)
}

// With four or more segments and no trailing bare zip, the city is the
// segment right before the last one, not the second segment.
func TestParseAddress_CityPrecedesLastSegment(t *testing.T) {
	t.Parallel()

	t.Run("without zip", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			crmfill.AddressComponents{Street: "1 Main St", City: "Denver"},
			crmfill.ParseAddress("1 Main St, Suite 2, Denver, Colorado"),
		)
	})

	t.Run("with state and zip", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			crmfill.AddressComponents{Street: "1 Main St", City: "Extra", State: "IL", Zip: "62704"},
			crmfill.ParseAddress("1 Main St, Springfield, Extra, IL 62704"),
		)
	})
}

func FuzzParseAddress(f *testing.F) {
	f.Add("123 Main St, Springfield, IL 62704")
	f.Add("123 Main St, Springfield, IL, 62704")
	f.Add("100 Elm St\nSuite 2, Denver, CO 80202")
	f.Add(",,,")
	f.Add("")

	f.Fuzz(func(t *testing.T, address string) {
		got := crmfill.ParseAddress(address)

		if len(splitSegments(address)) < 3 && got != (crmfill.AddressComponents{Street: address}) {
			t.Fatalf("unstructured input %q parsed as %+v", address, got)
		}
	})
}

func splitSegments(address string) []string {
	var segments []string
	start := 0
	for i, r := range address {
		if r == ',' || r == '\n' {
			segments = append(segments, address[start:i])
			start = i + 1
		}
	}
	return append(segments, address[start:])
}
