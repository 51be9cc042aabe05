package aerc

import (
	"strings"
)

var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

var canadianProvinces = map[string]bool{
	"AB": true, "BC": true, "MB": true, "NB": true, "NL": true, "NS": true,
	"NT": true, "NU": true, "ON": true, "PE": true, "QC": true, "SK": true,
	"YT": true,
}

// parseLocation splits a free-text location string on commas and inspects
// the trailing component for a 2-letter region code. US state codes map to
// country "USA", Canadian province codes to "Canada"; an unrecognized code
// leaves country unset.
func parseLocation(location string) (city, state, country string) {
	parts := strings.Split(location, ",")
	if len(parts) < 2 {
		return "", "", ""
	}

	last := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if len(last) != 2 {
		return "", "", ""
	}

	state = last
	city = strings.TrimSpace(parts[len(parts)-2])

	switch {
	case usStates[last]:
		country = "USA"
	case canadianProvinces[last]:
		country = "Canada"
	}

	return city, state, country
}
