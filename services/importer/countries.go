package importer

import "strings"

// CountryInfo carries the defaults used when the importer has to synthesize a
// country that an import row references but storage does not yet have.
type CountryInfo struct {
	Code     string
	Currency string
	Flag     string
}

// knownCountries maps well-known study destinations to their defaults.
var knownCountries = map[string]CountryInfo{
	"united states":  {Code: "US", Currency: "USD", Flag: "🇺🇸"},
	"usa":            {Code: "US", Currency: "USD", Flag: "🇺🇸"},
	"united kingdom": {Code: "GB", Currency: "GBP", Flag: "🇬🇧"},
	"uk":             {Code: "GB", Currency: "GBP", Flag: "🇬🇧"},
	"canada":         {Code: "CA", Currency: "CAD", Flag: "🇨🇦"},
	"australia":      {Code: "AU", Currency: "AUD", Flag: "🇦🇺"},
	"new zealand":    {Code: "NZ", Currency: "NZD", Flag: "🇳🇿"},
	"germany":        {Code: "DE", Currency: "EUR", Flag: "🇩🇪"},
	"france":         {Code: "FR", Currency: "EUR", Flag: "🇫🇷"},
	"ireland":        {Code: "IE", Currency: "EUR", Flag: "🇮🇪"},
	"netherlands":    {Code: "NL", Currency: "EUR", Flag: "🇳🇱"},
	"italy":          {Code: "IT", Currency: "EUR", Flag: "🇮🇹"},
	"spain":          {Code: "ES", Currency: "EUR", Flag: "🇪🇸"},
	"sweden":         {Code: "SE", Currency: "SEK", Flag: "🇸🇪"},
	"switzerland":    {Code: "CH", Currency: "CHF", Flag: "🇨🇭"},
	"singapore":      {Code: "SG", Currency: "SGD", Flag: "🇸🇬"},
	"japan":          {Code: "JP", Currency: "JPY", Flag: "🇯🇵"},
	"china":          {Code: "CN", Currency: "CNY", Flag: "🇨🇳"},
	"india":          {Code: "IN", Currency: "INR", Flag: "🇮🇳"},
	"malaysia":       {Code: "MY", Currency: "MYR", Flag: "🇲🇾"},
	"dubai":          {Code: "AE", Currency: "AED", Flag: "🇦🇪"},
}

// CountryInfoFor returns the defaults for a country name. Unrecognized names
// get a code derived from the first two letters and a generic globe glyph.
func CountryInfoFor(name string) CountryInfo {
	if info, ok := knownCountries[strings.ToLower(strings.TrimSpace(name))]; ok {
		return info
	}

	code := deriveCode(name)
	return CountryInfo{Code: code, Currency: "USD", Flag: "🌍"}
}

func deriveCode(name string) string {
	var letters []rune
	for _, r := range strings.ToUpper(strings.TrimSpace(name)) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
			if len(letters) == 2 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return "XX"
	}
	return string(letters)
}
