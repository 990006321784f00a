package analytics

import (
	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"linkhub/internal/pkg/visitor"
)

// convertCountryNames swaps stored ISO codes for display names. Codes the
// country database does not know are upper-cased and passed through.
func convertCountryNames(items []CountryCount) []CountryCount {
	if len(items) == 0 {
		return []CountryCount{}
	}

	caser := cases.Upper(language.AmericanEnglish)
	countries := gountries.New()

	result := make([]CountryCount, len(items))
	for i, item := range items {
		if item.Country == visitor.UnknownCountry {
			result[i] = item
			continue
		}

		country, err := countries.FindCountryByAlpha(item.Country)
		if err != nil {
			result[i] = CountryCount{Country: caser.String(item.Country), Count: item.Count}
			continue
		}
		result[i] = CountryCount{Country: country.Name.Common, Count: item.Count}
	}
	return result
}
