// Package listing scrapes property fields out of MLS listing-copy text to
// pre-populate a deal analysis. Extraction is best effort: whatever matches
// becomes a partial input record, everything else is reported as missing and
// defaults downstream. Tuned for the WEBForms SK/AB full listing copy
// format ("LP: $339,900  Location: Saskatoon  Tax Amt/Yr: $3,380 / 2024").
package listing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

// Extraction is the result of one scrape: a sparse input record plus
// descriptive fields and a summary of what was and was not found.
type Extraction struct {
	Inputs analyzer.DealInputs `json:"inputs"`

	Address       string  `json:"address,omitempty"`
	Neighbourhood string  `json:"neighbourhood,omitempty"`
	Beds          int     `json:"beds,omitempty"`
	Baths         float64 `json:"baths,omitempty"`
	SquareFeet    int     `json:"squareFeet,omitempty"`
	YearBuilt     int     `json:"yearBuilt,omitempty"`

	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

var (
	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bLP:\s*\$\s*([\d,]+)`),
		regexp.MustCompile(`(?i)\bList\s*Price:\s*\$\s*([\d,]+)`),
		regexp.MustCompile(`(?i)\bAsking\s*Price:\s*\$\s*([\d,]+)`),
		// fallback: first large dollar amount
		regexp.MustCompile(`\$\s*(\d{3,}(?:,\d{3})*)`),
	}
	mlsAddressRe   = regexp.MustCompile(`(?i)^(.*?)\s+(?:SK|AB)\d{6}`)
	civicAddressRe = regexp.MustCompile(`(?i)\b(\d{1,5}\s+[A-Za-z][A-Za-z0-9 ]{2,35}(?:Ave|St|Rd|Dr|Blvd|Cres|Way|Lane|Place|Pl|Ct|Court|Bay|Terrace|Trail|Gate|Park|View|Walk|Grove|Row|Square|Green|Hill|Manor|Mews|Path|Ridge|Run|Wood))\b`)
	photosPrefixRe = regexp.MustCompile(`(?i)^.*Listing\s*Photos?\s*`)
	locationRe     = regexp.MustCompile(`(?i)\bLocation:\s*([A-Za-z][A-Za-z\s]*?)(?:\s{2,}|\n|$)`)
	postalCodeRe   = regexp.MustCompile(`(?i)Postal\s*Code:\s*([A-Z]\d[A-Z]\s*\d[A-Z]\d)`)
	postalPrefixRe = regexp.MustCompile(`(?i)Postal\s*Code:\s*([A-Z])`)
	subTypeRe      = regexp.MustCompile(`(?i)\bSubType:\s*([A-Za-z\s]+?)(?:\s{2,}|\n|$)`)
	condoTypeRe    = regexp.MustCompile(`(?i)apartment|condo|condominium|strata|townhouse|town\s*house|row\s*house`)
	houseTypeRe    = regexp.MustCompile(`(?i)detached|semi-?detached|bungalow|house|bi-?level|two\s*stor`)
	condoWordRe    = regexp.MustCompile(`(?i)\bcondo\b|\bcondominium\b|\bapartment\b|\bstrata\b`)
	bedsRe         = regexp.MustCompile(`(?i)\bBeds?:\s*(\d)`)
	bathsRe        = regexp.MustCompile(`(?i)\bBaths?:\s*(\d(?:\.\d)?)`)
	sqftRe         = regexp.MustCompile(`(?i)\bSq\.?\s*Ft\.?:\s*([\d,]+)`)
	sqftSuffixRe   = regexp.MustCompile(`(?i)([\d,]+)\s*(?:sq\.?\s*ft|square\s*feet)`)
	yearBuiltRe    = regexp.MustCompile(`(?i)\bYear\s*Built:\s*(\d{4})`)
	taxRe          = regexp.MustCompile(`(?i)Tax\s*Amt\s*/\s*Yr:\s*\$?\s*([\d,]+)`)
	taxLooseRe     = regexp.MustCompile(`(?i)(?:Property\s*)?Tax(?:es)?\s*(?:Amt|Amount)?[^$\d]*\$?\s*([\d,]+(?:\.\d{2})?)`)
	condoFeeRe     = regexp.MustCompile(`(?i)(?:Condo|Strata|Maint(?:enance)?)\s*Fee[:\s]*\$?\s*([\d,]+(?:\.\d{2})?)`)
	hoodRe         = regexp.MustCompile(`(?i)\bNghbrhood:\s*([A-Za-z\s/]+?)(?:\s{2,}|\n|$)`)
	hoodLongRe     = regexp.MustCompile(`(?i)\bNeighbou?rhood:\s*([A-Za-z\s/]+?)(?:\s{2,}|\n|$)`)
	suiteRe        = regexp.MustCompile(`(?i)legal\s*suite|basement\s*suite|in-?law\s*suite|secondary\s*suite`)
	bsmtCountRe    = regexp.MustCompile(`(?i)Bsmt\s*Ste\s*#:\s*(\d)`)
	garageSuiteRe  = regexp.MustCompile(`(?i)garage\s*suite`)
	statedRentRe   = regexp.MustCompile(`(?i)(?:rental\s*income|rent(?:ed)?\s*for)[^\d$]*\$?\s*([\d,]+)`)
)

// Extract scrapes listing text into a partial input record. It never fails;
// a text with nothing recognizable yields empty inputs and a full missing
// list.
func Extract(text string) Extraction {
	var ex Extraction

	city := findGroup(locationRe, text)
	postal := findGroup(postalCodeRe, text)
	price := findPrice(text)
	address := findAddress(text, city, postal)
	mkt := findMarket(text)
	propType := findPropertyType(text)
	tax := findTax(text)
	condoFee := findCondoFee(text)
	units := findSuites(text)

	ex.Address = address
	ex.Neighbourhood = firstGroup(text, hoodRe, hoodLongRe)
	ex.Beds = parseIntGroup(bedsRe, text)
	ex.YearBuilt = parseIntGroup(yearBuiltRe, text)
	ex.SquareFeet = parseCommaInt(firstGroup(text, sqftRe, sqftSuffixRe))
	if s := findGroup(bathsRe, text); s != "" {
		ex.Baths, _ = strconv.ParseFloat(s, 64)
	}

	ex.Inputs = analyzer.DealInputs{
		Market:          mkt,
		PropertyType:    propType,
		Price:           float64(price),
		AnnualTax:       float64(tax),
		MonthlyCondoFee: float64(condoFee),
		Units:           units,
	}

	if address != "" {
		ex.Found = append(ex.Found, "Address: "+address)
	}
	if price > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("List Price: $%d", price))
	}
	if mkt != "" {
		ex.Found = append(ex.Found, "Market: "+mkt)
	}
	if ex.Neighbourhood != "" {
		ex.Found = append(ex.Found, "Neighbourhood: "+ex.Neighbourhood)
	}
	if propType != "" {
		ex.Found = append(ex.Found, "Type: "+string(propType))
	}
	if ex.Beds > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("Beds: %d", ex.Beds))
	}
	if ex.Baths > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("Baths: %g", ex.Baths))
	}
	if ex.SquareFeet > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("Size: %d sq ft", ex.SquareFeet))
	}
	if ex.YearBuilt > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("Year Built: %d", ex.YearBuilt))
	}
	if tax > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("Property Tax: $%d/yr", tax))
	}
	if condoFee > 0 {
		ex.Found = append(ex.Found, fmt.Sprintf("Condo Fee: $%d/mo", condoFee))
	}
	if len(units) > 0 {
		types := make([]string, len(units))
		for i, u := range units {
			types[i] = u.Type
		}
		ex.Found = append(ex.Found, "Suite detected: "+strings.Join(types, ", ")+" (set rent manually)")
	}

	if price == 0 {
		ex.Missing = append(ex.Missing, "list price")
	}
	if address == "" {
		ex.Missing = append(ex.Missing, "address")
	}
	if mkt == "" {
		ex.Missing = append(ex.Missing, "market (defaulting to "+market.DefaultMarket+")")
	}
	if tax == 0 {
		ex.Missing = append(ex.Missing, "property tax")
	}

	return ex
}

func findGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstGroup(text string, res ...*regexp.Regexp) string {
	for _, re := range res {
		if s := findGroup(re, text); s != "" {
			return s
		}
	}
	return ""
}

func parseIntGroup(re *regexp.Regexp, text string) int {
	n, _ := strconv.Atoi(findGroup(re, text))
	return n
}

func parseCommaInt(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}

// findPrice tries the labelled price patterns first, then falls back to the
// first large dollar amount. Values outside a plausible listing range are
// rejected so tax or fee figures never masquerade as the price.
func findPrice(text string) int {
	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			n := parseCommaInt(m[1])
			if n > 50000 && n < 5000000 {
				return n
			}
		}
	}
	return 0
}

func findAddress(text, city, postal string) string {
	var addr string
	if m := mlsAddressRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(photosPrefixRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		if len(candidate) > 3 && len(candidate) < 80 {
			addr = candidate
		}
	}
	if addr == "" {
		if m := civicAddressRe.FindStringSubmatch(text); m != nil {
			addr = strings.Join(strings.Fields(m[1]), " ")
		}
	}
	if addr == "" {
		return ""
	}

	parts := []string{addr}
	if city != "" {
		parts = append(parts, city)
	}
	if postal != "" {
		parts = append(parts, postal)
	}
	return strings.Join(parts, ", ")
}

// findMarket maps the Location field (or, failing that, any city mention or
// the postal-code prefix: S for SK, T for AB) to a market key.
func findMarket(text string) string {
	byCity := func(s string) string {
		switch {
		case strings.Contains(s, "calgary"):
			return "calgary"
		case strings.Contains(s, "edmonton"):
			return "calgary" // closest AB residential table
		case strings.Contains(s, "saskatoon"), strings.Contains(s, "prince albert"):
			return "saskatoon"
		}
		return ""
	}

	if loc := findGroup(locationRe, text); loc != "" {
		if mkt := byCity(strings.ToLower(loc)); mkt != "" {
			return mkt
		}
	}
	if mkt := byCity(strings.ToLower(text)); mkt != "" {
		return mkt
	}
	if m := postalPrefixRe.FindStringSubmatch(text); m != nil {
		switch strings.ToUpper(m[1]) {
		case "T":
			return "calgary"
		case "S":
			return "saskatoon"
		}
	}
	return ""
}

func findPropertyType(text string) analyzer.PropertyType {
	if st := findGroup(subTypeRe, text); st != "" {
		if condoTypeRe.MatchString(st) {
			return analyzer.PropertyCondo
		}
		if houseTypeRe.MatchString(st) {
			return analyzer.PropertyDetached
		}
	}
	if condoWordRe.MatchString(text) {
		return analyzer.PropertyCondo
	}
	return analyzer.PropertyDetached
}

func findTax(text string) int {
	for _, re := range []*regexp.Regexp{taxRe, taxLooseRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			n, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if n > 500 && n < 30000 {
				return int(n + 0.5)
			}
		}
	}
	return 0
}

func findCondoFee(text string) int {
	if m := condoFeeRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if n > 50 && n < 3000 {
			return int(n + 0.5)
		}
	}
	return 0
}

// findSuites detects secondary suites from description text. Detected
// suites are assumed non-conforming; a stated rental income, when
// plausible, is attached to the first suite.
func findSuites(text string) []analyzer.RentalUnit {
	var units []analyzer.RentalUnit
	if suiteRe.MatchString(text) {
		count := 1
		if m := bsmtCountRe.FindStringSubmatch(text); m != nil {
			count, _ = strconv.Atoi(m[1])
		}
		for i := 0; i < count; i++ {
			units = append(units, analyzer.RentalUnit{Type: market.Unit2BedNC})
		}
	}
	if garageSuiteRe.MatchString(text) {
		units = append(units, analyzer.RentalUnit{Type: market.Unit1BedNC})
	}

	if len(units) > 0 {
		if m := statedRentRe.FindStringSubmatch(text); m != nil {
			if r := parseCommaInt(m[1]); r > 300 && r < 5000 {
				units[0].Rent = float64(r)
			}
		}
	}
	return units
}
