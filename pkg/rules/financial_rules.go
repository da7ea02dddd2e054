package rules

import (
	"regexp"
	"strings"
)

var (
	// ISO 4217 currency codes, subset for common international commerce
	validCurrencyCodes = map[string]bool{
		"USD": true, "EUR": true, "GBP": true, "JPY": true, "AUD": true, "CAD": true,
		"CHF": true, "CNY": true, "SEK": true, "NZD": true, "MXN": true, "SGD": true,
		"HKD": true, "NOK": true, "KRW": true, "TRY": true, "INR": true, "BRL": true,
		"ZAR": true, "PLN": true, "CZK": true, "HUF": true, "ILS": true, "CLP": true,
		"PHP": true, "AED": true, "COP": true, "SAR": true, "MYR": true, "RON": true,
		"THB": true, "BGN": true, "ISK": true, "DKK": true,
	}

	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	ibanRegex         = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

	// IBAN lengths per country, SEPA members
	ibanLengths = map[string]int{
		"AD": 24, "AT": 20, "BE": 16, "BG": 22, "CH": 21, "CY": 28, "CZ": 24,
		"DE": 22, "DK": 18, "EE": 20, "ES": 24, "FI": 18, "FR": 27, "GB": 22,
		"GI": 23, "GR": 27, "HR": 21, "HU": 28, "IE": 22, "IS": 26, "IT": 27,
		"LI": 21, "LT": 20, "LU": 20, "LV": 21, "MC": 27, "MT": 31, "NL": 18,
		"NO": 15, "PL": 28, "PT": 25, "RO": 24, "SE": 24, "SI": 19, "SK": 24,
		"SM": 27, "VA": 22,
	}
)

func compact(value string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(value))
}

// IBAN validates an International Bank Account Number: shape, the country
// length where known, and the ISO 7064 mod-97 check digits.
// Spaces and dashes are ignored.
func IBAN(iban string) error {
	cleaned := strings.ToUpper(compact(iban))
	if !ibanRegex.MatchString(cleaned) {
		return violation("iban", ErrInvalidFormat, "must be a valid IBAN",
			map[string]any{"value": iban})
	}
	if want, ok := ibanLengths[cleaned[:2]]; ok && len(cleaned) != want {
		return violation("iban", ErrInvalidLength, "has a wrong length for its country",
			map[string]any{"value": iban, "country": cleaned[:2], "length": want})
	}

	// move the country code and check digits to the end, map letters to 10..35
	rearranged := cleaned[4:] + cleaned[:4]
	remainder := 0
	for _, r := range rearranged {
		if r >= 'A' {
			remainder = (remainder*100 + int(r-'A'+10)) % 97
		} else {
			remainder = (remainder*10 + int(r-'0')) % 97
		}
	}
	if remainder != 1 {
		return violation("iban", ErrInvalidChecksum, "has invalid check digits",
			map[string]any{"value": iban})
	}
	return nil
}

// Luhn validates card-like numbers of 12 to 19 digits with the Luhn checksum.
func Luhn(number string) error {
	cleaned := compact(number)
	if !numericStringRegex.MatchString(cleaned) || len(cleaned) < 12 || len(cleaned) > 19 {
		return violation("luhn", ErrInvalidFormat, "must be 12 to 19 digits",
			map[string]any{"value": number})
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	if sum%10 != 0 {
		return violation("luhn", ErrInvalidChecksum, "has an invalid checksum",
			map[string]any{"value": number})
	}
	return nil
}

// CurrencyCode accepts upper-case ISO 4217 codes from the supported set.
func CurrencyCode(code string) error {
	if !currencyCodeRegex.MatchString(code) || !validCurrencyCodes[code] {
		return violation("currency_code", ErrInvalidValue, "must be a valid ISO 4217 currency code",
			map[string]any{"value": code})
	}
	return nil
}

// RoutingNumber validates a US ABA routing number.
func RoutingNumber(number string) error {
	cleaned := compact(number)
	if len(cleaned) != 9 || !numericStringRegex.MatchString(cleaned) {
		return violation("routing_number", ErrInvalidFormat, "must be exactly 9 digits",
			map[string]any{"value": number})
	}

	weights := [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}
	sum := 0
	for i, digit := range cleaned {
		sum += int(digit-'0') * weights[i]
	}
	if sum%10 != 0 {
		return violation("routing_number", ErrInvalidChecksum, "has an invalid checksum",
			map[string]any{"value": number})
	}
	return nil
}

// SEPAIBAN accepts valid IBANs issued in a SEPA country.
func SEPAIBAN(iban string) error {
	if err := IBAN(iban); err != nil {
		return err
	}
	country := strings.ToUpper(compact(iban))[:2]
	if _, ok := ibanLengths[country]; !ok {
		return violation("sepa_iban", ErrInvalidValue, "must be issued in a SEPA country",
			map[string]any{"value": iban, "country": country})
	}
	return nil
}
