package checkoutwizard

import "strings"

// DetectBrand derives the payment network from the leading digits of a
// card number. Input may still contain the display grouping spaces.
func DetectBrand(cardNumber string) CardBrand {
	digits := stripNonDigits(cardNumber)

	if strings.HasPrefix(digits, "4") {
		return CardBrandVisa
	}

	if len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5' {
		return CardBrandMastercard
	}

	return CardBrandUnknown
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
