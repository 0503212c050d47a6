package checkoutwizard

import (
	"strconv"
	"strings"
)

// FieldName is the closed set of form fields the wizard knows about.
// Updates dispatch through normalizers below, so a field that is not
// listed here cannot be written at all, let alone bypass normalization.
type FieldName string

const (
	FieldQuantity     FieldName = "quantity"
	FieldCustomerName FieldName = "customerName"
	FieldEmail        FieldName = "email"
	FieldAddress      FieldName = "address"
	FieldCity         FieldName = "city"
	FieldPostalCode   FieldName = "postalCode"
	FieldCardName     FieldName = "cardName"
	FieldCardNumber   FieldName = "cardNumber"
	FieldExpiryDate   FieldName = "expiryDate"
	FieldCVC          FieldName = "cvc"
	FieldInstallments FieldName = "installments"
)

const maxInstallments = 24

type fieldNormalizer func(form *FormData, raw string, maxQuantity int)

var fieldNormalizers = map[FieldName]fieldNormalizer{
	FieldQuantity: func(form *FormData, raw string, maxQuantity int) {
		form.Quantity = clampInt(parseIntOrDefault(raw, 1), 1, maxQuantity)
	},
	FieldCustomerName: func(form *FormData, raw string, _ int) {
		form.CustomerName = raw
	},
	FieldEmail: func(form *FormData, raw string, _ int) {
		form.Email = raw
	},
	FieldAddress: func(form *FormData, raw string, _ int) {
		form.Address = raw
	},
	FieldCity: func(form *FormData, raw string, _ int) {
		form.City = raw
	},
	FieldPostalCode: func(form *FormData, raw string, _ int) {
		form.PostalCode = raw
	},
	FieldCardName: func(form *FormData, raw string, _ int) {
		form.CardName = raw
	},
	FieldCardNumber: func(form *FormData, raw string, _ int) {
		form.CardNumber = NormalizeCardNumber(raw)
	},
	FieldExpiryDate: func(form *FormData, raw string, _ int) {
		form.ExpiryDate = NormalizeExpiryDate(raw)
	},
	FieldCVC: func(form *FormData, raw string, _ int) {
		form.CVC = NormalizeCVC(raw)
	},
	FieldInstallments: func(form *FormData, raw string, _ int) {
		form.Installments = clampInt(parseIntOrDefault(raw, 1), 1, maxInstallments)
	},
}

// NormalizeCardNumber strips everything but digits and regroups them in
// blocks of 4, separated by single spaces. Already-canonical input is a
// fixed point of this function.
func NormalizeCardNumber(raw string) string {
	digits := stripNonDigits(raw)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeExpiryDate strips non-digits, inserts the slash after the
// month and truncates to the 5-character MM/YY form.
func NormalizeExpiryDate(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 2 {
		digits = digits[:2] + "/" + digits[2:]
	}
	if len(digits) > 5 {
		digits = digits[:5]
	}
	return digits
}

// NormalizeCVC strips non-digits and truncates to 4 characters.
func NormalizeCVC(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits
}

func parseIntOrDefault(raw string, def int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return value
}

func clampInt(value int, low int, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
