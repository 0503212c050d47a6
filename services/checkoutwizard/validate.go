package checkoutwizard

import (
	"regexp"
	"strconv"
	"time"
)

var (
	emailPattern      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	postalCodePattern = regexp.MustCompile(`^\d{5,6}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvcPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate is the per-step validation engine. It is a pure function of
// the step, the form and the supplied reference time; an empty result
// means the step may advance. Steps 1, 2 and 5 have no field rules:
// step 1 is gated by the consent checkboxes, quantity is pre-clamped
// valid and the summary is read-only.
func Validate(step int, form FormData, now time.Time) map[string]string {
	errors := map[string]string{}

	switch step {
	case StepDelivery:
		if form.CustomerName == "" {
			errors[string(FieldCustomerName)] = "Name is mandatory"
		}
		if !emailPattern.MatchString(form.Email) {
			errors[string(FieldEmail)] = "Invalid email address"
		}
		if form.Address == "" {
			errors[string(FieldAddress)] = "Address is mandatory"
		}
		if form.City == "" {
			errors[string(FieldCity)] = "City is mandatory"
		}
		if !postalCodePattern.MatchString(form.PostalCode) {
			errors[string(FieldPostalCode)] = "Invalid postal code"
		}
	case StepPayment:
		if form.CardName == "" {
			errors[string(FieldCardName)] = "Name on card is mandatory"
		}
		if !IsLuhnValid(stripNonDigits(form.CardNumber)) {
			errors[string(FieldCardNumber)] = "Invalid card number"
		}
		if !isExpiryValid(form.ExpiryDate, now) {
			errors[string(FieldExpiryDate)] = "Invalid expiry date (MM/YY)"
		}
		if !cvcPattern.MatchString(form.CVC) {
			errors[string(FieldCVC)] = "Invalid CVC"
		}
	}

	return errors
}

// IsLuhnValid reports whether the digit string passes the Luhn checksum:
// scanning from the rightmost digit, every second digit is doubled
// (minus 9 when the double exceeds 9) and the grand total must be
// divisible by 10. Empty input or any non-digit makes it invalid.
func IsLuhnValid(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		ch := cardNumber[i]
		if ch < '0' || ch > '9' {
			return false
		}
		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// isExpiryValid accepts MM/YY with a real month that is not strictly
// before the calendar month of the reference time. Two-digit years are
// interpreted as 20YY.
func isExpiryValid(expiryDate string, now time.Time) bool {
	match := expiryPattern.FindStringSubmatch(expiryDate)
	if match == nil {
		return false
	}

	month, _ := strconv.Atoi(match[1])
	yearShort, _ := strconv.Atoi(match[2])
	year := 2000 + yearShort

	if year != now.Year() {
		return year > now.Year()
	}

	return time.Month(month) >= now.Month()
}
