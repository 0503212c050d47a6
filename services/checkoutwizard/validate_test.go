package checkoutwizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/checkoutwizard/lib/mytime"
)

func TestValidateDeliveryStep(t *testing.T) {
	validForm := FormData{
		Quantity:     1,
		CustomerName: "Marc",
		Email:        "marc@home.nl",
		Address:      "Main street 1",
		City:         "Utrecht",
		PostalCode:   "12345",
		Installments: 1,
	}

	t.Run("Complete form has no errors", func(t *testing.T) {
		errors := Validate(StepDelivery, validForm, mytime.ExampleTime)
		assert.Empty(t, errors)
	})

	t.Run("Missing fields are all reported at once", func(t *testing.T) {
		errors := Validate(StepDelivery, FormData{}, mytime.ExampleTime)
		assert.Len(t, errors, 5)
		assert.Equal(t, "Name is mandatory", errors["customerName"])
		assert.Equal(t, "Invalid email address", errors["email"])
		assert.Equal(t, "Address is mandatory", errors["address"])
		assert.Equal(t, "City is mandatory", errors["city"])
		assert.Equal(t, "Invalid postal code", errors["postalCode"])
	})

	t.Run("Malformed email", func(t *testing.T) {
		form := validForm
		form.Email = "marc-at-home.nl"
		errors := Validate(StepDelivery, form, mytime.ExampleTime)
		assert.Equal(t, "Invalid email address", errors["email"])
	})

	t.Run("Postal code must be 5 or 6 digits", func(t *testing.T) {
		form := validForm
		for _, code := range []string{"1234", "1234567", "12a45"} {
			form.PostalCode = code
			errors := Validate(StepDelivery, form, mytime.ExampleTime)
			assert.Equal(t, "Invalid postal code", errors["postalCode"], code)
		}
		form.PostalCode = "123456"
		assert.Empty(t, Validate(StepDelivery, form, mytime.ExampleTime))
	})
}

func TestValidatePaymentStep(t *testing.T) {
	validForm := FormData{
		CardName:   "M GROL",
		CardNumber: "4532 0151 1283 0366",
		ExpiryDate: "12/30",
		CVC:        "123",
	}

	t.Run("Complete card form has no errors", func(t *testing.T) {
		errors := Validate(StepPayment, validForm, mytime.ExampleTime)
		assert.Empty(t, errors)
	})

	t.Run("Luhn failure rejects the card number", func(t *testing.T) {
		form := validForm
		form.CardNumber = "4532 0151 1283 0367"
		errors := Validate(StepPayment, form, mytime.ExampleTime)
		assert.Equal(t, "Invalid card number", errors["cardNumber"])
	})

	t.Run("Expiry boundaries against April 2025", func(t *testing.T) {
		testCases := []struct {
			expiry string
			valid  bool
		}{
			{"04/25", true},  // current month still valid
			{"03/25", false}, // previous month expired
			{"05/25", true},
			{"04/26", true},
			{"12/24", false},
			{"13/25", false}, // no such month
			{"00/25", false},
			{"4/25", false}, // month must be two digits
			{"", false},
		}
		for _, tc := range testCases {
			form := validForm
			form.ExpiryDate = tc.expiry
			errors := Validate(StepPayment, form, mytime.ExampleTime)
			if tc.valid {
				assert.Empty(t, errors, tc.expiry)
			} else {
				assert.Equal(t, "Invalid expiry date (MM/YY)", errors["expiryDate"], tc.expiry)
			}
		}
	})

	t.Run("CVC must be 3 or 4 digits", func(t *testing.T) {
		form := validForm
		for _, cvc := range []string{"12", "12345", "12a", ""} {
			form.CVC = cvc
			errors := Validate(StepPayment, form, mytime.ExampleTime)
			assert.Equal(t, "Invalid CVC", errors["cvc"], cvc)
		}
		form.CVC = "1234"
		assert.Empty(t, Validate(StepPayment, form, mytime.ExampleTime))
	})
}

func TestValidateOtherStepsHaveNoRules(t *testing.T) {
	for _, step := range []int{StepConsent, StepQuantity, StepSummary} {
		assert.Empty(t, Validate(step, FormData{}, mytime.ExampleTime))
	}
}

func TestIsLuhnValid(t *testing.T) {
	testCases := []struct {
		name       string
		cardNumber string
		valid      bool
	}{
		{"valid visa", "4532015112830366", true},
		{"off by one checksum", "4532015112830367", false},
		{"valid mastercard", "5500000000000004", true},
		{"single zero", "0", true},
		{"empty", "", false},
		{"non-digit", "4532a15112830366", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsLuhnValid(tc.cardNumber))
		})
	}
}
