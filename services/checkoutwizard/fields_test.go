package checkoutwizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCardNumber(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"groups per four", "4111111111111111", "4111 1111 1111 1111"},
		{"strips dashes", "4111-1111-1111-1111", "4111 1111 1111 1111"},
		{"canonical input is a fixed point", "4111 1111 1111 1111", "4111 1111 1111 1111"},
		{"no trailing space after full group", "41111111", "4111 1111"},
		{"partial group", "411111", "4111 11"},
		{"empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCardNumber(tc.raw))
		})
	}
}

func TestNormalizeExpiryDate(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"slash inserted after month", "1230", "12/30"},
		{"existing slash preserved via digits", "12/30", "12/30"},
		{"truncated to five characters", "123456", "12/34"},
		{"short input untouched", "12", "12"},
		{"single digit", "1", "1"},
		{"empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeExpiryDate(tc.raw))
		})
	}
}

func TestNormalizeCVC(t *testing.T) {
	assert.Equal(t, "123", NormalizeCVC("123"))
	assert.Equal(t, "1234", NormalizeCVC("12345"))
	assert.Equal(t, "123", NormalizeCVC("1a2b3c"))
	assert.Equal(t, "", NormalizeCVC("abc"))
}

func TestQuantityNormalizer(t *testing.T) {
	const stock = 3

	testCases := []struct {
		name string
		raw  string
		want int
	}{
		{"within stock", "2", 2},
		{"clamped to stock", "10", stock},
		{"floored at one", "0", 1},
		{"negative floored at one", "-5", 1},
		{"non-numeric falls back to one", "abc", 1},
		{"surrounding whitespace accepted", " 2 ", 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := initialFormData()
			fieldNormalizers[FieldQuantity](&form, tc.raw, stock)
			assert.Equal(t, tc.want, form.Quantity)
		})
	}
}

func TestInstallmentsNormalizer(t *testing.T) {
	form := initialFormData()

	fieldNormalizers[FieldInstallments](&form, "12", 1)
	assert.Equal(t, 12, form.Installments)

	fieldNormalizers[FieldInstallments](&form, "36", 1)
	assert.Equal(t, 24, form.Installments)

	fieldNormalizers[FieldInstallments](&form, "0", 1)
	assert.Equal(t, 1, form.Installments)
}

func TestEveryFieldHasANormalizer(t *testing.T) {
	fields := []FieldName{
		FieldQuantity, FieldCustomerName, FieldEmail, FieldAddress, FieldCity,
		FieldPostalCode, FieldCardName, FieldCardNumber, FieldExpiryDate,
		FieldCVC, FieldInstallments,
	}
	for _, field := range fields {
		assert.Contains(t, fieldNormalizers, field, string(field))
	}
}
