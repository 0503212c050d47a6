package checkoutwizard

import (
	"time"

	"github.com/MarcGrol/checkoutwizard/services/productcatalog"
)

// The wizard walks a buyer through five screens. Advancing past a step is
// gated: step 1 on the consent checkboxes, steps 3 and 4 on validation.
const (
	StepConsent  = 1
	StepQuantity = 2
	StepDelivery = 3
	StepPayment  = 4
	StepSummary  = 5
)

type PaymentStatus string

const (
	PaymentStatusIdle      PaymentStatus = "idle"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type CardBrand string

const (
	CardBrandVisa       CardBrand = "VISA"
	CardBrandMastercard CardBrand = "MASTERCARD"
	CardBrandUnknown    CardBrand = "UNKNOWN"
)

// GeneralErrorKey is the reserved errors-key under which a payment
// failure message is reported.
const GeneralErrorKey = "general"

const deliveryFeeInCents = 500

type FormData struct {
	Quantity     int
	CustomerName string
	Email        string
	Address      string
	City         string
	PostalCode   string
	CardName     string
	CardNumber   string // canonical space-grouped digit string
	ExpiryDate   string // MM/YY
	CVC          string
	Installments int
}

type Acceptance struct {
	Terms    bool
	Provider bool
}

type ConsentTokens struct {
	PrivacyPolicyToken    string
	PersonalDataAuthToken string
}

// PolicyLinks are shown to the buyer next to the consent checkboxes.
// Display-only: they travel with the session but are not persisted.
type PolicyLinks struct {
	PrivacyPolicy    string
	PersonalDataAuth string
}

// CheckoutSession is the aggregate owning one checkout attempt. It is
// created when a buyer selects a product and reset when the wizard closes;
// nothing leaks into the next attempt because every open gets a fresh UID.
type CheckoutSession struct {
	UID            string
	IsOpen         bool
	CreatedAt      time.Time
	LastModified   *time.Time
	Product        *productcatalog.Product
	Step           int
	FormData       FormData
	Errors         map[string]string `datastore:"-"`
	CardBrand      CardBrand
	Acceptance     Acceptance
	ConsentTokens  *ConsentTokens
	PolicyLinks    *PolicyLinks `datastore:"-"`
	PaymentStatus  PaymentStatus
	TransactionUID string
}

func initialFormData() FormData {
	return FormData{
		Quantity:     1,
		Installments: 1,
	}
}

func newSession(uid string, createdAt time.Time, product productcatalog.Product) CheckoutSession {
	return CheckoutSession{
		UID:           uid,
		IsOpen:        true,
		CreatedAt:     createdAt,
		Product:       &product,
		Step:          StepConsent,
		FormData:      initialFormData(),
		Errors:        map[string]string{},
		CardBrand:     CardBrandUnknown,
		Acceptance:    Acceptance{},
		ConsentTokens: nil,
		PaymentStatus: PaymentStatusIdle,
	}
}

// maxQuantity is the stock limit frozen at session-open time
func (s CheckoutSession) maxQuantity() int {
	if s.Product == nil || s.Product.Quantity < 1 {
		return 1
	}
	return s.Product.Quantity
}

// TotalInCents is what the summary screen shows: items plus delivery fee.
func (s CheckoutSession) TotalInCents() int64 {
	if s.Product == nil {
		return 0
	}
	return int64(s.FormData.Quantity)*s.Product.PriceInCents + deliveryFeeInCents
}
