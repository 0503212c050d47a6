package wizardevents

const (
	TopicName             = "checkoutwizard"
	checkoutStartedName   = TopicName + ".started"
	checkoutCompletedName = TopicName + ".completed"
	checkoutAbandonedName = TopicName + ".abandoned"
)

// CheckoutStarted is published when a buyer opens the wizard for a product.
type CheckoutStarted struct {
	SessionUID    string
	ProductUID    string
	AmountInCents int64
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.SessionUID
}

// CheckoutCompleted is published when a payment submission has resolved.
type CheckoutCompleted struct {
	SessionUID     string
	ProductUID     string
	TransactionUID string
	Success        bool
	Message        string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.SessionUID
}

// CheckoutAbandoned is published when the wizard is closed before a
// successful payment.
type CheckoutAbandoned struct {
	SessionUID string
	ProductUID string
	LastStep   int
}

func (e CheckoutAbandoned) GetEventTypeName() string {
	return checkoutAbandonedName
}

func (e CheckoutAbandoned) GetAggregateName() string {
	return e.SessionUID
}
