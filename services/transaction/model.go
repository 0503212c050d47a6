package transaction

// CreateTransactionRequest is the payload the remote transaction service
// accepts. Field names are fixed by that service's contract.
type CreateTransactionRequest struct {
	QuantityPurchased  int             `json:"quantityPurchased"`
	State              string          `json:"state"`
	ProductID          string          `json:"productId"`
	Customer           Customer        `json:"customer"`
	DeliveryDetails    DeliveryDetails `json:"deliveryDetails"`
	CardDetails        CardDetails     `json:"cardDetails"`
	AcceptanceToken    string          `json:"acceptance_token"`
	AcceptPersonalData string          `json:"accept_personal_data"`
}

type Customer struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

type DeliveryDetails struct {
	City       string `json:"city"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

type CardDetails struct {
	Number     string `json:"number"`
	CVC        string `json:"cvc"`
	ExpMonth   string `json:"exp_month"`
	ExpYear    string `json:"exp_year"`
	CardHolder string `json:"card_holder"`
	Quotes     int    `json:"quotes"`
}

type CreateTransactionResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *TransactionData `json:"data,omitempty"`
}

type TransactionData struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Price  int64  `json:"price"`
	Email  string `json:"email"`
	Status string `json:"status"`
}
