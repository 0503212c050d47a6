package transaction

import "context"

//go:generate mockgen -source=api.go -package transaction -destination creator_mock.go Creator
type Creator interface {
	CreateTransaction(c context.Context, req CreateTransactionRequest) (CreateTransactionResponse, error)
}
