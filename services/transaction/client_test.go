package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/checkoutwizard/lib/myhttpclient"
)

var exampleRequest = CreateTransactionRequest{
	QuantityPurchased: 2,
	State:             "Pending",
	ProductID:         "prod-123",
	Customer: Customer{
		Email:    "marc@home.nl",
		Fullname: "Marc",
	},
	DeliveryDetails: DeliveryDetails{
		City:       "Utrecht",
		Address:    "Main street 1",
		PostalCode: "12345",
	},
	CardDetails: CardDetails{
		Number:     "4532015112830366",
		CVC:        "123",
		ExpMonth:   "12",
		ExpYear:    "30",
		CardHolder: "M GROL",
		Quotes:     1,
	},
	AcceptanceToken:    "token-privacy",
	AcceptPersonalData: "token-personal-data",
}

func TestCreateTransaction(t *testing.T) {

	t.Run("Approved transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, "https://shop.example.com/transactions", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ string, body []byte) (int, []byte, error) {
				// The wire format is fixed by the remote service
				sent := map[string]any{}
				err := json.Unmarshal(body, &sent)
				assert.NoError(t, err)
				assert.Equal(t, "prod-123", sent["productId"])
				assert.Equal(t, "token-privacy", sent["acceptance_token"])
				assert.Equal(t, "token-personal-data", sent["accept_personal_data"])

				return 200, []byte(`{"success":true,"message":"Transaction approved","data":{"id":"trx-42","status":"APPROVED"}}`), nil
			})

		// when
		client := NewClient("https://shop.example.com", sender)
		resp, err := client.CreateTransaction(context.TODO(), exampleRequest)

		// then
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Transaction approved", resp.Message)
		assert.Equal(t, "trx-42", resp.Data.ID)
	})

	t.Run("Declined transaction with parseable error body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any()).
			Return(402, []byte(`{"success":false,"message":"Card declined"}`), nil)

		// when
		client := NewClient("https://shop.example.com", sender)
		resp, err := client.CreateTransaction(context.TODO(), exampleRequest)

		// then
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Card declined", resp.Message)
	})

	t.Run("Non-2xx without message gets a fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any()).
			Return(500, []byte(`{}`), nil)

		// when
		client := NewClient("https://shop.example.com", sender)
		resp, err := client.CreateTransaction(context.TODO(), exampleRequest)

		// then
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "transaction service returned status 500", resp.Message)
	})

	t.Run("Transport error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any()).
			Return(0, nil, assert.AnError)

		// when
		client := NewClient("https://shop.example.com", sender)
		_, err := client.CreateTransaction(context.TODO(), exampleRequest)

		// then
		assert.Error(t, err)
	})

	t.Run("Unparseable body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any()).
			Return(502, []byte(`<html>Bad gateway</html>`), nil)

		// when
		client := NewClient("https://shop.example.com", sender)
		_, err := client.CreateTransaction(context.TODO(), exampleRequest)

		// then
		assert.Error(t, err)
	})
}
