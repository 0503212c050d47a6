package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/checkoutwizard/lib/myerrors"
	"github.com/MarcGrol/checkoutwizard/lib/myhttpclient"
)

type client struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) Creator {
	return &client{
		baseURL: baseURL,
		sender:  sender,
	}
}

func (cl *client) CreateTransaction(c context.Context, req CreateTransactionRequest) (CreateTransactionResponse, error) {
	url := fmt.Sprintf("%s/transactions", cl.baseURL)

	reqPayload, err := json.Marshal(req)
	if err != nil {
		return CreateTransactionResponse{}, myerrors.NewInternalError(fmt.Errorf("error marshalling transaction request: %s", err))
	}

	httpStatus, respPayload, err := cl.sender.Send(c, http.MethodPost, url, reqPayload)
	if err != nil {
		return CreateTransactionResponse{}, myerrors.NewUnavailableError(fmt.Errorf("error calling transaction service: %s", err))
	}

	resp := CreateTransactionResponse{}
	err = json.Unmarshal(respPayload, &resp)
	if err != nil {
		return CreateTransactionResponse{}, myerrors.NewInternalError(fmt.Errorf("invalid response from transaction service (status %d)", httpStatus))
	}

	// A non-2xx response still carries the service's message: surface it
	// as a logical failure, not a transport error.
	if httpStatus < http.StatusOK || httpStatus >= http.StatusMultipleChoices {
		resp.Success = false
		if resp.Message == "" {
			resp.Message = fmt.Sprintf("transaction service returned status %d", httpStatus)
		}
	}

	return resp, nil
}
