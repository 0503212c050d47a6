package tokenprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/checkoutwizard/lib/myerrors"
	"github.com/MarcGrol/checkoutwizard/lib/myhttpclient"
)

// merchantResponse mirrors the merchant endpoint of the payment platform.
type merchantResponse struct {
	Data struct {
		PresignedAcceptance       presignedArtifact `json:"presigned_acceptance"`
		PresignedPersonalDataAuth presignedArtifact `json:"presigned_personal_data_auth"`
	} `json:"data"`
}

type presignedArtifact struct {
	AcceptanceToken string `json:"acceptance_token"`
	Permalink       string `json:"permalink"`
}

type merchantClient struct {
	baseURL   string
	publicKey string
	sender    myhttpclient.HTTPSender
}

// NewDirectClient talks straight to the payment platform.
func NewDirectClient(baseURL string, publicKey string, sender myhttpclient.HTTPSender) Provider {
	return &merchantClient{
		baseURL:   baseURL,
		publicKey: publicKey,
		sender:    sender,
	}
}

func (p *merchantClient) FetchAcceptance(c context.Context) (AcceptanceArtifacts, error) {
	url := fmt.Sprintf("%s/v1/merchants/%s", p.baseURL, p.publicKey)

	httpStatus, respPayload, err := p.sender.Send(c, http.MethodGet, url, nil)
	if err != nil {
		return AcceptanceArtifacts{}, myerrors.NewUnavailableError(fmt.Errorf("error fetching merchant acceptance data: %s", err))
	}
	if httpStatus != http.StatusOK {
		return AcceptanceArtifacts{}, myerrors.NewUnavailableError(fmt.Errorf("merchant endpoint returned status %d", httpStatus))
	}

	resp := merchantResponse{}
	err = json.Unmarshal(respPayload, &resp)
	if err != nil {
		return AcceptanceArtifacts{}, myerrors.NewInternalError(fmt.Errorf("error parsing merchant response: %s", err))
	}

	return AcceptanceArtifacts{
		PrivacyPolicyToken:    resp.Data.PresignedAcceptance.AcceptanceToken,
		PrivacyPolicyLink:     resp.Data.PresignedAcceptance.Permalink,
		PersonalDataAuthToken: resp.Data.PresignedPersonalDataAuth.AcceptanceToken,
		PersonalDataAuthLink:  resp.Data.PresignedPersonalDataAuth.Permalink,
	}, nil
}

// NewProxiedClient routes the same merchant call through an intermediary
// host, for deployments where the payment platform is not directly
// reachable from this service.
func NewProxiedClient(proxyBaseURL string, publicKey string, sender myhttpclient.HTTPSender) Provider {
	return &merchantClient{
		baseURL:   proxyBaseURL + "/api",
		publicKey: publicKey,
		sender:    sender,
	}
}
