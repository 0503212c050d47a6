package tokenprovider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/checkoutwizard/lib/myhttpclient"
)

const merchantPayload = `{
	"data": {
		"id": 1234,
		"name": "Example shop",
		"presigned_acceptance": {
			"acceptance_token": "token-privacy",
			"permalink": "https://example.com/privacy.pdf",
			"type": "END_USER_POLICY"
		},
		"presigned_personal_data_auth": {
			"acceptance_token": "token-personal-data",
			"permalink": "https://example.com/personal-data.pdf",
			"type": "PERSONAL_DATA_AUTH"
		}
	}
}`

func TestFetchAcceptance(t *testing.T) {

	t.Run("Direct client parses merchant response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "https://pay.example.com/v1/merchants/pub_test_123", nil).
			Return(200, []byte(merchantPayload), nil)

		// when
		client := NewDirectClient("https://pay.example.com", "pub_test_123", sender)
		artifacts, err := client.FetchAcceptance(context.TODO())

		// then
		assert.NoError(t, err)
		assert.Equal(t, "token-privacy", artifacts.PrivacyPolicyToken)
		assert.Equal(t, "https://example.com/privacy.pdf", artifacts.PrivacyPolicyLink)
		assert.Equal(t, "token-personal-data", artifacts.PersonalDataAuthToken)
		assert.Equal(t, "https://example.com/personal-data.pdf", artifacts.PersonalDataAuthLink)
	})

	t.Run("Proxied client prefixes the api path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "https://proxy.example.com/api/v1/merchants/pub_test_123", nil).
			Return(200, []byte(merchantPayload), nil)

		// when
		client := NewProxiedClient("https://proxy.example.com", "pub_test_123", sender)
		_, err := client.FetchAcceptance(context.TODO())

		// then
		assert.NoError(t, err)
	})

	t.Run("Transport error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, gomock.Any(), nil).
			Return(0, nil, assert.AnError)

		// when
		client := NewDirectClient("https://pay.example.com", "pub_test_123", sender)
		_, err := client.FetchAcceptance(context.TODO())

		// then
		assert.Error(t, err)
	})

	t.Run("Unexpected status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, gomock.Any(), nil).
			Return(401, []byte(`{"error":"unauthorized"}`), nil)

		// when
		client := NewDirectClient("https://pay.example.com", "wrong_key", sender)
		_, err := client.FetchAcceptance(context.TODO())

		// then
		assert.Error(t, err)
	})
}
