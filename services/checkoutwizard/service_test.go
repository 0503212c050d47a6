package checkoutwizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/checkoutwizard/lib/mylog"
	"github.com/MarcGrol/checkoutwizard/lib/mypublisher"
	"github.com/MarcGrol/checkoutwizard/lib/mystore"
	"github.com/MarcGrol/checkoutwizard/lib/mytime"
	"github.com/MarcGrol/checkoutwizard/lib/myuuid"
	"github.com/MarcGrol/checkoutwizard/services/tokenprovider"
	"github.com/MarcGrol/checkoutwizard/services/transaction"
)

func TestTokenFetchAfterCloseIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c := context.TODO()
	sessionStore, _, _ := mystore.New[CheckoutSession](c)
	tokens := tokenprovider.NewMockProvider(ctrl)
	nower := mytime.NewMockNower(ctrl)
	sut := newTestService(ctrl, sessionStore, tokens, nower)

	// given: the wizard was closed before the slow fetch returned
	session := sessionWithTokens("sess-stale")
	session.IsOpen = false
	session.ConsentTokens = nil
	_ = sessionStore.Put(c, session.UID, session)

	tokens.EXPECT().FetchAcceptance(gomock.Any()).Return(exampleArtifacts, nil)

	// when
	sut.loadConsentTokens(c, "sess-stale")

	// then
	stored, _, _ := sessionStore.Get(c, "sess-stale")
	assert.Nil(t, stored.ConsentTokens)
}

func TestTokenFetchForVanishedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c := context.TODO()
	sessionStore, _, _ := mystore.New[CheckoutSession](c)
	tokens := tokenprovider.NewMockProvider(ctrl)
	nower := mytime.NewMockNower(ctrl)
	sut := newTestService(ctrl, sessionStore, tokens, nower)

	// given
	tokens.EXPECT().FetchAcceptance(gomock.Any()).Return(exampleArtifacts, nil)

	// when: must not panic or create a session out of thin air
	sut.loadConsentTokens(c, "never-existed")

	// then
	_, exists, _ := sessionStore.Get(c, "never-existed")
	assert.False(t, exists)
}

func TestComposeTransactionRequest(t *testing.T) {
	session := sessionReadyToPay("sess-compose")
	session.FormData.Installments = 12

	req := composeTransactionRequest(session)

	assert.Equal(t, "Pending", req.State)
	assert.Equal(t, "prod-123", req.ProductID)
	assert.Equal(t, 2, req.QuantityPurchased)
	assert.Equal(t, "marc@home.nl", req.Customer.Email)
	assert.Equal(t, "Marc", req.Customer.Fullname)
	assert.Equal(t, "Utrecht", req.DeliveryDetails.City)

	// Card number travels without its display grouping
	assert.Equal(t, "4532015112830366", req.CardDetails.Number)
	assert.Equal(t, "12", req.CardDetails.ExpMonth)
	assert.Equal(t, "30", req.CardDetails.ExpYear)
	assert.Equal(t, 12, req.CardDetails.Quotes)

	assert.Equal(t, "token-privacy", req.AcceptanceToken)
	assert.Equal(t, "token-personal-data", req.AcceptPersonalData)
}

func TestComposeTransactionRequestWithoutTokens(t *testing.T) {
	session := sessionReadyToPay("sess-compose-bare")
	session.ConsentTokens = nil

	req := composeTransactionRequest(session)

	assert.Equal(t, "", req.AcceptanceToken)
	assert.Equal(t, "", req.AcceptPersonalData)
}

func TestTotalInCents(t *testing.T) {
	session := sessionReadyToPay("sess-total")

	// 2 x 14900 plus the delivery fee
	assert.Equal(t, int64(30300), session.TotalInCents())

	session.Product = nil
	assert.Equal(t, int64(0), session.TotalInCents())
}

func newTestService(ctrl *gomock.Controller, sessionStore mystore.Store[CheckoutSession], tokens *tokenprovider.MockProvider, nower *mytime.MockNower) *service {
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	return newService(sessionStore, NewMockProductGetter(ctrl), tokens, transaction.NewMockCreator(ctrl),
		mypublisher.NewMockPublisher(ctrl), nower, myuuid.NewMockUUIDer(ctrl), mylog.New("checkoutwizard"))
}
