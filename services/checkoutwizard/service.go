package checkoutwizard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MarcGrol/checkoutwizard/lib/myerrors"
	"github.com/MarcGrol/checkoutwizard/lib/mylog"
	"github.com/MarcGrol/checkoutwizard/lib/mypublisher"
	"github.com/MarcGrol/checkoutwizard/lib/mystore"
	"github.com/MarcGrol/checkoutwizard/lib/mytime"
	"github.com/MarcGrol/checkoutwizard/lib/myuuid"
	"github.com/MarcGrol/checkoutwizard/services/productcatalog"
	"github.com/MarcGrol/checkoutwizard/services/tokenprovider"
	"github.com/MarcGrol/checkoutwizard/services/transaction"
	"github.com/MarcGrol/checkoutwizard/services/wizardevents"
)

//go:generate mockgen -source=service.go -package checkoutwizard -destination productgetter_mock.go ProductGetter
type ProductGetter interface {
	GetProduct(c context.Context, productUID string) (productcatalog.Product, bool, error)
}

type service struct {
	sessionStore mystore.Store[CheckoutSession]
	catalog      ProductGetter
	tokens       tokenprovider.Provider
	transactions transaction.Creator
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger

	tokenFetches sync.WaitGroup
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(sessionStore mystore.Store[CheckoutSession], catalog ProductGetter, tokens tokenprovider.Provider,
	transactions transaction.Creator, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer,
	logger mylog.Logger) *service {
	return &service{
		sessionStore: sessionStore,
		catalog:      catalog,
		tokens:       tokens,
		transactions: transactions,
		publisher:    publisher,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, wizardevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", wizardevents.TopicName, err)
	}

	return nil
}

// openSession starts a fresh checkout attempt for a product. Opening
// always resets: a new UID guarantees no state from an earlier attempt
// survives. The consent tokens are fetched in the background.
func (s *service) openSession(c context.Context, productUID string) (CheckoutSession, error) {
	product, found, err := s.catalog.GetProduct(c, productUID)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %s", productUID, err))
	}
	if !found {
		return CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID))
	}

	sessionUID := s.uuider.Create()
	session := newSession(sessionUID, s.nower.Now(), product)

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Open checkout wizard %s for product %s", sessionUID, productUID)

	err = s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		err := s.sessionStore.Put(c, sessionUID, session)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing session: %s", err))
		}

		err = s.publisher.Publish(c, wizardevents.TopicName, wizardevents.CheckoutStarted{
			SessionUID:    sessionUID,
			ProductUID:    product.UID,
			AmountInCents: product.PriceInCents,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	s.tokenFetches.Add(1)
	go func() {
		defer s.tokenFetches.Done()
		// Detached from the request: the session outlives this HTTP call
		s.loadConsentTokens(context.Background(), sessionUID)
	}()

	return session, nil
}

// loadConsentTokens completes the fetch-on-open half of the token
// lifecycle. When the provider is unreachable the tokens stay absent,
// which keeps step 1 blocked. A result that arrives after the session
// closed is discarded: it must not resurrect a closed session's consent.
func (s *service) loadConsentTokens(c context.Context, sessionUID string) {
	artifacts, err := s.tokens.FetchAcceptance(c)
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Consent tokens unavailable for session %s: %s", sessionUID, err)
		return
	}

	err = s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, exists, err := s.sessionStore.Get(c, sessionUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists || !session.IsOpen {
			s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Discarding consent tokens: session %s no longer open", sessionUID)
			return nil
		}

		now := s.nower.Now()
		session.ConsentTokens = &ConsentTokens{
			PrivacyPolicyToken:    artifacts.PrivacyPolicyToken,
			PersonalDataAuthToken: artifacts.PersonalDataAuthToken,
		}
		session.PolicyLinks = &PolicyLinks{
			PrivacyPolicy:    artifacts.PrivacyPolicyLink,
			PersonalDataAuth: artifacts.PersonalDataAuthLink,
		}
		session.LastModified = &now

		return s.sessionStore.Put(c, sessionUID, session)
	})
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Error storing consent tokens for session %s: %s", sessionUID, err)
	}
}

func (s *service) getSession(c context.Context, sessionUID string) (CheckoutSession, error) {
	session, found, err := s.sessionStore.Get(c, sessionUID)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}
	if !found {
		return CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("session with uid %s not found", sessionUID))
	}

	return session, nil
}

// updateField normalizes and stores a single form value. Editing a field
// clears that field's error; editing the card number re-derives the brand
// so it can never go stale.
func (s *service) updateField(c context.Context, sessionUID string, name string, value string) (CheckoutSession, error) {
	normalize, known := fieldNormalizers[FieldName(name)]
	if !known {
		return CheckoutSession{}, myerrors.NewInvalidInputErrorf("unknown field %q", name)
	}

	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getOpenSession(c, sessionUID)
		if err != nil {
			return err
		}

		normalize(&session.FormData, value, session.maxQuantity())

		if session.Errors != nil {
			delete(session.Errors, name)
		}

		if FieldName(name) == FieldCardNumber {
			session.CardBrand = DetectBrand(session.FormData.CardNumber)
		}

		now := s.nower.Now()
		session.LastModified = &now

		return s.sessionStore.Put(c, sessionUID, session)
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// setAcceptance flips one of the two consent checkboxes. While the
// consent tokens are absent the checkboxes are inert: without tokens a
// submission could never carry proof of consent.
func (s *service) setAcceptance(c context.Context, sessionUID string, name string, value bool) (CheckoutSession, error) {
	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getOpenSession(c, sessionUID)
		if err != nil {
			return err
		}

		if session.ConsentTokens == nil {
			return myerrors.NewInvalidInputErrorf("consent artifacts not available yet")
		}

		switch name {
		case "terms":
			session.Acceptance.Terms = value
		case "provider":
			session.Acceptance.Provider = value
		default:
			return myerrors.NewInvalidInputErrorf("unknown acceptance %q", name)
		}

		now := s.nower.Now()
		session.LastModified = &now

		return s.sessionStore.Put(c, sessionUID, session)
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// advance moves the wizard one step forward when the gate for the
// current step allows it. Validation problems are stored on the session
// and block the transition; they are not an error towards the caller.
func (s *service) advance(c context.Context, sessionUID string) (CheckoutSession, error) {
	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getOpenSession(c, sessionUID)
		if err != nil {
			return err
		}

		if session.Step == StepConsent {
			if !session.Acceptance.Terms || !session.Acceptance.Provider {
				return myerrors.NewInvalidInputErrorf("both consent boxes must be ticked")
			}
		} else {
			validationErrors := Validate(session.Step, session.FormData, s.nower.Now())
			if len(validationErrors) > 0 {
				session.Errors = validationErrors
				return s.sessionStore.Put(c, sessionUID, session)
			}
		}

		session.Errors = map[string]string{}
		if session.Step < StepSummary {
			session.Step++
		}

		now := s.nower.Now()
		session.LastModified = &now

		return s.sessionStore.Put(c, sessionUID, session)
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// retreat steps back, floored at step 1. Not allowed while a payment is
// in flight.
func (s *service) retreat(c context.Context, sessionUID string) (CheckoutSession, error) {
	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getOpenSession(c, sessionUID)
		if err != nil {
			return err
		}

		if session.PaymentStatus == PaymentStatusPending {
			return myerrors.NewInvalidInputErrorf("cannot navigate while payment is pending")
		}

		if session.Step > StepConsent {
			session.Step--
		}

		now := s.nower.Now()
		session.LastModified = &now

		return s.sessionStore.Put(c, sessionUID, session)
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// closeSession resets the aggregate to its closed state. Everything is
// cleared so nothing can leak into a later attempt; a consent fetch that
// is still underway will find the session closed and drop its result.
func (s *service) closeSession(c context.Context, sessionUID string) error {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Close checkout wizard %s", sessionUID)

	return s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, exists, err := s.sessionStore.Get(c, sessionUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists || !session.IsOpen {
			return nil
		}

		lastStep := session.Step
		succeeded := session.PaymentStatus == PaymentStatusSucceeded
		var productUID string
		if session.Product != nil {
			productUID = session.Product.UID
		}

		now := s.nower.Now()
		session = CheckoutSession{
			UID:           sessionUID,
			IsOpen:        false,
			CreatedAt:     session.CreatedAt,
			LastModified:  &now,
			Step:          StepConsent,
			FormData:      initialFormData(),
			Errors:        map[string]string{},
			CardBrand:     CardBrandUnknown,
			PaymentStatus: PaymentStatusIdle,
		}

		err = s.sessionStore.Put(c, sessionUID, session)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if !succeeded {
			err = s.publisher.Publish(c, wizardevents.TopicName, wizardevents.CheckoutAbandoned{
				SessionUID: sessionUID,
				ProductUID: productUID,
				LastStep:   lastStep,
			})
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
			}
		}

		return nil
	})
}

// submitPayment drives idle|failed -> pending -> succeeded|failed.
// The pending claim happens atomically inside the transaction, so a
// second submit while one is in flight is a no-op and the remote service
// sees exactly one request per user-initiated submission.
func (s *service) submitPayment(c context.Context, sessionUID string) (CheckoutSession, error) {
	var session CheckoutSession
	claimed := false

	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getOpenSession(c, sessionUID)
		if err != nil {
			return err
		}

		if session.Product == nil {
			// Not reachable through the wizard's own guards
			return myerrors.NewInvalidInputErrorf("session %s has no product", sessionUID)
		}

		if session.PaymentStatus == PaymentStatusPending || session.PaymentStatus == PaymentStatusSucceeded {
			return nil
		}

		session.PaymentStatus = PaymentStatusPending
		session.Errors = map[string]string{}
		now := s.nower.Now()
		session.LastModified = &now
		claimed = true

		return s.sessionStore.Put(c, sessionUID, session)
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	if !claimed {
		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Ignoring submit for session %s: payment already %s", sessionUID, session.PaymentStatus)
		return session, nil
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Submitting payment for session %s", sessionUID)

	resp, transportErr := s.transactions.CreateTransaction(c, composeTransactionRequest(session))

	return s.resolvePayment(c, sessionUID, resp, transportErr)
}

func (s *service) resolvePayment(c context.Context, sessionUID string, resp transaction.CreateTransactionResponse, transportErr error) (CheckoutSession, error) {
	succeeded := transportErr == nil && resp.Success

	message := resp.Message
	if transportErr != nil {
		message = transportErr.Error()
	}
	if !succeeded && message == "" {
		message = "Error processing transaction"
	}

	var transactionUID string
	if resp.Data != nil {
		transactionUID = resp.Data.ID
	}

	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		var exists bool
		session, exists, err = s.sessionStore.Get(c, sessionUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("session with uid %s not found", sessionUID))
		}

		if session.IsOpen {
			if succeeded {
				session.PaymentStatus = PaymentStatusSucceeded
				session.TransactionUID = transactionUID
			} else {
				session.PaymentStatus = PaymentStatusFailed
				if session.Errors == nil {
					session.Errors = map[string]string{}
				}
				session.Errors[GeneralErrorKey] = message
			}

			now := s.nower.Now()
			session.LastModified = &now

			err = s.sessionStore.Put(c, sessionUID, session)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		} else {
			// Closed while in flight: the remote transaction is the
			// source of truth, the local record stays closed.
			s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Session %s closed while payment was in flight", sessionUID)
		}

		var productUID string
		if session.Product != nil {
			productUID = session.Product.UID
		}

		err = s.publisher.Publish(c, wizardevents.TopicName, wizardevents.CheckoutCompleted{
			SessionUID:     sessionUID,
			ProductUID:     productUID,
			TransactionUID: transactionUID,
			Success:        succeeded,
			Message:        message,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Payment for session %s resolved to %s", sessionUID, session.PaymentStatus)

	return session, nil
}

func composeTransactionRequest(session CheckoutSession) transaction.CreateTransactionRequest {
	form := session.FormData

	expMonth, expYear := splitExpiry(form.ExpiryDate)

	// Absent tokens degrade to empty strings: the remote service is
	// authoritative on whether that is acceptable.
	var acceptanceToken, personalDataToken string
	if session.ConsentTokens != nil {
		acceptanceToken = session.ConsentTokens.PrivacyPolicyToken
		personalDataToken = session.ConsentTokens.PersonalDataAuthToken
	}

	return transaction.CreateTransactionRequest{
		QuantityPurchased: form.Quantity,
		State:             "Pending",
		ProductID:         session.Product.UID,
		Customer: transaction.Customer{
			Email:    form.Email,
			Fullname: form.CustomerName,
		},
		DeliveryDetails: transaction.DeliveryDetails{
			City:       form.City,
			Address:    form.Address,
			PostalCode: form.PostalCode,
		},
		CardDetails: transaction.CardDetails{
			Number:     strings.ReplaceAll(form.CardNumber, " ", ""),
			CVC:        form.CVC,
			ExpMonth:   expMonth,
			ExpYear:    expYear,
			CardHolder: form.CardName,
			Quotes:     form.Installments,
		},
		AcceptanceToken:    acceptanceToken,
		AcceptPersonalData: personalDataToken,
	}
}

func splitExpiry(expiryDate string) (string, string) {
	parts := strings.SplitN(expiryDate, "/", 2)
	if len(parts) != 2 {
		return expiryDate, ""
	}
	return parts[0], parts[1]
}

func (s *service) getOpenSession(c context.Context, sessionUID string) (CheckoutSession, error) {
	session, exists, err := s.sessionStore.Get(c, sessionUID)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}
	if !exists {
		return CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("session with uid %s not found", sessionUID))
	}
	if !session.IsOpen {
		return CheckoutSession{}, myerrors.NewInvalidInputErrorf("session %s is closed", sessionUID)
	}
	if session.Errors == nil {
		session.Errors = map[string]string{}
	}

	return session, nil
}
