package checkoutwizard

import (
	"context"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/checkoutwizard/lib/mycontext"
	"github.com/MarcGrol/checkoutwizard/lib/myerrors"
	"github.com/MarcGrol/checkoutwizard/lib/myhttp"
	"github.com/MarcGrol/checkoutwizard/lib/mylog"
	"github.com/MarcGrol/checkoutwizard/lib/mypublisher"
	"github.com/MarcGrol/checkoutwizard/lib/mystore"
	"github.com/MarcGrol/checkoutwizard/lib/mytime"
	"github.com/MarcGrol/checkoutwizard/lib/myuuid"
	"github.com/MarcGrol/checkoutwizard/services/tokenprovider"
	"github.com/MarcGrol/checkoutwizard/services/transaction"
)

type openForm struct {
	ProductUID string `form:"productUid"`
}

type fieldForm struct {
	Name  string `form:"name"`
	Value string `form:"value"`
}

type acceptanceForm struct {
	Name  string `form:"name"`
	Value bool   `form:"value"`
}

type WebService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(sessionStore mystore.Store[CheckoutSession], catalog ProductGetter, tokens tokenprovider.Provider,
	transactions transaction.Creator, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer) *WebService {
	logger := mylog.New("checkoutwizard")

	return &WebService{
		logger:  logger,
		service: newService(sessionStore, catalog, tokens, transactions, publisher, nower, uuider, logger),
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/wizard", s.openWizardPage()).Methods("POST")
	router.HandleFunc("/wizard/{sessionUID}", s.getWizardPage()).Methods("GET")
	router.HandleFunc("/wizard/{sessionUID}", s.closeWizardPage()).Methods("DELETE")
	router.HandleFunc("/wizard/{sessionUID}/field", s.updateFieldPage()).Methods("PUT")
	router.HandleFunc("/wizard/{sessionUID}/acceptance", s.setAcceptancePage()).Methods("PUT")
	router.HandleFunc("/wizard/{sessionUID}/advance", s.advancePage()).Methods("PUT")
	router.HandleFunc("/wizard/{sessionUID}/retreat", s.retreatPage()).Methods("PUT")
	router.HandleFunc("/wizard/{sessionUID}/payment", s.submitPaymentPage()).Methods("POST")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *WebService) openWizardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, err := decodeForm[openForm](r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if form.ProductUID == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing productUid"))
			return
		}

		session, err := s.service.openSession(c, form.ProductUID)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) getWizardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		session, err := s.service.getSession(c, mux.Vars(r)["sessionUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) updateFieldPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, err := decodeForm[fieldForm](r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		session, err := s.service.updateField(c, mux.Vars(r)["sessionUID"], form.Name, form.Value)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) setAcceptancePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, err := decodeForm[acceptanceForm](r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		session, err := s.service.setAcceptance(c, mux.Vars(r)["sessionUID"], form.Name, form.Value)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) advancePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		session, err := s.service.advance(c, mux.Vars(r)["sessionUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) retreatPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		session, err := s.service.retreat(c, mux.Vars(r)["sessionUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) submitPaymentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		session, err := s.service.submitPayment(c, mux.Vars(r)["sessionUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s *WebService) closeWizardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.closeSession(c, mux.Vars(r)["sessionUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{})
	}
}

func decodeForm[T any](r *http.Request) (T, error) {
	var form T

	err := r.ParseForm()
	if err != nil {
		return form, myerrors.NewInvalidInputError(err)
	}

	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return form, myerrors.NewInvalidInputError(err)
	}

	return form, nil
}
