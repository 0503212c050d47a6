package productcatalog

import (
	"context"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/checkoutwizard/lib/mycontext"
	"github.com/MarcGrol/checkoutwizard/lib/myerrors"
	"github.com/MarcGrol/checkoutwizard/lib/myhttp"
	"github.com/MarcGrol/checkoutwizard/lib/mylog"
	"github.com/MarcGrol/checkoutwizard/lib/mystore"
	"github.com/MarcGrol/checkoutwizard/lib/mytime"
	"github.com/MarcGrol/checkoutwizard/lib/myuuid"
)

type productForm struct {
	Name         string `form:"name"`
	Description  string `form:"description"`
	PriceInCents int64  `form:"priceInCents"`
	Quantity     int    `form:"quantity"`
	ImageURL     string `form:"imageUrl"`
}

type WebService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store mystore.Store[Product], nower mytime.Nower, uuider myuuid.UUIDer) *WebService {
	logger := mylog.New("productcatalog")

	return &WebService{
		logger:  logger,
		service: newService(store, nower, uuider, logger),
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/product", s.listProductsPage()).Methods("GET")
	router.HandleFunc("/product", s.createProductPage()).Methods("POST")
	router.HandleFunc("/product/{productUID}", s.getProductPage()).Methods("GET")
}

// GetProduct is the read contract used by the checkout wizard
func (s *WebService) GetProduct(c context.Context, productUID string) (Product, bool, error) {
	return s.service.GetProduct(c, productUID)
}

func (s *WebService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *WebService) getProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, err := s.service.getProduct(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *WebService) createProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		pf := productForm{}
		err = formcodec.NewDecoder().Decode(&pf, r.Form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		product, err := s.service.createProduct(c, Product{
			Name:         pf.Name,
			Description:  pf.Description,
			PriceInCents: pf.PriceInCents,
			Quantity:     pf.Quantity,
			ImageURL:     pf.ImageURL,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}
