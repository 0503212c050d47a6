package productcatalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/checkoutwizard/lib/myerrors"
	"github.com/MarcGrol/checkoutwizard/lib/mylog"
	"github.com/MarcGrol/checkoutwizard/lib/mystore"
	"github.com/MarcGrol/checkoutwizard/lib/mytime"
	"github.com/MarcGrol/checkoutwizard/lib/myuuid"
)

type service struct {
	productStore mystore.Store[Product]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Product], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		productStore: store,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

func (s *service) listProducts(c context.Context) ([]Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all products")

	products, err := s.productStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})

	return products, nil
}

func (s *service) getProduct(c context.Context, productUID string) (Product, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Fetch details of product %s", productUID)

	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID))
	}

	return product, nil
}

func (s *service) createProduct(c context.Context, p Product) (Product, error) {
	p.UID = s.uuider.Create()
	p.CreatedAt = s.nower.Now()

	s.logger.Log(c, p.UID, mylog.SeverityInfo, "Creating product %s (%s)", p.UID, p.Name)

	if p.Name == "" {
		return Product{}, myerrors.NewInvalidInputErrorf("missing mandatory field 'name'")
	}
	if p.PriceInCents <= 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("price must be positive")
	}
	if p.Quantity < 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("quantity must not be negative")
	}

	err := s.productStore.Put(c, p.UID, p)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}

	return p, nil
}

// GetProduct exposes catalog reads to other services
func (s *service) GetProduct(c context.Context, productUID string) (Product, bool, error) {
	return s.productStore.Get(c, productUID)
}
