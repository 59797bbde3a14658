package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/stretchr/testify/assert"
)

func bareCatalogService() *CatalogService {
	return &CatalogService{logger: util.GetLogger()}
}

type fakeStockCache struct {
	stocks map[string]int
	err    error
}

func (f *fakeStockCache) GetStock(_ context.Context, productID string) (int, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	stock, ok := f.stocks[productID]
	return stock, ok, nil
}

func TestCachedStockOverridesStoreCount(t *testing.T) {
	cache := &fakeStockCache{stocks: map[string]int{"p1": 2}}
	p := models.Product{ID: "p1", Stock: 5}

	overlayCachedStock(context.Background(), cache, &p)
	assert.Equal(t, 2, p.Stock)
}

func TestStockReadFallsBackOnCacheMiss(t *testing.T) {
	p := models.Product{ID: "p1", Stock: 5}

	overlayCachedStock(context.Background(), &fakeStockCache{}, &p)
	assert.Equal(t, 5, p.Stock)
}

func TestStockReadFallsBackOnCacheError(t *testing.T) {
	cache := &fakeStockCache{err: errors.New("connection refused")}
	p := models.Product{ID: "p1", Stock: 5}

	overlayCachedStock(context.Background(), cache, &p)
	assert.Equal(t, 5, p.Stock)

	overlayCachedStock(context.Background(), nil, &p)
	assert.Equal(t, 5, p.Stock)
}

func TestCreateProductRequiresName(t *testing.T) {
	s := bareCatalogService()

	_, err := s.CreateProduct(context.Background(), testSession(), CreateProductInput{
		Name:  "   ",
		Price: 100,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	s := bareCatalogService()

	_, err := s.CreateProduct(context.Background(), testSession(), CreateProductInput{
		Name:  "Guitar",
		Price: -1,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateProduct(context.Background(), testSession(), CreateProductInput{
		Name:  "Guitar",
		Price: math.NaN(),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCategoryValidation(t *testing.T) {
	s := &TeamService{logger: util.GetLogger()}

	_, err := s.CreateCategory(context.Background(), testSession(), "", &ImageUpload{Size: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateCategory(context.Background(), testSession(), "Strings", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateMemberValidation(t *testing.T) {
	s := &TeamService{logger: util.GetLogger()}

	_, err := s.CreateMember(context.Background(), testSession(), "", "", "cat-1", &ImageUpload{Size: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateMember(context.Background(), testSession(), "Ada", "", "", &ImageUpload{Size: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateMember(context.Background(), testSession(), "Ada", "", "cat-1", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateContactMessageValidation(t *testing.T) {
	s := &ContactService{logger: util.GetLogger()}

	for _, tc := range []struct{ name, email, message string }{
		{"", "a@b.c", "hello"},
		{"A", "", "hello"},
		{"A", "a@b.c", "   "},
	} {
		_, err := s.CreateMessage(context.Background(), tc.name, tc.email, tc.message)
		assert.ErrorIs(t, err, ErrValidation)
	}
}
