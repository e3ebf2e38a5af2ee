package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfwise/internal/domain"
	"shelfwise/internal/repos"
	"shelfwise/internal/validate"
)

var ErrMissingID = errors.New("product id is required")

// PageSize is the fixed inventory listing page size.
const PageSize = 6

// ProductForm carries the raw string fields of the add-product form.
type ProductForm struct {
	Name       string
	Price      string
	Quantity   string
	SKU        string
	LowStockAt string
}

type ProductService struct {
	Products *repos.ProductRepo
}

func NewProductService(products *repos.ProductRepo) *ProductService {
	return &ProductService{Products: products}
}

// Create validates the form and inserts a product owned by ownerID. The owner
// always comes from the authenticated session, never from the form. On
// validation failure the validate.Errors come back unchanged and nothing is
// written.
func (s *ProductService) Create(ownerID string, form ProductForm) (domain.Product, error) {
	in, verrs := validate.Product(form.Name, form.Price, form.Quantity, form.SKU, form.LowStockAt)
	if verrs != nil {
		return domain.Product{}, verrs
	}

	p := domain.Product{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       in.Name,
		SKU:        in.SKU,
		Price:      in.Price,
		Quantity:   in.Quantity,
		LowStockAt: in.LowStockAt,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Products.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Delete removes the product if it belongs to ownerID. A missing id is an
// error; an id that matches nothing (or someone else's row) is not.
func (s *ProductService) Delete(ownerID, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return s.Products.DeleteOwned(ownerID, id)
}

// List returns one page of the owner's products plus the total match count.
// Pages are 1-based and clamped; q narrows by case-insensitive substring.
func (s *ProductService) List(ownerID, q string, page int) ([]domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize
	return s.Products.Search(ownerID, strings.TrimSpace(q), PageSize, offset)
}
