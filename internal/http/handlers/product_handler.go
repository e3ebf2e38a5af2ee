package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "shelfwise/internal/log"
	"shelfwise/internal/services"
	"shelfwise/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

// GET /products/new
func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "product_form", fiber.Map{
		"Errors": validate.Errors{},
		"Form":   services.ProductForm{},
	})
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	form := services.ProductForm{
		Name:       c.FormValue("name"),
		Price:      c.FormValue("price"),
		Quantity:   c.FormValue("quantity"),
		SKU:        c.FormValue("sku"),
		LowStockAt: c.FormValue("lowStockAt"),
	}

	created, err := h.Products.Create(u.ID, form)
	if err != nil {
		var verrs validate.Errors
		if errors.As(err, &verrs) {
			applog.Security(c, "product.create.invalid", map[string]any{"fields": verrs})
			c.Status(fiber.StatusBadRequest)
			return render(c, "product_form", fiber.Map{"Errors": verrs, "Form": form})
		}
		applog.Error(c, "product.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save the product. Please try again."})
	}

	applog.Audit(c, "product.create", map[string]any{"product_id": created.ID})
	return c.Redirect("/inventory")
}

// POST /products/delete with a hidden `id` field
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id := c.FormValue("id")

	err := h.Products.Delete(u.ID, id)
	if errors.Is(err, services.ErrMissingID) {
		return c.Status(fiber.StatusBadRequest).SendString("missing product id")
	}
	if err != nil {
		applog.Error(c, "product.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not delete the product. Please try again."})
	}

	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.Redirect("/inventory")
}
