package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shelfwise/internal/log"
	"shelfwise/internal/services"
	"shelfwise/internal/validate"
)

type InventoryHandler struct {
	Products *services.ProductService
}

// GET /inventory?q=&page=
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	q := validate.Query(c.Query("q"))
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	products, total, err := h.Products.List(u.ID, q, page)
	if err != nil {
		applog.Error(c, "inventory.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the inventory. Please retry."})
	}

	totalPages := (total + services.PageSize - 1) / services.PageSize
	return render(c, "inventory", fiber.Map{
		"Products":   products,
		"Q":          q,
		"Page":       page,
		"Total":      total,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
	})
}
