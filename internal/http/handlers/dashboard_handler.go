package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "shelfwise/internal/log"
	"shelfwise/internal/services"
)

type DashboardHandler struct {
	Dash *services.DashboardService
}

// GET /dashboard
func (h *DashboardHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	d, err := h.Dash.Build(u.ID, time.Now())
	if err != nil {
		applog.Error(c, "dashboard.build.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the dashboard. Please retry."})
	}
	return render(c, "dashboard", fiber.Map{"D": d})
}
