package handlers

import (
	"github.com/jmoiron/sqlx"

	"shelfwise/internal/repos"
	"shelfwise/internal/services"
)

type Deps struct {
	DashboardHandler *DashboardHandler
	InventoryHandler *InventoryHandler
	ProductHandler   *ProductHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	prodRepo := repos.NewProductRepo(db)

	prodSvc := services.NewProductService(prodRepo)
	dashSvc := services.NewDashboardService(prodRepo)

	return &Deps{
		DashboardHandler: &DashboardHandler{Dash: dashSvc},
		InventoryHandler: &InventoryHandler{Products: prodSvc},
		ProductHandler:   &ProductHandler{Products: prodSvc},
	}
}
