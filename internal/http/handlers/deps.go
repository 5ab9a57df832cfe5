package handlers

import (
	"tienda/internal/config"
	"tienda/internal/repos"
	"tienda/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler
	ClientHandler   *ClientHandler
	CatalogHandler  *CatalogHandler
	ProductHandler  *ProductHandler
	SupplierHandler *SupplierHandler
	SaleHandler     *SaleHandler
	PurchaseHandler *PurchaseHandler
	OrderHandler    *OrderHandler
	ReportHandler   *ReportHandler
	APIHandler      *APIHandler
}

// NewDeps wires every repository, service and handler over one database.
func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	store := repos.NewLookup(db)
	adminRepo := repos.NewAdminRepo(db)

	authSvc := &services.AuthService{Admins: adminRepo}
	adminSvc := services.NewAdminService(adminRepo, store)
	clientSvc := services.NewClientService(repos.NewClientRepo(db), store)
	catalogSvc := services.NewCatalogService(repos.NewCatalogRepo(db), store)
	productSvc := services.NewProductService(repos.NewProductRepo(db), store)
	supplierSvc := services.NewSupplierService(repos.NewSupplierRepo(db), store)
	saleSvc := services.NewSaleService(repos.NewSaleRepo(db), store)
	purchaseSvc := services.NewPurchaseService(repos.NewPurchaseRepo(db), adminSvc, store)
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), adminSvc, store)
	reportSvc := services.NewReportService(repos.NewReportRepo(db), store)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		AdminHandler:    &AdminHandler{Admins: adminSvc, Clients: clientSvc, Products: productSvc, Sales: saleSvc, Orders: orderSvc},
		ClientHandler:   &ClientHandler{Clients: clientSvc},
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Products: productSvc, Catalog: catalogSvc},
		SupplierHandler: &SupplierHandler{Suppliers: supplierSvc},
		SaleHandler:     &SaleHandler{Sales: saleSvc, Shop: cfg.ShopName},
		PurchaseHandler: &PurchaseHandler{Purchases: purchaseSvc, Admins: adminSvc, Suppliers: supplierSvc, Products: productSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc, Admins: adminSvc, Clients: clientSvc},
		ReportHandler:   &ReportHandler{Reports: reportSvc, Admins: adminSvc},
		APIHandler:      &APIHandler{Catalog: catalogSvc, ProductSvc: productSvc, ClientSvc: clientSvc, SupplierSvc: supplierSvc},
	}
}
