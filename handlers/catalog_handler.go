package handlers

import (
	"net/http"

	"trendmindAPI/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalogService.Catalog())
}

func (h *CatalogHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalogService.Pricing())
}

func (h *CatalogHandler) GetTools(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"tools": h.catalogService.Tools()})
}

// GetSitemap lists the pages. With ?path= it also answers whether that
// page can be opened without signing in.
func (h *CatalogHandler) GetSitemap(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"pages": h.catalogService.Pages()}
	if path := r.URL.Query().Get("path"); path != "" {
		resp["path"] = path
		resp["public"] = h.catalogService.IsPublicPath(path)
	}
	respondWithJSON(w, http.StatusOK, resp)
}
