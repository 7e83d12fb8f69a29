package catalog

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/thesanatorium/website/internal/web"
	"github.com/thesanatorium/website/models"
)

// ProductsView is the boutique page model.
type ProductsView struct {
	Products   []models.Product
	Categories []string
}

type ProductProvider interface {
	ListPreview(ctx context.Context, limit int) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
}

type CatalogHandler struct {
	repo   ProductProvider
	render *web.Renderer
}

func NewCatalogHandler(r ProductProvider, rn *web.Renderer) *CatalogHandler {
	return &CatalogHandler{
		repo:   r,
		render: rn,
	}
}

// HandleHome renders the homepage with a handful of products.
func (h *CatalogHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListPreview(r.Context(), models.HomePreviewLimit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list product preview")
		h.render.RenderError(w, r, http.StatusInternalServerError, "failed to get products")
		return
	}

	h.render.Render(w, r, http.StatusOK, web.PageHome, web.Page{
		Nav:  "home",
		Data: products,
	})
}

func (h *CatalogHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListAll(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list products")
		h.render.RenderError(w, r, http.StatusInternalServerError, "failed to get products")
		return
	}

	h.render.Render(w, r, http.StatusOK, web.PageProducts, web.Page{
		Title: "Boutique",
		Nav:   "products",
		Data: ProductsView{
			Products:   products,
			Categories: models.Categories(products),
		},
	})
}
