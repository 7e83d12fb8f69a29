package services

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/thesanatorium/website/internal/web"
	"github.com/thesanatorium/website/models"
)

type ServiceProvider interface {
	List(ctx context.Context, order models.ServiceOrder) ([]models.Service, error)
}

type ServiceHandler struct {
	repo   ServiceProvider
	render *web.Renderer
}

func NewServiceHandler(r ServiceProvider, rn *web.Renderer) *ServiceHandler {
	return &ServiceHandler{repo: r, render: rn}
}

// HandleList renders every service ordered by id.
func (h *ServiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.List(r.Context(), models.ServiceOrderByID)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list services")
		h.render.RenderError(w, r, http.StatusInternalServerError, "failed to fetch services")
		return
	}

	h.render.Render(w, r, http.StatusOK, web.PageServices, web.Page{
		Title: "Our spaces",
		Nav:   "services",
		Data:  services,
	})
}
