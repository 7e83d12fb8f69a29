// Package pages serves the informational pages that need no data.
package pages

import (
	"net/http"

	"github.com/thesanatorium/website/internal/web"
)

type PageHandler struct {
	render *web.Renderer
}

func NewPageHandler(rn *web.Renderer) *PageHandler {
	return &PageHandler{render: rn}
}

func (h *PageHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, web.PageAbout, web.Page{Title: "About", Nav: "about"})
}

func (h *PageHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, web.PageContact, web.Page{Title: "Contact", Nav: "contact"})
}

func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render.RenderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}
