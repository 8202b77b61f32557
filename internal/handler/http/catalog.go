package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

type CatalogHandler interface {
	ListPublic(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	catalogService catalog.CatalogService
}

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandlerImpl{catalogService: catalogService}
}

// ListPublic serves the booking page price list.
func (h *catalogHandlerImpl) ListPublic(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.ListPublic(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *catalogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *catalogHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *catalogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create service decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.catalogService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Service created successfully", result)
}

func (h *catalogHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req catalog.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update service decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req.ID = id

	result, err := h.catalogService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Service updated successfully", result)
}

func (h *catalogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Service deleted successfully", nil)
}
