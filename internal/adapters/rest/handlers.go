package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"property-catalog/internal/contextkeys"
	"property-catalog/internal/core/domain"
	"property-catalog/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxUploadSize ограничивает размер multipart-запроса на загрузку изображения.
const maxUploadSize = 10 << 20

type CatalogHandler struct {
	catalog     port.CatalogUseCase
	quietPeriod time.Duration
}

func NewCatalogHandler(catalog port.CatalogUseCase, quietPeriod time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog:     catalog,
		quietPeriod: quietPeriod,
	}
}

func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.catalog.Snapshot())
}

// SetFilter принимает фильтр сразу, а перезагрузка выполнится после паузы.
func (h *CatalogHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid filter body")
		return
	}
	filter := req.toDomain()
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		WriteJSONError(w, http.StatusBadRequest, "priceMin must not exceed priceMax")
		return
	}

	h.catalog.SetFilter(filter)
	RespondWithJSON(w, http.StatusAccepted, FilterAcceptedResponse{
		Filter:        filter,
		QuietPeriodMs: h.quietPeriod.Milliseconds(),
	})
}

func (h *CatalogHandler) ResetFilter(w http.ResponseWriter, r *http.Request) {
	h.catalog.ResetFilter()
	RespondWithJSON(w, http.StatusAccepted, FilterAcceptedResponse{
		Filter:        domain.PropertyFilter{},
		QuietPeriodMs: h.quietPeriod.Milliseconds(),
	})
}

// Refresh перезагружает каталог немедленно. Ошибка загрузки не стирает данные,
// поэтому в ответе всегда текущий снимок.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.catalog.Refresh(r.Context())
	RespondWithJSON(w, http.StatusOK, h.catalog.Snapshot())
}

func (h *CatalogHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := h.catalog.View(r.Context(), id)
	if err != nil {
		WriteAPIError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, property)
}

func (h *CatalogHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var input domain.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property body")
		return
	}

	created, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		WriteAPIError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.PropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property body")
		return
	}
	if patch.IsEmpty() {
		WriteJSONError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, patch)
	if err != nil {
		WriteAPIError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		WriteAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage пробрасывает файл из поля "file" в API каталога.
func (h *CatalogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "CatalogHandler",
		"method":    "UploadImage",
	})

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		logger.Warn("Upload request without file", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Field \"file\" is required")
		return
	}
	defer file.Close()

	uploaded, err := h.catalog.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		WriteAPIError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, uploaded)
}

func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
