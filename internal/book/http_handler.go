package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookinventory/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccess(w, books)
}

// GetByID handles GET /books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccess(w, b)
}

// ListByCategory handles GET /books/category/{category}
func (h *HTTPHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	books, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccess(w, books)
}

// ListByYearAfter handles GET /books/year/{year}
func (h *HTTPHandler) ListByYearAfter(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	books, err := h.service.ListByYearAfter(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccess(w, books)
}

type createRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	PublishedYear   int    `json:"publishedYear"`
	AvailableCopies *int   `json:"availableCopies"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.service.Create(r.Context(), CreateInput{
		Title:           req.Title,
		Author:          req.Author,
		Category:        req.Category,
		PublishedYear:   req.PublishedYear,
		AvailableCopies: req.AvailableCopies,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONCreated(w, b)
}

type updateRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Category        *string `json:"category"`
	PublishedYear   *int    `json:"publishedYear"`
	AvailableCopies *int    `json:"availableCopies"`
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.service.UpdateFields(r.Context(), id, UpdateInput{
		Title:           req.Title,
		Author:          req.Author,
		Category:        req.Category,
		PublishedYear:   req.PublishedYear,
		AvailableCopies: req.AvailableCopies,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccess(w, b)
}

type adjustCopiesRequest struct {
	Change *int `json:"change"`
}

// AdjustCopies handles PATCH /books/{id}/copies
func (h *HTTPHandler) AdjustCopies(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req adjustCopiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Change == nil {
		httpx.JSONError(w, http.StatusBadRequest, "change is required")
		return
	}

	b, err := h.service.AdjustCopies(r.Context(), id, *req.Change)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccess(w, b)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.service.DeleteIfEmpty(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccessMessage(w, b, "book deleted")
}

// Seed handles POST /seed
func (h *HTTPHandler) Seed(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SeedSample(r.Context(), SampleBooks())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONSuccessMessage(w, map[string]int{"inserted": count}, "sample data loaded")
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.JSONError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, ErrInvalidOperation):
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "book not found")
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
