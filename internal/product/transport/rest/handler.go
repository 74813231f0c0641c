// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	platformlogger "github.com/HumayunBA/QA-API-Testing/internal/platform/logger"
	"github.com/HumayunBA/QA-API-Testing/internal/platform/web"
	producterrors "github.com/HumayunBA/QA-API-Testing/internal/product/errors"
	"github.com/HumayunBA/QA-API-Testing/internal/product/service"
	"github.com/HumayunBA/QA-API-Testing/internal/product/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Response bodies. Clients match on them verbatim.
const (
	msgBadRequest          = "Bad Request"
	msgNotFound            = "Product not found"
	msgCreated             = "Product created"
	msgUpdated             = "Product updated"
	msgDeleted             = "Product deleted"
	msgAllDeleted          = "All products deleted"
	msgFetchProductsFailed = "Failed to fetch products"
	msgFetchProductFailed  = "Failed to fetch product"
	msgCreateFailed        = "Error creating product"
	msgUpdateFailed        = "Failed to update product"
	msgDeleteFailed        = "Failed to delete product"
	msgDeleteAllFailed     = "Error deleting products"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With("component", "rest"),
	}
}

// newValidator returns a validator that treats a zero decimal as missing.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Delete("/", h.DeleteAll)
		r.Get("/search/{character}", h.FindByNameLike)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadinessCheck)
}

// FindAll retrieves all products, optionally narrowed by the name query parameter.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	nameFilter := r.URL.Query().Get("name")
	h.logger.DebugContext(r.Context(), "Received request to find all products", "name", nameFilter)
	list, err := h.service.FindAll(r.Context(), nameFilter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgFetchProductsFailed)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByNameLike retrieves the products whose name contains the character path segment.
func (h *Handler) FindByNameLike(w http.ResponseWriter, r *http.Request) {
	fragment := r.PathValue("character")
	h.logger.DebugContext(r.Context(), "Received request to search products", "fragment", fragment)
	list, err := h.service.FindByNameLike(r.Context(), fragment)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error searching products", "fragment", fragment, "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgFetchProductsFailed)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ctx := platformlogger.AppendCtx(r.Context(), slog.Int64("product_id", id))

	h.logger.DebugContext(ctx, "Received request to find product by ID")
	found, err := h.service.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.logger.WarnContext(ctx, "Product not found")
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Error retrieving product", "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgFetchProductFailed)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	productCreateDto, err := decodeCreate(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondText(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	if err := h.validateCreate(productCreateDto); err != nil {
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationDetails(err))
		web.RespondText(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	id, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", id, "Name", productCreateDto.Name)
	web.RespondText(w, http.StatusCreated, msgCreated)
}

// Update replaces every mutable field of a product. Absent fields are written as NULL.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ctx := platformlogger.AppendCtx(r.Context(), slog.Int64("product_id", id))

	productUpdateDto, err := decodeUpdate(r)
	if err != nil {
		h.logger.WarnContext(ctx, "Error decoding request body", "error", err)
		web.RespondText(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	h.logger.DebugContext(ctx, "Received request to update product")
	if err := h.service.Update(ctx, id, productUpdateDto); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.logger.WarnContext(ctx, "Product not found for update")
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Error updating product", "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}
	h.logger.InfoContext(ctx, "Product updated successfully")
	web.RespondText(w, http.StatusOK, msgUpdated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ctx := platformlogger.AppendCtx(r.Context(), slog.Int64("product_id", id))

	h.logger.DebugContext(ctx, "Received request to delete product")
	if err := h.service.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.logger.WarnContext(ctx, "Product not found for deletion")
			web.RespondText(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Error deleting product", "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}
	h.logger.InfoContext(ctx, "Product deleted successfully")
	web.RespondText(w, http.StatusOK, msgDeleted)
}

// DeleteAll deletes every product.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error deleting products", "error", err)
		web.RespondText(w, http.StatusInternalServerError, msgDeleteAllFailed)
		return
	}
	h.logger.InfoContext(r.Context(), "All products deleted", "count", count)
	web.RespondText(w, http.StatusOK, msgAllDeleted)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadinessCheck reports whether the product store is reachable.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Product store is not reachable", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// parseID reads the id path parameter. A malformed id cannot match any row, so it is answered as not found.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := web.PathInt64(r, "id")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid product ID", "error", err)
		web.RespondText(w, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

func (h *Handler) validateCreate(dto service.ProductCreateDto) error {
	if h.service.IDMode() == store.IDModeClient {
		return h.validate.Struct(dto)
	}
	return h.validate.StructExcept(dto, "ID")
}

func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		details["error"] = err.Error()
		return details
	}
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	return details
}
