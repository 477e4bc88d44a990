package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"cobropos/m/internal/config"
	"cobropos/m/internal/sales"
	"cobropos/m/internal/store"
	"cobropos/m/internal/upload"
	"cobropos/m/internal/validation"
)

// Options carries the HTTP-level settings of the API.
type Options struct {
	Environment    string
	Secret         string
	AllowedOrigins []string
	// RateLimit is a ulule formatted rate such as "300-M"; empty disables limiting.
	RateLimit string
	// UploadDir is served under /assets/img when set.
	UploadDir string
	Logger    *logrus.Logger
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	sales    *sales.Service
	uploader *upload.Uploader
	validate *validation.Validator
	opts     Options
	logger   *logrus.Logger
}

// New constructs a Handler.
func New(st *store.Store, salesSvc *sales.Service, uploader *upload.Uploader, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		store:    st,
		sales:    salesSvc,
		uploader: uploader,
		validate: validation.New(),
		opts:     opts,
		logger:   logger,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(h.corsOptions()))
	if limit := h.rateLimiter(); limit != nil {
		r.Use(limit)
	}

	r.Get("/health", h.health)
	r.Get("/user", h.currentUser)
	r.Post("/upload-image", h.uploadImage)
	if h.opts.UploadDir != "" {
		fs := http.StripPrefix("/assets/img/", http.FileServer(http.Dir(h.opts.UploadDir)))
		r.Get("/assets/img/*", fs.ServeHTTP)
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/search/{name}", h.searchProducts)
		r.Get("/plu/{plu}", h.productByPLU)
		r.Post("/sell/{id}/{units}", h.sellProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	r.Route("/materials", func(r chi.Router) {
		r.Get("/", h.listMaterials)
		r.Post("/", h.createMaterial)
		r.Get("/search/{name}", h.searchMaterials)
		r.Get("/{id}", h.getMaterial)
		r.Put("/{id}", h.updateMaterial)
		r.Delete("/{id}", h.deleteMaterial)
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.listServices)
		r.Post("/", h.createService)
		r.Get("/search/{name}", h.searchServices)
		r.Post("/sell/{id}", h.sellService)
		r.Get("/{id}", h.getService)
		r.Put("/{id}", h.updateService)
		r.Delete("/{id}", h.deleteService)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/pending", h.pendingOrders)
		r.Get("/finished", h.finishedOrders)
		r.Get("/search/{name}", h.searchOrders)
		r.Post("/sell/{id}", h.sellOrder)
		r.Post("/{id}/finish", h.finishOrder)
		r.Post("/{id}/unfinish", h.unfinishOrder)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.listSales)
		r.Get("/export", h.exportSales)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"message":     "API funcionando correctamente",
		"timestamp":   time.Now().Format(time.RFC3339),
		"environment": h.opts.Environment,
	})
}

// fail maps domain errors onto HTTP responses. notFound is the message used for store.ErrNotFound.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, funcName, notFound string, err error) {
	var verr *validation.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, notFound)
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": verr.Message,
			"errors":  verr.Fields,
		})
	case upload.IsUploadError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		config.LogError(h.logger, "api", funcName, r.Method+" "+r.URL.Path, middleware.GetReqID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "error interno del servidor")
	}
}

// decodeValid decodes the JSON body into dest and runs its validation tags.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := decodeJSON(r, dest); err != nil {
		respondError(w, http.StatusBadRequest, "el cuerpo de la petición no es JSON válido")
		return false
	}
	if err := h.validate.Struct(dest); err != nil {
		h.fail(w, r, "decodeValid", "", err)
		return false
	}
	return true
}

// Helpers
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathInt(w, r, "id", 1)
}

func pathInt(w http.ResponseWriter, r *http.Request, name string, min int64) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	if err != nil || v < min {
		respondError(w, http.StatusBadRequest, "el parámetro "+name+" no es válido")
		return 0, false
	}
	return v, true
}

func decodeJSON(r *http.Request, dest interface{}) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
