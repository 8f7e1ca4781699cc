package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
	"github.com/light-bringer/price-resolver/internal/app/price/lifecycle"
	"github.com/light-bringer/price-resolver/internal/app/price/queries/get_effective_price"
)

// errBadRequest marks malformed paths, query strings and bodies.
var errBadRequest = errors.New("bad request")

// maxBodyBytes caps POST and PUT payloads.
const maxBodyBytes = 1 << 20

// PriceHandler serves the /api/prices REST resource.
type PriceHandler struct {
	prices *lifecycle.Service
}

// NewPriceHandler creates a new HTTP price handler.
func NewPriceHandler(prices *lifecycle.Service) *PriceHandler {
	return &PriceHandler{
		prices: prices,
	}
}

// Register adds the price routes to mux.
func (h *PriceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/prices/{brandId}/{productId}", h.getPrice)
	mux.HandleFunc("POST /api/prices", h.createPrice)
	mux.HandleFunc("PUT /api/prices/{id}", h.updatePrice)
}

// getPrice handles GET /api/prices/{brandId}/{productId}?applicationDate=yyyy-MM-dd HH:mm:ss.
func (h *PriceHandler) getPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brandID, err := pathInt(r, "brandId", 32)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	productID, err := pathInt(r, "productId", 64)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	raw := r.URL.Query().Get("applicationDate")
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: applicationDate query parameter is required", errBadRequest))
		return
	}
	at, err := parseDateTime(raw)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	brand := int32(brandID)
	price, ok, err := h.prices.GetEffectivePrice(ctx, &get_effective_price.Request{
		At:        &at,
		BrandID:   &brand,
		ProductID: &productID,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("brand %d product %d at %s: %w", brand, productID, raw, domain.ErrPriceNotFound))
		return
	}

	writeJSON(w, http.StatusOK, toPriceDTO(price))
}

// createPrice handles POST /api/prices.
func (h *PriceHandler) createPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := decodeBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	price, err := h.prices.Create(ctx, domain.CreateCommand{PriceCommand: body.toCommand()})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/prices/%d", price.ID()))
	writeJSON(w, http.StatusCreated, toPriceDTO(price))
}

// updatePrice handles PUT /api/prices/{id}.
func (h *PriceHandler) updatePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathInt(r, "id", 64)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	body, err := decodeBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	price, ok, err := h.prices.Update(ctx, id, body.toCommand())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("price %d: %w", id, domain.ErrPriceNotFound))
		return
	}

	writeJSON(w, http.StatusOK, toPriceDTO(price))
}

func pathInt(r *http.Request, name string, bits int) (int64, error) {
	raw := r.PathValue(name)
	n, err := strconv.ParseInt(raw, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, name, raw)
	}
	return n, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request) (*PriceBody, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var body PriceBody
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, errInvalidDateFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: malformed body: %w", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: body must hold a single JSON object", errBadRequest)
	}
	return &body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
