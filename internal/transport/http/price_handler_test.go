package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/price-resolver/internal/app/price/lifecycle"
	"github.com/light-bringer/price-resolver/internal/app/price/queries/get_effective_price"
	"github.com/light-bringer/price-resolver/internal/app/price/repo"
	"github.com/light-bringer/price-resolver/internal/app/price/sampledata"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/create_price"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/update_price"
)

func setupRouter(t *testing.T) (http.Handler, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	require.NoError(t, sampledata.Load(context.Background(), store))

	svc := lifecycle.NewService(
		get_effective_price.NewQuery(store),
		create_price.NewInteractor(store),
		update_price.NewInteractor(store),
	)
	return NewRouter(NewPriceHandler(svc)), store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func getPriceURL(brand, product, at string) string {
	return "/api/prices/" + brand + "/" + product + "?applicationDate=" + url.QueryEscape(at)
}

func decodePrice(t *testing.T, rr *httptest.ResponseRecorder) PriceDTO {
	t.Helper()
	var dto PriceDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto), rr.Body.String())
	return dto
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e), rr.Body.String())
	return e
}

func TestGetPrice_ReferenceRequests(t *testing.T) {
	h, _ := setupRouter(t)

	tests := []struct {
		at        string
		wantPrice string
		wantList  int32
	}{
		{"2020-06-14 10:00:00", "35.5", 1},
		{"2020-06-14 16:00:00", "25.45", 2},
		{"2020-06-14 21:00:00", "35.5", 1},
		{"2020-06-15 10:00:00", "30.5", 3},
		{"2020-06-16 21:00:00", "38.95", 4},
	}

	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, getPriceURL("1", "35455", tt.at), "")
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			dto := decodePrice(t, rr)
			assert.Equal(t, tt.wantPrice, dto.Price.String())
			assert.Equal(t, tt.wantList, dto.PriceList)
			assert.Equal(t, int32(1), dto.BrandID)
			assert.Equal(t, int64(35455), dto.ProductID)
			assert.Equal(t, "EUR", dto.Currency)
		})
	}
}

func TestGetPrice_ResponseShape(t *testing.T) {
	h, _ := setupRouter(t)

	rr := do(t, h, http.MethodGet, getPriceURL("1", "35455", "2020-06-14 16:00:00"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, "2020-06-14 15:00:00", raw["startDate"])
	assert.Equal(t, "2020-06-14 18:30:00", raw["endDate"])
	assert.Equal(t, 25.45, raw["price"])
	assert.NotContains(t, raw, "priority")
}

func TestGetPrice_Errors(t *testing.T) {
	h, _ := setupRouter(t)

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"no price in effect", getPriceURL("1", "35455", "2020-06-13 14:00:00"), http.StatusNotFound, CodeNotFound},
		{"unknown product", getPriceURL("1", "1", "2020-06-14 16:00:00"), http.StatusNotFound, CodeNotFound},
		{"bad date", getPriceURL("1", "35455", "2020-06-14T16:00:00"), http.StatusBadRequest, CodeInvalidDateFormat},
		{"missing date", "/api/prices/1/35455", http.StatusBadRequest, CodeBadRequest},
		{"non-numeric brand", getPriceURL("one", "35455", "2020-06-14 16:00:00"), http.StatusBadRequest, CodeBadRequest},
		{"brand overflows int32", getPriceURL("3000000000", "35455", "2020-06-14 16:00:00"), http.StatusBadRequest, CodeBadRequest},
		{"unknown route", "/api/nothing", http.StatusNotFound, CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rr).Code)
		})
	}
}

const createBody = `{"brandId":1,"productId":35455,"priceList":9,"startDate":"2021-01-01 00:00:00","endDate":"2021-01-31 23:59:59","price":19.99,"currency":"usd"}`

func TestCreatePrice(t *testing.T) {
	h, store := setupRouter(t)

	rr := do(t, h, http.MethodPost, "/api/prices", createBody)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	dto := decodePrice(t, rr)
	assert.Equal(t, int64(5), dto.ID)
	assert.Equal(t, "/api/prices/5", rr.Header().Get("Location"))
	assert.Equal(t, "USD", dto.Currency)
	assert.Equal(t, "19.99", dto.Price.String())
	assert.Equal(t, 5, store.Len())

	rr = do(t, h, http.MethodGet, getPriceURL("1", "35455", "2021-01-15 12:00:00"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(5), decodePrice(t, rr).ID)
}

func TestCreatePrice_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"end before start", `{"brandId":1,"productId":35455,"priceList":1,"startDate":"2020-06-15 21:00:00","endDate":"2020-06-14 21:00:00","price":1,"currency":"EUR"}`, CodeBadRequest},
		{"unknown currency", `{"brandId":1,"productId":35455,"priceList":1,"startDate":"2020-06-14 00:00:00","endDate":"2020-06-15 00:00:00","price":1,"currency":"CurrencyError"}`, CodeBadRequest},
		{"bad date", `{"brandId":1,"productId":35455,"priceList":1,"startDate":"14/06/2020","endDate":"2020-06-15 00:00:00","price":1,"currency":"EUR"}`, CodeInvalidDateFormat},
		{"null date", `{"brandId":1,"productId":35455,"priceList":1,"startDate":null,"endDate":"2020-06-15 00:00:00","price":1,"currency":"EUR"}`, CodeInvalidDateFormat},
		{"missing brand", `{"productId":35455,"priceList":1,"startDate":"2020-06-14 00:00:00","endDate":"2020-06-15 00:00:00","price":1,"currency":"EUR"}`, CodeBadRequest},
		{"negative price", `{"brandId":1,"productId":35455,"priceList":1,"startDate":"2020-06-14 00:00:00","endDate":"2020-06-15 00:00:00","price":-1,"currency":"EUR"}`, CodeBadRequest},
		{"malformed json", `{"brandId":`, CodeBadRequest},
		{"trailing object", createBody + ` {"x":2}`, CodeBadRequest},
		{"trailing garbage", createBody + `garbage`, CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := setupRouter(t)
			rr := do(t, h, http.MethodPost, "/api/prices", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			e := decodeError(t, rr)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Message)
			assert.Equal(t, 4, store.Len(), "nothing may be written")
		})
	}

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		h, _ := setupRouter(t)
		rr := do(t, h, http.MethodPost, "/api/prices", createBody+"\n\t ")
		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	t.Run("unknown currency is named in details", func(t *testing.T) {
		h, _ := setupRouter(t)
		rr := do(t, h, http.MethodPost, "/api/prices", strings.Replace(createBody, `"usd"`, `"CurrencyError"`, 1))
		assert.Contains(t, decodeError(t, rr).Details, "CurrencyError")
	})
}

func TestUpdatePrice(t *testing.T) {
	h, store := setupRouter(t)

	rr := do(t, h, http.MethodPut, "/api/prices/2", createBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	dto := decodePrice(t, rr)
	assert.Equal(t, int64(2), dto.ID)
	assert.Equal(t, int32(9), dto.PriceList)
	assert.Equal(t, 4, store.Len())

	stored, err := store.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), stored.Priority(), "priority survives the update")
}

func TestUpdatePrice_Errors(t *testing.T) {
	h, _ := setupRouter(t)

	rr := do(t, h, http.MethodPut, "/api/prices/99", createBody)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, rr).Code)

	rr = do(t, h, http.MethodPut, "/api/prices/abc", createBody)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for _, id := range []string{"0", "-1"} {
		rr = do(t, h, http.MethodPut, "/api/prices/"+id, createBody)
		assert.Equal(t, http.StatusNotFound, rr.Code, "id %s", id)
		assert.Equal(t, CodeNotFound, decodeError(t, rr).Code)
	}
}

func TestHealthz(t *testing.T) {
	h, _ := setupRouter(t)
	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	h, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
}
