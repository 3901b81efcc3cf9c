package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestRouter(repo Repository) http.Handler {
	svc := NewService(repo)
	h := NewHandler(svc)
	return h.Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, &env
}

func createPayload() map[string]interface{} {
	return map[string]interface{}{
		"property_size": "Under 1500 sq.ft.",
		"services": []map[string]interface{}{
			{"name": "Essentials Package", "count": 1},
			{"name": "Virtual Twilight", "count": 1},
		},
		"address": map[string]string{
			"street":   "123 Main Street",
			"city":     "Toronto",
			"province": "ON",
			"zipCode":  "M1M 1M1",
		},
		"preferred_date": "2026-09-15",
		"time":           "14:30",
		"agent_name":     "Jordan Blake",
		"agent_email":    "jordan@example.com",
	}
}

func TestCreateEndpointReturnsServerPricing(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	payload := createPayload()
	payload["total_amount"] = 999999.0

	rec, env := doJSON(t, router, "POST", "/", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp BookingResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if resp.TotalAmount != 271.58 {
		t.Errorf("total = %v, want server-computed 271.58", resp.TotalAmount)
	}
	if resp.DiscountPercent != 3 {
		t.Errorf("discount percent = %d, want 3", resp.DiscountPercent)
	}
	if len(resp.Services) != 2 {
		t.Errorf("services = %d, want 2", len(resp.Services))
	}
}

func TestCreateEndpointUnknownService(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	payload := createPayload()
	payload["services"] = []map[string]interface{}{
		{"name": "Hologram Tour", "count": 1},
	}

	rec, env := doJSON(t, router, "POST", "/", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "PRICING_VALIDATION_FAILED" {
		t.Fatalf("error = %+v", env.Error)
	}
	if len(env.Error.Details) == 0 {
		t.Error("expected issue details")
	}
	if len(repo.bookings) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestCreateEndpointMissingAgentFields(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	payload := createPayload()
	delete(payload, "agent_name")
	delete(payload, "agent_email")

	rec, env := doJSON(t, router, "POST", "/", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Error == nil {
		t.Fatal("expected error envelope")
	}
	if _, ok := env.Error.Details["agent_name"]; !ok {
		t.Errorf("details missing agent_name: %v", env.Error.Details)
	}
	if _, ok := env.Error.Details["agent_email"]; !ok {
		t.Errorf("details missing agent_email: %v", env.Error.Details)
	}
}

func TestCreateEndpointNumericPropertySize(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	payload := createPayload()
	payload["property_size"] = 1800

	rec, env := doJSON(t, router, "POST", "/", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp BookingResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if resp.PropertySize != "1500-2499 sq.ft." {
		t.Errorf("property size = %q", resp.PropertySize)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	payload := map[string]interface{}{
		"property_size": "Under 1500 sq.ft.",
		"services": []map[string]interface{}{
			{"name": "Essentials Package", "count": 1},
			{"name": "Virtual Twilight", "count": 1},
		},
		"agent_name":  "Jordan Blake",
		"agent_email": "jordan@example.com",
	}

	rec, env := doJSON(t, router, "POST", "/quote", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var quote QuoteResponse
	if err := json.Unmarshal(env.Data, &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.Subtotal != 279.98 {
		t.Errorf("subtotal = %v, want 279.98", quote.Subtotal)
	}
	if quote.DiscountPercent != 3 {
		t.Errorf("discount = %d, want 3", quote.DiscountPercent)
	}
	if quote.TotalAmount != 271.58 {
		t.Errorf("total = %v, want 271.58", quote.TotalAmount)
	}
}

func TestGetEndpointNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	rec, env := doJSON(t, router, "GET", "/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestBatchUpdateEndpointMixedResults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	h := NewHandler(svc)
	router := h.Routes()

	b, _, _ := svc.Create(context.Background(), validCreateRequest())

	payload := map[string]interface{}{
		"bookings": []map[string]interface{}{
			{"id": uuid.NewString(), "status": "editing"},
			{"id": b.ID.String(), "status": "editing"},
		},
	}

	rec, env := doJSON(t, router, "POST", "/update", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var results []BatchUpdateResult
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Updated {
		t.Error("unknown booking should fail")
	}
	if !results[1].Updated {
		t.Errorf("known booking should succeed: %s", results[1].Error)
	}
}

func TestBatchUpdateEndpointRejectsBadStatus(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	payload := map[string]interface{}{
		"bookings": []map[string]interface{}{
			{"id": uuid.NewString(), "status": "archived"},
		},
	}

	rec, _ := doJSON(t, router, "POST", "/update", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	h := NewHandler(svc)
	router := h.Routes()

	b, _, _ := svc.Create(context.Background(), validCreateRequest())

	rec, _ := doJSON(t, router, "DELETE", "/"+b.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(repo.bookings) != 0 {
		t.Error("booking not deleted")
	}
}
