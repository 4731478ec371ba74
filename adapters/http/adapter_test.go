// Package http - REST adapter tests
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crewcost/adapters/storage"
	v1 "crewcost/api/v1"
)

func testServer(t *testing.T) (*httptest.Server, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	srv := httptest.NewServer(New(store, nil).Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func dayRateRequest() v1.QuoteRequest {
	return v1.QuoteRequest{
		Reference: "ACME-1",
		Job: v1.JobRequest{
			Type: "crewed_job",
			Mode: "day_rate",
			Days: 1,
		},
	}
}

func TestCreateQuote(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/quotes", dayRateRequest())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var quote v1.QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		t.Fatal(err)
	}
	if quote.ID == "" {
		t.Error("stored quote missing ID")
	}
	// Default rates: £180/day with 15% markup.
	if quote.Costs.FreelancerFeeRounded != "180.00" {
		t.Errorf("FreelancerFeeRounded = %s, want 180.00", quote.Costs.FreelancerFeeRounded)
	}
	if quote.Costs.ClientChargeLabour != "207.00" {
		t.Errorf("ClientChargeLabour = %s, want 207.00", quote.Costs.ClientChargeLabour)
	}
	if quote.Breakdown == "" {
		t.Error("stored quote missing breakdown text")
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	srv, store := testServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/quotes/preview", dayRateRequest())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	quotes, err := store.ListQuotes(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 0 {
		t.Errorf("preview persisted %d quotes", len(quotes))
	}
}

func TestGetAndListQuotes(t *testing.T) {
	srv, _ := testServer(t)

	create := postJSON(t, srv.URL+"/api/v1/quotes", dayRateRequest())
	var created v1.QuoteResponse
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	create.Body.Close()

	get, err := http.Get(srv.URL + "/api/v1/quotes/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", get.StatusCode)
	}

	list, err := http.Get(srv.URL + "/api/v1/quotes?reference=ACME-1")
	if err != nil {
		t.Fatal(err)
	}
	defer list.Body.Close()
	var page v1.QuoteListResponse
	if err := json.NewDecoder(list.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if page.Count != 1 {
		t.Errorf("listed %d quotes, want 1", page.Count)
	}

	latest, err := http.Get(srv.URL + "/api/v1/quotes/latest?reference=ACME-1")
	if err != nil {
		t.Fatal(err)
	}
	defer latest.Body.Close()
	if latest.StatusCode != http.StatusOK {
		t.Errorf("latest status = %d, want 200", latest.StatusCode)
	}
}

func TestQuoteNotFound(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/quotes/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestBadRequest(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/quotes", v1.QuoteRequest{
		Job: v1.JobRequest{Type: "teleport"},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var er v1.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatal(err)
	}
	if er.Type != "INPUT_ERROR" {
		t.Errorf("error type = %s, want INPUT_ERROR", er.Type)
	}
}

func TestRatesRoundTrip(t *testing.T) {
	srv, _ := testServer(t)

	get, err := http.Get(srv.URL + "/api/v1/rates")
	if err != nil {
		t.Fatal(err)
	}
	var current v1.RatesResponse
	if err := json.NewDecoder(get.Body).Decode(&current); err != nil {
		t.Fatal(err)
	}
	get.Body.Close()

	current.Rates.HandoverTimeMinutes = 25
	data, _ := json.Marshal(current)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/rates", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	put, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	put.Body.Close()
	if put.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, want 200", put.StatusCode)
	}

	again, err := http.Get(srv.URL + "/api/v1/rates")
	if err != nil {
		t.Fatal(err)
	}
	defer again.Body.Close()
	var updated v1.RatesResponse
	if err := json.NewDecoder(again.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Rates.HandoverTimeMinutes != 25 {
		t.Errorf("HandoverTimeMinutes = %d, want 25", updated.Rates.HandoverTimeMinutes)
	}
}
