package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/okovalenko/spendtrack/internal/service"
	"github.com/okovalenko/spendtrack/internal/storage/sqlite"
)

// setupTestServer starts an httptest server backed by a fresh SQLite store.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	srv := httptest.NewServer(New(service.NewExpenseService(store)).Routes())
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})

	return srv
}

// doJSON issues a request and decodes the JSON response body. Numbers are
// decoded as json.Number so fixed-point amounts keep their textual form.
func doJSON(t *testing.T, method, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	status, raw := doRaw(t, method, url, body)
	if len(raw) == 0 {
		return status, nil
	}

	var decoded map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response %q: %v", raw, err)
	}
	return status, decoded
}

// doJSONList is doJSON for endpoints returning arrays.
func doJSONList(t *testing.T, method, url string) (int, []map[string]interface{}) {
	t.Helper()

	status, raw := doRaw(t, method, url, nil)
	var decoded []map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response %q: %v", raw, err)
	}
	return status, decoded
}

func doRaw(t *testing.T, method, url string, body interface{}) (int, []byte) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func TestHealthcheck(t *testing.T) {
	srv := setupTestServer(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/healthcheck", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if _, err := time.Parse(time.RFC3339, body["date"].(string)); err != nil {
		t.Errorf("date field %v is not RFC 3339: %v", body["date"], err)
	}
}

// TestExpenseLifecycle walks the canonical end-to-end flow: create a user
// and a category, record an expense, cascade-delete via the user, and
// verify the record is gone.
func TestExpenseLifecycle(t *testing.T) {
	srv := setupTestServer(t)

	status, user := doJSON(t, http.MethodPost, srv.URL+"/user", map[string]string{"name": "Al"})
	if status != http.StatusCreated {
		t.Fatalf("create user: status = %d, want 201", status)
	}
	if user["id"].(json.Number).String() != "1" || user["name"] != "Al" {
		t.Fatalf("create user: unexpected body %v", user)
	}

	status, category := doJSON(t, http.MethodPost, srv.URL+"/category", map[string]string{"name": "Food"})
	if status != http.StatusCreated {
		t.Fatalf("create category: status = %d, want 201", status)
	}
	if category["id"].(json.Number).String() != "1" {
		t.Fatalf("create category: unexpected body %v", category)
	}

	status, rec := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
		"user_id":     1,
		"category_id": 1,
		"amount":      "12.50",
	})
	if status != http.StatusCreated {
		t.Fatalf("create record: status = %d, want 201 (body %v)", status, rec)
	}
	if rec["amount"].(json.Number).String() != "12.50" {
		t.Errorf("create record: amount = %v, want 12.50", rec["amount"])
	}
	if rec["created_at"] == nil {
		t.Error("create record: expected created_at to default")
	}

	status, fetched := doJSON(t, http.MethodGet, srv.URL+"/record/1", nil)
	if status != http.StatusOK {
		t.Fatalf("get record: status = %d, want 200", status)
	}
	if fetched["user_id"].(json.Number).String() != "1" {
		t.Errorf("get record: user_id = %v, want 1", fetched["user_id"])
	}

	status, deleted := doJSON(t, http.MethodDelete, srv.URL+"/user/1", nil)
	if status != http.StatusOK {
		t.Fatalf("delete user: status = %d, want 200", status)
	}
	if deleted["status"] != "deleted" {
		t.Errorf("delete user: body = %v", deleted)
	}

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/record/1", nil)
	if status != http.StatusNotFound {
		t.Errorf("get record after cascade: status = %d, want 404", status)
	}
}

func TestUserEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("create without name is a 400", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, srv.URL+"/user", map[string]string{})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] == "" {
			t.Error("expected error envelope")
		}
	})

	t.Run("create with empty body is a 400", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/user", nil)
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("get of missing user is a 404", func(t *testing.T) {
		status, body := doJSON(t, http.MethodGet, srv.URL+"/user/42", nil)
		if status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if body["error"] != "User not found" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		for _, name := range []string{"Al", "Bea", "Cyd"} {
			status, _ := doJSON(t, http.MethodPost, srv.URL+"/user", map[string]string{"name": name})
			if status != http.StatusCreated {
				t.Fatalf("create %s: status = %d", name, status)
			}
		}

		status, users := doJSONList(t, http.MethodGet, srv.URL+"/users")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(users) != 3 {
			t.Fatalf("expected 3 users, got %d", len(users))
		}
		if users[0]["name"] != "Al" || users[2]["name"] != "Cyd" {
			t.Errorf("unexpected order: %v", users)
		}
	})

	t.Run("delete is not idempotent", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodDelete, srv.URL+"/user/1", nil)
		if status != http.StatusOK {
			t.Fatalf("first delete: status = %d, want 200", status)
		}
		for i := 0; i < 2; i++ {
			status, _ := doJSON(t, http.MethodDelete, srv.URL+"/user/1", nil)
			if status != http.StatusNotFound {
				t.Errorf("repeat delete %d: status = %d, want 404", i+1, status)
			}
		}
	})
}

func TestCategoryEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/category", map[string]string{"name": "Food"})
	if status != http.StatusCreated {
		t.Fatalf("create category: status = %d, want 201", status)
	}

	t.Run("duplicate name is a 409 and not persisted", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, srv.URL+"/category", map[string]string{"name": "Food"})
		if status != http.StatusConflict {
			t.Fatalf("status = %d, want 409", status)
		}
		if body["error"] != "Category already exists" {
			t.Errorf("error = %v", body["error"])
		}

		_, categories := doJSONList(t, http.MethodGet, srv.URL+"/category")
		if len(categories) != 1 {
			t.Errorf("expected 1 category, got %d", len(categories))
		}
	})

	t.Run("delete requires the id query parameter", func(t *testing.T) {
		status, body := doJSON(t, http.MethodDelete, srv.URL+"/category", nil)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "Query parameter 'id' is required" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("delete of missing category is a 404", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodDelete, srv.URL+"/category?id=42", nil)
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("delete cascades to records", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/user", map[string]string{"name": "Al"})
		if status != http.StatusCreated {
			t.Fatalf("create user: status = %d", status)
		}
		status, rec := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
			"user_id":     1,
			"category_id": 1,
			"amount":      3.5,
		})
		if status != http.StatusCreated {
			t.Fatalf("create record: status = %d", status)
		}

		status, _ = doJSON(t, http.MethodDelete, srv.URL+"/category?id=1", nil)
		if status != http.StatusOK {
			t.Fatalf("delete category: status = %d, want 200", status)
		}

		recID := rec["id"].(json.Number).String()
		status, _ = doJSON(t, http.MethodGet, srv.URL+"/record/"+recID, nil)
		if status != http.StatusNotFound {
			t.Errorf("record survived category delete: status = %d", status)
		}
	})
}

func TestRecordEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/user", map[string]string{"name": "Al"})
	if status != http.StatusCreated {
		t.Fatalf("create user: status = %d", status)
	}
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/user", map[string]string{"name": "Bea"})
	if status != http.StatusCreated {
		t.Fatalf("create user: status = %d", status)
	}
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/category", map[string]string{"name": "Food"})
	if status != http.StatusCreated {
		t.Fatalf("create category: status = %d", status)
	}

	t.Run("missing fields is a 400", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{"user_id": 1})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "Missing fields: category_id, amount" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("dangling user is a 400", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
			"user_id": 42, "category_id": 1, "amount": 1,
		})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "User does not exist" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("non-numeric amount is a 400", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
			"user_id": 1, "category_id": 1, "amount": "lots",
		})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "Field 'amount' must be a number" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("list without filters is a 400", func(t *testing.T) {
		status, body := doJSON(t, http.MethodGet, srv.URL+"/record", nil)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "At least one of 'user_id' or 'category_id' must be provided" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("list filters by user and category", func(t *testing.T) {
		for userID, amount := range map[int]string{1: "10.00", 2: "20.00"} {
			status, _ := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
				"user_id": userID, "category_id": 1, "amount": amount,
			})
			if status != http.StatusCreated {
				t.Fatalf("create record for user %d: status = %d", userID, status)
			}
		}

		status, records := doJSONList(t, http.MethodGet, srv.URL+"/record?user_id=1")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(records) != 1 || records[0]["amount"].(json.Number).String() != "10.00" {
			t.Errorf("unexpected records: %v", records)
		}

		status, records = doJSONList(t, http.MethodGet, srv.URL+"/record?category_id=1")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}

		status, records = doJSONList(t, http.MethodGet, srv.URL+"/record?user_id=2&category_id=1")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(records) != 1 || records[0]["user_id"].(json.Number).String() != "2" {
			t.Errorf("unexpected records: %v", records)
		}
	})

	t.Run("list with a malformed filter is a 400", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, srv.URL+"/record?user_id=abc", nil)
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("created_at is honored when supplied", func(t *testing.T) {
		createdAt := "2024-03-10T12:30:00Z"
		status, rec := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
			"user_id": 1, "category_id": 1, "amount": 5, "created_at": createdAt,
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}

		got, err := time.Parse(time.RFC3339, rec["created_at"].(string))
		if err != nil {
			t.Fatalf("created_at %v is not RFC 3339: %v", rec["created_at"], err)
		}
		want, _ := time.Parse(time.RFC3339, createdAt)
		if !got.Equal(want) {
			t.Errorf("created_at = %v, want %v", got, want)
		}
	})

	t.Run("failed creation does not consume an id", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
			"user_id": 42, "category_id": 1, "amount": 1,
		})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}

		status, before := doJSONList(t, http.MethodGet, srv.URL+"/record?category_id=1")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		maxID := int64(0)
		for _, rec := range before {
			id, _ := rec["id"].(json.Number).Int64()
			if id > maxID {
				maxID = id
			}
		}

		status, rec := doJSON(t, http.MethodPost, srv.URL+"/record", map[string]interface{}{
			"user_id": 1, "category_id": 1, "amount": 1,
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}
		id, _ := rec["id"].(json.Number).Int64()
		if id != maxID+1 {
			t.Errorf("id = %d, want %d (failed create must not allocate)", id, maxID+1)
		}
	})

	t.Run("delete of missing record is a 404", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/record/%d", srv.URL, 9999), nil)
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})
}
