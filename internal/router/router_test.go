package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/router"
)

func TestHTTP_EndToEnd_InsightsOverMemoryStores(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Stores: storage.Memory()}))
	defer ts.Close()

	// 1) Refugio, usuarios y mascotas
	shelterID := createID(t, ts.URL, "/shelters", map[string]any{"name": "Patitas", "capacity": 10})

	alice := createID(t, ts.URL, "/users", map[string]any{"name": "Alice", "email": "alice@example.com"})
	bob := createID(t, ts.URL, "/users", map[string]any{"name": "Bob", "email": "bob@example.com"})

	luna := createID(t, ts.URL, "/pets", map[string]any{
		"name": "Luna", "age": 2, "type": "dog", "breed": "Beagle", "gender": "female",
		"shelter_id": shelterID,
		"profile":    map[string]any{"tags": []string{"calm", "friendly"}},
	})
	rex := createID(t, ts.URL, "/pets", map[string]any{
		"name": "Rex", "age": 4, "type": "dog", "breed": "Boxer", "gender": "male",
		"shelter_id": shelterID,
		"profile":    map[string]any{"tags": []string{"playful"}},
	})
	_ = createID(t, ts.URL, "/pets", map[string]any{
		"name": "Max", "age": 6, "type": "dog", "breed": "Beagle", "gender": "male",
		"status":  "adopted",
		"profile": map[string]any{"tags": []string{"calm"}},
	})

	// 2) Preferencias y actividad
	{
		st, body := doReq(t, ts.URL, "POST", fmt.Sprintf("/users/%d/preferences", alice), map[string]any{
			"tags": []string{"Calm"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 on preferences, got %d body=%s", st, string(body))
		}
	}
	expectStatus(t, ts.URL, "POST", "/likes", map[string]any{"user_id": bob, "pet_id": rex}, http.StatusNoContent)
	expectStatus(t, ts.URL, "POST", "/feedback", map[string]any{
		"user_id": bob, "pet_id": rex, "rating": 5, "review_text": "great",
	}, http.StatusCreated)

	// 3) Recomendaciones: solo Luna (Max no está disponible)
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/users/%d/recommendations", alice), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on recommendations, got %d body=%s", st, string(body))
		}
		var pets []struct {
			ID int64 `json:"id"`
		}
		mustJSON(t, body, &pets)
		if len(pets) != 1 || pets[0].ID != luna {
			t.Fatalf("expected [%d], got %s", luna, string(body))
		}
	}

	// 4) Engagement: 404 para desconocido, conteos para Bob
	expectStatus(t, ts.URL, "GET", "/users/999/engagement", nil, http.StatusNotFound)
	expectStatus(t, ts.URL, "GET", "/users/abc/engagement", nil, http.StatusBadRequest)
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/users/%d/engagement", bob), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on engagement, got %d body=%s", st, string(body))
		}
		var rep struct {
			Likes     int `json:"likes"`
			Feedbacks int `json:"feedbacks"`
			Adoptions int `json:"adoptions"`
		}
		mustJSON(t, body, &rep)
		if rep.Likes != 1 || rep.Feedbacks != 1 || rep.Adoptions != 0 {
			t.Fatalf("unexpected engagement: %s", string(body))
		}
	}

	// 5) Mascotas adoptables: Rex primero (1 like + rating 5)
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/adoptable?limit=1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on adoptable, got %d body=%s", st, string(body))
		}
		var pets []struct {
			ID int64 `json:"id"`
		}
		mustJSON(t, body, &pets)
		if len(pets) != 1 || pets[0].ID != rex {
			t.Fatalf("expected [%d], got %s", rex, string(body))
		}
	}
	expectStatus(t, ts.URL, "GET", "/pets/adoptable?limit=-1", nil, http.StatusBadRequest)

	// 6) Baja interacción: Luna no tiene likes ni feedback
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/low-engagement", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on low-engagement, got %d body=%s", st, string(body))
		}
		var pets []struct {
			ID int64 `json:"id"`
		}
		mustJSON(t, body, &pets)
		if len(pets) != 1 || pets[0].ID != luna {
			t.Fatalf("expected [%d], got %s", luna, string(body))
		}
	}

	// 7) Forecast: Boxer 1/1, tag playful 1/1
	{
		st, body := doReq(t, ts.URL, "GET", "/forecast/demand", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on forecast, got %d body=%s", st, string(body))
		}
		var fc struct {
			ByBreed map[string]struct {
				Demand int      `json:"demand"`
				Supply int      `json:"supply"`
				Ratio  *float64 `json:"ratio"`
			} `json:"by_breed"`
		}
		mustJSON(t, body, &fc)
		boxer, ok := fc.ByBreed["Boxer"]
		if !ok || boxer.Demand != 1 || boxer.Supply != 1 || boxer.Ratio == nil || *boxer.Ratio != 1 {
			t.Fatalf("unexpected Boxer row: %s", string(body))
		}
	}

	// 8) Conexiones: Alice no comparte nada todavía
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/users/%d/connections", alice), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on connections, got %d body=%s", st, string(body))
		}
		if string(bytes.TrimSpace(body)) != "[]" {
			t.Fatalf("expected empty connections, got %s", string(body))
		}
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	expectStatus(t, ts.URL, "GET", "/health", nil, http.StatusOK)
	expectStatus(t, ts.URL, "GET", "/metrics", nil, http.StatusOK)
	expectStatus(t, ts.URL, "POST", "/users", map[string]any{"name": ""}, http.StatusBadRequest)
}

func createID(t *testing.T, baseURL, path string, payload map[string]any) int64 {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 on %s, got %d body=%s", path, st, string(body))
	}
	var out struct {
		ID int64 `json:"id"`
	}
	mustJSON(t, body, &out)
	if out.ID <= 0 {
		t.Fatalf("expected id on %s, got %s", path, string(body))
	}
	return out.ID
}

func expectStatus(t *testing.T, baseURL, method, path string, payload any, want int) {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, payload)
	if st != want {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, want, st, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, string(b))
	}
}
