package firestore

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benthecarman/macro-factor-go/internal/errors"
)

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "test-project", 100, staticTokens("tok"), slog.New(slog.DiscardHandler))
	return c, srv
}

func TestGet(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/test-project/databases/(default)/documents/users/u1/scale/2024" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"name": "projects/test-project/databases/(default)/documents/users/u1/scale/2024",
			"fields": map[string]any{
				"0315": map[string]any{"mapValue": map[string]any{"fields": map[string]any{
					"w": map[string]any{"doubleValue": 70.5},
				}}},
			},
		})
	}))

	doc, err := c.Get(context.Background(), "users/u1/scale/2024")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.ID() != "2024" {
		t.Errorf("ID = %s, want 2024", doc.ID())
	}

	decoded := doc.Decode()
	day, ok := decoded["0315"].(map[string]any)
	if !ok {
		t.Fatalf("missing day record: %#v", decoded)
	}
	if day["w"] != 70.5 {
		t.Errorf("w = %v, want 70.5", day["w"])
	}
}

func TestGetNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404}}`, http.StatusNotFound)
	}))

	_, err := c.Get(context.Background(), "users/u1/scale/1999")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetTransportErrorCarriesStatusAndBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))

	_, err := c.Get(context.Background(), "users/u1/scale/2024")
	if !errors.Is(err, errors.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}

	var derr *errors.Error
	if !errors.As(err, &derr) {
		t.Fatalf("err is not a domain error: %v", err)
	}
	if derr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", derr.Status)
	}
	if derr.Body != "quota exceeded\n" {
		t.Errorf("Body = %q", derr.Body)
	}
}

func TestPatchMaskQueryParams(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}

		// Digit-leading paths must arrive backtick quoted, one param per path.
		masks := r.URL.Query()["updateMask.fieldPaths"]
		want := []string{"`0315`", "note"}
		if len(masks) != len(want) {
			t.Fatalf("mask params = %v, want %v", masks, want)
		}
		for i := range want {
			if masks[i] != want[i] {
				t.Errorf("mask[%d] = %q, want %q", i, masks[i], want[i])
			}
		}

		var body struct {
			Fields map[string]Value `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body.Fields["0315"]; !ok {
			t.Errorf("body missing 0315 field: %v", body.Fields)
		}

		json.NewEncoder(w).Encode(map[string]any{"name": "projects/test-project/databases/(default)/documents/users/u1/scale/2024"})
	}))

	_, err := c.Patch(context.Background(), "users/u1/scale/2024", map[string]Value{
		"0315": Map(map[string]Value{"w": Float(70.5)}),
	}, []string{"0315", "note"})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
}

func TestPatchDeleteByMaskOnly(t *testing.T) {
	// A mask entry with no corresponding field deletes that field; the body
	// must still be a valid fields envelope.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		masks := r.URL.Query()["updateMask.fieldPaths"]
		if len(masks) != 1 || masks[0] != "`1710515245000000`" {
			t.Errorf("mask params = %v", masks)
		}

		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if string(body["fields"]) != "{}" {
			t.Errorf("fields = %s, want {}", body["fields"])
		}

		json.NewEncoder(w).Encode(map[string]any{"name": "x"})
	}))

	_, err := c.Patch(context.Background(), "users/u1/food/2024-03-15", nil, []string{"1710515245000000"})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
}

func TestListCollectionIDsPaginates(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)

		switch calls {
		case 1:
			if _, ok := req["pageToken"]; ok {
				t.Errorf("first call should not carry a page token")
			}
			json.NewEncoder(w).Encode(map[string]any{
				"collectionIds": []string{"scale", "steps"},
				"nextPageToken": "p2",
			})
		case 2:
			if req["pageToken"] != "p2" {
				t.Errorf("pageToken = %v, want p2", req["pageToken"])
			}
			json.NewEncoder(w).Encode(map[string]any{
				"collectionIds": []string{"food"},
			})
		default:
			t.Errorf("unexpected extra call %d", calls)
		}
	}))

	ids, err := c.ListCollectionIDs(context.Background(), "users/u1")
	if err != nil {
		t.Fatalf("ListCollectionIDs: %v", err)
	}
	want := []string{"scale", "steps", "food"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestRunQuery(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if _, ok := req["structuredQuery"]; !ok {
			t.Errorf("body missing structuredQuery: %v", req)
		}

		// Result streams can interleave read-time-only entries with matches.
		json.NewEncoder(w).Encode([]map[string]any{
			{"document": map[string]any{"name": "a/b/doc1"}, "readTime": "t1"},
			{"readTime": "t2"},
		})
	}))

	docs, err := c.RunQuery(context.Background(), "users/u1", map[string]any{
		"from": []map[string]any{{"collectionId": "food"}},
	})
	if err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	if len(docs) != 1 || docs[0].ID() != "doc1" {
		t.Errorf("docs = %#v", docs)
	}
}
