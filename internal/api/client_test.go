package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
	"github.com/kutbudev/lifedeck-cli/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		HTTPClient: srv.Client(),
	}
}

func writeEnvelope(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func TestListDecodesRows(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("user_id"); got != userID.String() {
			t.Errorf("user_id = %q", got)
		}
		data, _ := json.Marshal([]map[string]interface{}{
			{
				"id":         taskID.String(),
				"user_id":    userID.String(),
				"title":      "water the plants",
				"status":     "TODO",
				"due_date":   "2026-09-01",
				"created_at": "2026-08-28T10:00:00Z",
			},
		})
		writeEnvelope(w, http.StatusOK, models.APIResponse{Success: true, Data: data})
	})

	tasks, err := c.ListTasks(userID)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len = %d, want 1", len(tasks))
	}
	if tasks[0].ID != taskID || tasks[0].Title != "water the plants" {
		t.Fatalf("decoded task = %+v", tasks[0])
	}
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("DueDate = %v", tasks[0].DueDate)
	}
}

// A malformed row is dropped from a list; the well-formed rows survive.
func TestListDropsMalformedRows(t *testing.T) {
	good := uuid.New()
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := json.Marshal([]map[string]interface{}{
			{"id": "definitely-not-a-uuid", "title": "broken"},
			{"id": good.String(), "user_id": uuid.New().String(), "title": "fine"},
		})
		writeEnvelope(w, http.StatusOK, models.APIResponse{Success: true, Data: data})
	})

	tasks, err := c.ListTasks(uuid.New())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != good {
		t.Fatalf("tasks = %+v, want the one good row", tasks)
	}
}

// A malformed single row fails the operation outright.
func TestSingleRowDecodeFailureFails(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := json.Marshal(map[string]interface{}{"id": "nope", "title": "x"})
		writeEnvelope(w, http.StatusOK, models.APIResponse{Success: true, Data: data})
	})

	_, err := c.CreateTask(models.TaskInput{Title: "x"})
	if err == nil {
		t.Fatal("expected decode failure")
	}
	if !apierrors.IsDecode(err) {
		t.Fatalf("err = %v, want decode kind", err)
	}
}

// success=false passes the remote's message through verbatim.
func TestEnvelopeFailurePassesMessageVerbatim(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, models.APIResponse{
			Success: false,
			Error:   "title must not be empty",
		})
	})

	_, err := c.CreateTask(models.TaskInput{})
	if err == nil {
		t.Fatal("expected envelope failure")
	}
	if got := err.Error(); got != "title must not be empty" {
		t.Fatalf("err = %q, want verbatim remote message", got)
	}
}

func TestStatusCodeTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, apierrors.IsNotFound},
		{"unauthorized", http.StatusUnauthorized, apierrors.IsUnauthorized},
		{"forbidden", http.StatusForbidden, apierrors.IsUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tt.status, models.APIResponse{Success: false, Error: "denied"})
			})
			err := c.DeleteTask(uuid.New())
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("err = %v, wrong kind for status %d", err, tt.status)
			}
		})
	}
}

// The MCP serve path stamps the client with agent metadata; every request
// after SetAgentInfo carries the attribution headers.
func TestSetAgentInfoAddsHeaders(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Created-Via"); got != "mcp" {
			t.Errorf("X-Created-Via = %q", got)
		}
		if got := r.Header.Get("X-Agent-Name"); got != "lifedeck-mcp" {
			t.Errorf("X-Agent-Name = %q", got)
		}
		if got := r.Header.Get("X-Agent-Model"); got != "test-model" {
			t.Errorf("X-Agent-Model = %q", got)
		}
		if got := r.Header.Get("X-Agent-Session-ID"); got != "session-1" {
			t.Errorf("X-Agent-Session-ID = %q", got)
		}
		writeEnvelope(w, http.StatusOK, models.APIResponse{Success: true, Data: json.RawMessage(`[]`)})
	})
	c.SetAgentInfo("lifedeck-mcp", "test-model", "session-1")

	if _, err := c.ListTasks(uuid.New()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
}

// Without agent metadata the attribution headers stay off the wire.
func TestNoAgentHeadersByDefault(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		for _, h := range []string{"X-Created-Via", "X-Agent-Name", "X-Agent-Model", "X-Agent-Session-ID"} {
			if got := r.Header.Get(h); got != "" {
				t.Errorf("%s = %q, want unset", h, got)
			}
		}
		writeEnvelope(w, http.StatusOK, models.APIResponse{Success: true, Data: json.RawMessage(`[]`)})
	})

	if _, err := c.ListTasks(uuid.New()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
}

func TestGetDayByDateHitsDateEndpoint(t *testing.T) {
	dayID := uuid.New()
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/days/by-date/2026-08-28" {
			t.Errorf("path = %q", r.URL.Path)
		}
		data, _ := json.Marshal(map[string]interface{}{
			"id":      dayID.String(),
			"user_id": uuid.New().String(),
			"date":    "2026-08-28",
		})
		writeEnvelope(w, http.StatusOK, models.APIResponse{Success: true, Data: data})
	})

	day, err := c.GetDayByDate(uuid.New(), "2026-08-28")
	if err != nil {
		t.Fatalf("GetDayByDate: %v", err)
	}
	if day.ID != dayID {
		t.Fatalf("day = %+v", day)
	}
}
