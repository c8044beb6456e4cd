package adapter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kioku/pkg/adapter"
	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
)

type capturedRequest struct {
	method string
	path   string
	query  url.Values
	body   map[string]any
}

// newMem0Server runs a stub store that records the last request and replies
// with the given status/content-type/body.
func newMem0Server(t *testing.T, status int, contentType, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.Query()
		captured.body = nil
		if r.Body != nil {
			var decoded map[string]any
			if err := json.NewDecoder(r.Body).Decode(&decoded); err == nil {
				captured.body = decoded
			}
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, captured
}

func TestAddMemories(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `{"results":[{"id":"m1"}]}`)
	client := adapter.NewMem0(server.URL, adapter.WithDefaultUserID("jose"))

	res := gt.R1(client.AddMemories(context.Background(), &interfaces.AddMemoriesInput{
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "My name is Jose and I like high-yield ETFs."},
			{Role: model.RoleAssistant, Content: "Noted your preference for high-yield dividend ETFs."},
		},
		AgentID:  "vera",
		Metadata: map[string]any{"source": "local_assistant", "important": true},
	})).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodPost)
	gt.V(t, captured.path).Equal("/memories")
	gt.V(t, captured.body["user_id"]).Equal(any("jose")) // client default folded in
	gt.V(t, captured.body["agent_id"]).Equal(any("vera"))
	gt.V(t, captured.body["run_id"]).Equal(nil) // absent, never an empty placeholder

	messages := gt.Cast[[]any](t, captured.body["messages"])
	gt.A(t, messages).Length(2)

	metadata := gt.Cast[map[string]any](t, captured.body["metadata"])
	gt.V(t, metadata["important"]).Equal(any(true))

	decoded := gt.Cast[map[string]any](t, res)
	gt.V(t, decoded["results"]).NotNil()
}

func TestIdentifiersOmittedWithoutDefaults(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `[]`)
	client := adapter.NewMem0(server.URL)

	gt.R1(client.ListMemories(context.Background(), &interfaces.ListMemoriesInput{})).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodGet)
	gt.V(t, captured.path).Equal("/memories")
	gt.A(t, captured.query["user_id"]).Length(0)
	gt.A(t, captured.query["agent_id"]).Length(0)
	gt.A(t, captured.query["run_id"]).Length(0)
}

func TestListMemoriesQueryParams(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `[]`)
	client := adapter.NewMem0(server.URL,
		adapter.WithDefaultUserID("jose"),
		adapter.WithDefaultAgentID("vera"))

	gt.R1(client.ListMemories(context.Background(), &interfaces.ListMemoriesInput{
		AgentID: "work", // explicit value wins over the default
	})).NoError(t)

	gt.V(t, captured.query.Get("user_id")).Equal("jose")
	gt.V(t, captured.query.Get("agent_id")).Equal("work")
}

func TestGetMemory(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `{"id":"m1","text":"note"}`)
	client := adapter.NewMem0(server.URL)

	res := gt.R1(client.GetMemory(context.Background(), "m1")).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodGet)
	gt.V(t, captured.path).Equal("/memories/m1")

	record := gt.Cast[map[string]any](t, res)
	gt.V(t, record["text"]).Equal(any("note"))
}

func TestUpdateMemory(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `{"ok":true}`)
	client := adapter.NewMem0(server.URL)

	gt.R1(client.UpdateMemory(context.Background(), "m1", map[string]any{"text": "updated"})).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodPut)
	gt.V(t, captured.path).Equal("/memories/m1")
	gt.V(t, captured.body["text"]).Equal(any("updated"))
}

func TestDeleteMemory(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `{"message":"deleted"}`)
	client := adapter.NewMem0(server.URL)

	gt.R1(client.DeleteMemory(context.Background(), "m1")).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodDelete)
	gt.V(t, captured.path).Equal("/memories/m1")
}

func TestDeleteAll(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `{"message":"cleared"}`)
	client := adapter.NewMem0(server.URL)

	gt.R1(client.DeleteAll(context.Background(), &interfaces.DeleteAllInput{AgentID: "vera"})).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodDelete)
	gt.V(t, captured.path).Equal("/memories")
	gt.V(t, captured.query.Get("agent_id")).Equal("vera")
}

func TestSearch(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json",
		`{"results":[{"id":"m1","memory":"likes ETFs"}]}`)
	client := adapter.NewMem0(server.URL, adapter.WithDefaultUserID("jose"))

	res := gt.R1(client.Search(context.Background(), &interfaces.SearchInput{
		Query:   "What does the user like to invest in?",
		AgentID: "vera",
	})).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodPost)
	gt.V(t, captured.path).Equal("/search")
	gt.V(t, captured.body["query"]).Equal(any("What does the user like to invest in?"))
	gt.V(t, captured.body["agent_id"]).Equal(any("vera"))
	gt.V(t, captured.body["user_id"]).Equal(any("jose"))
	gt.V(t, captured.body["filters"]).Equal(nil)

	decoded := gt.Cast[map[string]any](t, res)
	results := gt.Cast[[]any](t, decoded["results"])
	gt.A(t, results).Length(1)
}

func TestReset(t *testing.T) {
	server, captured := newMem0Server(t, http.StatusOK, "application/json", `{"message":"reset"}`)
	client := adapter.NewMem0(server.URL)

	gt.R1(client.Reset(context.Background())).NoError(t)

	gt.V(t, captured.method).Equal(http.MethodPost)
	gt.V(t, captured.path).Equal("/reset")
}

func TestNonJSONResponseReturnsRawText(t *testing.T) {
	server, _ := newMem0Server(t, http.StatusOK, "text/plain", "OK")
	client := adapter.NewMem0(server.URL)

	res := gt.R1(client.Reset(context.Background())).NoError(t)
	gt.V(t, res).Equal(any("OK"))
}

func TestNon2xxStatusIsError(t *testing.T) {
	server, _ := newMem0Server(t, http.StatusInternalServerError, "application/json", `{"detail":"boom"}`)
	client := adapter.NewMem0(server.URL)

	_, err := client.ListMemories(context.Background(), &interfaces.ListMemoriesInput{})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("non-2xx")
}
