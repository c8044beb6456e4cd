package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
)

// Bounded timeouts so a stuck store cannot hang the loop indefinitely.
// Search and reset run embedding work server-side and get a longer budget.
const (
	memoryReadWriteTimeout = 30 * time.Second
	memorySearchTimeout    = 60 * time.Second
)

// Mem0Client talks to a mem0-compatible REST API.
type Mem0Client struct {
	http           *resty.Client
	defaultUserID  string
	defaultAgentID model.AgentID
}

var _ interfaces.Memory = (*Mem0Client)(nil)

type Mem0Option func(*Mem0Client)

// WithDefaultUserID attaches a user_id to every request that does not carry
// an explicit one.
func WithDefaultUserID(userID string) Mem0Option {
	return func(c *Mem0Client) {
		c.defaultUserID = userID
	}
}

// WithDefaultAgentID attaches an agent_id to every request that does not
// carry an explicit one.
func WithDefaultAgentID(agentID model.AgentID) Mem0Option {
	return func(c *Mem0Client) {
		c.defaultAgentID = agentID
	}
}

// NewMem0 creates a memory store client for the given base URL.
func NewMem0(baseURL string, opts ...Mem0Option) *Mem0Client {
	c := &Mem0Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// identifiers folds client defaults into explicit values and drops empty
// ones, so the store never sees empty placeholders.
func (c *Mem0Client) identifiers(userID string, agentID model.AgentID, runID string) map[string]string {
	if userID == "" {
		userID = c.defaultUserID
	}
	if agentID == "" {
		agentID = c.defaultAgentID
	}

	ids := map[string]string{}
	if userID != "" {
		ids["user_id"] = userID
	}
	if agentID != "" {
		ids["agent_id"] = string(agentID)
	}
	if runID != "" {
		ids["run_id"] = runID
	}
	return ids
}

// decode converts the HTTP response per the store contract: non-2xx is an
// error, JSON bodies decode to generic values, anything else is raw text.
func decode(resp *resty.Response) (any, error) {
	if !resp.IsSuccess() {
		return nil, goerr.New("memory store returned non-2xx status",
			goerr.V("status", resp.StatusCode()),
			goerr.V("body", string(resp.Body())))
	}

	body := resp.Body()
	if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode memory store response")
		}
		return v, nil
	}

	return string(body), nil
}

func (c *Mem0Client) AddMemories(ctx context.Context, input *interfaces.AddMemoriesInput) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryReadWriteTimeout)
	defer cancel()

	payload := map[string]any{
		"messages": input.Messages,
	}
	for k, v := range c.identifiers(input.UserID, input.AgentID, input.RunID) {
		payload[k] = v
	}
	if input.Metadata != nil {
		payload["metadata"] = input.Metadata
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(payload).Post("/memories")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add memories")
	}
	return decode(resp)
}

func (c *Mem0Client) ListMemories(ctx context.Context, input *interfaces.ListMemoriesInput) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryReadWriteTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).
		SetQueryParams(c.identifiers(input.UserID, input.AgentID, input.RunID)).
		Get("/memories")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list memories")
	}
	return decode(resp)
}

func (c *Mem0Client) GetMemory(ctx context.Context, id model.MemoryID) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryReadWriteTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).
		Get(fmt.Sprintf("/memories/%s", url.PathEscape(string(id))))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V("memory_id", id))
	}
	return decode(resp)
}

func (c *Mem0Client) UpdateMemory(ctx context.Context, id model.MemoryID, data map[string]any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryReadWriteTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).SetBody(data).
		Put(fmt.Sprintf("/memories/%s", url.PathEscape(string(id))))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update memory", goerr.V("memory_id", id))
	}
	return decode(resp)
}

func (c *Mem0Client) DeleteMemory(ctx context.Context, id model.MemoryID) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryReadWriteTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).
		Delete(fmt.Sprintf("/memories/%s", url.PathEscape(string(id))))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to delete memory", goerr.V("memory_id", id))
	}
	return decode(resp)
}

func (c *Mem0Client) DeleteAll(ctx context.Context, input *interfaces.DeleteAllInput) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryReadWriteTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).
		SetQueryParams(c.identifiers(input.UserID, input.AgentID, input.RunID)).
		Delete("/memories")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to delete all memories")
	}
	return decode(resp)
}

func (c *Mem0Client) Search(ctx context.Context, input *interfaces.SearchInput) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memorySearchTimeout)
	defer cancel()

	payload := map[string]any{
		"query": input.Query,
	}
	for k, v := range c.identifiers(input.UserID, input.AgentID, input.RunID) {
		payload[k] = v
	}
	if input.Filters != nil {
		payload["filters"] = input.Filters
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(payload).Post("/search")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search memories")
	}
	return decode(resp)
}

func (c *Mem0Client) Reset(ctx context.Context) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, memorySearchTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Post("/reset")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reset memory store")
	}
	return decode(resp)
}
