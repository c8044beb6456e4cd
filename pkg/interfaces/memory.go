package interfaces

import (
	"context"

	"github.com/m-mizutani/kioku/pkg/model"
)

// AddMemoriesInput is the payload for persisting one or more messages.
// UserID/AgentID/RunID are sent only when non-empty (or when the client has
// a matching default); the store never receives empty placeholders.
type AddMemoriesInput struct {
	Messages []model.Message
	UserID   string
	AgentID  model.AgentID
	RunID    string
	Metadata map[string]any
}

// ListMemoriesInput selects which namespace to enumerate.
type ListMemoriesInput struct {
	UserID  string
	AgentID model.AgentID
	RunID   string
}

// DeleteAllInput selects which namespace to wipe.
type DeleteAllInput struct {
	UserID  string
	AgentID model.AgentID
	RunID   string
}

// SearchInput is a free-text query scoped to a namespace.
type SearchInput struct {
	Query   string
	UserID  string
	AgentID model.AgentID
	RunID   string
	Filters map[string]any
}

// Memory is the client interface for the external memory store. The store
// owns the records; this side only reads and displays them. Every method
// returns the decoded response body: JSON responses decode to generic
// values, anything else comes back as a raw string.
type Memory interface {
	// AddMemories persists a message sequence with optional metadata
	AddMemories(ctx context.Context, input *AddMemoriesInput) (any, error)

	// ListMemories enumerates records for a namespace
	ListMemories(ctx context.Context, input *ListMemoriesInput) (any, error)

	// GetMemory fetches a single record by ID
	GetMemory(ctx context.Context, id model.MemoryID) (any, error)

	// UpdateMemory replaces fields of an existing record
	UpdateMemory(ctx context.Context, id model.MemoryID, data map[string]any) (any, error)

	// DeleteMemory removes a single record by ID
	DeleteMemory(ctx context.Context, id model.MemoryID) (any, error)

	// DeleteAll removes every record in a namespace
	DeleteAll(ctx context.Context, input *DeleteAllInput) (any, error)

	// Search runs a semantic query scoped to a namespace
	Search(ctx context.Context, input *SearchInput) (any, error)

	// Reset wipes the entire store
	Reset(ctx context.Context) (any, error)
}
