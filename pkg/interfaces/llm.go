package interfaces

import (
	"context"

	"github.com/m-mizutani/kioku/pkg/model"
)

// Completer is the client interface for the chat-completion service.
type Completer interface {
	// Complete sends a message sequence and returns the model's reply
	Complete(ctx context.Context, messages []model.Message) (*model.Completion, error)
}
