package assistant

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
	"github.com/m-mizutani/kioku/pkg/utils/logging"
)

const systemPrompt = `You are a personal assistant.
You have access to an external long-term memory system.
Use the provided memories as context, but do NOT mention the memory system by name.
Always keep answers short, direct, and practical.
`

const (
	// turnMemoryLimit caps how many retrieved records are injected into the prompt
	turnMemoryLimit = 8

	// metadataSource tags every persisted turn with its origin
	metadataSource = "local_assistant"
)

// ProcessTurn runs one dialogue exchange: retrieve relevant memories, build
// the augmented prompt, generate a reply, persist the turn. Memory retrieval
// and persistence are best-effort; only a completion failure aborts the turn.
func (u *UseCase) ProcessTurn(ctx context.Context, userInput string) (string, error) {
	// Snapshot so search and add hit the same namespace even if this code
	// is ever hosted where the agent can change mid-turn.
	agentID := u.agentID

	results, err := u.memory.Search(ctx, &interfaces.SearchInput{
		Query:   userInput,
		AgentID: agentID,
	})
	if err != nil {
		logging.From(ctx).Warn("memory search failed, continuing without memories",
			"error", err, "agent", agentID)
		results = nil
	}

	memoryBlock := FormatMemories(results, turnMemoryLimit)

	messages := []model.Message{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleSystem, Content: "Current agent: " + string(agentID)},
		{Role: model.RoleSystem, Content: "Relevant prior memories:\n" + memoryBlock},
		{Role: model.RoleUser, Content: userInput},
	}

	resp, err := u.completer.Complete(ctx, messages)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate reply")
	}
	if len(resp.Choices) == 0 {
		return "", goerr.New("completion returned no choices")
	}
	answer := resp.Choices[0].Message.Content

	turn := model.NewTurn(userInput, answer)
	if _, err := u.memory.AddMemories(ctx, &interfaces.AddMemoriesInput{
		Messages: turn.Messages(),
		AgentID:  agentID,
		Metadata: map[string]any{
			"source":    metadataSource,
			"important": u.heuristic.Important(userInput, answer),
		},
	}); err != nil {
		logging.From(ctx).Warn("failed to persist turn",
			"error", err, "agent", agentID)
	}

	return answer, nil
}
