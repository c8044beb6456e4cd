package assistant

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
)

// commandMemoryLimit caps output of /mem list and /mem search.
const commandMemoryLimit = 30

const memUsage = `Unknown /mem command. Use:
/mem
/mem search <query>
/mem show <id>
/mem delete <id>
/mem clear`

// splitCommand splits a command line into at most max whitespace-delimited
// tokens. The final token keeps the remainder of the line verbatim so
// multi-word search queries survive.
func splitCommand(line string, max int) []string {
	var tokens []string
	rest := strings.TrimSpace(line)

	for len(tokens) < max-1 {
		if rest == "" {
			return tokens
		}
		idx := strings.IndexFunc(rest, unicode.IsSpace)
		if idx < 0 {
			return append(tokens, rest)
		}
		tokens = append(tokens, rest[:idx])
		rest = strings.TrimLeftFunc(rest[idx:], unicode.IsSpace)
	}

	if rest != "" {
		tokens = append(tokens, rest)
	}
	return tokens
}

// HandleMemCommand dispatches a "/mem ..." line to the memory store,
// bypassing the dialogue pipeline. Collaborator failures come back as
// bracketed error strings in the transcript, never as errors.
func (u *UseCase) HandleMemCommand(ctx context.Context, line string) string {
	parts := splitCommand(line, 3)

	if len(parts) < 2 {
		res, err := u.memory.ListMemories(ctx, &interfaces.ListMemoriesInput{AgentID: u.agentID})
		if err != nil {
			return fmt.Sprintf("[mem0 list error] %v", err)
		}
		return FormatMemories(res, commandMemoryLimit)
	}

	switch strings.ToLower(parts[1]) {
	case "search":
		if len(parts) == 2 {
			return "Usage: /mem search <query>"
		}
		res, err := u.memory.Search(ctx, &interfaces.SearchInput{
			Query:   parts[2],
			AgentID: u.agentID,
		})
		if err != nil {
			return fmt.Sprintf("[mem0 search error] %v", err)
		}
		return FormatMemories(res, commandMemoryLimit)

	case "show":
		if len(parts) == 2 {
			return "Usage: /mem show <memory_id>"
		}
		res, err := u.memory.GetMemory(ctx, model.MemoryID(parts[2]))
		if err != nil {
			return fmt.Sprintf("[mem0 get error] %v", err)
		}
		return FormatMemories(res, 1)

	case "delete":
		if len(parts) == 2 {
			return "Usage: /mem delete <memory_id>"
		}
		res, err := u.memory.DeleteMemory(ctx, model.MemoryID(parts[2]))
		if err != nil {
			return fmt.Sprintf("[mem0 delete error] %v", err)
		}
		return fmt.Sprintf("Deleted memory %s: %v", parts[2], res)

	case "clear":
		res, err := u.memory.DeleteAll(ctx, &interfaces.DeleteAllInput{AgentID: u.agentID})
		if err != nil {
			return fmt.Sprintf("[mem0 clear error] %v", err)
		}
		return fmt.Sprintf("Cleared all memories for agent '%s': %v", u.agentID, res)
	}

	return memUsage
}

// HandleAgentCommand dispatches a "/agent ..." line. This is the only path
// that mutates the active agent.
func (u *UseCase) HandleAgentCommand(line string) string {
	rest := strings.TrimPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "/agent")
	if rest == "" {
		return fmt.Sprintf("Current agent: %s", u.agentID)
	}

	name := strings.TrimSpace(rest)
	if name == "" || !unicode.IsSpace(rune(rest[0])) {
		return "Usage: /agent <name>"
	}

	u.SetAgent(model.AgentID(name))
	return fmt.Sprintf("Switched agent to: %s", u.agentID)
}
