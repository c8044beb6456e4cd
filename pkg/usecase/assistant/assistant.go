package assistant

import (
	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
)

// DefaultAgentID is the memory namespace used until the first /agent switch.
const DefaultAgentID = model.AgentID("vera")

// UseCase drives the memory-augmented dialogue loop for one session. The
// active agent id is session state, not process state: it lives here and is
// mutated only through SetAgent.
type UseCase struct {
	memory    interfaces.Memory
	completer interfaces.Completer
	heuristic Heuristic

	agentID model.AgentID
}

// NewInput contains parameters for creating a session.
type NewInput struct {
	Memory    interfaces.Memory
	Completer interfaces.Completer
	Heuristic Heuristic     // optional, defaults to NewKeywordHeuristic()
	AgentID   model.AgentID // optional, defaults to DefaultAgentID
}

func New(input NewInput) *UseCase {
	uc := &UseCase{
		memory:    input.Memory,
		completer: input.Completer,
		heuristic: input.Heuristic,
		agentID:   input.AgentID,
	}

	if uc.heuristic == nil {
		uc.heuristic = NewKeywordHeuristic()
	}
	if uc.agentID == "" {
		uc.agentID = DefaultAgentID
	}

	return uc
}

// Agent returns the active memory namespace.
func (u *UseCase) Agent() model.AgentID {
	return u.agentID
}

// SetAgent switches the active memory namespace. The only caller is the
// /agent command dispatcher.
func (u *UseCase) SetAgent(id model.AgentID) {
	u.agentID = id
}
