package assistant_test

import (
	"context"

	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
)

// Mock memory store
type mockMemory struct {
	addCalls     int
	lastAdd      *interfaces.AddMemoriesInput
	addResult    any
	addErr       error
	listCalls    int
	lastList     *interfaces.ListMemoriesInput
	listResult   any
	listErr      error
	getCalls     int
	lastGet      model.MemoryID
	getResult    any
	getErr       error
	deleteCalls  int
	lastDelete   model.MemoryID
	deleteResult any
	deleteErr    error
	clearCalls   int
	lastClear    *interfaces.DeleteAllInput
	clearResult  any
	clearErr     error
	searchCalls  int
	lastSearch   *interfaces.SearchInput
	searchResult any
	searchErr    error
}

func (m *mockMemory) AddMemories(ctx context.Context, input *interfaces.AddMemoriesInput) (any, error) {
	m.addCalls++
	m.lastAdd = input
	return m.addResult, m.addErr
}

func (m *mockMemory) ListMemories(ctx context.Context, input *interfaces.ListMemoriesInput) (any, error) {
	m.listCalls++
	m.lastList = input
	return m.listResult, m.listErr
}

func (m *mockMemory) GetMemory(ctx context.Context, id model.MemoryID) (any, error) {
	m.getCalls++
	m.lastGet = id
	return m.getResult, m.getErr
}

func (m *mockMemory) UpdateMemory(ctx context.Context, id model.MemoryID, data map[string]any) (any, error) {
	return nil, nil
}

func (m *mockMemory) DeleteMemory(ctx context.Context, id model.MemoryID) (any, error) {
	m.deleteCalls++
	m.lastDelete = id
	return m.deleteResult, m.deleteErr
}

func (m *mockMemory) DeleteAll(ctx context.Context, input *interfaces.DeleteAllInput) (any, error) {
	m.clearCalls++
	m.lastClear = input
	return m.clearResult, m.clearErr
}

func (m *mockMemory) Search(ctx context.Context, input *interfaces.SearchInput) (any, error) {
	m.searchCalls++
	m.lastSearch = input
	return m.searchResult, m.searchErr
}

func (m *mockMemory) Reset(ctx context.Context) (any, error) {
	return nil, nil
}

// Mock completion client
type mockCompleter struct {
	calls        int
	lastMessages []model.Message
	answer       string
	err          error
}

func (m *mockCompleter) Complete(ctx context.Context, messages []model.Message) (*model.Completion, error) {
	m.calls++
	m.lastMessages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &model.Completion{
		Choices: []model.Choice{
			{Message: model.Message{Role: model.RoleAssistant, Content: m.answer}},
		},
	}, nil
}
