package model

// AgentID identifies an isolated memory namespace. Exactly one agent is
// active per session; switching it never affects already-issued requests.
type AgentID string

// MemoryID identifies a single record owned by the memory store service.
type MemoryID string
