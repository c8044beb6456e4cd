package cli

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kioku/pkg/adapter"
	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/usecase/assistant"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Memory store
	mem0BaseURL string
	userID      string
	agentID     string

	// Completion API
	llmBaseURL  string
	llmAPIKey   string
	model       string
	temperature float64

	// Importance heuristic tuning
	heuristicPath string

	logLevel string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("KIOKU_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// memoryFlags returns flags for the memory store with destination config
func memoryFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mem0-base-url",
			Usage:       "Base URL of the mem0 REST API",
			Value:       "http://127.0.0.1:8000",
			Sources:     cli.EnvVars("MEM0_BASE_URL"),
			Destination: &cfg.mem0BaseURL,
		},
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "Default user ID attached to memory operations",
			Sources:     cli.EnvVars("MEM0_DEFAULT_USER_ID"),
			Destination: &cfg.userID,
		},
		&cli.StringFlag{
			Name:        "agent",
			Aliases:     []string{"a"},
			Usage:       "Initial agent (memory namespace)",
			Value:       string(assistant.DefaultAgentID),
			Sources:     cli.EnvVars("MEM0_DEFAULT_AGENT_ID"),
			Destination: &cfg.agentID,
		},
		&cli.StringFlag{
			Name:        "heuristic-config",
			Usage:       "YAML file overriding importance keywords and threshold",
			Sources:     cli.EnvVars("KIOKU_HEURISTIC_CONFIG"),
			Destination: &cfg.heuristicPath,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-base-url",
			Usage:       "Base URL of the OpenAI-compatible completion API",
			Value:       "https://api.openai.com/v1",
			Sources:     cli.EnvVars("OPENAI_BASE_URL"),
			Destination: &cfg.llmBaseURL,
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for the completion API",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &cfg.llmAPIKey,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Model identifier for completions",
			Value:       "gpt-4.1-mini",
			Sources:     cli.EnvVars("KIOKU_MODEL"),
			Destination: &cfg.model,
		},
		&cli.FloatFlag{
			Name:        "temperature",
			Usage:       "Sampling temperature for completions",
			Value:       0.4,
			Sources:     cli.EnvVars("KIOKU_TEMPERATURE"),
			Destination: &cfg.temperature,
		},
	}
}

// newMemory creates the memory store client
func (cfg *config) newMemory() (interfaces.Memory, error) {
	if cfg.mem0BaseURL == "" {
		return nil, goerr.New("mem0-base-url is required")
	}

	var opts []adapter.Mem0Option
	if cfg.userID != "" {
		opts = append(opts, adapter.WithDefaultUserID(cfg.userID))
	}
	return adapter.NewMem0(cfg.mem0BaseURL, opts...), nil
}

// newCompleter creates the chat-completion client
func (cfg *config) newCompleter() (interfaces.Completer, error) {
	if cfg.llmBaseURL == "" {
		return nil, goerr.New("llm-base-url is required")
	}

	opts := []adapter.LLMOption{
		adapter.WithModel(cfg.model),
		adapter.WithTemperature(cfg.temperature),
	}
	if cfg.llmAPIKey != "" {
		opts = append(opts, adapter.WithAPIKey(cfg.llmAPIKey))
	}
	return adapter.NewLLM(cfg.llmBaseURL, opts...), nil
}

// newHeuristic creates the importance heuristic, loading tuning overrides
// when a config file is given
func (cfg *config) newHeuristic() (assistant.Heuristic, error) {
	if cfg.heuristicPath == "" {
		return assistant.NewKeywordHeuristic(), nil
	}

	h, err := assistant.LoadHeuristic(cfg.heuristicPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load heuristic config")
	}
	return h, nil
}
