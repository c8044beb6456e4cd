package assistant

import (
	"os"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Heuristic decides whether a completed turn should be flagged as important
// when persisted. Implementations must be pure and side-effect free so a
// model-based classifier can be substituted without touching call sites.
type Heuristic interface {
	Important(userInput, answer string) bool
}

// DefaultImportanceKeywords are tuning constants, not domain invariants.
var DefaultImportanceKeywords = []string{
	"remember",
	"note this",
	"important",
	"permanent",
	"preference",
	"goal",
	"target",
	"schedule",
	"budget",
}

// DefaultLongInputThreshold marks long, detailed inputs as important even
// without a keyword hit.
const DefaultLongInputThreshold = 140

// KeywordHeuristic is a deliberately cheap local proxy for importance:
// case-insensitive substring match over the turn text, plus a length
// fallback on the user input.
type KeywordHeuristic struct {
	Keywords           []string `yaml:"keywords"`
	LongInputThreshold int      `yaml:"long_input_threshold"`
}

var _ Heuristic = (*KeywordHeuristic)(nil)

// NewKeywordHeuristic returns a heuristic with the default tuning.
func NewKeywordHeuristic() *KeywordHeuristic {
	return &KeywordHeuristic{
		Keywords:           slices.Clone(DefaultImportanceKeywords),
		LongInputThreshold: DefaultLongInputThreshold,
	}
}

func (h *KeywordHeuristic) Important(userInput, answer string) bool {
	text := strings.ToLower(userInput + " " + answer)
	for _, keyword := range h.Keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return len(userInput) > h.LongInputThreshold
}

// LoadHeuristic reads keyword and threshold overrides from a YAML file.
// Omitted fields keep their defaults; keywords are lowered to match the
// lowered turn text.
func LoadHeuristic(path string) (*KeywordHeuristic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read heuristic config", goerr.V("path", path))
	}

	h := NewKeywordHeuristic()
	if err := yaml.Unmarshal(data, h); err != nil {
		return nil, goerr.Wrap(err, "failed to parse heuristic config", goerr.V("path", path))
	}

	if len(h.Keywords) == 0 {
		h.Keywords = slices.Clone(DefaultImportanceKeywords)
	}
	for i, keyword := range h.Keywords {
		h.Keywords[i] = strings.ToLower(keyword)
	}
	if h.LongInputThreshold <= 0 {
		h.LongInputThreshold = DefaultLongInputThreshold
	}

	return h, nil
}
