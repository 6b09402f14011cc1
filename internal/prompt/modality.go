package prompt

import "github.com/promptrefiner/promptrefiner/internal/llm"

// Modality selects which refiner variant handles the request.
type Modality int

const (
	TextRefiner Modality = iota
	ImageRefiner
	VideoRefiner
	SystemPromptRefiner
)

func (m Modality) String() string {
	switch m {
	case ImageRefiner:
		return "image"
	case VideoRefiner:
		return "video"
	case SystemPromptRefiner:
		return "system"
	default:
		return "text"
	}
}

// ParseModality maps the wire tag to a variant. Unknown tags fall back to
// the text refiner.
func ParseModality(tag string) Modality {
	switch tag {
	case "image":
		return ImageRefiner
	case "video":
		return VideoRefiner
	case "system":
		return SystemPromptRefiner
	default:
		return TextRefiner
	}
}

// instructionSet bundles the fixed instruction blocks and few-shot
// exemplars for one modality.
type instructionSet struct {
	AnalyzerSystem string
	RefinerSystem  string
	AnalyzerShots  []llm.Exemplar
	RefinerShots   []llm.Exemplar
}

var instructionSets = map[Modality]instructionSet{
	TextRefiner: {
		AnalyzerSystem: analyzerSystemPrompt,
		RefinerSystem:  refinerSystemPrompt,
		AnalyzerShots:  analyzerFewShots,
		RefinerShots:   refinerFewShots,
	},
	ImageRefiner: {
		AnalyzerSystem: analyzerSystemPrompt + imageAddendum,
		RefinerSystem:  refinerSystemPrompt + imageAddendum,
		AnalyzerShots:  analyzerFewShots,
		RefinerShots:   refinerFewShots,
	},
	VideoRefiner: {
		AnalyzerSystem: analyzerSystemPrompt + videoAddendum,
		RefinerSystem:  refinerSystemPrompt + videoAddendum,
		AnalyzerShots:  analyzerFewShots,
		RefinerShots:   refinerFewShots,
	},
	SystemPromptRefiner: {
		AnalyzerSystem: analyzerSystemPrompt + systemAddendum,
		RefinerSystem:  refinerSystemPrompt + systemAddendum,
		AnalyzerShots:  analyzerFewShots,
		RefinerShots:   refinerFewShots,
	},
}

func instructionsFor(m Modality) instructionSet {
	set, ok := instructionSets[m]
	if !ok {
		return instructionSets[TextRefiner]
	}
	return set
}
