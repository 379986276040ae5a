package evaluator

import (
	"regexp"
	"strconv"
	"strings"
)

// defaultScore stands in when the model response carries no recognizable
// score. Evaluations degrade to it instead of failing.
const defaultScore = 7.0

// ScoreSource records which extraction path produced the score.
type ScoreSource int

const (
	ScoreParsed ScoreSource = iota
	ScoreFromRatio
	ScoreDefaulted
)

func (s ScoreSource) String() string {
	switch s {
	case ScoreParsed:
		return "parsed"
	case ScoreFromRatio:
		return "ratio"
	case ScoreDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// FeedbackSource records which extraction path produced the feedback text.
type FeedbackSource int

const (
	FeedbackFromMarker FeedbackSource = iota
	FeedbackAfterScore
	FeedbackRaw
)

func (f FeedbackSource) String() string {
	switch f {
	case FeedbackFromMarker:
		return "marker"
	case FeedbackAfterScore:
		return "after_score"
	case FeedbackRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Result is one scored evaluation of a session transcript.
type Result struct {
	Score          float64
	Feedback       string
	ScoreSource    ScoreSource
	FeedbackSource FeedbackSource
}

var (
	scorePattern    = regexp.MustCompile(`(?i)SCORE:\s*([0-9]+(?:\.[0-9]+)?)`)
	ratioPattern    = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*/\s*10`)
	feedbackPattern = regexp.MustCompile(`(?is)FEEDBACK:\s*(.*)`)
)

// parseEvaluation extracts a score and feedback block from free-form model
// output. The model's format is not contractually guaranteed, so every
// extraction has a fallback and the function never fails: a `SCORE:` line,
// then an `<n>/10` mention, then the default score; a `FEEDBACK:` section,
// then everything after the score line, then the whole response.
func parseEvaluation(text string) Result {
	res := Result{
		Score:          defaultScore,
		ScoreSource:    ScoreDefaulted,
		Feedback:       strings.TrimSpace(text),
		FeedbackSource: FeedbackRaw,
	}

	scoreEnd := -1
	if m := scorePattern.FindStringSubmatchIndex(text); m != nil {
		if v, err := strconv.ParseFloat(text[m[2]:m[3]], 64); err == nil {
			res.Score = clampScore(v)
			res.ScoreSource = ScoreParsed
			scoreEnd = m[1]
		}
	} else if m := ratioPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			res.Score = clampScore(v)
			res.ScoreSource = ScoreFromRatio
		}
	}

	if m := feedbackPattern.FindStringSubmatch(text); m != nil {
		if fb := strings.TrimSpace(m[1]); fb != "" {
			res.Feedback = fb
			res.FeedbackSource = FeedbackFromMarker
			return res
		}
	}

	if scoreEnd >= 0 {
		if fb := strings.TrimSpace(text[scoreEnd:]); fb != "" {
			res.Feedback = fb
			res.FeedbackSource = FeedbackAfterScore
		}
	}

	return res
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
