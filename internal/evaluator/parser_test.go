package evaluator

import (
	"strings"
	"testing"
)

func TestParseScoreLine(t *testing.T) {
	res := parseEvaluation("SCORE: 8.5\nFEEDBACK:\nOverall Performance: solid answers throughout.")

	if res.Score != 8.5 {
		t.Fatalf("expected score 8.5, got %v", res.Score)
	}
	if res.ScoreSource != ScoreParsed {
		t.Fatalf("expected ScoreParsed, got %v", res.ScoreSource)
	}
	if res.FeedbackSource != FeedbackFromMarker {
		t.Fatalf("expected FeedbackFromMarker, got %v", res.FeedbackSource)
	}
	if !strings.HasPrefix(res.Feedback, "Overall Performance") {
		t.Fatalf("unexpected feedback: %q", res.Feedback)
	}
}

func TestParseRatioFallback(t *testing.T) {
	res := parseEvaluation("The candidate did reasonably well, I would give them 7/10 overall.")

	if res.Score != 7.0 {
		t.Fatalf("expected score 7.0, got %v", res.Score)
	}
	if res.ScoreSource != ScoreFromRatio {
		t.Fatalf("expected ScoreFromRatio, got %v", res.ScoreSource)
	}
	if res.FeedbackSource != FeedbackRaw {
		t.Fatalf("expected FeedbackRaw, got %v", res.FeedbackSource)
	}
}

func TestParseNoPatternDefaults(t *testing.T) {
	raw := "The interview went fine but I cannot commit to a number."
	res := parseEvaluation(raw)

	if res.Score != 7.0 {
		t.Fatalf("expected default score 7.0, got %v", res.Score)
	}
	if res.ScoreSource != ScoreDefaulted {
		t.Fatalf("expected ScoreDefaulted, got %v", res.ScoreSource)
	}
	if res.Feedback != raw {
		t.Fatalf("expected the raw text as feedback, got %q", res.Feedback)
	}
}

func TestParseClampsOutOfRangeScores(t *testing.T) {
	if res := parseEvaluation("SCORE: 15"); res.Score != 10 {
		t.Fatalf("expected clamp to 10, got %v", res.Score)
	}
	if res := parseEvaluation("SCORE: 0.0"); res.Score != 0 {
		t.Fatalf("expected 0, got %v", res.Score)
	}
}

func TestParseCaseInsensitiveMarkers(t *testing.T) {
	res := parseEvaluation("score: 6.5\nfeedback:\nStrengths: good SQL knowledge.")

	if res.Score != 6.5 || res.ScoreSource != ScoreParsed {
		t.Fatalf("expected lower-case score line parsed, got %v (%v)", res.Score, res.ScoreSource)
	}
	if res.FeedbackSource != FeedbackFromMarker {
		t.Fatalf("expected lower-case feedback marker honored, got %v", res.FeedbackSource)
	}
}

func TestParseFeedbackAfterScoreLineWithoutMarker(t *testing.T) {
	res := parseEvaluation("SCORE: 9.0\nGreat depth on system design, weak on SQL joins.")

	if res.Score != 9.0 {
		t.Fatalf("expected 9.0, got %v", res.Score)
	}
	if res.FeedbackSource != FeedbackAfterScore {
		t.Fatalf("expected FeedbackAfterScore, got %v", res.FeedbackSource)
	}
	if !strings.Contains(res.Feedback, "system design") {
		t.Fatalf("unexpected feedback: %q", res.Feedback)
	}
}

func TestParseEmptyInputDoesNotPanic(t *testing.T) {
	res := parseEvaluation("")

	if res.Score != 7.0 || res.ScoreSource != ScoreDefaulted {
		t.Fatalf("expected defaults for empty input, got %+v", res)
	}
}
