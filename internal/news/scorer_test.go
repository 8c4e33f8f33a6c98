package news

import "testing"

func TestScoreHeadline(t *testing.T) {
	cases := []struct {
		title string
		want  float64
	}{
		{"Apple beats earnings, shares surge", 1.0},
		{"Chipmaker faces lawsuit after downgrade", -1.0},
		{"Quarterly results announced on schedule", 0.0},
		{"Strong growth offsets layoffs", 0.5}, // two positive, one negative
		{"SURGE! Analysts upgrade.", 1.0},      // punctuation and case stripped
	}
	for _, c := range cases {
		if got := scoreHeadline(c.title); got != c.want {
			t.Errorf("%q: expected %.1f, got %.1f", c.title, c.want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if clamp(2.5) != 1 || clamp(-3) != -1 {
		t.Error("scores must clamp to [-1, 1]")
	}
	if clamp(0.4) != 0.4 {
		t.Error("in-range scores pass through")
	}
}

func TestNewScorerDefaults(t *testing.T) {
	s := NewScorer(nil, 0)
	if s.maxHeadlines != 15 {
		t.Errorf("expected default of 15 headlines, got %d", s.maxHeadlines)
	}
}
