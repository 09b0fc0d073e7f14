package classify

import (
	"testing"

	"github.com/handiism/exercices-downloader/internal/model"
)

func TestRandom_SameSeedSameLabels(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)

	for i := 0; i < 50; i++ {
		got, want := a.Classify(model.Attachment{}), b.Classify(model.Attachment{})
		if got != want {
			t.Fatalf("label %d: %q != %q", i, got, want)
		}
	}
}

func TestRandom_CoversAllLabels(t *testing.T) {
	r := NewRandom(7)
	counts := make(map[model.Difficulty]int)

	for i := 0; i < 3000; i++ {
		d := r.Classify(model.Attachment{Title: "Devoir"})
		if !d.Valid() {
			t.Fatalf("invalid label %q", d)
		}
		counts[d]++
	}

	for _, d := range model.AllDifficulties() {
		// uniform would be 1000 each
		if counts[d] < 800 || counts[d] > 1200 {
			t.Errorf("%s picked %d times out of 3000", d, counts[d])
		}
	}
}

func TestFixed(t *testing.T) {
	var c Classifier = Fixed(model.Hard)

	if got := c.Classify(model.Attachment{Title: "anything"}); got != model.Hard {
		t.Errorf("Classify() = %q, want %q", got, model.Hard)
	}
}
