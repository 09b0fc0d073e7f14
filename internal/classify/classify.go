// Package classify assigns a difficulty label to each downloaded exercise.
//
// The label only decides which folder a file is sorted into. It is picked
// uniformly at random and does not look at the document.
package classify

import (
	"math/rand/v2"
	"time"

	"github.com/handiism/exercices-downloader/internal/model"
)

// Classifier picks a difficulty for an attachment.
type Classifier interface {
	Classify(entry model.Attachment) model.Difficulty
}

// Random picks uniformly among model.AllDifficulties.
// It is not safe for concurrent use.
type Random struct {
	rng    *rand.Rand
	labels []model.Difficulty
}

// NewRandom returns a Random classifier with a fixed seed, so the same seed
// gives the same sequence of labels.
func NewRandom(seed uint64) *Random {
	return &Random{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		labels: model.AllDifficulties(),
	}
}

// NewRandomFromTime returns a Random classifier seeded from the clock.
func NewRandomFromTime() *Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

// Classify ignores the entry and returns a random label.
func (r *Random) Classify(model.Attachment) model.Difficulty {
	return r.labels[r.rng.IntN(len(r.labels))]
}

// Fixed always returns the same label.
type Fixed model.Difficulty

// Classify returns the fixed label.
func (f Fixed) Classify(model.Attachment) model.Difficulty {
	return model.Difficulty(f)
}
