package match

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/domain/profile"
)

// pairKey identifies an unordered profile pair: the same two profiles always
// receive the same rationale regardless of direction.
type pairKey [2]uuid.UUID

func newPairKey(a, b uuid.UUID) pairKey {
	if strings.Compare(a.String(), b.String()) > 0 {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Icebreakers generates the templated rationale and opener for a profile
// pair. Output is a pure function of the pair's overlap sets, so results are
// cached.
type Icebreakers struct {
	mu    sync.Mutex
	cache map[pairKey]string
}

func NewIcebreakers() *Icebreakers {
	return &Icebreakers{cache: make(map[pairKey]string)}
}

// Rationale explains why two profiles matched, from their skill and topic
// overlap.
func (ib *Icebreakers) Rationale(subject, candidate *profile.Profile) string {
	key := newPairKey(subject.ID, candidate.ID)

	ib.mu.Lock()
	defer ib.mu.Unlock()
	if msg, ok := ib.cache[key]; ok {
		return msg
	}

	skills := Overlap(subject.Skills, candidate.Skills)
	topics := Overlap(subject.Topics, candidate.Topics)

	topicPart := strings.Join(first(topics, 1), ", ")
	if topicPart == "" {
		topicPart = "interests"
	}
	skillPart := strings.Join(first(skills, 2), ", ")
	if skillPart == "" {
		skillPart = "similar areas"
	}

	msg := "Overlap on " + topicPart + " and skills " + skillPart + "."
	ib.cache[key] = msg
	return msg
}

// Opener drafts the intro message sent to the candidate. The greeting names
// the recipient, so unlike the rationale it depends on direction.
func (ib *Icebreakers) Opener(subject, candidate *profile.Profile) string {
	hook := strings.Join(first(Overlap(subject.Topics, candidate.Topics), 1), ", ")
	if hook == "" {
		hook = strings.Join(first(Overlap(subject.Skills, candidate.Skills), 1), ", ")
	}
	if hook == "" {
		hook = "building things"
	}

	name := candidate.Name
	if name == "" {
		name = "there"
	}
	return "Hi " + name + ", noticed we both care about " + hook + ". Want to team up?"
}

func first(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
