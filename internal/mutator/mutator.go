// Package mutator derives child prompts from one or two parents via a
// meta-prompt sent through the chat backend (spec §4.7).
package mutator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/chatbackend"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// ErrOutputTooShort is returned when a mutated prompt, after cleaning,
// is shorter than the minimum acceptable length.
var ErrOutputTooShort = errors.New("mutator: cleaned output shorter than 50 characters")

const (
	maxOutputWords = 500
	minOutputChars = 50
)

// metaSystemMessage constrains every mutation/crossover call equally
// (spec §4.7): bounded length, preserved response format, no cloud
// references, parent authority preserved.
const metaSystemMessage = `You are improving a Guardian AI system prompt. Output ONLY the revised prompt text.
Constraints: under 500 words; must retain the DECISION/CONFIDENCE/EXPLANATION response format;
must not reference any cloud service; must preserve the parent's final authority over the child.`

// instructionFor maps each mutation type to the type-specific user-message
// instruction (spec §9: a table from tag to string, not a class hierarchy).
var instructionFor = map[domain.MutationType]string{
	domain.MutationSensitivityTuning:      "Adjust the prompt's sensitivity thresholds to better balance catching real threats against over-blocking benign messages.",
	domain.MutationSpecializationShift:    "Shift the prompt's focus toward a different, currently under-represented threat specialization while keeping its general protective stance.",
	domain.MutationExplanationImprovement: "Rewrite the prompt so the guardian's explanations are more detailed and grounded in specific, named behavioral patterns.",
	domain.MutationPolicyAdherence:        "Strengthen the prompt's instructions to respect configured family policy rules (contacts, spending, privacy, content).",
	domain.MutationFalsePositiveReduction: "Tighten the prompt's criteria for blocking so that ordinary, benign messages are not flagged as threats.",
}

// crossoverInstruction is the distinct meta-prompt user-message content
// used for two-parent crossover.
const crossoverInstruction = "Combine the protective strengths of both parent prompts below into one unified prompt, preferring whichever parent's wording is clearer for each behavior."

// Mutator derives child prompt texts through a chat backend.
type Mutator struct {
	backend chatbackend.Backend

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Mutator backed by backend, seeded for reproducible
// mutation-type selection.
func New(backend chatbackend.Backend, seed int64) *Mutator {
	return &Mutator{backend: backend, rng: rand.New(rand.NewSource(seed))}
}

// Random returns a uniformly selected mutation type, excluding crossover
// (spec §4.7: random() excludes crossover).
func (m *Mutator) Random() domain.MutationType {
	types := domain.NonCrossoverMutations()
	return types[m.intn(len(types))]
}

// SelectMutation returns crossover with probability 0.2 when eliteCount
// is at least 2, else falls back to Random (spec §4.7).
func (m *Mutator) SelectMutation(eliteCount int) domain.MutationType {
	if eliteCount >= 2 && m.float64() < 0.2 {
		return domain.MutationCrossover
	}
	return m.Random()
}

func (m *Mutator) intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Intn(n)
}

func (m *Mutator) float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64()
}

// Mutate derives a single child prompt from parent via the mutation type's
// instruction and the evaluation feedback string. On any failure the
// caller should fall back to the parent's text unchanged (spec §4.7).
func (m *Mutator) Mutate(ctx context.Context, mutationType domain.MutationType, parentText, feedback string) (string, error) {
	instruction, ok := instructionFor[mutationType]
	if !ok {
		instruction = instructionFor[domain.MutationSensitivityTuning]
	}

	userMessage := instruction + "\n\nParent prompt:\n" + parentText + "\n\nEvaluation feedback:\n" + feedback

	raw, err := m.backend.Chat(ctx, []chatbackend.Message{
		{Role: chatbackend.RoleSystem, Content: metaSystemMessage},
		{Role: chatbackend.RoleUser, Content: userMessage},
	})
	if err != nil {
		return "", err
	}

	return clean(raw)
}

// Crossover derives a single child prompt from two elite parents via the
// crossover meta-prompt.
func (m *Mutator) Crossover(ctx context.Context, parentA, parentB, feedback string) (string, error) {
	userMessage := crossoverInstruction +
		"\n\nParent A:\n" + parentA +
		"\n\nParent B:\n" + parentB +
		"\n\nEvaluation feedback:\n" + feedback

	raw, err := m.backend.Chat(ctx, []chatbackend.Message{
		{Role: chatbackend.RoleSystem, Content: metaSystemMessage},
		{Role: chatbackend.RoleUser, Content: userMessage},
	})
	if err != nil {
		return "", err
	}

	return clean(raw)
}

// clean strips whitespace and code-fence wrapping, truncates to 500
// words, and rejects outputs shorter than 50 characters (spec §4.7).
func clean(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	text = stripCodeFence(text)
	text = truncateWords(text, maxOutputWords)

	if len(text) < minOutputChars {
		return "", ErrOutputTooShort
	}
	return text, nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}
