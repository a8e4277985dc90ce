package mutator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/chatbackend"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

func TestRandomNeverReturnsCrossover(t *testing.T) {
	m := New(&chatbackend.FakeBackend{}, 1)
	for i := 0; i < 200; i++ {
		if got := m.Random(); got == domain.MutationCrossover {
			t.Fatalf("Random() returned crossover on iteration %d", i)
		}
	}
}

func TestSelectMutationWithOneEliteNeverReturnsCrossover(t *testing.T) {
	m := New(&chatbackend.FakeBackend{}, 2)
	for i := 0; i < 200; i++ {
		if got := m.SelectMutation(1); got == domain.MutationCrossover {
			t.Fatalf("SelectMutation(1) returned crossover on iteration %d", i)
		}
	}
}

func TestSelectMutationWithTwoElitesSometimesCrossover(t *testing.T) {
	m := New(&chatbackend.FakeBackend{}, 3)
	sawCrossover := false
	for i := 0; i < 500; i++ {
		if m.SelectMutation(2) == domain.MutationCrossover {
			sawCrossover = true
			break
		}
	}
	if !sawCrossover {
		t.Error("SelectMutation(2) never returned crossover across 500 samples")
	}
}

func validExplanationFormattedReply(body string) string {
	return body + " DECISION: BLOCK CONFIDENCE: 0.9 EXPLANATION: stays within constraints and retains parent authority at all times during evaluation"
}

func TestMutateCleansCodeFenceAndWhitespace(t *testing.T) {
	reply := "```\n" + validExplanationFormattedReply("You are a careful Family Guardian AI that protects children online.") + "\n```"
	backend := &chatbackend.FakeBackend{Responses: []string{reply}}
	m := New(backend, 4)

	got, err := m.Mutate(context.Background(), domain.MutationSensitivityTuning, "parent prompt text", "feedback: too many false positives")
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if strings.Contains(got, "```") {
		t.Errorf("cleaned output still contains code fence markers: %q", got)
	}
}

func TestMutateRejectsTooShortOutput(t *testing.T) {
	backend := &chatbackend.FakeBackend{Responses: []string{"too short"}}
	m := New(backend, 5)

	_, err := m.Mutate(context.Background(), domain.MutationPolicyAdherence, "parent", "feedback")
	if !errors.Is(err, ErrOutputTooShort) {
		t.Errorf("err = %v, want ErrOutputTooShort", err)
	}
}

func TestMutateTruncatesToFiveHundredWords(t *testing.T) {
	words := make([]string, 600)
	for i := range words {
		words[i] = "word"
	}
	backend := &chatbackend.FakeBackend{Responses: []string{strings.Join(words, " ")}}
	m := New(backend, 6)

	got, err := m.Mutate(context.Background(), domain.MutationExplanationImprovement, "parent", "feedback")
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if count := len(strings.Fields(got)); count != 500 {
		t.Errorf("truncated word count = %d, want 500", count)
	}
}

func TestMutateBackendFailurePropagates(t *testing.T) {
	backend := &chatbackend.FakeBackend{Err: chatbackend.ErrBackend}
	m := New(backend, 7)

	_, err := m.Mutate(context.Background(), domain.MutationSensitivityTuning, "parent", "feedback")
	if !errors.Is(err, chatbackend.ErrBackend) {
		t.Errorf("err = %v, want ErrBackend", err)
	}
}

func TestCrossoverCombinesTwoParents(t *testing.T) {
	reply := validExplanationFormattedReply("A combined guardian prompt drawing on both parents' protective strengths and wording choices.")
	backend := &chatbackend.FakeBackend{Responses: []string{reply}}
	m := New(backend, 8)

	got, err := m.Crossover(context.Background(), "parent A text", "parent B text", "feedback")
	if err != nil {
		t.Fatalf("Crossover: %v", err)
	}
	if len(got) < minOutputChars {
		t.Errorf("got = %q, shorter than minimum", got)
	}
}
