package cmi

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charm-money/internal/domain"
)

func answersFor(trait domain.Trait, value func(q domain.Question) int) domain.Answers {
	answers := domain.Answers{}
	for _, q := range questionBank {
		if q.Trait == trait {
			answers[q.ID] = value(q)
		}
	}
	return answers
}

func TestScoreTrait_AllNeutralTieBreaksHigh(t *testing.T) {
	for _, trait := range traitOrder {
		t.Run(string(trait), func(t *testing.T) {
			answers := answersFor(trait, func(domain.Question) int { return 3 })
			score := ScoreTrait(trait, questionBank, answers)

			assert.Equal(t, trait, score.Trait)
			assert.Equal(t, 0.0, score.RawDirection)
			assert.Equal(t, domain.PoleHigh, score.Dominant)
			assert.Equal(t, 1, score.HighPercent)
			assert.Equal(t, 0, score.LowPercent)
			assert.True(t, score.IsBalancedZone)
		})
	}
}

func TestScoreTrait_FullAgreementWithPole(t *testing.T) {
	for _, trait := range traitOrder {
		t.Run(string(trait), func(t *testing.T) {
			high := answersFor(trait, func(q domain.Question) int {
				if q.Pole == domain.PoleHigh {
					return 5
				}
				return 1
			})
			score := ScoreTrait(trait, questionBank, high)
			assert.Equal(t, 1.0, score.RawDirection)
			assert.Equal(t, domain.PoleHigh, score.Dominant)
			assert.Equal(t, 100, score.HighPercent)
			assert.Equal(t, 0, score.LowPercent)
			assert.False(t, score.IsBalancedZone)

			low := answersFor(trait, func(q domain.Question) int {
				if q.Pole == domain.PoleHigh {
					return 1
				}
				return 5
			})
			score = ScoreTrait(trait, questionBank, low)
			assert.Equal(t, -1.0, score.RawDirection)
			assert.Equal(t, domain.PoleLow, score.Dominant)
			assert.Equal(t, 100, score.LowPercent)
			assert.Equal(t, 0, score.HighPercent)
			assert.False(t, score.IsBalancedZone)
		})
	}
}

func TestScoreTrait_AllOnesOnClosenessBank(t *testing.T) {
	answers := domain.Answers{"cl1": 1, "cl2": 1, "cl3": 1, "cl4": 1, "cl5": 1}
	score := ScoreTrait(domain.TraitCloseness, questionBank, answers)

	assert.Equal(t, -0.2, score.RawDirection)
	assert.Equal(t, domain.PoleLow, score.Dominant)
	assert.Equal(t, 20, score.LowPercent)
	assert.Equal(t, 0, score.HighPercent)
	assert.False(t, score.IsBalancedZone)
}

func TestScoreTrait_UnansweredEqualsNeutral(t *testing.T) {
	neutral := answersFor(domain.TraitGrowth, func(domain.Question) int { return 3 })
	assert.Equal(t,
		ScoreTrait(domain.TraitGrowth, questionBank, neutral),
		ScoreTrait(domain.TraitGrowth, questionBank, domain.Answers{}),
	)
	assert.Equal(t,
		ScoreTrait(domain.TraitGrowth, questionBank, neutral),
		ScoreTrait(domain.TraitGrowth, questionBank, nil),
	)
}

func TestScoreTrait_NoQuestionsReturnsFallback(t *testing.T) {
	score := ScoreTrait(domain.TraitControl, []domain.Question{
		{ID: "x1", Trait: domain.TraitGrowth, Pole: domain.PoleHigh},
	}, domain.Answers{"x1": 5})

	assert.Equal(t, domain.TraitScore{
		Trait:          domain.TraitControl,
		Dominant:       domain.PoleHigh,
		LowPercent:     0,
		HighPercent:    1,
		RawDirection:   0,
		IsBalancedZone: true,
	}, score)
}

func TestScoreTrait_RoundsToThreeDecimals(t *testing.T) {
	questions := []domain.Question{
		{ID: "a", Trait: domain.TraitBoundary, Pole: domain.PoleHigh},
		{ID: "b", Trait: domain.TraitBoundary, Pole: domain.PoleHigh},
		{ID: "c", Trait: domain.TraitBoundary, Pole: domain.PoleHigh},
	}
	// (1 + 0 + 0) / 3
	score := ScoreTrait(domain.TraitBoundary, questions, domain.Answers{"a": 5, "b": 3, "c": 3})
	assert.Equal(t, 0.333, score.RawDirection)
	assert.Equal(t, 33, score.HighPercent)

	score = ScoreTrait(domain.TraitBoundary, questions, domain.Answers{"a": 1, "b": 3, "c": 3})
	assert.Equal(t, -0.333, score.RawDirection)
	assert.Equal(t, 33, score.LowPercent)
}

func TestScoreTrait_WorksForAnyQuestionCount(t *testing.T) {
	questions := []domain.Question{
		{ID: "only", Trait: domain.TraitSelfWorth, Pole: domain.PoleLow},
	}
	score := ScoreTrait(domain.TraitSelfWorth, questions, domain.Answers{"only": 4})
	assert.Equal(t, -0.5, score.RawDirection)
	assert.Equal(t, domain.PoleLow, score.Dominant)
	assert.Equal(t, 50, score.LowPercent)
}

func TestScoreTrait_MinimumPercentFloor(t *testing.T) {
	// 1 pregunta a favor sobre 200 neutrales: T = 0.5/200 = 0.0025 -> round(0.25) = 0 -> piso 1.
	questions := make([]domain.Question, 0, 201)
	answers := domain.Answers{}
	for i := 0; i < 201; i++ {
		id := "q" + string(rune('A'+i%26)) + string(rune('a'+i/26))
		questions = append(questions, domain.Question{ID: id, Trait: domain.TraitControl, Pole: domain.PoleHigh})
		answers[id] = 3
	}
	answers[questions[0].ID] = 4

	score := ScoreTrait(domain.TraitControl, questions, answers)
	assert.Equal(t, domain.PoleHigh, score.Dominant)
	assert.Equal(t, MinPercent, score.HighPercent)
	assert.Equal(t, 0, score.LowPercent)
	assert.True(t, score.IsBalancedZone)
}

func TestScoreTrait_BalancedZoneMatchesThreshold(t *testing.T) {
	// Recorre todas las combinaciones posibles de la escala closeness. Con
	// cinco preguntas T nunca cae entre 0.0995 y 0.1.
	ids := []string{"cl1", "cl2", "cl3", "cl4", "cl5"}
	var walk func(i int, answers domain.Answers)
	walk = func(i int, answers domain.Answers) {
		if i == len(ids) {
			score := ScoreTrait(domain.TraitCloseness, questionBank, answers)
			assert.Equal(t, math.Abs(score.RawDirection) < BalancedThreshold, score.IsBalancedZone, "answers=%v", answers)
			assert.GreaterOrEqual(t, score.RawDirection, -1.0)
			assert.LessOrEqual(t, score.RawDirection, 1.0)
			if score.Dominant == domain.PoleHigh {
				assert.Zero(t, score.LowPercent)
				assert.GreaterOrEqual(t, score.HighPercent, 1)
			} else {
				assert.Zero(t, score.HighPercent)
				assert.GreaterOrEqual(t, score.LowPercent, 1)
			}
			return
		}
		for v := 1; v <= 5; v++ {
			answers[ids[i]] = v
			walk(i+1, answers)
		}
	}
	walk(0, domain.Answers{})
}

func TestScoreAllTraits_AlwaysFiveTraits(t *testing.T) {
	scores := ScoreAllTraits(questionBank, nil)
	require.Len(t, scores, len(traitOrder))
	for _, trait := range traitOrder {
		require.Contains(t, scores, trait)
		assert.Equal(t, trait, scores[trait].Trait)
	}

	scores = ScoreAllTraits(nil, domain.Answers{"cl1": 5})
	require.Len(t, scores, len(traitOrder))
	for _, trait := range traitOrder {
		assert.Equal(t, fallbackScore(trait), scores[trait])
	}
}

func TestScoreAllTraits_ConcurrentCallsAgree(t *testing.T) {
	answers := domain.Answers{"cl1": 2, "co3": 5, "sw2": 4, "bo4": 1, "gr5": 5}
	want := ScoreAllTraits(questionBank, answers)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, ScoreAllTraits(questionBank, answers))
		}()
	}
	wg.Wait()
}

func TestAxisPercentAndVerdict(t *testing.T) {
	assert.Equal(t, 50, AxisPercent(domain.TraitScore{RawDirection: 0}))
	assert.Equal(t, 100, AxisPercent(domain.TraitScore{RawDirection: 1}))
	assert.Equal(t, 0, AxisPercent(domain.TraitScore{RawDirection: -1}))
	assert.Equal(t, 86, AxisPercent(domain.TraitScore{RawDirection: 0.72}))
	assert.Equal(t, 40, AxisPercent(domain.TraitScore{RawDirection: -0.2}))

	assert.Equal(t, "mid", Verdict(domain.TraitScore{Dominant: domain.PoleLow, IsBalancedZone: true}))
	assert.Equal(t, "low", Verdict(domain.TraitScore{Dominant: domain.PoleLow}))
	assert.Equal(t, "high", Verdict(domain.TraitScore{Dominant: domain.PoleHigh}))
}

func TestScoreTrait_BalancedZoneUsesUnroundedDirection(t *testing.T) {
	// 82 respuestas en 4 sobre 412 preguntas: T = 41/412 = 0.09951...
	questions := make([]domain.Question, 0, 412)
	answers := domain.Answers{}
	for i := 0; i < 412; i++ {
		id := fmt.Sprintf("gr%03d", i)
		questions = append(questions, domain.Question{ID: id, Trait: domain.TraitGrowth, Pole: domain.PoleHigh})
		answers[id] = NeutralAnswer
		if i < 82 {
			answers[id] = 4
		}
	}

	score := ScoreTrait(domain.TraitGrowth, questions, answers)
	assert.Equal(t, 0.1, score.RawDirection)
	assert.True(t, score.IsBalancedZone, "balanced is decided before rounding")
	assert.Equal(t, "mid", Verdict(score))
	assert.Equal(t, domain.PoleHigh, score.Dominant)
	assert.Equal(t, 10, score.HighPercent)

	// un 4 mas cruza el umbral: T = 41.5/412 = 0.1007
	answers["gr082"] = 4
	score = ScoreTrait(domain.TraitGrowth, questions, answers)
	assert.Equal(t, 0.101, score.RawDirection)
	assert.False(t, score.IsBalancedZone)
}
