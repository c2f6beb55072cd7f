package cmi

import (
	"math"

	"charm-money/internal/domain"
)

const (
	// NeutralAnswer se usa cuando una pregunta no fue respondida.
	NeutralAnswer = 3

	// BalancedThreshold: |T| < 0.1 se considera cerca del centro.
	BalancedThreshold = 0.1

	// MinPercent evita reportar un lado dominante con 0%.
	MinPercent = 1
)

// ScoreTrait calcula el score continuo y la clasificacion de un trait.
// Nunca falla: respuestas faltantes cuentan como neutrales y un trait sin
// preguntas recibe el score de respaldo.
func ScoreTrait(trait domain.Trait, questions []domain.Question, answers domain.Answers) domain.TraitScore {
	var (
		sum   float64
		count int
	)
	for _, q := range questions {
		if q.Trait != trait {
			continue
		}
		answer, ok := answers[q.ID]
		if !ok {
			answer = NeutralAnswer
		}

		// 1..5 -> -1..+1
		deviation := float64(answer-NeutralAnswer) / 2
		if q.Pole == domain.PoleHigh {
			sum += deviation
		} else {
			sum -= deviation
		}
		count++
	}

	if count == 0 {
		return fallbackScore(trait)
	}

	return ScoreFromDirection(trait, sum/float64(count))
}

// ScoreFromDirection clasifica un score continuo ya calculado en -1..+1.
// La zona balanceada se decide con t sin redondear, asi que con bancos
// grandes RawDirection puede mostrar 0.1 con IsBalancedZone en true.
func ScoreFromDirection(trait domain.Trait, t float64) domain.TraitScore {
	magnitude := math.Min(math.Abs(t), 1)
	intensity := int(math.Round(magnitude * 100))

	score := domain.TraitScore{
		Trait:          trait,
		RawDirection:   roundTo(t, 3),
		IsBalancedZone: magnitude < BalancedThreshold,
	}

	switch {
	case t > 0:
		score.Dominant = domain.PoleHigh
		score.HighPercent = max(intensity, MinPercent)
	case t < 0:
		score.Dominant = domain.PoleLow
		score.LowPercent = max(intensity, MinPercent)
	default:
		// Empate exacto: se fuerza high con el minimo.
		score.Dominant = domain.PoleHigh
		score.HighPercent = MinPercent
	}
	return score
}

// ScoreAllTraits puntua cada trait en el orden fijo. El mapa siempre tiene
// los cinco traits.
func ScoreAllTraits(questions []domain.Question, answers domain.Answers) domain.TraitScores {
	scores := make(domain.TraitScores, len(traitOrder))
	for _, t := range traitOrder {
		scores[t] = ScoreTrait(t, questions, answers)
	}
	return scores
}

// AxisPercent ubica el score en un eje 0..100 de low a high.
func AxisPercent(score domain.TraitScore) int {
	return int(math.Round((score.RawDirection + 1) / 2 * 100))
}

// Verdict devuelve "mid" si el trait cae en la zona balanceada, o el polo dominante.
func Verdict(score domain.TraitScore) string {
	if score.IsBalancedZone {
		return "mid"
	}
	return string(score.Dominant)
}

func fallbackScore(trait domain.Trait) domain.TraitScore {
	return domain.TraitScore{
		Trait:          trait,
		Dominant:       domain.PoleHigh,
		LowPercent:     0,
		HighPercent:    MinPercent,
		RawDirection:   0,
		IsBalancedZone: true,
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		// evita -0 en el JSON
		return 0
	}
	return r
}
