package cmi

import (
	"strings"

	"charm-money/internal/domain"
)

// ResolveResult deriva el codigo de 5 bits y busca arquetipo y familia.
// Un trait ausente en scores cuenta como el score de respaldo (high).
func ResolveResult(scores domain.TraitScores) domain.Result {
	bits := BitsFor(scores)

	identity, ok := IdentityByBits(bits)
	if !ok {
		identity = identityList[0]
	}

	familyBits := bits[:FamilyBitsLength]
	family, ok := FamilyByBits(familyBits)
	if !ok {
		family = familiesByBit[DefaultFamilyBits]
	}

	return domain.Result{
		Type:        identity,
		Family:      family,
		Bits:        bits,
		TraitScores: scores,
	}
}

// BitsFor arma el codigo de identidad: "1" si el polo dominante es high.
func BitsFor(scores domain.TraitScores) string {
	var b strings.Builder
	b.Grow(BitsLength)
	for _, t := range traitOrder {
		score, ok := scores[t]
		if !ok {
			score = fallbackScore(t)
		}
		if score.Dominant == domain.PoleHigh {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Evaluate puntua las respuestas contra el banco incluido y resuelve el arquetipo.
func Evaluate(answers domain.Answers) domain.Result {
	return ResolveResult(ScoreAllTraits(questionBank, answers))
}
