// Package cmi contiene las tablas de referencia del Charm Money Indicator y
// el pipeline puro que convierte respuestas Likert en un arquetipo.
//
// Las tablas se construyen una sola vez al iniciar el proceso y no se mutan;
// todas las funciones del paquete son seguras para uso concurrente.
package cmi

import (
	"fmt"
	"sort"

	"charm-money/internal/domain"
)

const (
	// PageSize es la cantidad de preguntas por pagina en el cuestionario.
	PageSize = 5

	// DefaultFamilyBits es la familia usada cuando un prefijo no resuelve.
	DefaultFamilyBits = "000"

	// BitsLength es el largo del codigo de identidad.
	BitsLength = 5
	// FamilyBitsLength es el largo del prefijo de familia.
	FamilyBitsLength = 3
)

// traitOrder es el orden fijo que define el codigo de identidad.
var traitOrder = []domain.Trait{
	domain.TraitCloseness,
	domain.TraitControl,
	domain.TraitSelfWorth,
	domain.TraitBoundary,
	domain.TraitGrowth,
}

// questionBank es el banco de preguntas. Items 1-2 de cada escala apuntan al
// polo bajo y 3-5 al polo alto.
var questionBank = []domain.Question{
	{ID: "cl1", Trait: domain.TraitCloseness, Pole: domain.PoleLow},
	{ID: "cl2", Trait: domain.TraitCloseness, Pole: domain.PoleLow},
	{ID: "cl3", Trait: domain.TraitCloseness, Pole: domain.PoleHigh},
	{ID: "cl4", Trait: domain.TraitCloseness, Pole: domain.PoleHigh},
	{ID: "cl5", Trait: domain.TraitCloseness, Pole: domain.PoleHigh},

	{ID: "co1", Trait: domain.TraitControl, Pole: domain.PoleLow},
	{ID: "co2", Trait: domain.TraitControl, Pole: domain.PoleLow},
	{ID: "co3", Trait: domain.TraitControl, Pole: domain.PoleHigh},
	{ID: "co4", Trait: domain.TraitControl, Pole: domain.PoleHigh},
	{ID: "co5", Trait: domain.TraitControl, Pole: domain.PoleHigh},

	{ID: "sw1", Trait: domain.TraitSelfWorth, Pole: domain.PoleLow},
	{ID: "sw2", Trait: domain.TraitSelfWorth, Pole: domain.PoleLow},
	{ID: "sw3", Trait: domain.TraitSelfWorth, Pole: domain.PoleHigh},
	{ID: "sw4", Trait: domain.TraitSelfWorth, Pole: domain.PoleHigh},
	{ID: "sw5", Trait: domain.TraitSelfWorth, Pole: domain.PoleHigh},

	{ID: "bo1", Trait: domain.TraitBoundary, Pole: domain.PoleLow},
	{ID: "bo2", Trait: domain.TraitBoundary, Pole: domain.PoleLow},
	{ID: "bo3", Trait: domain.TraitBoundary, Pole: domain.PoleHigh},
	{ID: "bo4", Trait: domain.TraitBoundary, Pole: domain.PoleHigh},
	{ID: "bo5", Trait: domain.TraitBoundary, Pole: domain.PoleHigh},

	{ID: "gr1", Trait: domain.TraitGrowth, Pole: domain.PoleLow},
	{ID: "gr2", Trait: domain.TraitGrowth, Pole: domain.PoleLow},
	{ID: "gr3", Trait: domain.TraitGrowth, Pole: domain.PoleHigh},
	{ID: "gr4", Trait: domain.TraitGrowth, Pole: domain.PoleHigh},
	{ID: "gr5", Trait: domain.TraitGrowth, Pole: domain.PoleHigh},
}

var (
	identityList    []domain.MoneyIdentity
	identitiesByBit map[string]domain.MoneyIdentity
	familiesByBit   map[string]domain.PatternFamily
	questionsByID   map[string]domain.Question
)

func init() {
	identityList = make([]domain.MoneyIdentity, 0, len(identityCopy))
	identitiesByBit = make(map[string]domain.MoneyIdentity, len(identityCopy))
	for i, c := range identityCopy {
		id := i + 1
		bits := fmt.Sprintf("%05b", i)
		identity := domain.MoneyIdentity{
			ID:          id,
			Bits:        bits,
			Name:        c.name,
			Description: c.description,
			Tags:        tagsForBits(bits),
			NextSteps:   nextStepsForBits(bits),
			Coaching:    c.coaching,
		}
		identityList = append(identityList, identity)
		identitiesByBit[bits] = identity
	}

	familiesByBit = make(map[string]domain.PatternFamily, len(familyCopy))
	for bits, f := range familyCopy {
		f.Bits = bits
		familiesByBit[bits] = f
	}

	questionsByID = make(map[string]domain.Question, len(questionBank))
	for _, q := range questionBank {
		questionsByID[q.ID] = q
	}
}

// Traits devuelve una copia de los traits en el orden del codigo de identidad.
func Traits() []domain.Trait {
	out := make([]domain.Trait, len(traitOrder))
	copy(out, traitOrder)
	return out
}

// Questions devuelve una copia del banco de preguntas en orden de
// presentacion.
func Questions() []domain.Question {
	out := make([]domain.Question, len(questionBank))
	copy(out, questionBank)
	return out
}

// MoneyIdentities devuelve los 32 arquetipos ordenados por id.
func MoneyIdentities() []domain.MoneyIdentity {
	out := make([]domain.MoneyIdentity, len(identityList))
	copy(out, identityList)
	return out
}

// PatternFamilies devuelve las 8 familias ordenadas por bits.
func PatternFamilies() []domain.PatternFamily {
	out := make([]domain.PatternFamily, 0, len(familiesByBit))
	for _, f := range familiesByBit {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bits < out[j].Bits })
	return out
}

func IdentityByBits(bits string) (domain.MoneyIdentity, bool) {
	identity, ok := identitiesByBit[bits]
	return identity, ok
}

func IdentityByID(id int) (domain.MoneyIdentity, bool) {
	if id < 1 || id > len(identityList) {
		return domain.MoneyIdentity{}, false
	}
	return identityList[id-1], true
}

func FamilyByBits(bits string) (domain.PatternFamily, bool) {
	family, ok := familiesByBit[bits]
	return family, ok
}

func QuestionByID(id string) (domain.Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}

// ParseTrait acepta el nombre canonico de un trait.
func ParseTrait(s string) (domain.Trait, bool) {
	for _, t := range traitOrder {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// PoleLabel devuelve la etiqueta semantica de un polo, por ejemplo closeness/low = Avoidant.
func PoleLabel(trait domain.Trait, pole domain.Pole) string {
	labels, ok := poleLabels[trait]
	if !ok {
		return string(pole)
	}
	if pole == domain.PoleHigh {
		return labels[1]
	}
	return labels[0]
}

// TraitLabel devuelve el nombre visible de un trait.
func TraitLabel(trait domain.Trait) string {
	if label, ok := traitLabels[trait]; ok {
		return label
	}
	return string(trait)
}

func poleForBit(b byte) domain.Pole {
	if b == '1' {
		return domain.PoleHigh
	}
	return domain.PoleLow
}

func tagsForBits(bits string) []string {
	tags := make([]string, 0, len(traitOrder))
	for i, t := range traitOrder {
		tags = append(tags, PoleLabel(t, poleForBit(bits[i])))
	}
	return tags
}

// nextStepsForBits arma los pasos sugeridos a partir de closeness, boundary y growth.
func nextStepsForBits(bits string) []string {
	picks := []int{0, 3, 4}
	steps := make([]string, 0, len(picks))
	for _, i := range picks {
		t := traitOrder[i]
		steps = append(steps, nextSteps[t][poleIndex(poleForBit(bits[i]))])
	}
	return steps
}

func poleIndex(p domain.Pole) int {
	if p == domain.PoleHigh {
		return 1
	}
	return 0
}
