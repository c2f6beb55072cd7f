package domain

import "time"

// Trait es una de las cinco dimensiones que mide el cuestionario CMI.
type Trait string

const (
	TraitCloseness Trait = "closeness"
	TraitControl   Trait = "control"
	TraitSelfWorth Trait = "selfWorth"
	TraitBoundary  Trait = "boundary"
	TraitGrowth    Trait = "growth"
)

// Pole indica el extremo del espectro de un trait.
type Pole string

const (
	PoleLow  Pole = "low"
	PoleHigh Pole = "high"
)

// Question es un item del cuestionario, etiquetado con trait y polaridad.
type Question struct {
	ID    string `json:"id"`
	Trait Trait  `json:"trait"`
	Pole  Pole   `json:"pole"`
}

// Answers mapea question id -> respuesta Likert 1..5.
type Answers map[string]int

// TraitScore es el resultado del scorer para un trait.
type TraitScore struct {
	Trait          Trait   `json:"trait"`
	Dominant       Pole    `json:"dominant"`
	LowPercent     int     `json:"low_percent"`
	HighPercent    int     `json:"high_percent"`
	RawDirection   float64 `json:"raw_direction"`
	IsBalancedZone bool    `json:"is_balanced_zone"`
}

// TraitScores agrupa los scores por trait.
type TraitScores map[Trait]TraitScore

// MoneyIdentity es uno de los 32 arquetipos, indexado por el codigo de 5 bits.
type MoneyIdentity struct {
	ID          int      `json:"id"`
	Bits        string   `json:"bits"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	NextSteps   []string `json:"next_steps"`
	Coaching    string   `json:"coaching"`
}

// PatternFamily agrupa arquetipos por los primeros 3 bits.
type PatternFamily struct {
	Bits            string `json:"bits"`
	Name            string `json:"name"`
	Essence         string `json:"essence"`
	Tension         string `json:"tension"`
	GrowthDirection string `json:"growth_direction"`
	Strategy        string `json:"strategy"`
}

// Result es la clasificacion final de un cuestionario completo.
type Result struct {
	Type        MoneyIdentity `json:"type"`
	Family      PatternFamily `json:"family"`
	Bits        string        `json:"bits"`
	TraitScores TraitScores   `json:"trait_scores"`
}

// StoredResult es el registro persistido de un envio.
type StoredResult struct {
	Code        string      `json:"code"`
	Email       string      `json:"email"`
	Subscribe   bool        `json:"subscribe"`
	Locale      string      `json:"locale"`
	Answers     Answers     `json:"answers"`
	TraitScores TraitScores `json:"trait_scores"`
	Result      Result      `json:"result"`
	CreatedAt   time.Time   `json:"created_at"`
}
