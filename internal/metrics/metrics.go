// Package metrics expone los collectors de prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// submissionsTotal cuenta envios persistidos por familia.
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cmi_submissions_total",
		Help: "Stored questionnaire submissions by pattern family",
	}, []string{"family"})

	identitiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cmi_identities_total",
		Help: "Resolved money identities by 5-bit code",
	}, []string{"bits"})

	balancedTraitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cmi_balanced_traits_total",
		Help: "Trait scores that landed in the balanced zone",
	}, []string{"trait"})

	codeCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cmi_code_collisions_total",
		Help: "Short-code collisions retried on insert",
	})

	// emailsTotal: "sent", "failed".
	emailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cmi_result_emails_total",
		Help: "Result emails by outcome",
	}, []string{"outcome"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cmi_submissions_rate_limited_total",
		Help: "Submissions rejected by the rate limiter",
	})
)

// Recorder desacopla a los servicios de los collectors globales.
type Recorder interface {
	Submission(familyBits, bits string, balancedTraits []string)
	CodeCollision()
	Email(sent bool)
	RateLimited()
}

type promRecorder struct{}

// NewRecorder devuelve un Recorder respaldado por los collectors de prometheus.
func NewRecorder() Recorder {
	return promRecorder{}
}

func (promRecorder) Submission(familyBits, bits string, balancedTraits []string) {
	submissionsTotal.WithLabelValues(familyBits).Inc()
	identitiesTotal.WithLabelValues(bits).Inc()
	for _, t := range balancedTraits {
		balancedTraitsTotal.WithLabelValues(t).Inc()
	}
}

func (promRecorder) CodeCollision() {
	codeCollisionsTotal.Inc()
}

func (promRecorder) Email(sent bool) {
	outcome := "failed"
	if sent {
		outcome = "sent"
	}
	emailsTotal.WithLabelValues(outcome).Inc()
}

func (promRecorder) RateLimited() {
	rateLimitedTotal.Inc()
}

// Nop descarta todas las metricas.
type Nop struct{}

func (Nop) Submission(string, string, []string) {}
func (Nop) CodeCollision()                      {}
func (Nop) Email(bool)                          {}
func (Nop) RateLimited()                        {}

// Handler sirve el registry por defecto.
func Handler() http.Handler {
	return promhttp.Handler()
}
