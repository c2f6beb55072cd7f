package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"charm-money/internal/cmi"
	"charm-money/internal/domain"
)

// ReferenceHandler expone las tablas de solo lectura del indicador.
type ReferenceHandler struct {
	logger *zap.Logger
}

func NewReferenceHandler(logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{logger: logger}
}

type traitInfo struct {
	Trait     domain.Trait `json:"trait"`
	Label     string       `json:"label"`
	LowLabel  string       `json:"low_label"`
	HighLabel string       `json:"high_label"`
}

// Questions maneja GET /cmi/questions.
func (h *ReferenceHandler) Questions(c *gin.Context) {
	order := cmi.Traits()
	traits := make([]traitInfo, 0, len(order))
	for _, t := range order {
		traits = append(traits, traitInfo{
			Trait:     t,
			Label:     cmi.TraitLabel(t),
			LowLabel:  cmi.PoleLabel(t, domain.PoleLow),
			HighLabel: cmi.PoleLabel(t, domain.PoleHigh),
		})
	}
	questions := cmi.Questions()
	total := len(questions)
	c.JSON(http.StatusOK, gin.H{
		"page_size": cmi.PageSize,
		"pages":     (total + cmi.PageSize - 1) / cmi.PageSize,
		"total":     total,
		"traits":    traits,
		"questions": questions,
	})
}

// Identities maneja GET /cmi/identities.
func (h *ReferenceHandler) Identities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"identities": cmi.MoneyIdentities()})
}

// Identity maneja GET /cmi/identities/:id.
func (h *ReferenceHandler) Identity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	identity, ok := cmi.IdentityByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "identity not found"})
		return
	}
	family, _ := cmi.FamilyByBits(identity.Bits[:cmi.FamilyBitsLength])
	c.JSON(http.StatusOK, gin.H{"identity": identity, "family": family})
}

// Families maneja GET /cmi/families.
func (h *ReferenceHandler) Families(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"families": cmi.PatternFamilies()})
}
