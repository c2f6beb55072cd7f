package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"charm-money/internal/domain"
	"charm-money/internal/service"
)

// ResultHandler mantiene dependencias para scoring, submit y envio de resultados.
type ResultHandler struct {
	logger  *zap.Logger
	results *service.ResultService
	baseURL string
}

// NewResultHandler crea el handler. baseURL vacio usa el origin del request.
func NewResultHandler(logger *zap.Logger, results *service.ResultService, baseURL string) *ResultHandler {
	return &ResultHandler{
		logger:  logger,
		results: results,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type answersRequest struct {
	Answers domain.Answers `json:"answers" binding:"required,min=1,dive,keys,questionid,endkeys,likert"`
}

type submitRequest struct {
	Email     string         `json:"email" binding:"required,email"`
	Subscribe bool           `json:"subscribe"`
	Locale    string         `json:"locale"`
	Answers   domain.Answers `json:"answers" binding:"required,min=1,dive,keys,questionid,endkeys,likert"`
}

type sendResultRequest struct {
	Code       string `json:"code" binding:"required,cmicode"`
	ShareToken string `json:"share_token"`
}

type storedResultResponse struct {
	Code        string             `json:"code"`
	Locale      string             `json:"locale"`
	CreatedAt   time.Time          `json:"created_at"`
	Result      domain.Result      `json:"result"`
	TraitScores domain.TraitScores `json:"trait_scores"`
}

// Score maneja POST /cmi/score. No persiste nada.
func (h *ResultHandler) Score(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid score request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.results.Evaluate(req.Answers)
	if err != nil {
		h.writeError(c, "score", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Submit maneja POST /cmi/submit.
func (h *ResultHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.results.Submit(c.Request.Context(), service.SubmitInput{
		Email:     req.Email,
		Subscribe: req.Subscribe,
		Locale:    req.Locale,
		Answers:   req.Answers,
	})
	if err != nil {
		h.writeError(c, "submit", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":        out.Code,
		"message":     "saved",
		"result":      out.Result,
		"share_token": out.ShareToken,
	})
}

// GetResult maneja GET /cmi/results/:code. No expone el email guardado.
func (h *ResultHandler) GetResult(c *gin.Context) {
	record, err := h.results.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, "get result", err)
		return
	}
	c.JSON(http.StatusOK, storedResultResponse{
		Code:        record.Code,
		Locale:      record.Locale,
		CreatedAt:   record.CreatedAt,
		Result:      record.Result,
		TraitScores: record.TraitScores,
	})
}

// SendResult maneja POST /cmi/send-result.
func (h *ResultHandler) SendResult(c *gin.Context) {
	var req sendResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send result request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token := shareTokenFromRequest(c, req.ShareToken)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	if err := h.results.SendResult(c.Request.Context(), req.Code, token, h.originFor(c)); err != nil {
		h.writeError(c, "send result", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// PreviewEmail maneja GET /cmi/preview-email y devuelve el HTML del email.
func (h *ResultHandler) PreviewEmail(c *gin.Context) {
	msg, err := h.results.PreviewEmail(c.Request.Context(), c.Query("code"), c.Query("locale"), h.originFor(c))
	if err != nil {
		h.writeError(c, "preview email", err)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(msg.HTML))
}

func (h *ResultHandler) originFor(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return requestOrigin(c)
}

func (h *ResultHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidAnswers),
		errors.Is(err, service.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrShareTokenInvalid),
		errors.Is(err, service.ErrShareTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, service.ErrResultNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
	case errors.Is(err, service.ErrRateLimited):
		var rl *service.RateLimitError
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		}
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrEmailSendFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery unavailable"})
	case errors.Is(err, service.ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}
