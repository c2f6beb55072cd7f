package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"charm-money/internal/cmi"
	"charm-money/internal/domain"
	"charm-money/internal/email"
	"charm-money/internal/metrics"
	"charm-money/internal/repository"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidAnswers     = errors.New("invalid answers")
	ErrInvalidCode        = errors.New("invalid result code")
	ErrResultNotFound     = errors.New("result not found")
	ErrCodeGeneration     = errors.New("could not generate unique code")
	ErrRateLimited        = errors.New("rate limited")
	ErrEmailSendFailure   = errors.New("email send failed")
	ErrServiceUnavailable = errors.New("result service not configured")
)

const (
	defaultCodeRetries = 5
	minLikert          = 1
	maxLikert          = 5
)

// ResultService coordina el submit del cuestionario, la persistencia con
// codigo corto y el envio del email de resultados.
type ResultService struct {
	logger        *zap.Logger
	results       repository.ResultRepository
	emailSender   email.Sender
	limiter       SubmitRateLimiter
	cache         ResultCache
	tokens        *ShareTokenService
	recorder      metrics.Recorder
	defaultLocale string
	maxRetries    int
	generateCode  func() (string, error)
	now           func() time.Time
}

// ResultServiceConfig agrupa las dependencias del servicio. Solo Results es obligatorio.
type ResultServiceConfig struct {
	Logger        *zap.Logger
	Results       repository.ResultRepository
	EmailSender   email.Sender
	Limiter       SubmitRateLimiter
	Cache         ResultCache
	Tokens        *ShareTokenService
	Recorder      metrics.Recorder
	DefaultLocale string
	MaxRetries    int
}

func NewResultService(cfg ResultServiceConfig) *ResultService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewNopResultCache()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultCodeRetries
	}
	return &ResultService{
		logger:        logger,
		results:       cfg.Results,
		emailSender:   cfg.EmailSender,
		limiter:       cfg.Limiter,
		cache:         cache,
		tokens:        cfg.Tokens,
		recorder:      recorder,
		defaultLocale: NormalizeLocale(cfg.DefaultLocale, "en"),
		maxRetries:    retries,
		generateCode:  GenerateResultCode,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type SubmitInput struct {
	Email     string
	Subscribe bool
	Locale    string
	Answers   domain.Answers
}

type SubmitOutput struct {
	Code       string
	Result     domain.Result
	ShareToken string
}

// Evaluate valida las respuestas y calcula el resultado sin persistir.
func (s *ResultService) Evaluate(answers domain.Answers) (domain.Result, error) {
	if err := ValidateAnswers(answers); err != nil {
		return domain.Result{}, err
	}
	return cmi.Evaluate(answers), nil
}

// Submit puntua las respuestas en el servidor y guarda el resultado con un
// codigo unico, reintentando ante colisiones.
func (s *ResultService) Submit(ctx context.Context, in SubmitInput) (SubmitOutput, error) {
	if s == nil || s.results == nil {
		return SubmitOutput{}, ErrServiceUnavailable
	}

	emailAddr := normalizeEmail(in.Email)
	if !isPlausibleEmail(emailAddr) {
		return SubmitOutput{}, ErrInvalidEmail
	}
	if s.limiter != nil {
		if ok, wait := s.limiter.Allow(emailAddr); !ok {
			s.recorder.RateLimited()
			return SubmitOutput{}, &RateLimitError{RetryAfter: wait}
		}
	}

	result, err := s.Evaluate(in.Answers)
	if err != nil {
		return SubmitOutput{}, err
	}

	record := domain.StoredResult{
		Email:       emailAddr,
		Subscribe:   in.Subscribe,
		Locale:      NormalizeLocale(in.Locale, s.defaultLocale),
		Answers:     copyAnswers(in.Answers),
		TraitScores: result.TraitScores,
		Result:      result,
		CreatedAt:   s.now(),
	}

	code, err := s.insertWithUniqueCode(ctx, &record)
	if err != nil {
		return SubmitOutput{}, err
	}

	s.recorder.Submission(result.Family.Bits, result.Bits, balancedTraits(result.TraitScores))
	s.cache.Set(ctx, record)
	s.logger.Info("cmi result stored",
		zap.String("code", code),
		zap.String("bits", result.Bits),
		zap.Int("type_id", result.Type.ID),
		zap.String("locale", record.Locale),
	)

	out := SubmitOutput{Code: code, Result: result}
	if s.tokens != nil {
		token, err := s.tokens.Issue(code, emailAddr)
		if err != nil {
			// el resultado ya esta guardado; sin token solo se pierde el envio por email
			s.logger.Warn("issue share token failed", zap.Error(err), zap.String("code", code))
		} else {
			out.ShareToken = token
		}
	}
	return out, nil
}

func (s *ResultService) insertWithUniqueCode(ctx context.Context, record *domain.StoredResult) (string, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		record.Code = code

		err = s.results.Create(ctx, *record)
		if err == nil {
			return code, nil
		}
		if errors.Is(err, repository.ErrDuplicateCode) {
			s.recorder.CodeCollision()
			s.logger.Warn("duplicate result code, retrying", zap.String("code", code), zap.Int("attempt", attempt+1))
			lastErr = err
			continue
		}
		return "", fmt.Errorf("store result: %w", err)
	}
	s.logger.Error("unique code retries exhausted", zap.Int("retries", s.maxRetries), zap.Error(lastErr))
	return "", ErrCodeGeneration
}

// GetByCode busca un resultado, primero en cache.
func (s *ResultService) GetByCode(ctx context.Context, code string) (domain.StoredResult, error) {
	if s == nil || s.results == nil {
		return domain.StoredResult{}, ErrServiceUnavailable
	}
	code = strings.TrimSpace(code)
	if !IsValidResultCode(code) {
		return domain.StoredResult{}, ErrInvalidCode
	}
	if cached, ok := s.cache.Get(ctx, code); ok {
		return cached, nil
	}
	record, err := s.results.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			return domain.StoredResult{}, ErrResultNotFound
		}
		return domain.StoredResult{}, fmt.Errorf("load result: %w", err)
	}
	s.cache.Set(ctx, record)
	return record, nil
}

// SendResult envia el email de resultados al email guardado con el codigo.
// El share token debe haber sido emitido para ese mismo codigo y se consume
// con el envio: cada token dispara como mucho un email.
func (s *ResultService) SendResult(ctx context.Context, code, shareToken, baseURL string) error {
	if s == nil || s.tokens == nil {
		return ErrServiceUnavailable
	}
	code = strings.TrimSpace(code)
	claims, err := s.tokens.Verify(shareToken)
	if err != nil {
		return err
	}
	if claims.Code != code {
		return ErrShareTokenInvalid
	}

	record, err := s.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	msg, err := email.BuildResultEmail(email.ResultEmailInput{
		Locale:      record.Locale,
		Code:        record.Code,
		Result:      record.Result,
		TraitScores: record.TraitScores,
		CreatedAt:   record.CreatedAt,
		BaseURL:     baseURL,
	})
	if err != nil {
		return fmt.Errorf("build result email: %w", err)
	}

	if s.emailSender == nil {
		s.recorder.Email(false)
		return ErrEmailSendFailure
	}

	// se consume antes de enviar y se restaura si el envio falla
	claims, err = s.tokens.Consume(shareToken)
	if err != nil {
		return err
	}
	if err := s.emailSender.SendResult(ctx, record.Email, msg); err != nil {
		s.recorder.Email(false)
		s.logger.Warn("send result email failed", zap.Error(err), zap.String("code", code))
		if rerr := s.tokens.Restore(claims); rerr != nil {
			s.logger.Warn("restore share token failed", zap.Error(rerr), zap.String("code", code))
		}
		return ErrEmailSendFailure
	}
	s.recorder.Email(true)
	s.logger.Info("result email sent", zap.String("code", code))
	return nil
}

// PreviewEmail renderiza el email para un codigo guardado. Si el codigo no
// existe o viene vacio se usa un resultado de ejemplo.
func (s *ResultService) PreviewEmail(ctx context.Context, code, locale, baseURL string) (email.ResultEmail, error) {
	locale = NormalizeLocale(locale, s.defaultLocale)
	code = strings.TrimSpace(code)

	if code != "" && s.results != nil {
		record, err := s.GetByCode(ctx, code)
		if err == nil {
			if record.Locale != "" {
				locale = record.Locale
			}
			return email.BuildResultEmail(email.ResultEmailInput{
				Locale:      locale,
				Code:        record.Code,
				Result:      record.Result,
				TraitScores: record.TraitScores,
				CreatedAt:   record.CreatedAt,
				BaseURL:     baseURL,
			})
		}
		s.logger.Debug("preview falls back to sample result", zap.String("code", code), zap.Error(err))
	}
	if code == "" {
		code = PreviewCode
	}

	scores := PreviewTraitScores()
	return email.BuildResultEmail(email.ResultEmailInput{
		Locale:      locale,
		Code:        code,
		Result:      cmi.ResolveResult(scores),
		TraitScores: scores,
		CreatedAt:   s.now(),
		BaseURL:     baseURL,
	})
}

// PreviewCode se muestra en la vista previa cuando no se pide un codigo.
const PreviewCode = "IOIOIO"

// PreviewTraitScores es el set de ejemplo usado en la vista previa del email.
func PreviewTraitScores() domain.TraitScores {
	return domain.TraitScores{
		domain.TraitCloseness: cmi.ScoreFromDirection(domain.TraitCloseness, 0.35),
		domain.TraitControl:   cmi.ScoreFromDirection(domain.TraitControl, -0.1),
		domain.TraitSelfWorth: cmi.ScoreFromDirection(domain.TraitSelfWorth, 0.55),
		domain.TraitBoundary:  cmi.ScoreFromDirection(domain.TraitBoundary, -0.25),
		domain.TraitGrowth:    cmi.ScoreFromDirection(domain.TraitGrowth, 0.72),
	}
}

// ValidateAnswers rechaza ids desconocidos y valores fuera de 1..5. El core
// de scoring no valida; esta es la frontera de contrato.
func ValidateAnswers(answers domain.Answers) error {
	if len(answers) == 0 {
		return fmt.Errorf("%w: no answers", ErrInvalidAnswers)
	}
	for id, v := range answers {
		if _, ok := cmi.QuestionByID(id); !ok {
			return fmt.Errorf("%w: unknown question %q", ErrInvalidAnswers, id)
		}
		if v < minLikert || v > maxLikert {
			return fmt.Errorf("%w: %s=%d out of range", ErrInvalidAnswers, id, v)
		}
	}
	return nil
}

func balancedTraits(scores domain.TraitScores) []string {
	var out []string
	for _, t := range cmi.Traits() {
		if score, ok := scores[t]; ok && score.IsBalancedZone {
			out = append(out, string(t))
		}
	}
	return out
}

func copyAnswers(in domain.Answers) domain.Answers {
	out := make(domain.Answers, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isPlausibleEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}
