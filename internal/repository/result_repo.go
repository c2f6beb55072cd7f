package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"charm-money/internal/domain"
)

const pgUniqueViolation = "23505"

var (
	// ErrDuplicateCode indica que el codigo ya existe (colision de PK).
	ErrDuplicateCode  = errors.New("result code already exists")
	ErrResultNotFound = errors.New("result not found")
)

// ResultRepository define el contrato de persistencia para resultados CMI.
type ResultRepository interface {
	Create(ctx context.Context, result domain.StoredResult) error
	GetByCode(ctx context.Context, code string) (domain.StoredResult, error)
}

// PgResultRepository implementa ResultRepository usando pgxpool.
type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) Create(ctx context.Context, result domain.StoredResult) error {
	const query = `
		INSERT INTO cmi_results (code, email, subscribe, locale, answers, trait_scores, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	scores, err := json.Marshal(result.TraitScores)
	if err != nil {
		return fmt.Errorf("marshal trait scores: %w", err)
	}
	payload, err := json.Marshal(result.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		result.Code,
		result.Email,
		result.Subscribe,
		result.Locale,
		answers,
		scores,
		payload,
		result.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateCode
	}
	return err
}

func (r *PgResultRepository) GetByCode(ctx context.Context, code string) (domain.StoredResult, error) {
	const query = `
		SELECT code, email, subscribe, locale, answers, trait_scores, result, created_at
		FROM cmi_results
		WHERE code = $1
	`

	var (
		res                      domain.StoredResult
		answers, scores, payload []byte
	)
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&res.Code,
		&res.Email,
		&res.Subscribe,
		&res.Locale,
		&answers,
		&scores,
		&payload,
		&res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StoredResult{}, ErrResultNotFound
	}
	if err != nil {
		return domain.StoredResult{}, err
	}

	if err := decodeStoredJSON(answers, scores, payload, &res); err != nil {
		return domain.StoredResult{}, err
	}
	return res, nil
}

func decodeStoredJSON(answers, scores, payload []byte, res *domain.StoredResult) error {
	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return fmt.Errorf("decode answers: %w", err)
	}
	if err := json.Unmarshal(scores, &res.TraitScores); err != nil {
		return fmt.Errorf("decode trait scores: %w", err)
	}
	if err := json.Unmarshal(payload, &res.Result); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
