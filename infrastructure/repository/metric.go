package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/alexnetofit/facedash/infrastructure/database/postgres"
	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/lib/pq"
)

const (
	metricsTable = "metrics"
)

type MetricRepository interface {
	GetByUserAndAccounts(userID int, accountIDs []string, startDate, endDate time.Time) ([]*domain.MetricRecord, error)
	HasAnyForUser(userID int) (bool, error)
	InsertBatch(records []*domain.MetricRecord) error
	SaveOrUpdate(record *domain.MetricRecord) error
	DeleteOlderThan(days int) (int64, error)
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// GetByUserAndAccounts busca as linhas de métricas do usuário para o conjunto
// de contas no intervalo [startDate, endDate], inclusivo, ordenadas por data
// ascendente
func (r *metricRepository) GetByUserAndAccounts(userID int, accountIDs []string, startDate, endDate time.Time) ([]*domain.MetricRecord, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "ad_account_id", "data", "spend", "cpm", "cpc", "ctr", "conversions", "created_at").
		From(metricsTable).
		Where(squirrel.Eq{"user_id": userID, "ad_account_id": accountIDs}).
		Where(squirrel.GtOrEq{"data": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"data": endDate.Format(time.DateOnly)}).
		OrderBy("data ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.MetricRecord, 0)
	for rows.Next() {
		record, err := r.scanMetricRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// HasAnyForUser verifica se o usuário já possui alguma linha de métricas --
// usado pelo seeder de demonstração
func (r *metricRepository) HasAnyForUser(userID int) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From(metricsTable).
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var exists int
	err = r.conn.QueryRow(query, args...).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return true, nil
}

// InsertBatch insere um lote de métricas em uma única transação. O chamador é
// responsável por fatiar lotes grandes (a convenção é 10 linhas por lote).
func (r *metricRepository) InsertBatch(records []*domain.MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO metrics (id, user_id, ad_account_id, data, spend, cpm, cpc, ctr, conversions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (user_id, ad_account_id, data) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("erro ao preparar statement: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			_, err := stmt.Exec(
				record.ID,
				record.UserID,
				record.AdAccountID,
				record.Date,
				record.Spend,
				record.CPM,
				record.CPC,
				record.CTR,
				record.Conversions,
			)
			if err != nil {
				return fmt.Errorf("erro ao inserir métrica: %w", err)
			}
		}

		return nil
	})
}

// SaveOrUpdate grava uma linha de métricas vinda da sincronização diária.
// O conflito em (user_id, ad_account_id, data) substitui os valores -- a
// sincronização é a única via de escrita que sobrepõe dados.
func (r *metricRepository) SaveOrUpdate(record *domain.MetricRecord) error {
	query := squirrel.StatementBuilder.
		Insert(metricsTable).
		Columns("id", "user_id", "ad_account_id", "data", "spend", "cpm", "cpc", "ctr", "conversions").
		Values(
			record.ID,
			record.UserID,
			record.AdAccountID,
			record.Date,
			record.Spend,
			record.CPM,
			record.CPC,
			record.CTR,
			record.Conversions,
		).
		Suffix(`
			ON CONFLICT (user_id, ad_account_id, data) DO UPDATE SET
				spend = EXCLUDED.spend,
				cpm = EXCLUDED.cpm,
				cpc = EXCLUDED.cpc,
				ctr = EXCLUDED.ctr,
				conversions = EXCLUDED.conversions
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *metricRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete(metricsTable).
		Where(squirrel.Lt{"data": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *metricRepository) scanMetricRows(rows *sql.Rows) (*domain.MetricRecord, error) {
	record := &domain.MetricRecord{}
	var date time.Time

	err := rows.Scan(
		&record.ID,
		&record.UserID,
		&record.AdAccountID,
		&date,
		&record.Spend,
		&record.CPM,
		&record.CPC,
		&record.CTR,
		&record.Conversions,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Date = date.Format(time.DateOnly)

	return record, nil
}
