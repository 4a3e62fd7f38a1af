package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/alexnetofit/facedash/infrastructure/database/postgres"
	"github.com/alexnetofit/facedash/internal/domain"
	_ "github.com/lib/pq"
)

const (
	adAccountsTable = "ad_accounts"
)

type AccountRepository interface {
	ListByUser(userID int) ([]*domain.AdAccount, error)
	ListSelectedByUser(userID int) ([]*domain.AdAccount, error)
	GetByIDAndUser(accountID string, userID int) (*domain.AdAccount, error)
	UpsertAccounts(accounts []*domain.AdAccount) error
	UpdateSelection(accountID string, userID int, selected bool) (int64, error)
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) ListByUser(userID int) ([]*domain.AdAccount, error) {
	query := squirrel.
		Select("id", "user_id", "ad_account_id", "nome_conta", "selecionada", "created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("nome_conta ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryAccounts(query)
}

// ListSelectedByUser retorna apenas as contas marcadas para monitoramento
func (r *accountRepository) ListSelectedByUser(userID int) ([]*domain.AdAccount, error) {
	query := squirrel.
		Select("id", "user_id", "ad_account_id", "nome_conta", "selecionada", "created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"user_id": userID, "selecionada": true}).
		OrderBy("nome_conta ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryAccounts(query)
}

func (r *accountRepository) GetByIDAndUser(accountID string, userID int) (*domain.AdAccount, error) {
	query := squirrel.
		Select("id", "user_id", "ad_account_id", "nome_conta", "selecionada", "created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"id": accountID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	accountSQL, accountArgs, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var account domain.AdAccount
	err = r.conn.QueryRow(accountSQL, accountArgs...).Scan(
		&account.ID,
		&account.UserID,
		&account.ExternalID,
		&account.Name,
		&account.Selected,
		&account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar conta: %w", err)
	}

	return &account, nil
}

// UpsertAccounts insere as contas importadas do Facebook. Reimportar é
// idempotente: o conflito em (user_id, ad_account_id) apenas atualiza o nome
// de exibição, preservando id interno e flag de seleção.
func (r *accountRepository) UpsertAccounts(accounts []*domain.AdAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	queryBuilder := squirrel.
		Insert(adAccountsTable).
		Columns("id", "user_id", "ad_account_id", "nome_conta", "selecionada")

	for _, account := range accounts {
		queryBuilder = queryBuilder.Values(
			account.ID,
			account.UserID,
			account.ExternalID,
			account.Name,
			account.Selected,
		)
	}

	queryBuilder = queryBuilder.
		Suffix(`
			ON CONFLICT (user_id, ad_account_id) DO UPDATE SET
				nome_conta = EXCLUDED.nome_conta
		`).
		PlaceholderFormat(squirrel.Dollar)

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(accountsSQL, accountsArgs...)
	if err != nil {
		return fmt.Errorf("erro ao inserir contas: %w", err)
	}

	return nil
}

// UpdateSelection altera a flag de monitoramento de uma conta. O filtro por
// user_id impede mutação entre usuários; retorna o número de linhas afetadas
// para o chamador distinguir "conta não encontrada".
func (r *accountRepository) UpdateSelection(accountID string, userID int, selected bool) (int64, error) {
	query := squirrel.
		Update(adAccountsTable).
		Set("selecionada", selected).
		Where(squirrel.Eq{"id": accountID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	accountSQL, accountArgs, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.Exec(accountSQL, accountArgs...)
	if err != nil {
		return 0, fmt.Errorf("erro ao atualizar seleção da conta: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *accountRepository) queryAccounts(query squirrel.SelectBuilder) ([]*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar contas: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		var account domain.AdAccount
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.ExternalID,
			&account.Name,
			&account.Selected,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}

		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return accounts, nil
}
