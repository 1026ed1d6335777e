package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const transactionColumns = `uuid, member_id, plan_id, amount, payment_method, status,
	transaction_date, created_at`

// CreateTransaction вставляет новую транзакцию и возвращает её uuid.
func (s *Storage) CreateTransaction(ctx context.Context, tx models.Transaction) (string, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO transactions (member_id, plan_id, amount, payment_method, status, transaction_date)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uuid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		tx.MemberID, tx.PlanID, tx.Amount, tx.PaymentMethod, tx.Status, tx.TransactionDate).Scan(&newUID)
	if err != nil {
		return "", classify(op, err)
	}
	return newUID, nil
}

// ReadTransaction возвращает транзакцию по её uuid.
func (s *Storage) ReadTransaction(ctx context.Context, uid string) (*models.Transaction, error) {
	const op = "storage.ReadTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE uuid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var result models.Transaction
	if err := row.Scan(&result.UUID, &result.MemberID, &result.PlanID, &result.Amount,
		&result.PaymentMethod, &result.Status, &result.TransactionDate, &result.CreatedAt); err != nil {
		return nil, classify(op, err)
	}
	return &result, nil
}

// ListTransactions возвращает страницу транзакций по фильтрам вместе с общим количеством.
func (s *Storage) ListTransactions(ctx context.Context, opts models.ListOptions) ([]*models.Transaction, int, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conds []string
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if opts.MemberID != "" {
		add("member_id = $%d", opts.MemberID)
	}
	if opts.PlanID != "" {
		add("plan_id = $%d", opts.PlanID)
	}
	if opts.Status != "" {
		add("status = $%d", opts.Status)
	}
	if opts.PaymentMethod != "" {
		add("payment_method = $%d", opts.PaymentMethod)
	}
	if opts.DateFrom != nil {
		add("transaction_date >= $%d", *opts.DateFrom)
	}
	if opts.DateTo != nil {
		add("transaction_date <= $%d", *opts.DateTo)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, classify(op, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		transactionColumns, where, opts.SortColumn, sortDirection(opts.SortDesc),
		len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classify(op, err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(&item.UUID, &item.MemberID, &item.PlanID, &item.Amount,
			&item.PaymentMethod, &item.Status, &item.TransactionDate, &item.CreatedAt); err != nil {
			return nil, 0, classify(op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(op, err)
	}
	return result, total, nil
}

// UpdateTransaction обновляет статус и способ оплаты транзакции
// и возвращает количество изменённых строк.
func (s *Storage) UpdateTransaction(ctx context.Context, uid string, patch models.UpdateTransaction) (int, error) {
	const op = "storage.UpdateTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var set []string
	var args []any
	if patch.Status != nil {
		args = append(args, *patch.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.PaymentMethod != nil {
		args = append(args, *patch.PaymentMethod)
		set = append(set, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if len(set) == 0 {
		return 0, nil
	}

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE transactions SET %s WHERE uuid = $%d`,
		strings.Join(set, ", "), len(args))

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
