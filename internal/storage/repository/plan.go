package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const planColumns = `uuid, name, price, duration_days, is_active, COALESCE(features, '[]'::jsonb), created_at, updated_at`

// features хранятся в jsonb, сериализация выполняется на этом уровне.
func encodeFeatures(features []string) ([]byte, error) {
	if features == nil {
		features = []string{}
	}
	return json.Marshal(features)
}

func scanPlan(row interface{ Scan(...any) error }) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	var rawFeatures []byte
	if err := row.Scan(&plan.UUID, &plan.Name, &plan.Price, &plan.DurationDays,
		&plan.IsActive, &rawFeatures, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawFeatures, &plan.Features); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreatePlan вставляет новый тарифный план и возвращает его uuid.
func (s *Storage) CreatePlan(ctx context.Context, plan models.PricingPlan) (string, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := encodeFeatures(plan.Features)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO pricing_plans (name, price, duration_days, is_active, features)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uuid`
	var newUID string
	err = s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Price, plan.DurationDays, plan.IsActive, features).Scan(&newUID)
	if err != nil {
		return "", classify(op, err)
	}
	return newUID, nil
}

// ReadPlan возвращает тарифный план по его uuid.
func (s *Storage) ReadPlan(ctx context.Context, uid string) (*models.PricingPlan, error) {
	const op = "storage.ReadPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM pricing_plans WHERE uuid = $1`
	plan, err := scanPlan(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, classify(op, err)
	}
	return plan, nil
}

// ListPlans возвращает страницу тарифов по фильтрам вместе с общим количеством.
func (s *Storage) ListPlans(ctx context.Context, opts models.ListOptions) ([]*models.PricingPlan, int, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conds []string
	var args []any
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if opts.Active != nil {
		args = append(args, *opts.Active)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM pricing_plans`+where, args...).Scan(&total); err != nil {
		return nil, 0, classify(op, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM pricing_plans%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		planColumns, where, opts.SortColumn, sortDirection(opts.SortDesc),
		len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classify(op, err)
	}
	defer rows.Close()

	var result []*models.PricingPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, classify(op, err)
		}
		result = append(result, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(op, err)
	}
	return result, total, nil
}

// UpdatePlan обновляет перечисленные в patch поля тарифа
// и возвращает количество изменённых строк.
func (s *Storage) UpdatePlan(ctx context.Context, uid string, patch models.UpdatePlan) (int, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := []string{"updated_at = now()"}
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.DurationDays != nil {
		add("duration_days", *patch.DurationDays)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.Features != nil {
		features, err := encodeFeatures(patch.Features)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		add("features", features)
	}

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE pricing_plans SET %s WHERE uuid = $%d`,
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

// RemovePlan удаляет тариф по uuid. Если на тариф ссылается хотя бы один
// участник, возвращается ErrPlanInUse и удаление не выполняется.
func (s *Storage) RemovePlan(ctx context.Context, uid string) (int, error) {
	const op = "storage.RemovePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var refs int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE subscription_plan_id = $1`, uid).Scan(&refs); err != nil {
		return 0, classify(op, err)
	}
	if refs > 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrPlanInUse)
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM pricing_plans WHERE uuid = $1`, uid)
	if err != nil {
		return 0, classify(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
