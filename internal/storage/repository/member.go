package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const memberColumns = `uuid, name, email, COALESCE(phone, ''), subscription_plan_id,
	subscription_start, subscription_expiry, last_payment_date, created_at, updated_at`

// CreateMember вставляет нового участника и возвращает его uuid.
// Хэш пароля может быть пустым — для участников, вошедших через OAuth.
func (s *Storage) CreateMember(ctx context.Context, m models.Member, passwordHash string) (string, error) {
	const op = "storage.CreateMember"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO members (name, email, phone, password_hash, subscription_plan_id,
			      subscription_start, subscription_expiry)
			  VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
			  RETURNING uuid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		m.Name, m.Email, m.Phone, passwordHash, m.SubscriptionPlanID,
		m.SubscriptionStart, m.SubscriptionExpiry).Scan(&newUID)
	if err != nil {
		return "", classify(op, err)
	}
	return newUID, nil
}

// ReadMember возвращает данные участника по его uuid.
func (s *Storage) ReadMember(ctx context.Context, uid string) (*models.Member, error) {
	const op = "storage.ReadMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + ` FROM members WHERE uuid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var result models.Member
	if err := row.Scan(&result.UUID, &result.Name, &result.Email, &result.Phone,
		&result.SubscriptionPlanID, &result.SubscriptionStart, &result.SubscriptionExpiry,
		&result.LastPaymentDate, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, classify(op, err)
	}
	return &result, nil
}

// ReadMemberByEmail возвращает участника и его хэш пароля по почте.
// Хэш возвращается отдельно и не попадает в доменную модель.
func (s *Storage) ReadMemberByEmail(ctx context.Context, email string) (*models.Member, string, error) {
	const op = "storage.ReadMemberByEmail"
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + `, COALESCE(password_hash, '')
			  FROM members WHERE lower(email) = lower($1)`
	row := s.DB.QueryRowContext(ctx, query, email)

	var result models.Member
	var passwordHash string
	if err := row.Scan(&result.UUID, &result.Name, &result.Email, &result.Phone,
		&result.SubscriptionPlanID, &result.SubscriptionStart, &result.SubscriptionExpiry,
		&result.LastPaymentDate, &result.CreatedAt, &result.UpdatedAt, &passwordHash); err != nil {
		return nil, "", classify(op, err)
	}
	return &result, passwordHash, nil
}

// ListMembers возвращает страницу участников по фильтрам вместе с общим количеством.
func (s *Storage) ListMembers(ctx context.Context, opts models.ListOptions) ([]*models.Member, int, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where, args := buildMemberFilter(opts)

	var total int
	countQuery := `SELECT COUNT(*) FROM members` + where
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, classify(op, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM members%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		memberColumns, where, opts.SortColumn, sortDirection(opts.SortDesc),
		len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classify(op, err)
	}
	defer rows.Close()

	var result []*models.Member
	for rows.Next() {
		var item models.Member
		if err := rows.Scan(&item.UUID, &item.Name, &item.Email, &item.Phone,
			&item.SubscriptionPlanID, &item.SubscriptionStart, &item.SubscriptionExpiry,
			&item.LastPaymentDate, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, classify(op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(op, err)
	}
	return result, total, nil
}

// UpdateMember обновляет перечисленные в patch поля участника
// и возвращает количество изменённых строк.
func (s *Storage) UpdateMember(ctx context.Context, uid string, patch models.MemberPatch) (int, error) {
	const op = "storage.UpdateMember"
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
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.SubscriptionPlanID != nil {
		add("subscription_plan_id", *patch.SubscriptionPlanID)
	}
	if patch.SubscriptionStart != nil {
		add("subscription_start", *patch.SubscriptionStart)
	}
	if patch.SubscriptionExpiry != nil {
		add("subscription_expiry", *patch.SubscriptionExpiry)
	}
	if patch.LastPaymentDate != nil {
		add("last_payment_date", *patch.LastPaymentDate)
	}

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE members SET %s WHERE uuid = $%d`,
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

// RemoveMember удаляет участника по uuid и возвращает количество удалённых строк.
func (s *Storage) RemoveMember(ctx context.Context, uid string) (int, error) {
	const op = "storage.RemoveMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM members WHERE uuid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, classify(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MemberStats считает агрегированные показатели по участникам.
func (s *Storage) MemberStats(ctx context.Context) (*models.MemberStats, error) {
	const op = "storage.MemberStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*),
			      COUNT(*) FILTER (WHERE subscription_expiry >= now()),
			      COUNT(*) FILTER (WHERE subscription_expiry < now()),
			      COUNT(*) FILTER (WHERE subscription_plan_id IS NULL)
			  FROM members`
	var stats models.MemberStats
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.Expired, &stats.NoSubscription); err != nil {
		return nil, classify(op, err)
	}
	return &stats, nil
}

// GetOrCreateMemberByEmail возвращает участника по почте, создавая запись,
// если её ещё нет. Используется при входе через OAuth-провайдера.
func (s *Storage) GetOrCreateMemberByEmail(ctx context.Context, name, email string) (*models.Member, error) {
	const op = "storage.GetOrCreateMemberByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO members (name, email)
			  VALUES ($1, $2)
			  ON CONFLICT (email) DO UPDATE SET updated_at = now()
			  RETURNING ` + memberColumns
	row := s.DB.QueryRowContext(ctx, query, name, email)

	var result models.Member
	if err := row.Scan(&result.UUID, &result.Name, &result.Email, &result.Phone,
		&result.SubscriptionPlanID, &result.SubscriptionStart, &result.SubscriptionExpiry,
		&result.LastPaymentDate, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, classify(op, err)
	}
	return &result, nil
}

// buildMemberFilter собирает условие WHERE для списка участников.
func buildMemberFilter(opts models.ListOptions) (string, []any) {
	var conds []string
	var args []any

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}
	if opts.PlanID != "" {
		args = append(args, opts.PlanID)
		conds = append(conds, fmt.Sprintf("subscription_plan_id = $%d", len(args)))
	}
	if opts.Active != nil {
		if *opts.Active {
			conds = append(conds, "subscription_expiry >= now()")
		} else {
			conds = append(conds, "(subscription_expiry IS NULL OR subscription_expiry < now())")
		}
	}
	if opts.DateFrom != nil {
		args = append(args, *opts.DateFrom)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if opts.DateTo != nil {
		args = append(args, *opts.DateTo)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortDirection(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
