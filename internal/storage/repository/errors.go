package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Сентинельные ошибки хранилища. Каждая ошибка БД классифицируется
// ровно один раз на этом уровне, HTTP-слой переводит их в статусы.
var (
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists — нарушение уникальности (email, телефон, название тарифа).
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidReference — ссылка на несуществующую запись (внешний ключ).
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrPlanInUse — тариф нельзя удалить, пока на него ссылаются участники.
	ErrPlanInUse = errors.New("pricing plan is referenced by members")
)

// classify переводит ошибку драйвера в сентинельную ошибку хранилища,
// остальные ошибки оборачиваются с именем операции.
func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
