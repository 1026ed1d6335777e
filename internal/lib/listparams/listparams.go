// Package listparams разбирает query-параметры списочных запросов:
// пагинацию, сортировку и фильтры. Результат — models.ListOptions,
// который передаётся в слой доступа к данным.
//
// Пагинация нумеруется с единицы: page=1 — первая страница,
// смещение считается как (page-1)*limit.
package listparams

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	dateLayout   = "2006-01-02"
)

// Spec описывает правила разбора для конкретного ресурса:
// сортировку по умолчанию и белый список сортируемых столбцов.
type Spec struct {
	DefaultSort string            // Столбец сортировки по умолчанию (имя в БД)
	DefaultDesc bool              // Направление по умолчанию, true — по убыванию
	SortColumns map[string]string // Разрешённые значения sort -> имя столбца в БД
}

// Parse разбирает query-параметры запроса в ListOptions.
// Некорректные page и limit заменяются значениями по умолчанию,
// неизвестный столбец сортировки — сортировкой по умолчанию.
// Некорректная дата или значение active возвращаются ошибкой.
func Parse(q url.Values, spec Spec) (models.ListOptions, error) {
	var opts models.ListOptions

	opts.Page = 1
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	opts.Limit = defaultLimit
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	opts.Offset = (opts.Page - 1) * opts.Limit

	opts.SortColumn = spec.DefaultSort
	opts.SortDesc = spec.DefaultDesc
	if sort := q.Get("sort"); sort != "" {
		if column, ok := spec.SortColumns[sort]; ok {
			opts.SortColumn = column
			opts.SortDesc = spec.DefaultDesc
		}
	}
	switch q.Get("order") {
	case "asc":
		opts.SortDesc = false
	case "desc":
		opts.SortDesc = true
	}

	opts.Search = q.Get("search")
	opts.MemberID = q.Get("member_id")
	opts.PlanID = q.Get("plan_id")
	opts.Status = q.Get("status")
	opts.PaymentMethod = q.Get("payment_method")

	if raw := q.Get("date_from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return opts, fmt.Errorf("invalid date_from: expected format %s", dateLayout)
		}
		opts.DateFrom = &from
	}
	if raw := q.Get("date_to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return opts, fmt.Errorf("invalid date_to: expected format %s", dateLayout)
		}
		// верхняя граница включительно — конец суток
		to = to.Add(24*time.Hour - time.Nanosecond)
		opts.DateTo = &to
	}

	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid active: expected true or false")
		}
		opts.Active = &active
	}

	return opts, nil
}
