// Package list реализует HTTP-обработчик списка платёжных транзакций.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/listparams"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// spec задаёт правила разбора query-параметров списка транзакций.
var spec = listparams.Spec{
	DefaultSort: "transaction_date",
	DefaultDesc: true,
	SortColumns: map[string]string{
		"amount":           "amount",
		"status":           "status",
		"transaction_date": "transaction_date",
		"created_at":       "created_at",
	},
}

// Handler обрабатывает запросы на получение списка транзакций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка транзакций.
type Service interface {
	List(ctx context.Context, opts models.ListOptions) ([]*models.Transaction, models.Pagination, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список транзакций
// @Description Возвращает страницу транзакций. Поддерживает member_id, plan_id, status, payment_method, date_from/date_to, sort и order.
// @Tags Transactions
// @Security ApiKeyAuth
// @Produce  json
// @Param page query int false "Номер страницы, с 1"
// @Param limit query int false "Размер страницы, максимум 100"
// @Param member_id query string false "Фильтр по участнику"
// @Param plan_id query string false "Фильтр по тарифу"
// @Param status query string false "Фильтр по статусу"
// @Param payment_method query string false "Фильтр по способу оплаты"
// @Param date_from query string false "Нижняя граница даты платежа, YYYY-MM-DD"
// @Param date_to query string false "Верхняя граница даты платежа, YYYY-MM-DD"
// @Param sort query string false "Столбец сортировки: amount, status, transaction_date, created_at"
// @Param order query string false "Направление: asc или desc"
// @Success 200 {object} response.Response "Страница транзакций"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Требуется административный ключ"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	opts, err := listparams.Parse(r.URL.Query(), spec)
	if err != nil {
		log.Error("failed to parse list params", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	res, pagination, err := h.service.List(r.Context(), opts)
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list transactions"))
		return
	}

	log.Info("list transactions", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transactions": res,
		"pagination":   pagination,
	}))
}
