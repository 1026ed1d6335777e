// Package list реализует HTTP-обработчик для постраничного списка участников
// с поиском, фильтрами и сортировкой.
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

// spec задаёт правила разбора query-параметров списка участников.
var spec = listparams.Spec{
	DefaultSort: "created_at",
	DefaultDesc: true,
	SortColumns: map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
		"expiry":     "subscription_expiry",
	},
}

// Handler обрабатывает запросы на получение списка участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка участников.
type Service interface {
	List(ctx context.Context, opts models.ListOptions) ([]*models.Member, models.Pagination, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список участников
// @Description Возвращает страницу участников. Поддерживает search (имя, почта, телефон), plan_id, active, date_from/date_to по дате регистрации, sort и order.
// @Tags Members
// @Security ApiKeyAuth
// @Produce  json
// @Param page query int false "Номер страницы, с 1"
// @Param limit query int false "Размер страницы, максимум 100"
// @Param search query string false "Поиск по имени, почте или телефону"
// @Param plan_id query string false "Фильтр по тарифу"
// @Param active query bool false "Только с действующим (true) или без действующего (false) абонементом"
// @Param sort query string false "Столбец сортировки: name, email, created_at, expiry"
// @Param order query string false "Направление: asc или desc"
// @Success 200 {object} response.Response "Страница участников"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Требуется административный ключ"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"

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
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list members"))
		return
	}

	log.Info("list members", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"members":    res,
		"pagination": pagination,
	}))
}
