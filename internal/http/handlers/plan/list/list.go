// Package list реализует HTTP-обработчик списка тарифных планов.
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

// spec задаёт правила разбора query-параметров списка тарифов.
var spec = listparams.Spec{
	DefaultSort: "price",
	DefaultDesc: false,
	SortColumns: map[string]string{
		"name":          "name",
		"price":         "price",
		"duration_days": "duration_days",
		"created_at":    "created_at",
	},
}

// Handler обрабатывает запросы на получение списка тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка тарифов.
type Service interface {
	List(ctx context.Context, opts models.ListOptions) ([]*models.PricingPlan, models.Pagination, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тарифов
// @Description Возвращает страницу тарифных планов. Доступно без аутентификации. Поддерживает search по названию, active, sort и order.
// @Tags PricingPlans
// @Produce  json
// @Param page query int false "Номер страницы, с 1"
// @Param limit query int false "Размер страницы, максимум 100"
// @Param search query string false "Поиск по названию"
// @Param active query bool false "Только активные (true) или отключённые (false) тарифы"
// @Param sort query string false "Столбец сортировки: name, price, duration_days, created_at"
// @Param order query string false "Направление: asc или desc"
// @Success 200 {object} response.Response "Страница тарифов"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /pricing_plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"

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
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list pricing plans"))
		return
	}

	log.Info("list plans", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"pricing_plans": res,
		"pagination":    pagination,
	}))
}
