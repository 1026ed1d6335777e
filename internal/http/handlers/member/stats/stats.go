// Package stats реализует HTTP-обработчик агрегированной статистики по участникам.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Handler обрабатывает запросы статистики по участникам.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статистики.
type Service interface {
	Stats(ctx context.Context) (*models.MemberStats, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика по участникам
// @Description Возвращает счётчики: всего, с действующим абонементом, с истёкшим, без абонемента.
// @Tags Members
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} response.Response "Счётчики участников"
// @Failure 401 {object} response.ErrorResponse "Требуется административный ключ"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to count member stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count member stats"))
		return
	}

	log.Info("success to count member stats")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"stats": res,
	}))
}
