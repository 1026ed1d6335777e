package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Remove(ctx context.Context, uid string) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить тариф
// @Description Удаляет тарифный план. Тариф, на который ссылается хотя бы один участник, удалить нельзя.
// @Tags PricingPlans
// @Security ApiKeyAuth
// @Param uuid path string true "UUID тарифа"
// @Success 204 "Тариф удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный uuid"
// @Failure 401 {object} response.ErrorResponse "Требуется административный ключ"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 409 {object} response.ErrorResponse "Тариф используется участниками"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /pricing_plans/{uuid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uuid")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("invalid uuid format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid uuid"))
		return
	}

	count, err := h.service.Remove(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrPlanInUse) {
			log.Error("plan is referenced by members", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("pricing plan is referenced by members"))
			return
		}
		log.Error("failed to delete plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete pricing plan"))
		return
	}
	if count == 0 {
		log.Error("plan not found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("pricing plan not found"))
		return
	}

	log.Info("success to delete plan", slog.String("uuid", uid))
	w.WriteHeader(http.StatusNoContent)
}
