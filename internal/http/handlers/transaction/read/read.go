// Package read реализует HTTP-обработчик для получения транзакции по uuid.
//
// Транзакцию может читать администратор или участник, которому она принадлежит.
// Чужому участнику возвращается 403.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Handler обрабатывает запросы на получение транзакции по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения транзакции.
type Service interface {
	Read(ctx context.Context, uid string) (*models.Transaction, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить транзакцию
// @Description Возвращает транзакцию по uuid. Доступно администратору или участнику-владельцу.
// @Tags Transactions
// @Security ApiKeyAuth
// @Security BearerAuth
// @Produce  json
// @Param uuid path string true "UUID транзакции"
// @Success 200 {object} response.Response "Данные транзакции"
// @Failure 400 {object} response.ErrorResponse "Некорректный uuid"
// @Failure 401 {object} response.ErrorResponse "Нет учётных данных"
// @Failure 403 {object} response.ErrorResponse "Транзакция принадлежит другому участнику"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions/{uuid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.read"

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

	res, err := h.service.Read(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("transaction not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("transaction not found"))
			return
		}
		log.Error("failed to read transaction", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read transaction"))
		return
	}

	if !middlewarectx.IsAdmin(r.Context()) && res.MemberID != middlewarectx.MemberUID(r.Context()) {
		log.Error("transaction belongs to another member")
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	log.Info("success to read transaction", slog.String("uuid", uid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transaction": res,
	}))
}
