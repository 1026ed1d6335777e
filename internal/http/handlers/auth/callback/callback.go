// Package callback реализует HTTP-обработчик обратного вызова OAuth-провайдера.
//
// GET обслуживает редирект провайдера: код обменивается на сессионный JWT,
// при наличии параметра next браузер перенаправляется туда с токеном или ошибкой.
// POST принимает код в JSON-теле и отвечает конвертом с токеном.
package callback

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/lib/validate"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Request — код авторизации для POST-варианта обмена.
type Request struct {
	Code string `json:"code" validate:"required"`
}

// Handler обрабатывает обратный вызов OAuth-провайдера.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс обмена кода авторизации на сессионный JWT.
type Service interface {
	ExchangeCode(ctx context.Context, code string) (string, *models.Member, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Обратный вызов OAuth
// @Description Обменивает код авторизации внешнего провайдера на JWT. GET принимает code и next в query, POST — code в JSON-теле.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param code query string false "Код авторизации (GET)"
// @Param next query string false "Адрес перенаправления после обмена (GET)"
// @Param request body Request false "Код авторизации (POST)"
// @Success 200 {object} response.Response "Успешный обмен, выдан токен"
// @Failure 400 {object} response.ErrorResponse "Код отсутствует"
// @Failure 401 {object} response.ErrorResponse "Провайдер отклонил код"
// @Router /auth/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.callback"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var code, next string
	switch r.Method {
	case http.MethodPost:
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
			return
		}
		code = req.Code
	default:
		code = r.URL.Query().Get("code")
		next = sanitizeNext(r.URL.Query().Get("next"))
	}

	if code == "" {
		log.Error("authorization code is missing")
		h.fail(w, r, next, http.StatusBadRequest, "authorization code is missing")
		return
	}

	token, member, err := h.service.ExchangeCode(r.Context(), code)
	if err != nil {
		log.Error("code exchange failed", sl.Err(err))
		h.fail(w, r, next, http.StatusUnauthorized, "could not exchange authorization code")
		return
	}

	log.Info("oauth callback success", slog.String("uuid", member.UUID))
	if next != "" {
		target := withQuery(withQuery(next, "success", "true"), "token", token)
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":  token,
		"member": member,
	}))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, next string, status int, msg string) {
	if next != "" {
		http.Redirect(w, r, withQuery(next, "error", msg), http.StatusFound)
		return
	}
	w.WriteHeader(status)
	render.JSON(w, r, response.Error(msg))
}

// sanitizeNext разрешает перенаправление только на относительный путь
// внутри приложения. Абсолютные и protocol-relative адреса отбрасываются,
// чтобы callback нельзя было использовать как открытый редирект.
func sanitizeNext(next string) string {
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	return next
}

func withQuery(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
