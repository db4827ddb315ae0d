package handlers

import (
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/watoukuang/demochain/config"
	"github.com/watoukuang/demochain/internal/auth"
	"github.com/watoukuang/demochain/internal/db"
	"github.com/watoukuang/demochain/internal/payments"
	"github.com/watoukuang/demochain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type Handler struct {
	Database db.Database
	Config   *config.Config
	Logger   *zap.SugaredLogger
	Payments *payments.Engine
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.Logger.Errorw("error reading decoded credentials", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_request_body", "invalid request body")
		return
	}

	if credentials.Email == "" || credentials.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_required_field", "email and password are required")
		return
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Errorw("password encryption error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	userData := models.User{
		UUID:     uuid.New().String(),
		Email:    credentials.Email,
		Password: string(passwordBytes),
		Created:  time.Now().UTC(),
	}

	if err = h.Database.PutUniqueUserData(userData); err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			h.Logger.Debugw("email already registered", "error", err)
			writeError(w, http.StatusConflict, "email_already_registered", "email already registered")
			return
		}
		h.Logger.Errorw("error when trying to put credentials to database", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	token, err := auth.BuildJWT(userData.UUID, userData.Email)
	if err != nil {
		h.Logger.Errorw("error building JWT", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.Logger.Errorw("error reading decoded credentials", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_request_body", "invalid request body")
		return
	}

	userData, err := h.Database.GetUserData(credentials.Email)
	if err != nil {
		if strings.Contains(err.Error(), "no rows in result set") {
			h.Logger.Errorw("email does not exist", "error", err)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(userData.Password), []byte(credentials.Password))
	if err != nil {
		h.Logger.Errorw("invalid email or password", "error", err)
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := auth.BuildJWT(userData.UUID, userData.Email)
	if err != nil {
		h.Logger.Errorw("error building JWT", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ArticlesPage(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	articles, err := h.Database.GetArticlesPage(page, size)
	if err != nil {
		h.Logger.Errorw("failed to get articles", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	writeJSON(w, http.StatusOK, articles)
}

func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.Database.GetArticleBySlug(slug)
	if err != nil {
		if strings.Contains(err.Error(), "no rows in result set") {
			writeError(w, http.StatusNotFound, "article_not_found", "article not found")
			return
		}
		h.Logger.Errorw("failed to get article", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("UUID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authenticated user required")
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Errorw("error decoding order request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_request_body", "invalid request body")
		return
	}

	resp, err := h.Payments.CreateOrder(r.Context(), userID, req.Plan, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrUnsupportedPlan):
			writeError(w, http.StatusBadRequest, "unsupported_plan", err.Error())
		case errors.Is(err, payments.ErrUnsupportedMethod):
			writeError(w, http.StatusBadRequest, "unsupported_payment_method", err.Error())
		default:
			h.Logger.Errorw("failed to create order", "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.Payments.GetStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, payments.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", err.Error())
			return
		}
		h.Logger.Errorw("failed to get order status", "order_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
