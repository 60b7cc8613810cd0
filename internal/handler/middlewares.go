package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// AuthClaims 由外部认证服务签发，本服务只负责校验
type AuthClaims struct {
	Role        string   `json:"role"`
	Restaurants []string `json:"restaurants"`
	jwt.RegisteredClaims
}

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest 优先读取 cookie，其次是 Authorization 头
func (h *Handler) tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(h.config.JWT.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := h.tokenFromRequest(r)
		if !ok {
			h.errorResponse(w, r, "Utilisateur non authentifié")
			return
		}

		// 验证 token
		claims := &AuthClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			h.errorResponse(w, r, "Jeton invalide")
			return
		}

		// 将 claims 中的 role、sub 和可访问的餐厅附在 context 中
		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, RestaurantsCtxKey, claims.Restaurants)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx, _ := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.errorResponse(w, r, "Droits insuffisants")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) restaurant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restaurantID := chi.URLParam(r, "id")

		allowed, _ := r.Context().Value(RestaurantsCtxKey).([]string)
		if !slices.Contains(allowed, restaurantID) {
			h.errorResponse(w, r, "Accès au restaurant refusé")
			return
		}

		if err := h.validate.Var(restaurantID, "uuid"); err != nil {
			h.errorResponse(w, r, "Identifiant de restaurant invalide")
			return
		}

		restaurant, err := h.repository.GetRestaurantByID(r.Context(), restaurantID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "Restaurant introuvable")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), RestaurantCtx, restaurant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restaurantLocation 在时区无法识别时退回 UTC
func restaurantLocation(restaurant *domain.Restaurant) *time.Location {
	loc, err := time.LoadLocation(restaurant.Timezone)
	if err != nil {
		slog.Warn("无法识别餐厅时区，使用 UTC", "restaurantID", restaurant.ID, "timezone", restaurant.Timezone, "error", err)
		return time.UTC
	}
	return loc
}
