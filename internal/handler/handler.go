package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/redis/go-redis/v9"
	"github.com/restaurant-ops/labor-compliance/backend/internal/compliance"
	"github.com/restaurant-ops/labor-compliance/backend/internal/config"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/restaurant-ops/labor-compliance/backend/internal/repository"
	"github.com/restaurant-ops/labor-compliance/backend/internal/utils"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	rules       *compliance.RuleSet
	alerts      AlertPublisher
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, rules *compliance.RuleSet, alerts AlertPublisher, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := utils.RegisterValidations(validate); err != nil {
		return nil, err
	}

	fr := fr.New()
	uni := ut.New(fr, fr)
	trans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerClockTranslation(validate, trans); err != nil {
		return nil, err
	}

	if rules == nil {
		rules = compliance.DefaultRules()
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		rules:       rules,
		alerts:      alerts,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func registerClockTranslation(validate *validator.Validate, trans ut.Translator) error {
	return validate.RegisterTranslation("hhmm", trans,
		func(ut ut.Translator) error {
			return ut.Add("hhmm", "{0} doit être une heure au format HH:MM", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("hhmm", fe.Field())
			return t
		},
	)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	h.Mux.Get("/compliance/rules", h.GetRules)

	// 以下 API 必须携带外部认证服务签发的令牌
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		// 无状态检查：由排班界面直接提交一周的数据
		r.Post("/compliance/check", h.CheckWeekSchedule)

		r.Route("/restaurants/{id}", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleOwner, domain.RoleManager}))
			r.Use(h.restaurant)
			r.Route("/weeks/{weekStart}/compliance", func(r chi.Router) {
				r.Get("/", h.GetWeekCompliance)
				r.Get("/report.pdf", h.GetWeekComplianceReport)
				r.Get("/report.xlsx", h.GetWeekComplianceReport)
				r.Post("/notify", h.NotifyCriticalViolations)
			})
		})
	})
}
