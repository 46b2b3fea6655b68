package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/config"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/importer"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/repository"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/rota"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	generator   *rota.Generator
	importer    *importer.Importer

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		generator:   rota.NewGenerator(cfg.Rotation.CycleLength, repo, repo),
		importer:    importer.New(repo, cfg.Rotation.CycleLength),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// The subscription feed authenticates through its token, not a session,
	// so calendar clients can poll it.
	h.Mux.Get("/calendar/feed/{token}", h.CalendarFeed)

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Get("/assignment", h.GetMyAssignment)
		})

		r.Route("/positions", func(r chi.Router) {
			r.Get("/", h.GetAllPositions)
			r.Get("/{id}/templates", h.GetPositionTemplates)
		})

		r.Route("/rotation-patterns", func(r chi.Router) {
			r.Get("/", h.GetAllRotationPatterns)
			r.With(h.RequiredRole([]domain.Role{domain.RolePlanner, domain.RoleAdmin})).Post("/", h.CreateRotationPattern)
			r.With(h.RequiredRole([]domain.Role{domain.RolePlanner, domain.RoleAdmin})).Post("/{id}/activate", h.ActivateRotationPattern)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Use(h.userInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/assignment", h.SetUserAssignment)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/generate", h.GenerateShifts)
			r.Get("/", h.GetMyShifts)
			r.Get("/export/ics", h.ExportICS)
			r.Get("/{date}/google-link", h.GoogleCalendarLink)
			r.Post("/feed-token", h.CreateFeedToken)
		})

		r.Route("/annual-plans", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.RequiredRole([]domain.Role{domain.RolePlanner, domain.RoleAdmin}))
			r.Post("/validate", h.ValidateAnnualPlan)
			r.Post("/import", h.ImportAnnualPlan)
		})

		r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/import-logs", h.GetAllImportLogs)
	})
}
