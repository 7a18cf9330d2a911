package handler

import (
	"context"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/planning-aidant/backend/internal/config"
	"github.com/planning-aidant/backend/internal/ratebook"
	"github.com/planning-aidant/backend/internal/recap"
	"github.com/planning-aidant/backend/internal/repository"
	"github.com/planning-aidant/backend/internal/utils"
)

// Publisher is the part of *amqp.Channel the handlers need.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	publisher  Publisher
	rates      ratebook.Store
	limiter    *RateLimiter
	adminHash  []byte
	location   *time.Location
	now        func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, publisher Publisher, rates ratebook.Store) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	french := fr.New()
	uni := ut.New(french, french)
	trans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := utils.RegisterValidations(validate, trans); err != nil {
		return nil, err
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		publisher:  publisher,
		rates:      rates,
		limiter:    NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),
		adminHash:  adminHash,
		location:   location,
		now:        time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

// Close releases the background resources of the handler.
func (h *Handler) Close() {
	h.limiter.Stop()
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(middleware.RequestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	h.Mux.Route("/auth", func(r chi.Router) {
		r.With(h.limiter.Middleware).Post("/login", h.Login)
		r.With(h.auth).Post("/logout", h.Logout)
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.GetAllClients)
			r.Post("/", h.CreateClient)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.Post("/", h.CreateEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", h.GetAllAppointments)
			r.Post("/", h.CreateAppointment)
			r.Post("/recurring", h.CreateRecurringAppointments)
			r.Put("/{id}", h.UpdateAppointment)
			r.Delete("/{id}", h.DeleteAppointment)
		})

		r.Route("/planning", func(r chi.Router) {
			r.Get("/events", h.GetPlanningEvents)
			r.Get("/calendar.ics", h.GetPlanningCalendar)
		})

		r.Route("/recap", func(r chi.Router) {
			r.Get("/", h.GetRecap)
			r.Get("/export.xlsx", h.ExportRecap)
			r.Post("/send", h.SendRecap)
			r.Route("/rates", func(r chi.Router) {
				r.Get("/", h.GetRates)
				r.Delete("/", h.ResetRates)
				r.Put("/employees/{id}", h.SetEmployeeRate)
				r.Put("/clients/{id}", h.SetClientRate)
			})
		})
	})
}

// monthFilterTag validates the ?month= parameter of the recap routes.
var monthFilterTag = "omitempty,oneof=" + strings.Join(recap.Months, " ")
