package api

import (
	"net/http"

	"github.com/foshmed/daybook/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	entriesService   service.EntriesServiceI
	remindersService service.RemindersServiceI
	calendarService  service.CalendarServiceI
	statsService     service.StatsServiceI
	templatesService service.TemplatesServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService      service.UserServiceI
	EntriesService   service.EntriesServiceI
	RemindersService service.RemindersServiceI
	CalendarService  service.CalendarServiceI
	StatsService     service.StatsServiceI
	TemplatesService service.TemplatesServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		entriesService:   servicesOptions.EntriesService,
		remindersService: servicesOptions.RemindersService,
		calendarService:  servicesOptions.CalendarService,
		statsService:     servicesOptions.StatsService,
		templatesService: servicesOptions.TemplatesService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) routes() {
	s.mx.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Get("/profile", s.GetProfile)
			r.Put("/profile", s.UpdateProfile)
			r.Delete("/profile", s.DeleteAccount)
			r.Post("/profile/image", s.UploadProfileImage)

			r.Get("/entries", s.GetEntries)
			r.Post("/entries", s.CreateEntry)
			r.Get("/entries/{id}", s.GetEntry)
			r.Put("/entries/{id}", s.UpdateEntry)
			r.Delete("/entries/{id}", s.DeleteEntry)

			r.Get("/quick-notes", s.GetQuickNotes)
			r.Post("/quick-notes", s.CreateQuickNote)

			r.Get("/templates", s.GetTemplates)
			r.Post("/templates/{id}/entries", s.CreateEntryFromTemplate)

			r.Get("/reminders", s.GetReminders)
			r.Post("/reminders", s.CreateReminder)
			r.Put("/reminders/{id}", s.UpdateReminder)
			r.Delete("/reminders/{id}", s.DeleteReminder)

			r.Get("/calendar", s.GetCalendar)
			r.Post("/calendar/events", s.CreateCalendarEvent)
			r.Delete("/calendar/events/{id}", s.DeleteCalendarEvent)

			r.Get("/statistics", s.GetStatistics)
		})
	})
}

func (s *Server) Run(address string) error {
	s.routes()
	return http.ListenAndServe(address, s.mx)
}
