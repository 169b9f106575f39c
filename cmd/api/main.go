// @title Daybook API
// @description API for the personal journaling app "Daybook"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/foshmed/daybook/internal/api"
	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/internal/service"
	"github.com/foshmed/daybook/pkg/cleanup"
	"github.com/foshmed/daybook/pkg/config"
	"github.com/foshmed/daybook/pkg/imagestore"
	jwtservice "github.com/foshmed/daybook/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.MustGetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.MustGetString("POSTGRES_USER"),
		Password: cfg.MustGetString("POSTGRES_PASSWORD"),
		DB:       cfg.MustGetString("POSTGRES_DB"),
	}
	images, err := imagestore.New(
		cfg.GetString("CLOUDINARY_CLOUD_NAME"),
		cfg.GetString("CLOUDINARY_API_KEY"),
		cfg.GetString("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatal("Image store error: " + err.Error())
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	entriesRepo := repository.NewEntriesRepo(&dbCfg)
	remindersRepo := repository.NewRemindersRepo(&dbCfg)
	eventsRepo := repository.NewCalendarEventsRepo(&dbCfg)
	templatesRepo := repository.NewTemplatesRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		UserService:      service.NewUserService(usersRepo, images),
		EntriesService:   service.NewEntriesService(entriesRepo, templatesRepo, images),
		RemindersService: service.NewRemindersService(remindersRepo),
		CalendarService:  service.NewCalendarService(entriesRepo, remindersRepo, eventsRepo),
		StatsService:     service.NewStatsService(entriesRepo, remindersRepo),
		TemplatesService: service.NewTemplatesService(templatesRepo),
		JwtService:       jwtservice.New(cfg.MustGetString("JWT_SECRET")),
	})
	err = serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
