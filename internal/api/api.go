package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/camtrap/internal/api/controller"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"github.com/ougirez/camtrap/internal/service/ingest"
	"github.com/ougirez/camtrap/internal/service/occurrence"
	"github.com/ougirez/camtrap/internal/service/species"
	"github.com/ougirez/camtrap/internal/service/studyarea"
	"github.com/ougirez/camtrap/internal/service/synonym"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) Router() *echo.Echo {
	return svc.router
}

type Options struct {
	DefaultTimezone    int
	Locale             string
	OrganismFieldTitle string
	CORSOrigins        []string
}

// OptionsFromViper собирает Options из конфигурации.
func OptionsFromViper() Options {
	return Options{
		DefaultTimezone:    viper.GetInt(constants.ViperDefaultTimezone),
		Locale:             viper.GetString(constants.ViperLocale),
		OrganismFieldTitle: viper.GetString(constants.ViperOrganismFieldTitle),
		CORSOrigins:        viper.GetStringSlice(constants.ViperCORSOrigins),
	}
}

func NewAPIService(store store.Store, resolver *synonym.Resolver, opts Options) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.INFO)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.RequestID())
	svc.router.Use(RequestLogger)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	cntrl := controller.NewController(
		ingest.NewIngestService(store, opts.DefaultTimezone, opts.Locale),
		occurrence.NewOccurrenceService(store, resolver, opts.DefaultTimezone, opts.Locale, opts.OrganismFieldTitle),
		studyarea.NewStudyAreaService(store, opts.Locale),
		species.NewSpeciesService(store),
	)

	svc.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := svc.router.Group("/api/v1")

	projects := api.Group("/projects/:projectId")
	projects.POST("/annotations/upload", cntrl.UploadAnnotations, svc.AdminMiddleware)
	projects.GET("/study-areas", cntrl.GetStudyAreas)
	projects.POST("/study-areas", cntrl.AddStudyArea, svc.AdminMiddleware)
	projects.GET("/species", cntrl.GetSpecies)

	calculator := api.Group("/calculator")
	calculator.GET("/oi1", cntrl.CalculateOccurrence)

	return svc, nil
}
