package di

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"tp-server/api"
	"tp-server/api/openweather"
	"tp-server/calendar"
	"tp-server/config"
	"tp-server/crowd"
	"tp-server/dao/redis"
	"tp-server/db"
	"tp-server/logger"
	"tp-server/server"
	"tp-server/server/handlers"
	services "tp-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                  *config.Config
	RedisClient             db.RedisClient
	RedisTempleDao          *redis.RedisTempleDAO
	WeatherAPI              openweather.WeatherAPI
	Predictor               *crowd.Predictor
	WeatherService          *services.WeatherService
	TempleService           *services.TempleService
	PlanService             *services.PlanService
	CatalogService          *services.CatalogService
	WeatherRefresherService *services.WeatherRefresherService
	TempleHandler           *handlers.TempleHandler
	PlanHandler             *handlers.PlanHandler
	FestivalHandler         *handlers.FestivalHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	HttpServer              *server.TemplePlannerHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// store is in-memory and weather comes from a recorded response.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Info("[Container] Initializing container", "env", cfg.Env)

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	var redisClient db.RedisClient
	var weatherAPI openweather.WeatherAPI
	if !cfg.IsProd() {
		redisClient = db.NewMockRedisClient(ctx)
		weatherAPI = openweather.NewOpenWeatherApiClientMock(config.GetResourcePath(config.CURRENT_WEATHER_RESPONSE_RESOURCE))
		logger.Info("[Container] Using in-memory redis and mock weather api")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		geoClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		redisClient = geoClient
		weatherAPI = openweather.NewOpenWeatherApiClient(api.NewHTTPClient(cfg.OpenWeatherBaseURL), cfg.OpenWeatherAPIKey)
		logger.Info("[Container] Using redis and openweather api", "redis_addr", cfg.RedisAddr)
	}

	templeDao := redis.NewRedisTempleDAO(redisClient)
	festivals := calendar.Default()
	predictor := crowd.NewPredictor(crowd.WithCalendar(festivals), crowd.WithClock(now))

	weatherService := services.NewWeatherService(templeDao, weatherAPI, cfg.WeatherCacheSize, cfg.WeatherCacheTTL)
	templeService := services.NewTempleService(templeDao, weatherService, predictor, festivals)
	planService := services.NewPlanService(templeDao, templeService)
	catalogService := services.NewCatalogService(templeDao, config.GetResourcePath(config.TEMPLES_SEED_RESOURCE))
	weatherRefresherService := services.NewWeatherRefresherService(templeDao, weatherService)

	templeHandler := handlers.NewTempleHandler(templeService, now)
	planHandler := handlers.NewPlanHandler(planService, now)
	festivalHandler := handlers.NewFestivalHandler(templeService, now)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(templeHandler, planHandler, festivalHandler, handlers.Ping, muxRouter)
	httpServer := server.NewTemplePlannerHttpServer(router, muxRouter, cfg.HTTPAddr, cfg.AllowedOrigins)

	return &Container{
		Config:                  cfg,
		RedisClient:             redisClient,
		RedisTempleDao:          templeDao,
		WeatherAPI:              weatherAPI,
		Predictor:               predictor,
		WeatherService:          weatherService,
		TempleService:           templeService,
		PlanService:             planService,
		CatalogService:          catalogService,
		WeatherRefresherService: weatherRefresherService,
		TempleHandler:           templeHandler,
		PlanHandler:             planHandler,
		FestivalHandler:         festivalHandler,
		MuxRouter:               muxRouter,
		Router:                  router,
		HttpServer:              httpServer,
	}, nil
}
