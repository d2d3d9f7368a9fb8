package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ludotek/festival-booking-api/docs"
	v1 "github.com/ludotek/festival-booking-api/internal/api/handler/v1"
	"github.com/ludotek/festival-booking-api/internal/api/middleware"
	"github.com/ludotek/festival-booking-api/internal/config"
	"github.com/ludotek/festival-booking-api/internal/repository"
	"github.com/ludotek/festival-booking-api/internal/repository/dao"
	"github.com/ludotek/festival-booking-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	festivalHandler := s.initFestivalHandler(db)
	reservationHandler := s.initReservationHandler(db)
	stockHandler := s.initStockHandler(db)
	s.MountHandlers(authHandler, userHandler, festivalHandler, reservationHandler, stockHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initFestivalHandler(db *gorm.DB) *v1.FestivalHandler {
	repo := repository.NewFestivalRepository(dao.NewFestivalDAO(db), dao.NewZoneDAO(db))
	svc := service.NewFestivalService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewFestivalHandler(svc, uSvc)

	return handler
}

func (s *Server) initReservationHandler(db *gorm.DB) *v1.ReservationHandler {
	repo := repository.NewReservationRepository(dao.NewReservationDAO(db), dao.NewReservantDAO(db), dao.NewGameAllocationDAO(db))
	zones := repository.NewFestivalRepository(dao.NewFestivalDAO(db), dao.NewZoneDAO(db))
	svc := service.NewReservationService(repo, zones)
	handler := v1.NewReservationHandler(svc)

	return handler
}

func (s *Server) initStockHandler(db *gorm.DB) *v1.StockHandler {
	repo := repository.NewReservationRepository(dao.NewReservationDAO(db), dao.NewReservantDAO(db), dao.NewGameAllocationDAO(db))
	festivals := repository.NewFestivalRepository(dao.NewFestivalDAO(db), dao.NewZoneDAO(db))
	svc := service.NewStockService(repo, festivals)
	handler := v1.NewStockHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	festivalHandler *v1.FestivalHandler,
	reservationHandler *v1.ReservationHandler,
	stockHandler *v1.StockHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.POST("/festivals", festivalHandler.HandleCreateFestival)
		authenticated.GET("/festivals", festivalHandler.HandleGetFestivals)
		authenticated.GET("/festivals/:festivalID", festivalHandler.HandleGetFestival)
		authenticated.POST("/festivals/:festivalID/zones", festivalHandler.HandleCreateZone)
		authenticated.GET("/festivals/:festivalID/zones", festivalHandler.HandleGetZones)

		authenticated.POST("/festivals/:festivalID/quote", reservationHandler.HandleQuote)
		authenticated.POST("/festivals/:festivalID/reservations", reservationHandler.HandleCreateReservation)
		authenticated.GET("/festivals/:festivalID/reservations", reservationHandler.HandleGetFestivalReservations)
		authenticated.GET("/reservations/:reservationID", reservationHandler.HandleGetReservation)
		authenticated.PUT("/reservations/:reservationID", reservationHandler.HandleUpdateReservation)
		authenticated.DELETE("/reservations/:reservationID", reservationHandler.HandleDeleteReservation)
		authenticated.POST("/reservations/:reservationID/games", reservationHandler.HandleAllocateGame)
		authenticated.GET("/reservations/:reservationID/games", reservationHandler.HandleGetGameAllocations)

		authenticated.GET("/festivals/:festivalID/stock", stockHandler.HandleGetStockSummary)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Festival Booking API"
	docs.SwaggerInfo.Description = "Reservation and stock allocation API for board game festivals."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
