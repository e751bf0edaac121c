package app

import (
	"fmt"
	"net/http"
	"strings"

	"placement-prep/internal/config"
	"placement-prep/internal/delivery/http/handler"
	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/delivery/http/routes"
	"placement-prep/internal/infrastructure/persistence/postgres"
	"placement-prep/internal/pkg/jwt"
	"placement-prep/internal/repository"
	"placement-prep/internal/usecase"
	"placement-prep/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

const (
	defaultBodyLimit = 4 * 1024 * 1024
	formOverhead     = 1024 * 1024
)

type App struct {
	Fiber     *fiber.App
	WS        http.Handler
	Container *Container
}

// New wires repositories, usecases and handlers on top of c.
func New(c *Container) *App {
	cfg := c.Config

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit(cfg.Upload),
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{
		Fiber:     f,
		WS:        ws.NewHandler(c.Hub, cfg.CORS.AllowedOrigins, c.Logger).Mux(),
		Container: c,
	}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil || c.DB == nil {
		return nil, nil, fmt.Errorf("bootstrap: container is not initialised")
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	corsCfg := cors.Config{
		AllowHeaders: []string{
			fiber.HeaderOrigin,
			fiber.HeaderContentType,
			fiber.HeaderAccept,
			fiber.HeaderAuthorization,
			middleware.HeaderAuthToken,
		},
	}
	if origins := c.Config.CORS.AllowedOrigins; len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	}
	app.Use(cors.New(corsCfg))
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cfg := c.Config
	log := c.Logger

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	users := postgres.NewUserRepository(c.DB)
	courses := repository.NewPostgresCourseRepository(c.DB)
	problems := repository.NewPostgresProblemRepository(c.DB)
	companies := repository.NewPostgresCompanyRepository(c.DB)
	submissions := repository.NewPostgresSubmissionRepository(c.DB)
	chats := repository.NewPostgresChatRepository(c.DB)
	interviews := repository.NewPostgresInterviewRepository(c.DB)

	var archive usecase.ResumeArchive
	if c.Archive != nil {
		archive = c.Archive
	}

	interviewUC := usecase.NewInterviewUsecase(
		interviews,
		interviews,
		users,
		ws.NewSlotNotifier(c.Hub),
		log,
		bookingNotifiers(c)...,
	)

	registry := routes.NewRegistry(routes.Handlers{
		Health:     handler.NewHealthHandler(c.DB, c.Cache),
		Auth:       handler.NewAuthHandler(usecase.NewAuthUsecase(users, jwtSvc)),
		User:       handler.NewUserHandler(usecase.NewUserUsecase(users, c.Cache, log)),
		Course:     handler.NewCourseHandler(usecase.NewCourseUsecase(courses, c.Cache, log)),
		Catalog:    handler.NewCatalogHandler(usecase.NewProblemUsecase(problems, log), usecase.NewCompanyUsecase(companies, log)),
		Resume:     handler.NewResumeHandler(usecase.NewResumeUsecase(archive, c.Cache, cfg.Upload.MaxResumeBytes, log)),
		Submission: handler.NewSubmissionHandler(usecase.NewSubmissionUsecase(problems, submissions, c.Judge, c.Cache, log)),
		Chat:       handler.NewChatHandler(usecase.NewChatUsecase(users, chats, c.Chatbot, log)),
		Interview:  handler.NewInterviewHandler(interviewUC),
	}, middleware.NewAuthMiddleware(jwtSvc))

	registry.Register(app)
}

func bookingNotifiers(c *Container) []usecase.BookingNotifier {
	out := make([]usecase.BookingNotifier, 0, 2)
	if c.Mailer != nil {
		out = append(out, c.Mailer)
	}
	if c.Publisher != nil {
		out = append(out, c.Publisher)
	}
	return out
}

func bodyLimit(cfg config.UploadConfig) int {
	if limit := cfg.MaxResumeBytes + formOverhead; limit > defaultBodyLimit {
		return limit
	}
	return defaultBodyLimit
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
