package router

import (
	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/controller/http/v1/file"
	"hrportal/backend/internal/middleware"
	"hrportal/backend/internal/notification"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/workflow"

	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/repository/postgres/request"
	"hrportal/backend/internal/repository/postgres/service"
	"hrportal/backend/internal/repository/postgres/transport"
	"hrportal/backend/internal/repository/postgres/user"

	attendance_controller "hrportal/backend/internal/controller/http/v1/attendance"
	auth_controller "hrportal/backend/internal/controller/http/v1/auth"
	request_controller "hrportal/backend/internal/controller/http/v1/request"
	service_controller "hrportal/backend/internal/controller/http/v1/service"
	transport_controller "hrportal/backend/internal/controller/http/v1/transport"
	user_controller "hrportal/backend/internal/controller/http/v1/user"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Router struct {
	*web.App
	postgresDB         *postgresql.Database
	redisDB            *redis.Client
	port               string
	auth               *auth.Auth
	fileServerBasePath string
	eventChannel       string
	log                *logrus.Logger
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	fileServerBasePath string,
	eventChannel string,
	log *logrus.Logger,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		fileServerBasePath,
		eventChannel,
		log,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	requestPostgres := request.NewRepository(r.postgresDB)
	transportPostgres := transport.NewRepository(r.postgresDB)
	servicePostgres := service.NewRepository(r.postgresDB)

	// workflow
	var notifier workflow.Notifier = notification.NopPublisher{}
	if r.redisDB != nil {
		notifier = notification.NewPublisher(r.redisDB, r.eventChannel, r.log)
	}
	absenceWorkflow := workflow.New(attendancePostgres, requestPostgres, notifier)

	// controller
	authController := auth_controller.NewController(userPostgres, r.auth)
	userController := user_controller.NewController(userPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, absenceWorkflow)
	requestController := request_controller.NewController(requestPostgres, absenceWorkflow)
	transportController := transport_controller.NewController(transportPostgres)
	serviceController := service_controller.NewController(servicePostgres)

	fileC := file.NewController(r.fileServerBasePath)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	r.GET("/media/*filepath", fileC.File)
	r.HEAD("/media/*filepath", fileC.File)

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #absence
	r.Get("/api/v1/absence/list", attendanceController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/absence/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/absence/create", attendanceController.Create, middleware.Authenticate(r.auth))
	r.Delete("/api/v1/absence/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #document-request
	r.Get("/api/v1/document-request/list", requestController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/document-request/:id", requestController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/document-request/:id/fulfill", requestController.Fulfill, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/document-request/:id/complete", requestController.MarkCompleted, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #transport
	r.Get("/api/v1/transport/list", transportController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/transport/upsert", transportController.Upsert, middleware.Authenticate(r.auth))
	r.Delete("/api/v1/transport/:id", transportController.Delete, middleware.Authenticate(r.auth))

	// #service
	r.Get("/api/v1/assignment/list", serviceController.GetAssignmentList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/service/list", serviceController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/service/:id", serviceController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/service/create", serviceController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/service/:id", serviceController.Update, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/service/:id", serviceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/service/:id/assign", serviceController.Assign, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/service/:id/assign/:employee_id", serviceController.Unassign, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
