package http

import (
	"github.com/bazarhat/shopcore/internal/adapter/config"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	reportHandler *ReportHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	mw := NewHandler(logger)

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)
		}

		payments := api.Group("/payments")
		{
			payments.Use(mw.authCheck(tokenService))
			payments.POST("/manual", paymentHandler.RecordPayment)
		}

		orders := api.Group("/orders")
		{
			orders.Use(mw.authCheck(tokenService))

			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/my", orderHandler.ListMyOrders)
			orders.GET("/my/:id", orderHandler.GetOrder)
			orders.GET("/my/:id/invoice", orderHandler.GenerateInvoice)

			admin := orders.Group("")
			{
				admin.Use(mw.adminCheck())
				admin.POST("/pos", orderHandler.CreatePOSOrder)
				admin.GET("", orderHandler.ListOrders)
				admin.GET("/overview", reportHandler.Overview)
				admin.GET("/report", reportHandler.SalesReport)
				admin.GET("/:id", orderHandler.GetOrder)
				admin.GET("/:id/invoice", orderHandler.GenerateInvoice)
				admin.PUT("/:id/status", orderHandler.ChangeStatus)
			}
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
