package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/server/handlers"
	authsvc "github.com/salonhq/ledger/internal/service/auth"
)

// New wires the Gin engine with required routes and middlewares. The route
// surface mirrors the frontend contract: everything lives under /user, with
// signup, login and the employee directory open and the rest behind a bearer
// token.
func New(authHandler *handlers.AuthHandler, ledgerHandler *handlers.LedgerHandler, reportHandler *handlers.ReportHandler, authSvc *authsvc.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	user := r.Group("/user")
	{
		user.POST("/signup", authHandler.Signup)
		user.POST("/login", authHandler.Login)
		user.GET("/employees", ledgerHandler.ListEmployees)

		protected := user.Group("")
		protected.Use(authRequired(authSvc, logger))
		{
			protected.POST("/services", ledgerHandler.AddService)
			protected.GET("/services", ledgerHandler.MyServicesToday)
			protected.GET("/all-services", reportHandler.ListServices)
			protected.GET("/graph-services", reportHandler.GraphServices)
			protected.GET("/profit", reportHandler.MonthlyProfit)
			protected.POST("/expenses", ledgerHandler.CreateExpense)
			protected.GET("/all-expenses", ledgerHandler.ListExpenses)
			protected.POST("/water", ledgerHandler.PourWater)
			protected.GET("/water-details", ledgerHandler.WaterDetails)
			protected.PATCH("/status/:id", ledgerHandler.ChangeStaffStatus)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
