package routes

import (
	"net/http"

	"SehatCare/config"
	"SehatCare/controllers"
	"SehatCare/middleware"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func Routes(r *gin.Engine) {
	cfg := config.Get()

	metrics := middleware.NewMetrics()
	r.Use(metrics.Middleware())

	//public
	r.GET("/metrics", metrics.Handler())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, util.MessageResponse("ok"))
	})
	r.Static(util.UploadsRoute, services.UploadRoot)

	api := r.Group("/api")
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.AIRateLimit),
		Burst: cfg.AIRateBurst,
	})

	controllers.Auth(api)
	controllers.AI(api, limiter.RateLimit())
	controllers.Hospital(api)
	controllers.Doctor(api)
	controllers.Appointment(api)
	controllers.Meet(api)
	controllers.Unsafe(api)
	controllers.Upload(api)
	controllers.Vault(api)
	controllers.Prescription(api)
}
