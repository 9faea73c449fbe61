package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/opencollect/collect-api/docs"
	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/middleware"
	"github.com/opencollect/collect-api/internal/modules/handler"
	"github.com/opencollect/collect-api/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config            *config.Config
	Log               *zap.Logger
	SurveyUnitHandler *handler.SurveyUnitHandler
	CampaignHandler   *handler.CampaignHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.Use(middleware.CallerAuth(d.Config, d.Log))

		api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		su := api.Group("/survey-unit")
		{
			su.GET("/:id", d.SurveyUnitHandler.GetSurveyUnit)
			su.PUT("/:id", d.SurveyUnitHandler.PutSurveyUnit)
			su.DELETE("/:id", d.SurveyUnitHandler.DeleteSurveyUnit)
			su.GET("/:id/deposit-proof", d.SurveyUnitHandler.GetDepositProof)
		}
		api.GET("/survey-units", d.SurveyUnitHandler.ListSurveyUnits)

		api.GET("/campaigns", d.CampaignHandler.ListCampaigns)
		campaign := api.Group("/campaign/:id")
		{
			campaign.GET("/survey-units", d.CampaignHandler.ListSurveyUnitsByCampaign)
			campaign.POST("/survey-unit", d.CampaignHandler.PostSurveyUnit)
		}
	}
	return r
}
