package restapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions configures SetupRouter.
type RouterOptions struct {
	RequestTimeout time.Duration
	Swagger        bool
	SwaggerFile    string              // served at /docs/swagger.yaml
	Gatherer       prometheus.Gatherer // nil means the default registry
}

// SetupRouter builds the gin engine: middleware, /api/v1, /metrics and optionally swagger.
func SetupRouter(handler *Handler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	// asset ids of foreign assets are JSON locations and arrive escaped
	router.UseRawPath = true
	router.UnescapePathValues = true

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(logger.Named("HTTP")))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1", TimeoutMiddleware(opts.RequestTimeout))
	{
		v1.GET("/chains", handler.GetChains)
		v1.GET("/chains/:chain/assets", handler.GetAssets)
		v1.GET("/chains/:chain/assets/:module/:assetId/balance", handler.GetAssetBalance)
		v1.GET("/chains/:chain/asset-balances", handler.GetAssetBalances)

		v1.GET("/balances", handler.GetBalance)

		v1.POST("/accounts", handler.CreateAccount)
		v1.GET("/accounts/:id", handler.GetAccount)
		v1.PUT("/accounts/:id/addresses", handler.UpdateAddresses)
		v1.DELETE("/accounts/:id", handler.DeleteAccount)
		v1.GET("/accounts/:id/balance", handler.GetAccountBalance)
		v1.GET("/accounts/:id/pubkeys", handler.GetAccountPubkeys)
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if opts.Swagger {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerFile)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
