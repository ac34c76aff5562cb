package router

import (
	"time"

	"vedacart/internal/config"
	"vedacart/internal/handler"
	"vedacart/internal/infra"
	"vedacart/internal/media"
	"vedacart/internal/middleware"
	"vedacart/internal/repository"
	"vedacart/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository / Media Store ← DB/Redis/Cloudinary
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mediaCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cloudinary := infra.NewCloudinaryClient(cfg, mediaCB)
	store := media.NewStore(cloudinary, cfg.UploadConcurrency)
	cache := service.NewSummaryCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, store, cache)
	editSvc := service.NewEditService(productRepo, store, cache, cfg.UploadConcurrency)
	catalogSvc := service.NewCatalogService(productRepo, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc, editSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	mediaH := handler.NewMediaHandler(store)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mediaCB))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", catalogH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/featured", productsH.SetFeatured)
		}

		v1.GET("/catalog", catalogH.Browse)
		v1.GET("/catalog/filters", catalogH.Filters)

		v1.POST("/media", mediaH.Upload)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
