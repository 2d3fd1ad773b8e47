package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	httpapi "github.com/devfolio-labs/portfolio-backend/internal/api/http"
	"github.com/devfolio-labs/portfolio-backend/internal/api/http/middleware"
	"github.com/devfolio-labs/portfolio-backend/internal/media"
	mediahttp "github.com/devfolio-labs/portfolio-backend/internal/media/http"
	projecthttp "github.com/devfolio-labs/portfolio-backend/internal/projects/http"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/service"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	Store           store.Store
	StoreDriver     string
	Media           media.Service // nil disables the media relay routes
	UploadFolder    string
	DB              *pgxpool.Pool // nil unless StoreDriver is postgres
	AdminEnabled    bool
	MutationsPerMin int
	AllowOrigins    []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowOrigins) == 0 || (len(dep.AllowOrigins) == 1 && dep.AllowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.AllowOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.StoreDriver, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestID())

	guard := []gin.HandlerFunc{
		middleware.AdminGate(dep.AdminEnabled),
		middleware.MutationLimit(dep.MutationsPerMin),
	}

	svc := service.New(dep.Store, dep.Media)
	projectHandler := projecthttp.NewHandler(svc)
	projectHandler.Register(api.Group("/projects"), guard...)

	mediaHandler := mediahttp.NewHandler(dep.Media, dep.UploadFolder)
	mediaHandler.Register(api, guard...)

	return r
}
