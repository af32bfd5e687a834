package meeting

import (
	"time2gather/core/cache"
	"time2gather/core/config"
	"time2gather/core/database"
	"time2gather/core/middleware"
	"time2gather/core/storage"
	"time2gather/modules/meeting/client"
	"time2gather/modules/meeting/controller"
	"time2gather/modules/meeting/repository"
	"time2gather/modules/meeting/router"
	"time2gather/modules/meeting/service"
	"time2gather/modules/meeting/task"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes
func Init(e *echo.Echo, cfg *config.Config, db database.IDatabase, store cache.Cache, enqueuer service.Enqueuer, mw *middleware.Middleware) {
	upstream := client.NewUpstreamClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	repo := repository.NewSubmissionRepository(db)
	svc := service.NewMeetingService(upstream, repo, store, enqueuer, service.Options{
		DraftTTL:  cfg.Draft.TTL,
		ResultTTL: cfg.Draft.ResultTTL,
	})
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
}

// NewTaskHandler builds the worker side of the module.
func NewTaskHandler(cfg *config.Config, store cache.Cache, objects storage.ObjectStore) *task.Handler {
	upstream := client.NewUpstreamClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	return task.NewHandler(upstream, store, objects, cfg.Draft.ResultTTL)
}
