package metricsController

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controller struct {
	gatherer prometheus.Gatherer
}

// New отдаёт метрики из gatherer (nil - глобальный реестр)
func New(gatherer prometheus.Gatherer) *Controller {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Controller{gatherer: gatherer}
}

func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))
}
