// Package status exposes queue statistics over HTTP.
package status

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/go-bqueue/pkg/datastructs/queue"
)

const (
	PathHealth = "/healthz"
	PathStats  = "/stats"
)

// StatsSource is anything that can report queue statistics.
type StatsSource interface {
	Stats() queue.Stats
}

// NewRouter returns a gin engine serving health and stats for src.
func NewRouter(src StatsSource) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET(PathHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(PathStats, func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Stats())
	})

	return r
}
