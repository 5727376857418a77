// README: Read-only status API; exposes pipeline state, queue depth, and counters.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpmiddleware "roadpulse/internal/http/middleware"
	"roadpulse/internal/modules/telemetry"
	"roadpulse/internal/modules/uplink"
	"roadpulse/internal/modules/vehicle"
)

type ServerDeps struct {
	Vehicle *vehicle.Service
	Queue   *telemetry.Queue
	Decider *telemetry.Decider
	Uplink  *uplink.Service
}

type Server struct {
	vehicle *vehicle.Service
	queue   *telemetry.Queue
	decider *telemetry.Decider
	uplink  *uplink.Service
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		vehicle: deps.Vehicle,
		queue:   deps.Queue,
		decider: deps.Decider,
		uplink:  deps.Uplink,
	}
}

type statusResponse struct {
	State    vehicle.State          `json:"state"`
	QueueLen int                    `json:"queue_len"`
	QueueCap int                    `json:"queue_cap"`
	Decider  telemetry.DeciderStats `json:"decider"`
	Uplink   uplink.Stats           `json:"uplink"`
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(httpmiddleware.Logging(), httpmiddleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/api/status", s.handleStatus)
	r.GET("/api/state", s.handleState)

	return r
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		State:    s.vehicle.Snapshot(),
		QueueLen: s.queue.Len(),
		QueueCap: s.queue.Cap(),
		Decider:  s.decider.Stats(),
		Uplink:   s.uplink.Stats(),
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.vehicle.Snapshot())
}
