package ingestion

import (
	"context"

	"github.com/gin-gonic/gin"
	v1 "github.com/hostbus/eventroute/internal/api/v1"
)

// Publisher hands an accepted event to the routing engine.
type Publisher interface {
	Publish(ctx context.Context, evt *v1.Event) error
}

type Service struct {
	publisher        Publisher
	maxBodySizeBytes int
}

func NewService(publisher Publisher, maxBodySizeMB int) *Service {
	if publisher == nil {
		panic("ingestion: publisher must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		publisher:        publisher,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/events", s.IngestHandler)
}
