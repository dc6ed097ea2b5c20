package middleware

import (
	"github.com/farellandr/fyyur/internal/events"
	"github.com/gin-gonic/gin"
)

const publisherKey = "event_publisher"

func PublisherMiddleware(publisher events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(publisherKey, publisher)
		c.Next()
	}
}

// GetPublisher never returns nil; without a configured broker events are dropped.
func GetPublisher(c *gin.Context) events.Publisher {
	publisher, exists := c.Get(publisherKey)
	if !exists {
		return events.NopPublisher{}
	}
	p, ok := publisher.(events.Publisher)
	if !ok || p == nil {
		return events.NopPublisher{}
	}
	return p
}
