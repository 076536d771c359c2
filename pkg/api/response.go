package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	Version         = "v0"
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Data     any      `json:"data"`
	Errors   []string `json:"errors"`
	Metadata Metadata `json:"metadata"`
}

func newResponse(data any, errors []string, requestID string) Response {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if errors == nil {
		errors = []string{}
	}
	return Response{
		Data:   data,
		Errors: errors,
		Metadata: Metadata{
			Timestamp: time.Now(),
			Version:   Version,
			RequestID: requestID,
		},
	}
}

// RequestID tags each request with an id, reusing the caller's header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, newResponse(data, nil, c.GetString(requestIDKey)))
}

func failure(c *gin.Context, status int, errs ...error) {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	c.JSON(status, newResponse(nil, messages, c.GetString(requestIDKey)))
}
