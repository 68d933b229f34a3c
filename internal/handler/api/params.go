package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type queryWindow struct {
	from time.Time
	to   time.Time
}

// parseWindow reads the from/to RFC3339 query pair every windowed read
// shares.
func parseWindow(c *gin.Context) (queryWindow, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return queryWindow{}, errors.New("from and to query parameters required")
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return queryWindow{}, errors.New("invalid from timestamp, want RFC3339")
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return queryWindow{}, errors.New("invalid to timestamp, want RFC3339")
	}
	return queryWindow{from: from, to: to}, nil
}
