package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := parseDate(raw)
	if err != nil {
		badRequest(c, name+" must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}

// dateRange reads the required start and end query parameters.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		badRequest(c, "start must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		badRequest(c, "end must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
