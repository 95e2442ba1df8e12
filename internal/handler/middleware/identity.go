package middleware

import (
	"net/http"
	"strconv"

	"github.com/DanSBol/shareit/internal/handler/httperr"
	"github.com/DanSBol/shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// SharerHeader carries the acting user for every identity-scoped route.
// There is no authentication layer; the gateway in front of the service
// is trusted to set it.
const SharerHeader = "X-Sharer-User-Id"

const sharerContextKey = "sharer_user_id"

// RequireSharer parses the identity header and stores the user id on the
// context. Requests without a parseable header are rejected before the
// handler runs.
func RequireSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest,
				errs.New("missing identity header"),
				SharerHeader+" header is required")
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest,
				errs.Wrap(err, "malformed identity header"),
				SharerHeader+" header must be an integer")
			return
		}

		c.Set(sharerContextKey, id)
		c.Next()
	}
}

// GetSharerID returns the user id stored by RequireSharer.
func GetSharerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(sharerContextKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
