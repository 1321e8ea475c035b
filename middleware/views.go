package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkpress/models"
)

// PostViewCounter increments a post's view counter after each successful
// detail read. The increment happens outside the read path itself, so the
// listing/statistics core stays read-only.
func PostViewCounter(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet {
			return
		}
		if c.FullPath() != "/api/v1/posts/:id" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return
		}

		// Atomic in-database increment keeps views monotonic under concurrency.
		_ = db.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + 1")).Error
	}
}
