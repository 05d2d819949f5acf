// Package file serves the stored absence documents. Listing is never
// offered, only direct paths handed out by the API.
package file

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	basePath string
}

func NewController(basePath string) *Controller {
	return &Controller{basePath: basePath}
}

func (cf Controller) File(c *gin.Context) {
	requested := c.Param("filepath")

	// Keep the path inside basePath.
	cleaned := filepath.Clean("/" + requested)
	if strings.Contains(cleaned, "..") {
		c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "incorrect path",
			"status": false,
		})
		return
	}

	fs := gin.Dir(cf.basePath, false)
	f, err := fs.Open(cleaned)
	if err != nil {
		c.JSON(http.StatusNotFound, map[string]any{
			"error":  "file not found",
			"status": false,
		})
		return
	}
	f.Close()

	http.ServeFile(c.Writer, c.Request, filepath.Join(cf.basePath, cleaned))
}
