package respond

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Attachment streams r as a named download.
func Attachment(c *gin.Context, fileName, contentType string, r io.Reader) {
	c.DataFromReader(http.StatusOK, -1, contentType, r, map[string]string{
		"Content-Name":        fileName,
		"Content-Disposition": `attachment; filename="` + fileName + `"`,
	})
}
