// Package httpresp writes success responses. Payload shapes stay plain
// (arrays and objects, no envelope) because the website consumes them
// directly.
package httpresp

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}
