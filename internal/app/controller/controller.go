package controller

import (
	"strconv"

	"github.com/appessoa/PetGo/internal/errors"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter, responding with a
// validation error when it is malformed.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
