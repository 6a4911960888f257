package handlers

import (
	"net/http"
	"strconv"

	"dining-review-api/aggregation"
	"dining-review-api/statemachine"
	"dining-review-api/store"

	"github.com/gin-gonic/gin"
)

var (
	data       *store.Store
	engine     *aggregation.Engine
	moderation *statemachine.Service
)

// Init wires the handlers to the store and the core services. Called once
// from main after the database is up.
func Init(st *store.Store, eng *aggregation.Engine, svc *statemachine.Service) {
	data = st
	engine = eng
	moderation = svc
}

// parseID reads a numeric :id path param, responding 400 on garbage
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
