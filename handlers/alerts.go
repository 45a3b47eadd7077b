package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const entityName = "niveau"

// Alert keys for rejected niveau requests
const (
	keyIDExists   = "idexists"
	keyIDNull     = "idnull"
	keyIDInvalid  = "idinvalid"
	keyIDNotFound = "idnotfound"
)

// Alerts writes the X-<app>-* headers the admin UI turns into notifications
type Alerts struct {
	AppName string
}

func (a Alerts) alertHeader() string  { return "X-" + a.AppName + "-alert" }
func (a Alerts) errorHeader() string  { return "X-" + a.AppName + "-error" }
func (a Alerts) paramsHeader() string { return "X-" + a.AppName + "-params" }

func (a Alerts) entityAlert(c *gin.Context, action string, id int64) {
	c.Header(a.alertHeader(), a.AppName+"."+entityName+"."+action)
	c.Header(a.paramsHeader(), strconv.FormatInt(id, 10))
}

func (a Alerts) Created(c *gin.Context, id int64) { a.entityAlert(c, "created", id) }
func (a Alerts) Updated(c *gin.Context, id int64) { a.entityAlert(c, "updated", id) }
func (a Alerts) Deleted(c *gin.Context, id int64) { a.entityAlert(c, "deleted", id) }

// BadRequest aborts with a 400 alert problem for errorKey
func (a Alerts) BadRequest(c *gin.Context, title, errorKey string) {
	c.Header(a.errorHeader(), "error."+errorKey)
	c.Header(a.paramsHeader(), entityName)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"title":      title,
		"status":     http.StatusBadRequest,
		"entityName": entityName,
		"errorKey":   errorKey,
		"message":    "error." + errorKey,
		"params":     entityName,
	})
}
