package controllers

import (
	"net/http"
	"strconv"

	authorization "SehatCare/config/authorization"
	"SehatCare/geo"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Unsafe(api *gin.RouterGroup) {
	unsafe := api.Group("/unsafe")
	{
		unsafe.GET("", FetchUnsafeAreas)
		unsafe.POST("", authorization.JWTAuth(), MarkUnsafe)
		unsafe.GET("/check", CheckPoint)
		unsafe.POST("/route", SafeRoute)
	}
}

func FetchUnsafeAreas(c *gin.Context) {
	areas, err := services.FetchUnsafeAreas(c)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(areas))
}

func MarkUnsafe(c *gin.Context) {
	var body services.UnsafeAreaInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	area, err := services.MarkUnsafe(c, body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(area))
}

func CheckPoint(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		err := util.Validation(util.LAT_LNG_REQUIRED)
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	check, err := services.CheckPoint(c, geo.Point{Lat: lat, Lng: lng})
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(check))
}

func SafeRoute(c *gin.Context) {
	var body services.RouteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	route, err := services.PlanSafeRoute(c, body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(route))
}
