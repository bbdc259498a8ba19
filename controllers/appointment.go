package controllers

import (
	"net/http"
	"strings"

	authorization "SehatCare/config/authorization"
	"SehatCare/role"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Appointment(api *gin.RouterGroup) {
	appointment := api.Group("/appointment", authorization.JWTAuth())
	{
		appointment.GET("", authorization.Authorize(role.Doctor), FetchAllAppointments)
		appointment.GET("/doctor/all", authorization.Authorize(role.Doctor), FetchAllAppointments)
		appointment.POST("", CreateAppointment)
		appointment.GET("/user/:userId", FetchUserAppointments)
		appointment.GET("/doctor/:doctorId", FetchDoctorAppointments)
		appointment.GET("/:id", FetchAppointmentByID)
		appointment.PUT("/:id/status", UpdateAppointmentStatus)
		appointment.PUT("/:id/cancel", CancelAppointment)
	}
}

type appointmentForm struct {
	User            string `json:"user" form:"user"`
	Doctor          string `json:"doctor" form:"doctor"`
	AppointmentDate string `json:"appointmentDate" form:"appointmentDate"`
	Notes           string `json:"notes" form:"notes"`
}

type statusForm struct {
	Status string `json:"status" binding:"required,appointmentstatus"`
}

/*
* Bind JSON or the multipart form, with the optional health card file
* The booking user comes from the token; doctors may book for a patient
* Pass to the service
 */
func CreateAppointment(c *gin.Context) {
	var form appointmentForm
	var healthCard *services.UploadedFile
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, err := formFile(c, "healthCardDocument", services.DocumentRule, true)
		if err != nil {
			c.JSON(util.StatusFor(err), util.FailedResponse(err))
			return
		}
		healthCard = file
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}

	userID := c.GetString(util.CtxUserID)
	if c.GetString(util.CtxRole) == role.Doctor && strings.TrimSpace(form.User) != "" {
		userID = form.User
	}
	appointment, err := services.CreateAppointment(c, services.AppointmentInput{
		UserID:          userID,
		DoctorID:        form.Doctor,
		AppointmentDate: form.AppointmentDate,
		Notes:           form.Notes,
		HealthCard:      healthCard,
	})
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(appointment))
}

func FetchAllAppointments(c *gin.Context) {
	appointments, err := services.FetchAllAppointments(c)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointments))
}

// Patients only see their own appointments.
func FetchUserAppointments(c *gin.Context) {
	userID := c.Param("userId")
	if c.GetString(util.CtxRole) != role.Doctor && userID != c.GetString(util.CtxUserID) {
		err := util.Forbidden(util.ROLE_NOT_AUTHORIZED)
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	appointments, err := services.FetchUserAppointments(c, userID)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointments))
}

func FetchDoctorAppointments(c *gin.Context) {
	appointments, err := services.FetchDoctorAppointments(c, c.Param("doctorId"))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointments))
}

func requester(c *gin.Context) services.Requester {
	return services.Requester{
		UserID: c.GetString(util.CtxUserID),
		Role:   c.GetString(util.CtxRole),
	}
}

// Patients only see appointments booked for them.
func FetchAppointmentByID(c *gin.Context) {
	appointment, err := services.FetchAppointmentFor(c, c.Param("id"), requester(c))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}

/*
* Bind the status; anything outside the known statuses is rejected here
* Pass to the service which checks ownership and the transition
 */
func UpdateAppointmentStatus(c *gin.Context) {
	var body statusForm
	if err := c.ShouldBindJSON(&body); err != nil {
		err = util.Validation(util.INVALID_STATUS)
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	appointment, err := services.UpdateAppointmentStatus(c, c.Param("id"), body.Status, requester(c))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}

func CancelAppointment(c *gin.Context) {
	if err := services.CancelAppointment(c, c.Param("id"), requester(c)); err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse(util.APPOINTMENT_CANCELLED))
}
