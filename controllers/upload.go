package controllers

import (
	"errors"
	"net/http"
	"strings"

	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file limit
const formOverhead = 1 << 20

func Upload(api *gin.RouterGroup) {
	api.POST("/upload", UploadImage)
	api.GET("/images", ListImages)
}

// limitBody caps the request body so an oversized upload fails while the
// multipart form is being parsed instead of after it is buffered.
func limitBody(c *gin.Context, max int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max+formOverhead)
}

/*
* Read the named multipart file and validate it against rule
* A body over the limit is reported as a size error
* A missing file yields nil without error when optional
 */
func formFile(c *gin.Context, field string, rule services.UploadRule, optional bool) (*services.UploadedFile, error) {
	limitBody(c, rule.MaxSize)
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, services.FileTooLarge(rule)
		}
		if optional && (errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)) {
			return nil, nil
		}
		return nil, util.Validation(util.NO_FILE_UPLOADED)
	}
	return services.ReadUpload(fh, rule)
}

func UploadImage(c *gin.Context) {
	file, err := formFile(c, "file", services.ImageRule, false)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	stored, err := services.SaveUpload("", "", file)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File uploaded successfully",
		"file":    stored,
	})
}

func ListImages(c *gin.Context) {
	files, err := services.ListUploads()
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(files))
}
