// Package file provides HTTP handlers for uploads and downloads.
package file

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"findjob-backend/internal/logger"
	"findjob-backend/internal/service"
	"findjob-backend/internal/storage"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// FileController handles file related endpoints
type FileController struct {
	Files     *service.FileService
	Users     *service.UserService
	Employers *service.EmployerService
}

// NewFileController creates a new instance of FileController
func NewFileController(s *service.Services) *FileController {
	return &FileController{
		Files:     s.Files,
		Users:     s.Users,
		Employers: s.Employers,
	}
}

// readImage reads an image form field. It writes the error response itself and
// return nil bytes on failure.
func readImage(c *gin.Context, field string) ([]byte, string) {
	rawFile, err := c.FormFile(field)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return nil, ""
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return nil, ""
	}
	if rawFile.Size > storage.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: "File size is larger than 10 MB",
		})
		return nil, ""
	}

	extension, err := storage.ImageExtension(rawFile.Filename)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", err.Error()),
		})
		return nil, ""
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return nil, ""
	}
	defer func() {
		if err := f.Close(); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("failed to close uploaded file")
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return nil, ""
	}
	return fileBytes, extension
}

// UploadAvatar stores the caller's avatar.
// @Summary Upload avatar for current user
// @Description Only file that smaller than 10 MB with .jpg, .jpeg, or .png extension is permitted
// @Tags User
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param avatar formData file true "Upload your avatar file"
// @Success 200 {object} model.User "Successfully upload avatar"
// @Failure 400 {object} utilities.ErrorResponse "Missing file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/avatar [post]
func (fc *FileController) UploadAvatar(c *gin.Context) {
	fileBytes, extension := readImage(c, "avatar")
	if fileBytes == nil {
		return
	}

	user, err := fc.Users.SetAvatar(c.Request.Context(), utilities.OptionalUser(c), fileBytes, extension)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadEmployerImage appends a picture to the employer gallery.
// @Summary Upload gallery image for employer
// @Description Only the owner or an admin may upload. Files must be .jpg, .jpeg or .png and at most 10 MB
// @Tags Employer
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Employer ID"
// @Param image formData file true "Upload your image file"
// @Success 201 {object} model.EmployerImage "Successfully upload image"
// @Failure 400 {object} utilities.ErrorResponse "Missing file or invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Employer not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id}/images [post]
func (fc *FileController) UploadEmployerImage(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	fileBytes, extension := readImage(c, "image")
	if fileBytes == nil {
		return
	}

	image, err := fc.Employers.AddImage(c.Request.Context(), utilities.OptionalUser(c), id, fileBytes, extension)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// GetFile function retrieves a file and sends it as a downloadable attachment in
// the response.
// @Summary Retrieve dowloadable attachment
// @Tags File
// @Produce octet-stream
// @Param id path integer true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}

	file, reader, size, err := fc.Files.Open(c.Request.Context(), int(id))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("failed to close file reader")
		}
	}()

	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+fmt.Sprint(file.ID)+file.Extension)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")
	if size > 0 {
		c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
	}
	if _, err := io.Copy(c.Writer, reader); err != nil {
		handleWriterError(c)
	}
}

func handleWriterError(c *gin.Context) {
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send file content",
		})
	} else {
		c.Abort()
	}
}
