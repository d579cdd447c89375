package main

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/models"
	"github.com/Zachkp/folio/internal/notify"
)

const msgContactInvalid = "Please add your name, a valid email and a message."

// contactForm is the public inquiry form; the attachment is read separately
type contactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Company string `form:"company"`
	Message string `form:"message" binding:"required"`
}

// trim strips surrounding space and reports whether the required fields
// still have content
func (f *contactForm) trim() bool {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Company = strings.TrimSpace(f.Company)
	f.Message = strings.TrimSpace(f.Message)
	return f.Name != "" && f.Email != "" && f.Message != ""
}

func (a *App) contactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", a.contactData(c))
}

func (a *App) contactData(c *gin.Context) gin.H {
	return gin.H{
		"Title":        "Contact",
		"Profile":      a.loadProfile(c.Request.Context()),
		"Headline":     ContactHeadline,
		"Blurb":        ContactBlurb,
		"ContactEmail": a.cfg.ContactEmail,
	}
}

// contactResult answers htmx with the result fragment and plain posts with
// the whole page. htmx only swaps 2xx responses, so fragments are always 200.
func (a *App) contactResult(c *gin.Context, status int, success bool, message string) {
	result := gin.H{"Success": success, "Message": message}
	if isHTMX(c) {
		c.HTML(http.StatusOK, "contact-result", result)
		return
	}

	data := a.contactData(c)
	data["Result"] = result
	c.HTML(status, "contact.html", data)
}

func (a *App) submitContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil || !form.trim() {
		a.contactResult(c, http.StatusBadRequest, false, msgContactInvalid)
		return
	}

	inquiry := models.InquiryCreate{
		Name:    form.Name,
		Email:   form.Email,
		Company: form.Company,
		Message: form.Message,
	}

	if fh, err := c.FormFile("attachment"); err == nil {
		file, err := readUpload(fh)
		if err != nil {
			logger.Errorf("Error reading inquiry attachment: %v", err)
			a.contactResult(c, http.StatusBadRequest, false, msgInquiryFailed)
			return
		}
		inquiry.Attachment = &file
	}

	created, err := a.client.CreateInquiry(c.Request.Context(), inquiry)
	if err != nil {
		logger.Errorf("Error creating inquiry: %v", err)
		status := api.StatusCode(err)
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		a.contactResult(c, status, false, api.Detail(err, msgInquiryFailed))
		return
	}

	logger.InfoWithFields("Inquiry received", map[string]interface{}{"inquiry_id": created.ID})
	if a.mailer.Enabled() {
		note := notify.Inquiry{
			Name:    inquiry.Name,
			Email:   inquiry.Email,
			Company: inquiry.Company,
			Message: inquiry.Message,
		}
		if inquiry.Attachment != nil {
			note.AttachmentName = inquiry.Attachment.Name
		}
		go func() {
			if err := a.mailer.Send(note); err != nil {
				logger.Errorf("Error sending inquiry email: %v", err)
			}
		}()
	}

	a.contactResult(c, http.StatusOK, true, msgInquirySent)
}

// readUpload copies an uploaded file into memory for relaying to the API
func readUpload(fh *multipart.FileHeader) (models.File, error) {
	f, err := fh.Open()
	if err != nil {
		return models.File{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.File{}, err
	}
	return models.File{Name: fh.Filename, Content: content}, nil
}

// readUploads reads every file posted under field; a request without files
// yields nil
func readUploads(c *gin.Context, field string) ([]models.File, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	var files []models.File
	for _, fh := range form.File[field] {
		if fh.Filename == "" {
			continue
		}
		file, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
