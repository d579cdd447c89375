package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/api/mock"
	"github.com/Zachkp/folio/internal/models"
)

func validInquiry() url.Values {
	return url.Values{
		"name":    {" Grace Hopper "},
		"email":   {"grace@example.com"},
		"company": {""},
		"message": {"Can you build a compiler?"},
	}
}

func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

func TestContactPage(t *testing.T) {
	ta := newTestApp(t, nil)

	rec := ta.serve(httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Need a hand with your next build?")
	assert.Contains(t, body, "mailto:hello@example.com")
	assert.Contains(t, body, `hx-post="/contact"`)
}

func TestSubmitContactHTMX(t *testing.T) {
	ta := newTestApp(t, nil)

	rec := ta.serve(htmx(postForm("/contact", validInquiry())))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "alert-success")
	assert.Contains(t, body, msgInquirySent)
	assert.NotContains(t, body, "<html")

	calls := ta.client.CallsTo("CreateInquiry")
	require.Len(t, calls, 1)
	inquiry := calls[0].Args.(models.InquiryCreate)
	assert.Equal(t, "Grace Hopper", inquiry.Name)
	assert.Equal(t, "", inquiry.Company)
	assert.Nil(t, inquiry.Attachment)
}

func TestSubmitContactWithAttachment(t *testing.T) {
	ta := newTestApp(t, nil)

	req := postMultipart(t, "/contact", validInquiry(), upload{"attachment", "brief.pdf", "%PDF-1.7"})
	rec := ta.serve(htmx(req))
	require.Equal(t, http.StatusOK, rec.Code)

	calls := ta.client.CallsTo("CreateInquiry")
	require.Len(t, calls, 1)
	inquiry := calls[0].Args.(models.InquiryCreate)
	require.NotNil(t, inquiry.Attachment)
	assert.Equal(t, "brief.pdf", inquiry.Attachment.Name)
	assert.Equal(t, []byte("%PDF-1.7"), inquiry.Attachment.Content)
}

func TestSubmitContactInvalid(t *testing.T) {
	ta := newTestApp(t, nil)

	form := validInquiry()
	form.Set("email", "not-an-email")

	rec := ta.serve(htmx(postForm("/contact", form)))
	assert.Equal(t, http.StatusOK, rec.Code, "htmx only swaps 2xx")
	assert.Contains(t, rec.Body.String(), "alert-error")

	rec = ta.serve(postForm("/contact", form))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "alert-error")

	for _, field := range []string{"name", "message"} {
		blank := validInquiry()
		blank.Set(field, "   ")
		rec = ta.serve(htmx(postForm("/contact", blank)))
		assert.Equal(t, http.StatusOK, rec.Code, field)
		assert.Contains(t, rec.Body.String(), msgContactInvalid, field)
	}

	assert.Empty(t, ta.client.CallsTo("CreateInquiry"))
}

func TestSubmitContactAPIErrors(t *testing.T) {
	client := &mock.MockClient{}
	ta := newTestApp(t, client)

	client.CreateInquiryFn = func(context.Context, models.InquiryCreate) (models.Inquiry, error) {
		return models.Inquiry{}, fiber.NewError(http.StatusUnprocessableEntity, "message: String should have at least 10 characters")
	}
	rec := ta.serve(postForm("/contact", validInquiry()))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "message: String should have at least 10 characters")

	client.CreateInquiryFn = func(context.Context, models.InquiryCreate) (models.Inquiry, error) {
		return models.Inquiry{}, errors.New("dial tcp: connection refused")
	}
	rec = ta.serve(htmx(postForm("/contact", validInquiry())))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInquiryFailed)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	rec = ta.serve(postForm("/contact", validInquiry()))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
