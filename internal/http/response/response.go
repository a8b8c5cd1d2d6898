package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/pkg/apperr"
)

// Page is the paginated list envelope. Next and Previous are absolute
// request paths or null.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondAppError maps a service error onto the wire. Validation errors
// render as a field-to-messages object, everything else as {"detail": ...}.
// Internal causes are attached to the gin context for the request logger
// and never surfaced to the client.
func RespondAppError(c *gin.Context, err error) {
	ae := apperr.From(err)
	status := ae.HTTPStatusCode()
	if ae.Kind == apperr.KindValidation {
		c.JSON(status, ae.Fields)
		return
	}
	detail := ae.Detail
	if ae.Kind == apperr.KindInternal {
		_ = c.Error(err)
		detail = "Internal server error."
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	c.JSON(status, gin.H{"detail": detail})
}

// PageURL rebuilds the request URL with the page query parameter swapped,
// for the next/previous links of the list envelope. Returns nil when the
// page is out of range.
func PageURL(c *gin.Context, page, pageSize int, count int64) *string {
	if page < 1 {
		return nil
	}
	last := (count + int64(pageSize) - 1) / int64(pageSize)
	if int64(page) > last {
		return nil
	}
	q := c.Request.URL.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	u := *c.Request.URL
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func Paginated(c *gin.Context, count int64, page, pageSize int, results any) *Page {
	return &Page{
		Count:    count,
		Next:     PageURL(c, page+1, pageSize, count),
		Previous: PageURL(c, page-1, pageSize, count),
		Results:  results,
	}
}
