package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Detail:  "Invalid " + param,
			Details: param + " cannot be empty",
		})
		return ""
	}
	return idStr
}

// parseQuestionSetFilters reads limit, offset, sort_by and sort_order; it writes a 400 and returns false on bad numbers.
func parseQuestionSetFilters(c *gin.Context) (repositories.QuestionSetFilters, bool) {
	filters := repositories.QuestionSetFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	for name, dst := range map[string]*int{"limit": &filters.Limit, "offset": &filters.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Detail:  "Invalid " + name,
				Details: name + " must be a non-negative integer",
			})
			return filters, false
		}
		*dst = n
	}
	return filters, true
}
