package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"VP-RPT/internal/models"
)

// ActivityLogService records API requests in MySQL and serves the log query
// endpoints.
type ActivityLogService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewActivityLogService(db *gorm.DB, log zerolog.Logger) *ActivityLogService {
	return &ActivityLogService{
		db:  db,
		log: log.With().Str("component", "activity_log").Logger(),
	}
}

func (s *ActivityLogService) record(c *gin.Context, statusCode int, responseTime time.Duration) {
	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = c.Request.RemoteAddr
	}

	var requestBody string
	if body, exists := c.Get("request_body"); exists {
		if bodyStr, ok := body.(string); ok {
			requestBody = bodyStr
		}
	}

	entry := &models.ActivityLog{
		ID:           uuid.New().String(),
		Method:       c.Request.Method,
		Path:         c.Request.URL.Path,
		UserAgent:    c.Request.UserAgent(),
		IPAddress:    clientIP,
		RequestBody:  requestBody,
		StatusCode:   statusCode,
		ResponseTime: responseTime.Milliseconds(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// Persisting the log must never hold up the request.
	go func() {
		if err := s.db.Create(entry).Error; err != nil {
			s.log.Error().Err(err).Msg("failed to save activity log")
		}
	}()
}

func (s *ActivityLogService) List(method, path string, limit, offset int) ([]models.ActivityLog, int64, error) {
	query := s.db.Model(&models.ActivityLog{})
	if method != "" {
		query = query.Where("method = ?", strings.ToUpper(method))
	}
	if path != "" {
		query = query.Where("path LIKE ?", "%"+path+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count logs: %w", err)
	}

	var logs []models.ActivityLog
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch logs: %w", err)
	}

	return logs, total, nil
}

// Middleware captures each request (including a bounded copy of POST/PUT
// bodies) and records it after the handler completes.
func (s *ActivityLogService) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if (c.Request.Method == "POST" || c.Request.Method == "PUT") && c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				if len(bodyBytes) > 0 {
					if len(bodyBytes) > 10000 {
						c.Set("request_body", fmt.Sprintf("[Large body: %d bytes] %s...", len(bodyBytes), string(bodyBytes[:100])))
					} else {
						c.Set("request_body", string(bodyBytes))
					}
				}
			}
		}

		c.Next()

		s.record(c, c.Writer.Status(), time.Since(start))
	}
}
