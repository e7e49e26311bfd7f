package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"qrattend/internal/attendance"
	"qrattend/internal/config"
	"qrattend/internal/httpmiddleware"
	"qrattend/internal/metrics"
	"qrattend/internal/scanlink"
	"qrattend/internal/store"
)

// recordView is a listing row: the stored record plus its computed
// duration when complete.
type recordView struct {
	attendance.Record
	Duration string `json:"duration,omitempty"`
}

func newRouter(cfg config.App, kv store.KV, repo *attendance.Repository, att *attendance.Service) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		storeHealthy := kv.Healthy(c.Request.Context())
		status := http.StatusOK
		if !storeHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "store": storeHealthy})
	})

	// Issues the signed URL the landing page renders as a QR code.
	r.GET("/v1/scan-link", func(c *gin.Context) {
		class := c.Query("class")
		if class != "" && !validClass(cfg.ClassList, class) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown class"})
			return
		}
		token, exp, err := scanlink.Issue(class, cfg.LinkIssuer, cfg.LinkSigningKey, cfg.LinkTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "link issue failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scan_url":   cfg.PublicBaseURL + "/v1/scan?token=" + token,
			"token":      token,
			"expires_at": exp.Unix(),
		})
	})

	// Resolves a scanned link into what the check-in form needs.
	r.GET("/v1/scan", func(c *gin.Context) {
		claims, err := scanlink.Parse(c.Query("token"), cfg.LinkSigningKey, cfg.LinkIssuer)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired scan link"})
			return
		}
		remembered, _ := repo.RememberedStudent(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"classes":            cfg.ClassList,
			"preselected_class":  claims.Class,
			"remembered_student": remembered,
		})
	})

	r.POST("/v1/checkins", func(c *gin.Context) {
		var req struct {
			StudentNumber string `json:"student_number" binding:"required"`
			ClassName     string `json:"class_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		student := strings.TrimSpace(req.StudentNumber)
		if student == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "student number required"})
			return
		}
		if !validClass(cfg.ClassList, req.ClassName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown class"})
			return
		}

		if err := repo.SetRememberedStudent(c.Request.Context(), student); err != nil {
			log.Warn().Err(err).Msg("remember student failed")
		}

		out, err := att.Reconcile(c.Request.Context(), student, req.ClassName, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		metrics.ReconcileOutcomes.WithLabelValues(string(out.Kind)).Inc()

		resp := gin.H{
			"outcome": out.Kind,
			"time":    out.Time,
			"record":  out.Record,
		}
		if out.Record.Complete() {
			if d, derr := attendance.CalculateDuration(out.Record.InTime, out.Record.OutTime); derr == nil {
				resp["duration"] = d.String()
			}
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/v1/records", func(c *gin.Context) {
		filtered := attendance.View(repo.LoadAll(c.Request.Context()), attendance.Filter{
			StudentContains: c.Query("student"),
			ClassContains:   c.Query("class"),
			Date:            c.Query("date"),
		})

		views := make([]recordView, 0, len(filtered))
		for _, rec := range filtered {
			v := recordView{Record: rec}
			if rec.Complete() {
				if d, err := attendance.CalculateDuration(rec.InTime, rec.OutTime); err == nil {
					v.Duration = d.String()
				}
			}
			views = append(views, v)
		}
		c.JSON(http.StatusOK, gin.H{"records": views, "total": len(views)})
	})

	// Bulk clear is the only delete there is; the caller confirms by
	// sending confirm=true, mirroring the confirmation prompt in the UI.
	r.DELETE("/v1/records", func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "confirm=true required to clear all records"})
			return
		}
		if err := repo.ClearAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		metrics.RecordsCleared.Inc()
		log.Info().Msg("attendance records cleared")
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	})

	r.GET("/v1/remembered-student", func(c *gin.Context) {
		student, ok := repo.RememberedStudent(c.Request.Context())
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{"student_number": student})
	})

	return r
}

func validClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
