package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/specdock/specdock/internal/spec"
	"github.com/specdock/specdock/internal/spec/repository"
	"github.com/specdock/specdock/internal/spec/service"
	"github.com/specdock/specdock/pkg/metrics"
)

// RegisterSpecRoutes registers the upload and documentation endpoints:
// - POST /upload              -> multipart upload, returns {id, url}
// - GET  /docs/:id            -> interactive Swagger UI for the stored spec
// - GET  /openapi/:id         -> stored spec as canonical JSON
// - GET  /api/specs           -> record metadata list
// - DELETE /api/specs/:id     -> remove a record
// - GET  /api/specs/:id/original -> archived upload bytes
func RegisterSpecRoutes(r *gin.Engine, svc service.Service, maxUpload int64) {
	r.POST("/upload", func(c *gin.Context) {
		data, filename, contentType, ok := readUpload(c, maxUpload)
		if !ok {
			metrics.SpecUploads.WithLabelValues("rejected").Inc()
			return
		}
		rec, err := svc.Upload(c.Request.Context(), filename, contentType, data)
		if err != nil {
			writeError(c, err)
			if c.Writer.Status() == http.StatusBadRequest {
				metrics.SpecUploads.WithLabelValues("rejected").Inc()
			} else {
				metrics.SpecUploads.WithLabelValues("failed").Inc()
			}
			return
		}
		metrics.SpecUploads.WithLabelValues("created").Inc()
		c.JSON(http.StatusCreated, gin.H{"id": rec.ID, "url": "/docs/" + rec.ID})
	})

	r.GET("/docs/:id", func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		metrics.SpecRenders.Inc()
		c.Header("Content-Type", "text/html; charset=utf-8")
		// rec.ID is server-generated, safe to splice into the page
		c.String(http.StatusOK, fmt.Sprintf(docsPageHTML, rec.ID, rec.ID))
	})

	r.GET("/openapi/:id", func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(rec.Content))
	})

	api := r.Group("/api")
	api.GET("/specs", func(c *gin.Context) {
		recs, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(recs))
		for _, rec := range recs {
			out = append(out, gin.H{
				"id":        rec.ID,
				"format":    rec.Format,
				"createdAt": rec.CreatedAt,
				"url":       "/docs/" + rec.ID,
			})
		}
		c.JSON(http.StatusOK, out)
	})

	api.DELETE("/specs/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	api.GET("/specs/:id/original", func(c *gin.Context) {
		rc, contentType, err := svc.Original(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		defer rc.Close()
		c.Status(http.StatusOK)
		c.Header("Content-Type", contentType)
		if _, err := io.Copy(c.Writer, rc); err != nil {
			logrus.Errorf("streaming archived upload failed: %v", err)
		}
	})
}

// readUpload extracts and size-checks the multipart file field. On failure it
// writes the 4xx/5xx response itself and returns ok=false.
func readUpload(c *gin.Context, maxUpload int64) (data []byte, filename, contentType string, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return nil, "", "", false
	}
	if fh.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is empty"})
		return nil, "", "", false
	}
	if maxUpload > 0 && fh.Size > maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("uploaded file exceeds the maximum of %d bytes", maxUpload)})
		return nil, "", "", false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return nil, "", "", false
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return nil, "", "", false
	}
	return data, fh.Filename, fh.Header.Get("Content-Type"), true
}

// writeError maps domain errors onto HTTP statuses: client-side document
// problems are 400, unknown ids 404, everything else is a storage failure.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, spec.ErrEmptyDocument),
		errors.Is(err, spec.ErrMalformedDocument),
		errors.Is(err, spec.ErrNotOpenAPI):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "spec not found"})
	case errors.Is(err, service.ErrNoArchive):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.Errorf("spec request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
	}
}

const docsPageHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>specdock — %s</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      html { box-sizing: border-box; overflow-y: scroll; }
      *, *:before, *:after { box-sizing: inherit; }
      body { margin: 0; background: #fafafa; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.onload = function() {
        window.ui = SwaggerUIBundle({
          url: '/openapi/%s',
          dom_id: '#swagger-ui',
          deepLinking: true,
        })
      }
    </script>
  </body>
</html>`
