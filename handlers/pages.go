package handlers

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/specdock/specdock/internal/spec"
	"github.com/specdock/specdock/internal/spec/service"
)

// RegisterPages registers the browser-facing upload flow:
// - GET /  -> HTML upload form
// - POST / -> accepts the form, re-renders the page with links or the error
func RegisterPages(r *gin.Engine, svc service.Service, maxUpload int64) {
	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, renderUploadPage("", false, ""))
	})

	r.POST("/", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			renderError(c, http.StatusBadRequest, "Select a JSON or YAML file to upload.")
			return
		}
		if fh.Size == 0 {
			renderError(c, http.StatusBadRequest, "The selected file is empty.")
			return
		}
		if maxUpload > 0 && fh.Size > maxUpload {
			renderError(c, http.StatusBadRequest, fmt.Sprintf("The file exceeds the maximum of %d bytes.", maxUpload))
			return
		}
		f, err := fh.Open()
		if err != nil {
			renderError(c, http.StatusInternalServerError, "Failed to read the upload.")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			renderError(c, http.StatusInternalServerError, "Failed to read the upload.")
			return
		}

		rec, err := svc.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
		if err != nil {
			switch {
			case errors.Is(err, spec.ErrEmptyDocument),
				errors.Is(err, spec.ErrMalformedDocument),
				errors.Is(err, spec.ErrNotOpenAPI):
				renderError(c, http.StatusBadRequest, err.Error())
			default:
				logrus.Errorf("form upload failed: %v", err)
				renderError(c, http.StatusInternalServerError, "Storing the spec failed, try again.")
			}
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, renderUploadPage("Spec uploaded successfully.", true, rec.ID))
	})
}

func renderError(c *gin.Context, status int, msg string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(status, renderUploadPage(msg, false, ""))
}

func renderUploadPage(message string, success bool, id string) string {
	messageBlock := ""
	if message != "" {
		cls := "error"
		if success {
			cls = "success"
		}
		messageBlock = fmt.Sprintf(`<div class="message %s">%s</div>`, cls, html.EscapeString(message))
	}
	urlsBlock := ""
	if id != "" {
		urlsBlock = fmt.Sprintf(`<div class="urls"><b>Access your documentation:</b>
<a href="/docs/%[1]s">/docs/%[1]s</a>
<a href="/openapi/%[1]s">/openapi/%[1]s</a>
</div>`, id)
	}
	return fmt.Sprintf(uploadPageHTML, messageBlock, urlsBlock)
}

const uploadPageHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>specdock — upload OpenAPI spec</title>
    <style>
      body { font-family: Arial, sans-serif; background: #f8f9fa; margin: 0; }
      .container { max-width: 520px; margin: 40px auto; background: #fff; border-radius: 8px; box-shadow: 0 2px 8px #0001; padding: 32px; }
      h1 { font-size: 1.5em; }
      form { display: flex; flex-direction: column; gap: 1em; }
      button { background: #007bff; color: #fff; border: none; padding: 0.7em 1.2em; border-radius: 4px; cursor: pointer; }
      .message { margin-top: 1em; padding: 1em; border-radius: 4px; }
      .error { background: #ffe5e5; color: #b30000; }
      .success { background: #e6ffe6; color: #006600; }
      .urls a { display: block; color: #007bff; text-decoration: none; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>Upload OpenAPI Specification</h1>
      <p>Select an OpenAPI JSON or YAML file. After the upload you get a link to the interactive documentation.</p>
      %s
      <form method="post" enctype="multipart/form-data">
        <input type="file" name="file" accept=".json,.yaml,.yml,application/json,application/x-yaml,text/yaml" required />
        <button type="submit">Upload</button>
      </form>
      %s
    </div>
  </body>
</html>`
