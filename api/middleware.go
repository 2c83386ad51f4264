package api

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origin and answers preflight
// requests directly.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type brotliWriter struct {
	gin.ResponseWriter
	writer *brotli.Writer
}

// Write starts the compressed stream on first use so that bodiless
// responses stay bodiless.
func (w *brotliWriter) Write(data []byte) (int, error) {
	if w.writer == nil {
		header := w.Header()
		header.Set("Content-Encoding", "br")
		header.Add("Vary", "Accept-Encoding")
		header.Del("Content-Length")
		w.writer = brotli.NewWriter(w.ResponseWriter)
	}
	return w.writer.Write(data)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *brotliWriter) close() error {
	if w.writer == nil {
		return nil
	}
	return w.writer.Close()
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, _, _ := strings.Cut(part, ";")
		if strings.TrimSpace(name) == "br" {
			return true
		}
	}
	return false
}

// BrotliMiddleware compresses responses for clients sending
// "Accept-Encoding: br". Not for streaming routes.
func BrotliMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}
		bw := &brotliWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		defer func() {
			bw.close()
			c.Writer = bw.ResponseWriter
		}()
		c.Next()
	}
}
