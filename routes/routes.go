package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lokavishruth/siftclub/config"
	"github.com/Lokavishruth/siftclub/controllers"
	"github.com/Lokavishruth/siftclub/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg config.Config, chat *controllers.ChatController, scan *controllers.ScanController) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	r.POST("/chat", chat.Chat)
	r.POST("/scan", scan.Scan)
	r.POST("/scan/url", scan.ScanURL)
	r.POST("/analyze", scan.Analyze)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// SPA: serve built assets, fall back to index.html for client-side
	// routes. Unknown API paths stay JSON 404s.
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/chat") || strings.HasPrefix(p, "/scan") || strings.HasPrefix(p, "/analyze") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		full := filepath.Join(cfg.StaticDir, filepath.Clean(p))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}
		c.File(filepath.Join(cfg.StaticDir, "index.html"))
	})

	return r
}
