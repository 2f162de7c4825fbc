package console

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed templates/*
var templateFiles embed.FS

// ConsoleService serves the browser console for managing users. All data
// access happens from the browser against the JSON API; the console itself
// only renders the page shell and its assets.
type ConsoleService struct {
	Logger *zap.Logger
}

// NewConsoleService creates a new console service
func NewConsoleService(logger *zap.Logger) *ConsoleService {
	return &ConsoleService{
		Logger: logger,
	}
}

// SetupRoutes sets up the console routes
func (cs *ConsoleService) SetupRoutes(router *gin.Engine) {
	// Serve static files - need to create a sub-filesystem to handle the embedded 'static/' prefix
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		cs.Logger.Error("Failed to create static sub-filesystem", zap.Error(err))
		return
	}
	router.StaticFS("/static", http.FS(staticFS))

	router.GET("/", cs.serveConsole)
}

// serveConsole serves the main console page
func (cs *ConsoleService) serveConsole(c *gin.Context) {
	tmpl, err := template.ParseFS(templateFiles, "templates/console.html")
	if err != nil {
		cs.Logger.Error("Failed to parse console template", zap.Error(err))
		c.String(http.StatusInternalServerError, "Template Error: "+err.Error())
		return
	}

	data := map[string]interface{}{
		"Title": "User Management",
	}

	c.Header("Content-Type", "text/html")
	if err := tmpl.Execute(c.Writer, data); err != nil {
		cs.Logger.Error("Failed to execute console template", zap.Error(err))
		c.String(http.StatusInternalServerError, "Execution Error: "+err.Error())
		return
	}
}
