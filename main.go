package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	ginGzip "github.com/gin-contrib/gzip"
)

// App holds the loaded roster data and per-session game state.
type App struct {
	Data     []PlayerSeason
	DataFile string

	GameSessions map[string]*GameState
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction    bool
	PersistSessions bool
	SessionDir      string
	SessionTimeout  time.Duration
	CookieMaxAge    time.Duration
	StaticCacheAge  time.Duration
	RateLimitRPS    int
	RateLimitBurst  int
	StartTime       time.Time
}

func main() {
	_ = godotenv.Load()

	app := newAppFromEnv()
	logInfo("Starting Lineup in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	data, err := loadData(app.DataFile)
	if err != nil {
		logFatal("Failed to load roster data: %v", err)
	}
	if len(data) == 0 {
		logFatal("Roster data %s is empty", app.DataFile)
	}
	app.Data = data
	logInfo("Loaded %d roster rows", len(app.Data))

	router := app.setupRouter()
	app.startServer(router)
}

// setupRouter builds the gin engine with middleware, templates, and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		applyCacheHeaders(c, app.IsProduction, app.StaticCacheAge)
	})

	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteNewGame, app.rateLimitMiddleware(), app.newGameHandler)
	router.POST(RouteSubmitGuesses, app.rateLimitMiddleware(), app.submitGuessesHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

func (app *App) startServer(router *gin.Engine) {
	port := getEnv(envPort, "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go app.runSessionJanitor(janitorCtx, 10*time.Minute)

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		stopJanitor()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

func applyCacheHeaders(c *gin.Context, production bool, staticAge time.Duration) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(staticAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
