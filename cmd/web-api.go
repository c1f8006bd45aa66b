package cmd

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/stone-prover-sdk/config"
	"github.com/wormhole-foundation/stone-prover-sdk/fri"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

const requestIDHeader = "X-Request-ID"

var webAPICmd = &cobra.Command{
	Use:   "web-api",
	Short: "runs a web server computing prover parameters and serving the prover config",
	RunE:  runApi,
}

func healthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"message": "Health check passed",
	}

	c.JSON(http.StatusOK, response)
}

// requestID tags every request with an id, reusing the caller's one when
// present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Debug()
		if c.Writer.Status() >= http.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}

type ParametersRequest struct {
	NSteps uint32 `json:"n_steps"`
	// Verifier defaults to the configured one.
	Verifier string `json:"verifier"`
}

func generateParameters(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ParametersRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.NSteps == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n_steps must be at least 1"})
			return
		}
		if req.Verifier == "" {
			req.Verifier = cfg.Verifier
		}
		verifier, err := types.ParseVerifier(req.Verifier)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, fri.GenerateProverParameters(req.NSteps, verifier))
	}
}

func proverConfig(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cfg.ProverConfig)
	}
}

func newRouter(cfg config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger())
	router.GET("/health", healthCheck)
	router.POST("/parameters", generateParameters(cfg))
	router.GET("/prover-config", proverConfig(cfg))
	return router
}

func runApi(cmd *cobra.Command, args []string) error {
	gin.SetMode(gin.ReleaseMode)
	router := newRouter(cfg)
	log.Info().Str("listen", cfg.WebAPI.Listen).Msg("starting web api")
	return router.Run(cfg.WebAPI.Listen)
}

func init() {
	rootCmd.AddCommand(webAPICmd)
}
