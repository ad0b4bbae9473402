package method

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/linecard/ingest/cmd/cli/param"
	"github.com/linecard/ingest/cmd/handler"
	"github.com/linecard/ingest/pkg/convention/ingest"
	"github.com/linecard/ingest/pkg/convention/record"
	"github.com/linecard/ingest/pkg/sdk"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIdHeader = "X-Request-Id"

// Serve exposes the ingest convention over local HTTP until ctx is cancelled.
func Serve(ctx context.Context, api sdk.API, p *param.Serve) error {
	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr:              p.Listen,
		Handler:           NewRouter(api),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("listen", p.Listen).Str("table", api.Config.Table.Name).Msg("serving")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func NewRouter(api sdk.API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ingestItem := func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "MalformedInput", "message": err.Error()})
			return
		}

		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(requestIdHeader, requestId)

		rec, err := api.Ingest.Ingest(c.Request.Context(), ingest.Request{
			Body: string(body),
			Metadata: ingest.Metadata{
				RequestId: requestId,
				SourceIp:  c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			},
		})
		if err != nil {
			c.JSON(record.StatusCode(err), gin.H{"error": record.Kind(err), "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": handler.SuccessMessage, "id": rec.ID})
	}

	router.POST("/items", ingestItem)
	router.PUT("/items", ingestItem)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
