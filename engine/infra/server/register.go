package server

import (
	"errors"
	"net/http"

	"github.com/fretforge/fretforge/engine/catalog"
	"github.com/fretforge/fretforge/engine/configurator"
	"github.com/fretforge/fretforge/engine/infra/server/router"
	"github.com/fretforge/fretforge/pkg/version"
	"github.com/gin-gonic/gin"
)

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestContext(s.log))
	r.GET("/healthz", s.handleHealth)
	api := r.Group("/api/v0")
	{
		products := api.Group("/products")
		products.GET("/:model", s.handleGetProduct)
		products.POST("/:model/configure", s.handleConfigure)
		products.POST("/:model/quote-request", s.handleQuoteRequest)
	}
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get().Version})
}

func (s *Server) handleGetProduct(c *gin.Context) {
	view, err := s.service.View(c.Request.Context(), c.Param("model"))
	if err != nil {
		s.respondLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type configureRequest struct {
	Choices []configurator.Choice `json:"choices" binding:"required,dive"`
}

func (s *Server) handleConfigure(c *gin.Context) {
	var req configureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondProblemWithCode(c, http.StatusBadRequest, router.ProductErrInvalidBodyCode, err.Error())
		return
	}
	view, err := s.service.Configure(c.Request.Context(), c.Param("model"), req.Choices)
	if err != nil {
		s.respondLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleQuoteRequest(c *gin.Context) {
	var req configureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondProblemWithCode(c, http.StatusBadRequest, router.ProductErrInvalidBodyCode, err.Error())
		return
	}
	summary, err := s.service.QuoteRequest(c.Request.Context(), c.Param("model"), req.Choices)
	if err != nil {
		s.respondLoadError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, summary)
}

// respondLoadError maps catalog-load failures onto problem documents. A
// missing product is the page's fatal "unavailable" state; everything else
// is a source failure.
func (s *Server) respondLoadError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		router.RespondProblemWithCode(c, http.StatusNotFound, router.ProductErrNotFoundCode, err.Error())
		return
	}
	router.RespondProblemWithCode(c, http.StatusBadGateway, router.ProductErrSourceDownCode, err.Error())
}
