package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/formatter"
	"github.com/theoremus-urban-solutions/transport-catalogue/handler"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
	"github.com/theoremus-urban-solutions/transport-catalogue/jsontext"
	"github.com/theoremus-urban-solutions/transport-catalogue/reader"
)

const jsonContentType = "application/json; charset=utf-8"

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if s.loaded != nil {
		stats := s.loaded.Catalogue().Stats()
		resp["stops"] = stats.Stops
		resp["buses"] = stats.Buses
	}
	c.JSON(http.StatusOK, resp)
}

// decodeBody reads the request body as a document. On failure it has already
// answered the request.
func decodeBody(c *gin.Context) (document.Value, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	v, err := jsontext.Decode(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return document.Value{}, false
	}
	return v, true
}

// loadInput builds a handler for the input document in the request body.
func (s *Server) loadInput(c *gin.Context) (*handler.Handler, *reader.Input, bool) {
	root, ok := decodeBody(c)
	if !ok {
		return nil, nil, false
	}
	agg := warnings.New()
	in, err := reader.Load(root, agg)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if in == nil {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		c.Abort()
		return nil, nil, false
	}
	agg.LogAll(c.GetString(requestIDKey))
	return handler.FromInput(in, s.opts...), in, true
}

func (s *Server) handleRequests(c *gin.Context) {
	h, in, ok := s.loadInput(c)
	if !ok {
		return
	}
	s.respond(c, h, in.StatRequests)
}

func (s *Server) handleRenderMap(c *gin.Context) {
	h, _, ok := s.loadInput(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, formatter.SVGContentType, []byte(h.MapSVG()))
}

func (s *Server) handleStat(c *gin.Context) {
	if s.loaded == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no catalogue loaded"})
		return
	}
	v, ok := decodeBody(c)
	if !ok {
		return
	}
	list, err := v.AsList()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a list of stat requests"})
		return
	}
	s.respond(c, s.loaded, list.Values())
}

func (s *Server) handleLoadedMap(c *gin.Context) {
	if s.loaded == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no catalogue loaded"})
		return
	}
	c.Data(http.StatusOK, formatter.SVGContentType, []byte(s.loaded.MapSVG()))
}

func (s *Server) respond(c *gin.Context, h *handler.Handler, requests []document.Value) {
	out, err := h.Process(c.Request.Context(), requests)
	if err != nil {
		logrus.Debugf("request %s failed: %v", c.GetString(requestIDKey), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	b, err := jsontext.EncodeBytes(out, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, jsonContentType, b)
}
