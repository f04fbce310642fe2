package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gavelhq/gavel/internal/model"
)

// QueryStore is the read contract required by the HTTP API.
type QueryStore interface {
	model.ReadAPI
	ResolveNotice(id string) error
	ExecuteQuery(query string) ([]map[string]interface{}, error)
}

// Ingestor receives bill events from the feed endpoint.
type Ingestor interface {
	Add(event *model.BillEvent)
}

// NoticeSink receives notices posted by the feed.
type NoticeSink interface {
	InsertNoticeBatch(notices []*model.Notice) error
}

// Server provides the HTTP API for bill ingestion and dashboard queries.
type Server struct {
	addr      string
	store     QueryStore
	ingest    Ingestor
	notices   NoticeSink
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, store QueryStore, ingest Ingestor, notices NoticeSink) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		store:   store,
		ingest:  ingest,
		notices: notices,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s.registerRoutes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/api/health", s.handleHealth)
	r.GET("/api/bills", s.handleListBills)
	r.GET("/api/bills/:id", s.handleGetBill)
	r.GET("/api/impact", s.handleImpact)
	r.GET("/api/topics", s.handleTopics)
	r.GET("/api/notices", s.handleNotices)
	r.DELETE("/api/notices/:id", s.handleResolveNotice)
	r.GET("/api/bookmarks", s.handleListBookmarks)
	r.POST("/api/bookmarks", s.handleAddBookmark)
	r.DELETE("/api/bookmarks/:id", s.handleRemoveBookmark)
	r.POST("/api/ingest", s.handleIngest)
	r.POST("/api/query", s.handleQuery)
}

// filterFromQuery builds a BillFilter from request query parameters.
func filterFromQuery(c *gin.Context) model.BillFilter {
	return model.BillFilter{
		Chamber: c.Query("chamber"),
		Status:  c.Query("status"),
		Topic:   c.Query("topic"),
		Search:  c.Query("q"),
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	billCount, err := s.store.TotalBillCount(model.BillFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).String(),
		"bill_count": billCount,
	})
}

func (s *Server) handleListBills(c *gin.Context) {
	limit := model.DefaultBillLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	filter := filterFromQuery(c)
	bills, err := s.store.ListBills(limit, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := s.store.TotalBillCount(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bills": bills,
		"total": total,
	})
}

func (s *Server) handleGetBill(c *gin.Context) {
	bill, err := s.store.GetBill(c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (s *Server) handleImpact(c *gin.Context) {
	filter := filterFromQuery(c)

	weeks, err := s.store.ImpactByWeek(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	counts, err := s.store.CountsByStatus(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weeks":            weeks,
		"counts_by_status": counts,
	})
}

func (s *Server) handleTopics(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	topics, err := s.store.TopTopics(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (s *Server) handleNotices(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	notices, err := s.store.ActiveNotices(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

func (s *Server) handleResolveNotice(c *gin.Context) {
	if err := s.store.ResolveNotice(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

func (s *Server) handleListBookmarks(c *gin.Context) {
	marks, err := s.store.ListBookmarks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": marks})
}

func (s *Server) handleAddBookmark(c *gin.Context) {
	var req struct {
		BillID string `json:"bill_id" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing bill_id field"})
		return
	}
	if err := s.store.AddBookmark(req.BillID, req.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "bookmarked"})
}

func (s *Server) handleRemoveBookmark(c *gin.Context) {
	if err := s.store.RemoveBookmark(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// handleIngest accepts a batch of bill updates and banner notices from
// the legislative feed. Bills are journaled and applied asynchronously;
// notices are written through immediately so the banner sees them on
// its next refresh.
func (s *Server) handleIngest(c *gin.Context) {
	var req struct {
		Bills   []model.Bill
		Notices []model.Notice
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if len(req.Bills) == 0 && len(req.Notices) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty batch"})
		return
	}

	accepted := 0
	for i := range req.Bills {
		if req.Bills[i].ID == "" {
			continue
		}
		s.ingest.Add(&model.BillEvent{
			Bill:       req.Bills[i],
			ReceivedAt: time.Now().UTC(),
			Source:     "http",
		})
		accepted++
	}

	if len(req.Notices) > 0 {
		batch := make([]*model.Notice, 0, len(req.Notices))
		for i := range req.Notices {
			if req.Notices[i].ID == "" {
				continue
			}
			batch = append(batch, &req.Notices[i])
		}
		if err := s.notices.InsertNoticeBatch(batch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		accepted += len(batch)
	}

	c.JSON(http.StatusAccepted, gin.H{"accepted": accepted})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing sql field"})
		return
	}

	results, err := s.store.ExecuteQuery(req.SQL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var columns []string
	if len(results) > 0 {
		for col := range results[0] {
			columns = append(columns, col)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":   columns,
		"rows":      results,
		"row_count": len(results),
	})
}
