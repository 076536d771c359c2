package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"timetabler/pkg/catalog"
	"timetabler/pkg/exporter"
	"timetabler/pkg/grid"
	"timetabler/pkg/planner"
	"timetabler/pkg/search"
	"timetabler/pkg/timetable"

	"github.com/gin-gonic/gin"
)

const (
	CatalogLoading = "loading"
	CatalogReady   = "ready"
	CatalogFailed  = "failed"

	DefaultExportWeeks = 16
)

// Handler serves one planner. The planner is a single actor, so every request
// holds mu for its whole run.
type Handler struct {
	mu      sync.Mutex
	planner *planner.Planner
	cache   *catalog.Cache
	log     *slog.Logger

	started      time.Time
	catalogState string
	catalogErr   error
	installed    *catalog.Future
}

func NewHandler(p *planner.Planner, cache *catalog.Cache, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		planner:      p,
		cache:        cache,
		log:          logger,
		started:      time.Now(),
		catalogState: CatalogLoading,
	}
}

// LoadCatalog waits for the catalog cache and installs the result in the planner.
// A result that is already installed is left alone, so the search keeps its page.
func (h *Handler) LoadCatalog(ctx context.Context) error {
	if h.cache == nil {
		return errors.New("no catalog cache configured")
	}

	future := h.cache.Get()

	h.mu.Lock()
	if future == h.installed {
		h.mu.Unlock()
		return nil
	}
	h.catalogState = CatalogLoading
	h.mu.Unlock()

	lectures, err := future.Wait(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.catalogState, h.catalogErr = CatalogFailed, err
		h.log.Error("catalog load failed", "error", err)
		return err
	}
	if future == h.installed {
		return nil
	}
	h.planner.SetCatalog(lectures)
	h.installed = future
	h.catalogState, h.catalogErr = CatalogReady, nil
	h.log.Info("catalog loaded", "lectures", len(lectures))
	return nil
}

type statusResponse struct {
	Uptime   string `json:"uptime"`
	Catalog  string `json:"catalog"`
	Lectures int    `json:"lectures"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) Status(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data := statusResponse{
		Uptime:   time.Since(h.started).Truncate(time.Second).String(),
		Catalog:  h.catalogState,
		Lectures: len(h.planner.Search().Catalog()),
	}
	if h.catalogErr != nil {
		data.Error = h.catalogErr.Error()
	}
	success(c, http.StatusOK, data)
}

func (h *Handler) PostReload(c *gin.Context) {
	if err := h.LoadCatalog(c.Request.Context()); err != nil {
		failure(c, http.StatusBadGateway, err)
		return
	}
	h.Status(c)
}

type majorView struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

func (h *Handler) GetMajors(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	majors := h.planner.Search().Majors()
	views := make([]majorView, 0, len(majors))
	for _, m := range majors {
		views = append(views, majorView{Value: m, Label: catalog.MajorLabel(m), Tag: catalog.MajorTag(m)})
	}
	success(c, http.StatusOK, views)
}

type searchView struct {
	Options  search.Options    `json:"options"`
	Lectures []catalog.Lecture `json:"lectures"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	LastPage int               `json:"lastPage"`
	Recheck  bool              `json:"recheck"`
	Target   *planner.Target   `json:"target,omitempty"`
}

// searchState must be called with mu held.
func (h *Handler) searchState() searchView {
	s := h.planner.Search()
	view := searchView{
		Options:  s.Options(),
		Lectures: s.Visible(),
		Total:    s.Total(),
		Page:     s.Page(),
		LastPage: s.LastPage(),
		Recheck:  s.NeedsProximityCheck(),
	}
	if t, ok := h.planner.Target(); ok {
		view.Target = &t
	}
	return view
}

func (h *Handler) GetSearch(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	success(c, http.StatusOK, h.searchState())
}

func (h *Handler) PutOptions(c *gin.Context) {
	var opts search.Options
	if err := c.ShouldBindJSON(&opts); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.planner.SetOptions(opts)
	success(c, http.StatusOK, h.searchState())
}

func (h *Handler) PostMore(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.planner.Search().RequestMore()
	success(c, http.StatusOK, h.searchState())
}

type observeRequest struct {
	ViewportEnd int `json:"viewportEnd"`
}

func (h *Handler) PostObserve(c *gin.Context) {
	var req observeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.planner.Search().Observe(req.ViewportEnd)
	success(c, http.StatusOK, h.searchState())
}

type openRequest struct {
	TableID string `json:"tableId" binding:"required"`
	Day     string `json:"day"`
	Period  int    `json:"period"`
}

func (h *Handler) PostOpen(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if req.Day == "" && req.Period == 0 {
		err = h.planner.OpenSearch(req.TableID)
	} else {
		err = h.planner.OnCellClick(req.TableID, req.Day, req.Period)
	}
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusOK, h.searchState())
}

func (h *Handler) DeleteTarget(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.planner.CloseSearch()
	success(c, http.StatusOK, h.searchState())
}

type selectRequest struct {
	LectureID string `json:"lectureId" binding:"required"`
}

func (h *Handler) PostSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	target, _ := h.planner.Target()
	added, err := h.planner.SelectByID(req.LectureID)
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusCreated, gin.H{"tableId": target.TableID, "added": added})
}

type tableView struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Entries int    `json:"entries"`
}

// tables must be called with mu held.
func (h *Handler) tables() []tableView {
	ids := h.planner.Tables().IDs()
	views := make([]tableView, 0, len(ids))
	for i, id := range ids {
		entries, _ := h.planner.Tables().Entries(id)
		views = append(views, tableView{ID: id, Heading: timetable.Heading(i), Entries: len(entries)})
	}
	return views
}

func (h *Handler) GetTables(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	success(c, http.StatusOK, h.tables())
}

func (h *Handler) PostDuplicate(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := h.planner.Duplicate(c.Param("id"))
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusCreated, gin.H{"id": id, "tables": h.tables()})
}

func (h *Handler) DeleteTable(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.planner.RemoveTable(c.Param("id")); err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusOK, h.tables())
}

type blocksView struct {
	TableID string          `json:"tableId"`
	Active  bool            `json:"active"`
	Blocks  []planner.Block `json:"blocks"`
}

func (h *Handler) GetBlocks(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := c.Param("id")
	blocks, err := h.planner.Blocks(id)
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusOK, blocksView{TableID: id, Active: h.planner.ActiveTable() == id, Blocks: blocks})
}

func (h *Handler) GetCell(c *gin.Context) {
	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if err := errors.Join(errX, errY); err != nil {
		failure(c, http.StatusBadRequest, fmt.Errorf("x and y must be integers: %w", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	coord, ok := h.planner.CellAt(x, y)
	if !ok {
		failure(c, http.StatusNotFound, planner.ErrOutsideGrid)
		return
	}
	success(c, http.StatusOK, coord)
}

type pointRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (h *Handler) PostClick(c *gin.Context) {
	var req pointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.planner.ClickAt(c.Param("id"), req.X, req.Y); err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusOK, h.searchState())
}

func (h *Handler) DeleteEntries(c *gin.Context) {
	period, err := strconv.Atoi(c.Query("period"))
	if err != nil {
		failure(c, http.StatusBadRequest, fmt.Errorf("period must be an integer: %w", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	removed, err := h.planner.OnEntryDeleteRequest(c.Param("id"), c.Query("day"), period)
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) DeleteBlock(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed, err := h.planner.OnBlockDelete(c.Param("dragId"))
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}
	success(c, http.StatusOK, gin.H{"removed": removed})
}

type dragRequest struct {
	ID string `json:"id" binding:"required"`
	DX int    `json:"dx"`
	DY int    `json:"dy"`
}

func (h *Handler) PostDragStart(c *gin.Context) {
	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.planner.OnDragStart(req.ID)
	success(c, http.StatusOK, gin.H{"activeTable": h.planner.ActiveTable()})
}

func (h *Handler) PostDragEnd(c *gin.Context) {
	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	moved := h.planner.OnEntryDragEnd(req.ID, req.DX, req.DY)
	success(c, http.StatusOK, gin.H{"moved": moved})
}

func (h *Handler) GetExport(c *gin.Context) {
	weekStart := time.Now()
	if raw := c.Query("weekStart"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			failure(c, http.StatusBadRequest, fmt.Errorf("weekStart must be YYYY-MM-DD: %w", err))
			return
		}
		weekStart = parsed
	}
	weeks := DefaultExportWeeks
	if raw := c.Query("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			failure(c, http.StatusBadRequest, errors.New("weeks must be a positive integer"))
			return
		}
		weeks = n
	}

	h.mu.Lock()
	entries, err := h.planner.Tables().Entries(c.Param("id"))
	h.mu.Unlock()
	if err != nil {
		failure(c, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.GenerateICS(entries, weekStart, weeks, &buf); err != nil {
		failure(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, timetable.ErrTableNotFound), errors.Is(err, planner.ErrUnknownLecture):
		return http.StatusNotFound
	case errors.Is(err, timetable.ErrLastTable), errors.Is(err, planner.ErrNoTarget):
		return http.StatusConflict
	case errors.Is(err, planner.ErrOutsideGrid), errors.Is(err, grid.ErrMalformedDragID),
		errors.Is(err, timetable.ErrInvalidTableID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
