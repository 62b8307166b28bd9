package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"tweetapp/auth"
	"tweetapp/dto"
	"tweetapp/services"
)

// TimelineHandler serves the per-viewer feed.
type TimelineHandler struct {
	timeline *services.TimelineService
}

func NewTimelineHandler(timeline *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{timeline: timeline}
}

// Get serves GET /timeline. With ?before=<cursor> it pages by keyset;
// otherwise ?page= selects a zero-indexed offset page. ?per_page=
// bounds the page size in both modes.
func (h *TimelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())

	perPage := services.DefaultPageSize
	if s := r.URL.Query().Get("per_page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			perPage = n
		}
	}

	if before := r.URL.Query().Get("before"); before != "" {
		cursor, err := services.DecodeCursor(before)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cursor")
			return
		}
		entries, next, err := h.timeline.After(viewer.ID, &cursor, perPage)
		if err != nil {
			h.timelineError(w, err)
			return
		}
		h.writePage(w, entries, next)
		return
	}

	page := 0
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			page = n
		}
	}
	entries, err := h.timeline.Page(viewer.ID, page, perPage)
	if err != nil {
		h.timelineError(w, err)
		return
	}

	// First offset page doubles as the head of a cursor session.
	var next *services.Cursor
	if len(entries) == perPage {
		last := entries[len(entries)-1].Message
		next = &services.Cursor{PublishedAt: last.PublishedAt, ID: last.ID}
	}
	h.writePage(w, entries, next)
}

// LoadMore serves GET /loadMore/{pageNum}, the incremental-fetch
// endpoint kept wire-compatible with existing clients: a 1-indexed
// page of 5, keyed by message id.
func (h *TimelineHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())

	pageNum, err := strconv.Atoi(mux.Vars(r)["pageNum"])
	if err != nil || pageNum < 1 {
		writeError(w, http.StatusBadRequest, "invalid page number")
		return
	}

	entries, err := h.timeline.Page(viewer.ID, pageNum-1, services.DefaultPageSize)
	if err != nil {
		h.timelineError(w, err)
		return
	}

	page := make(map[string]dto.LoadMoreEntry, len(entries))
	for _, e := range entries {
		page[strconv.FormatUint(uint64(e.Message.ID), 10)] = dto.NewLoadMoreEntry(e)
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *TimelineHandler) writePage(w http.ResponseWriter, entries []services.TimelineEntry, next *services.Cursor) {
	resp := dto.TimelineResponse{
		Messages: lo.Map(entries, func(e services.TimelineEntry, _ int) dto.TimelineEntryResponse {
			return dto.NewTimelineEntryResponse(e)
		}),
	}
	if next != nil {
		resp.NextCursor = next.Encode()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TimelineHandler) timelineError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidViewer) {
		// Only reachable when the auth gate is bypassed.
		logrus.WithError(err).Error("Timeline called with unresolvable viewer")
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	logrus.WithError(err).Error("Failed to assemble timeline")
	writeError(w, http.StatusInternalServerError, "database error")
}
