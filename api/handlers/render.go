package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chartd/core/charts"
	"chartd/core/journal"
	"chartd/core/render"
	"chartd/core/utils"
)

type RenderHandler struct {
	renderer *render.Renderer
	recorder *journal.Recorder
	stats    *render.Stats
	timeout  time.Duration
	maxBody  int64
	logger   *utils.Logger
}

func NewRenderHandler(renderer *render.Renderer, recorder *journal.Recorder, stats *render.Stats, timeout time.Duration, maxBody int64, logger *utils.Logger) *RenderHandler {
	return &RenderHandler{
		renderer: renderer,
		recorder: recorder,
		stats:    stats,
		timeout:  timeout,
		maxBody:  maxBody,
		logger:   logger,
	}
}

// Render answers with the composed chart as a PNG data URI in a text body.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.renderer == nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	width, werr := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("width")))
	height, herr := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("height")))
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		h.stats.Observe(render.Output{}, charts.ErrMalformedInput)
		http.Error(w, "width and height query parameters must be positive integers", http.StatusBadRequest)
		return
	}
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	out, err := h.renderer.Render(ctx, body, width, height)
	h.stats.Observe(out, err)
	// the journal write must outlive a canceled request
	h.recorder.Record(context.WithoutCancel(r.Context()), out, err)
	if out.JobID != "" {
		w.Header().Set(HeaderRenderJob, out.JobID)
	}
	if err != nil {
		status := StatusForError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Errorf("render job=%s failed: %v", out.JobID, err)
		}
		http.Error(w, errorMessage(status, err), status)
		return
	}
	if len(out.Skipped) > 0 {
		idx := make([]string, len(out.Skipped))
		for i, s := range out.Skipped {
			idx[i] = strconv.Itoa(s.Index)
		}
		w.Header().Set(HeaderRenderSkipped, strings.Join(idx, ","))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out.DataURI)
}

func StatusForError(err error) int {
	switch render.ClassifyError(err) {
	case render.ErrorKindOK:
		return http.StatusOK
	case render.ErrorKindUnsupportedTopType, render.ErrorKindUnsupportedType, render.ErrorKindMalformedInput:
		return http.StatusBadRequest
	case render.ErrorKindTimeout:
		return http.StatusServiceUnavailable
	case render.ErrorKindCanceled:
		// client closed request
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps client errors descriptive and hides internals otherwise.
func errorMessage(status int, err error) string {
	switch {
	case status == http.StatusBadRequest:
		return err.Error()
	case status == http.StatusServiceUnavailable:
		return "render timed out"
	default:
		return "render failed"
	}
}
