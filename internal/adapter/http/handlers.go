package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/layout"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
)

// svgQuery is the validated query of /heatmap.svg. Zero sizes keep the
// configured canvas.
type svgQuery struct {
	Mode   string  `validate:"omitempty,oneof=max min showmax showmin"`
	Width  float64 `validate:"omitempty,gte=300,lte=5000"`
	Height float64 `validate:"omitempty,gte=300,lte=5000"`
}

type sparklineQuery struct {
	Year   int `validate:"gte=1"`
	Month  int `validate:"gte=1,lte=12"`
	Width  int `validate:"omitempty,gte=100,lte=2000"`
	Height int `validate:"omitempty,gte=100,lte=2000"`
}

type bucketsResponse struct {
	Title       string       `json:"title"`
	GeneratedAt time.Time    `json:"generated_at"`
	Mode        string       `json:"mode"`
	Years       []int        `json:"years"`
	Buckets     []bucketView `json:"buckets"`
}

type bucketView struct {
	Key     string             `json:"key"`
	Color   string             `json:"color"`
	Tooltip string             `json:"tooltip"`
	Bucket  domain.MonthBucket `json:"bucket"`
}

// heatmap fetches the current model, answering 503 until it is built.
func (s *Server) heatmap(w http.ResponseWriter) (*layout.Heatmap, bool) {
	hm, err := s.provider.Heatmap()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return hm, true
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	hm, ok := s.heatmap(w)
	if !ok {
		return
	}
	start := time.Now()

	var buf bytes.Buffer
	if err := render.Page(&buf, hm, s.renderer.Style()); err != nil {
		s.logger.Error("render page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	s.observeRender("html", layout.ShowMax, start)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	hm, ok := s.heatmap(w)
	if !ok {
		return
	}

	q, err := s.parseSVGQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := layout.ParseMode(q.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dims := hm.Layout.Dimensions
	if q.Width > 0 {
		dims.Width = q.Width
	}
	if q.Height > 0 {
		dims.Height = q.Height
	}
	if dims != hm.Layout.Dimensions {
		hm = hm.Resize(dims)
	}

	start := time.Now()
	doc, hit, err := s.renderer.SVG(hm, mode)
	if err != nil {
		s.logger.Error("render svg failed", "error", err, "mode", mode.String())
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	if hit {
		s.metrics.RenderCache.WithLabelValues("hit").Inc()
	} else {
		s.metrics.RenderCache.WithLabelValues("miss").Inc()
	}
	s.observeRender("svg", mode, start)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(doc) //nolint:errcheck // client went away
}

func (s *Server) handleBuckets(w http.ResponseWriter, r *http.Request) {
	hm, ok := s.heatmap(w)
	if !ok {
		return
	}
	mode, err := layout.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start := time.Now()

	colors := hm.Layout.Colors(hm.Buckets, mode)
	views := make([]bucketView, len(hm.Buckets))
	for i, b := range hm.Buckets {
		views[i] = bucketView{Key: b.Key(), Color: colors[i], Tooltip: b.Tooltip(), Bucket: b}
	}
	s.observeRender("json", mode, start)

	writeJSON(w, http.StatusOK, bucketsResponse{
		Title:       hm.Title,
		GeneratedAt: hm.GeneratedAt,
		Mode:        mode.String(),
		Years:       hm.Layout.Axis.Years,
		Buckets:     views,
	})
}

func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	hm, ok := s.heatmap(w)
	if !ok {
		return
	}

	q, err := s.parseSparklineQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, found := hm.Bucket(q.Year, q.Month-1)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no bucket for %04d-%02d", q.Year, q.Month))
		return
	}

	opts := render.DefaultSparklineOptions()
	if q.Width > 0 {
		opts.Width = q.Width
	}
	if q.Height > 0 {
		opts.Height = q.Height
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := render.Sparkline(&buf, b, opts); err != nil {
		if errors.Is(err, render.ErrNoData) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("render sparkline failed", "error", err, "bucket", b.Key())
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	s.observeRender("png", layout.ShowMax, start)

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) observeRender(format string, mode layout.Mode, start time.Time) {
	s.metrics.RenderRequests.WithLabelValues(format, mode.String()).Inc()
	s.metrics.RenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

func (s *Server) parseSVGQuery(r *http.Request) (svgQuery, error) {
	values := r.URL.Query()
	q := svgQuery{Mode: strings.ToLower(values.Get("mode"))}

	var err error
	if q.Width, err = floatParam(values.Get("width"), "width"); err != nil {
		return q, err
	}
	if q.Height, err = floatParam(values.Get("height"), "height"); err != nil {
		return q, err
	}
	if err := s.validate.Struct(q); err != nil {
		return q, validationError(err)
	}
	return q, nil
}

func (s *Server) parseSparklineQuery(r *http.Request) (sparklineQuery, error) {
	var q sparklineQuery
	var err error
	if q.Year, err = intParam(r.PathValue("year"), "year"); err != nil {
		return q, err
	}
	if q.Month, err = intParam(r.PathValue("month"), "month"); err != nil {
		return q, err
	}
	values := r.URL.Query()
	if q.Width, err = intParam(values.Get("width"), "width"); err != nil {
		return q, err
	}
	if q.Height, err = intParam(values.Get("height"), "height"); err != nil {
		return q, err
	}
	if err := s.validate.Struct(q); err != nil {
		return q, validationError(err)
	}
	return q, nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// validationError flattens validator failures into one client-facing message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
