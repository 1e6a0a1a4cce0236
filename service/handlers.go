package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	// Formats accepted for OCR uploads. The x/image formats cover the
	// scanner output (TIFF/BMP) and browser exports (WebP) that the
	// standard library does not register.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bytedance/sonic"

	"github.com/davissekai/irys"
	"github.com/davissekai/irys/model"
	"github.com/davissekai/irys/ocr"
)

// extractRequest is the JSON body of POST /extract. Exactly one of Items
// and Markup should be set.
type extractRequest struct {
	Items   []model.TextItem `json:"items,omitempty"`
	Markup  []string         `json:"markup,omitempty"`
	Columns []string         `json:"columns"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "irys extraction service is live",
	})
}

// handleExtract accepts either a JSON body with text items or markup
// blocks, or a multipart upload with an image for the OCR adapter. The
// request is bounded by the configured wall-clock timeout; the pipeline's
// partial work is simply discarded on expiry.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ExtractTimeout())
	defer cancel()

	extraction, status, err := s.buildExtraction(r)
	if err != nil {
		s.writeError(w, status, err.Error())
		return
	}

	type outcome struct {
		result *irys.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := extraction.Logger(s.logger).Result(ctx)
		done <- outcome{result, err}
	}()

	select {
	case <-ctx.Done():
		s.writeError(w, http.StatusGatewayTimeout,
			fmt.Sprintf("extraction timed out after %.0fs", s.cfg.ExtractTimeoutSeconds))
	case out := <-done:
		if out.err != nil {
			s.logger.Error("extraction failed", "error", out.err)
			s.writeError(w, http.StatusBadRequest, out.err.Error())
			return
		}
		s.logger.Info("extraction complete",
			"rows", out.result.RowCount,
			"columns", out.result.ColumnCount,
			"not_found", out.result.Error != "")
		s.writeJSON(w, http.StatusOK, out.result)
	}
}

// buildExtraction turns the request into a configured extraction. The
// returned status is the HTTP code to use when err is non-nil.
func (s *Server) buildExtraction(r *http.Request) (*irys.Extraction, int, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return s.buildOCRExtraction(r)
	}

	var req extractRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("reading request: %w", err)
	}
	if err := sonic.Unmarshal(body, &req); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err)
	}

	var extraction *irys.Extraction
	switch {
	case len(req.Items) > 0:
		extraction = irys.FromItems(req.Items)
	case len(req.Markup) > 0:
		extraction = irys.FromMarkup(req.Markup...)
	default:
		return nil, http.StatusBadRequest, errors.New("provide items or markup")
	}

	return s.configure(extraction, req.Columns), http.StatusOK, nil
}

// buildOCRExtraction handles multipart image uploads: the file is
// validated as a decodable image and run through the OCR adapter, which
// requires a binary built with -tags ocr.
func (s *Server) buildOCRExtraction(r *http.Request) (*irys.Extraction, int, error) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("missing file field")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err)
	}

	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("unreadable image: %w", err)
	} else {
		s.logger.Debug("upload accepted", "format", format, "bytes", len(data))
	}

	var columns []string
	if raw := r.FormValue("columns"); raw != "" {
		if err := sonic.Unmarshal([]byte(raw), &columns); err != nil {
			return nil, http.StatusBadRequest, errors.New("columns must be a JSON array of column names")
		}
	}

	client, err := ocr.New()
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			return nil, http.StatusServiceUnavailable, err
		}
		return nil, http.StatusInternalServerError, err
	}
	defer client.Close()

	items, err := client.RecognizeItems(data)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("recognizing image: %w", err)
	}

	return s.configure(irys.FromItems(items), columns), http.StatusOK, nil
}

// configure applies the service-level defaults and wires the optional
// semantic mapper.
func (s *Server) configure(extraction *irys.Extraction, columns []string) *irys.Extraction {
	if len(columns) > 0 {
		extraction = extraction.Columns(columns...)
	}
	if s.cfg.YTolerance > 0 {
		extraction = extraction.YTolerance(s.cfg.YTolerance)
	}
	if s.semantic != nil {
		extraction = extraction.Mapper(s.semantic)
	}
	return extraction
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		s.logger.Error("encoding response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}
