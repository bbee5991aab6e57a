package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/railreport/pkg/buildinfo"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/session"
)

// Identity headers set by the gateway.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
	HeaderReportID = "X-Report-ID"
)

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	if _, err := sessionFromRequest(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.runner.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig, "no record store configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMaterialID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.runner.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := material.WriteJSON(w, rec); err != nil {
		s.logger.Warn("write record response", "material", id, "err", err)
	}
}

// listResponse is the body of GET /api/materials.
type listResponse struct {
	Materials []material.Record `json:"materials"`
	Count     int               `json:"count"`
}

// handleList returns stored records ordered by material id. The optional
// limit query parameter caps the result (default store.DefaultListLimit).
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if _, err := sessionFromRequest(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.runner.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig, "no record store configured"))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	recs, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []material.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Materials: recs, Count: len(recs)})
}

// attachment formats an RFC 6266 Content-Disposition value. Non-ASCII names
// use the RFC 2231 filename* form.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Generate(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", attachment(res.Filename))
	h.Set("Content-Length", strconv.Itoa(len(res.PDF)))
	h.Set(HeaderReportID, res.ReportID)
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.PDF); err != nil {
		s.logger.Warn("write report response", "file", res.Filename, "err", err)
	}
}

// sessionFromRequest builds the caller's session from gateway headers.
// A missing role defaults to depot officer.
func sessionFromRequest(r *http.Request) (*session.Session, error) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "missing %s header", HeaderUserID)
	}
	role := session.RoleDepotOfficer
	if v := r.Header.Get(HeaderUserRole); v != "" {
		parsed, err := session.ParseRole(v)
		if err != nil {
			return nil, err
		}
		role = parsed
	}
	return session.New(userID, r.Header.Get(HeaderUserName), role)
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound, errors.ErrCodeMaterialNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		msg = "report generation failed"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
