package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/comparator"
	"github.com/erraggy/oasdelta/deltaerrors"
)

// compareRequest is the POST /api/v1/compare body.
type compareRequest struct {
	RepoPath  string `json:"repo_path"`
	FilePath  string `json:"file_path"`
	OldCommit string `json:"old_commit"`
	NewCommit string `json:"new_commit"`
	RepoName  string `json:"repo_name,omitempty"`
}

// compareResponse is returned for both outcomes and errors, so clients
// always see the same shape.
type compareResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	DiffFile  string `json:"diff_file,omitempty"`
	Timestamp string `json:"timestamp"`
}

const (
	statusSuccess   = "success"
	statusNoChanges = "no_changes"
	statusError     = "error"
)

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.RepoPath == "" || req.FilePath == "" || req.OldCommit == "" || req.NewCommit == "" {
		s.writeError(w, http.StatusBadRequest, "repo_path, file_path, old_commit, and new_commit are required")
		return
	}
	if _, err := os.Stat(req.RepoPath); err != nil {
		s.writeError(w, http.StatusBadRequest, "repository path does not exist")
		return
	}

	result, err := s.comp.CompareGit(r.Context(), comparator.GitRequest{
		RepoPath:    req.RepoPath,
		FilePath:    req.FilePath,
		OldRef:      req.OldCommit,
		NewRef:      req.NewCommit,
		RepoName:    req.RepoName,
		WriteReport: true,
	})
	if err != nil {
		s.log().Error("comparison failed",
			"repo", req.RepoPath,
			"old", req.OldCommit,
			"new", req.NewCommit,
			"error", err.Error())
		code := http.StatusInternalServerError
		if errors.Is(err, deltaerrors.ErrConfig) || errors.Is(err, deltaerrors.ErrLoad) {
			code = http.StatusBadRequest
		}
		s.writeError(w, code, err.Error())
		return
	}

	resp := compareResponse{
		Status:    statusSuccess,
		Message:   "Comparison completed successfully",
		DiffFile:  result.ReportPath,
		Timestamp: timestamp(),
	}
	if result.Summary.Verdict == classifier.VerdictNoChanges {
		resp.Status = statusNoChanges
		resp.Message = result.Summary.Headline()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": timestamp(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, compareResponse{
		Status:    statusError,
		Message:   message,
		Timestamp: timestamp(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("failed to encode response", "error", err.Error())
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
