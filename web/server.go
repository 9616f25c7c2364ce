// Package web serves a localhost-only single-user JSON API; it
// intentionally has no auth/CSRF protection in this mode.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/importer"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/reconcile"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/remote"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/report"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/syncer"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

type Server struct {
	store  *storage.SQLiteStore
	client remote.Client
	userID string
	mux    *http.ServeMux
}

type distributeRequest struct {
	ProjectIDs []string `json:"projectIds"`
}

type replicateRequest struct {
	Dates []string `json:"dates"`
}

type projectCreateRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Client       string `json:"client"`
	AccountingID string `json:"accountingId"`
	Active       *bool  `json:"active"`
}

type projectPatchRequest struct {
	Active *bool `json:"active"`
}

type importResponse struct {
	FilesProcessed int `json:"filesProcessed"`
	RowsRead       int `json:"rowsRead"`
	RowsMapped     int `json:"rowsMapped"`
	RowsSkipped    int `json:"rowsSkipped"`
	ProjectsSaved  int `json:"projectsSaved"`
	ProjectsNew    int `json:"projectsNew"`
}

type syncPushResponse struct {
	DaysPushed int      `json:"daysPushed"`
	FailedDays []string `json:"failedDays"`
}

// NewServer wires the API routes. The remote client may be nil, in
// which case the sync endpoints report the backend as unavailable.
func NewServer(store *storage.SQLiteStore, client remote.Client, userID string) http.Handler {
	server := &Server{
		store:  store,
		client: client,
		userID: userID,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/day/{date}", server.handleDayGet)
	mux.HandleFunc("PUT /api/day/{date}", server.handleDayPut)
	mux.HandleFunc("DELETE /api/day/{date}", server.handleDayDelete)
	mux.HandleFunc("POST /api/day/{date}/distribute", server.handleDayDistribute)
	mux.HandleFunc("POST /api/day/{date}/replicate", server.handleDayReplicate)
	mux.HandleFunc("GET /api/month/{month}", server.handleMonth)
	mux.HandleFunc("GET /api/projects", server.handleProjectList)
	mux.HandleFunc("POST /api/projects", server.handleProjectCreate)
	mux.HandleFunc("PATCH /api/projects/{id}", server.handleProjectPatch)
	mux.HandleFunc("DELETE /api/projects/{id}", server.handleProjectDelete)
	mux.HandleFunc("POST /api/import", server.handleImport)
	mux.HandleFunc("POST /api/sync/push", server.handleSyncPush)
	mux.HandleFunc("POST /api/sync/pull", server.handleSyncPull)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleDayGet(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	entry, _, err := s.store.GetDay(s.userID, date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BuildDayView(date, entry))
}

func (s *Server) handleDayPut(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	var entry timesheet.DailyEntry
	if err := decodeJSON(r, &entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The save gate: a day whose allocations do not reconcile with its
	// worked time is rejected unless the caller forces it.
	summary := reconcile.Check(entry)
	force := strings.TrimSpace(r.URL.Query().Get("force")) == "1"
	if !summary.Match && !force {
		writeJSON(w, http.StatusUnprocessableEntity, BuildDayView(date, entry))
		return
	}

	if err := s.store.PutDay(s.userID, date, entry); err != nil {
		http.Error(w, fmt.Sprintf("save day: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BuildDayView(date, entry))
}

func (s *Server) handleDayDelete(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteDay(s.userID, date)
	if err != nil {
		http.Error(w, fmt.Sprintf("delete day: %v", err), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "day not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDayDistribute(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	var body distributeRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, _, err := s.store.GetDay(s.userID, date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	distributed, err := reconcile.Distribute(entry, body.ProjectIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.PutDay(s.userID, date, distributed); err != nil {
		http.Error(w, fmt.Sprintf("save day: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BuildDayView(date, distributed))
}

func (s *Server) handleDayReplicate(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	var body replicateRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body.Dates) == 0 {
		http.Error(w, "no target dates", http.StatusBadRequest)
		return
	}

	entry, found, err := s.store.GetDay(s.userID, date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "day not found", http.StatusNotFound)
		return
	}

	written, err := s.store.ReplicateDay(s.userID, entry, body.Dates)
	if err != nil {
		http.Error(w, fmt.Sprintf("replicate day: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"daysWritten": written})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.PathValue("month"))
	if _, err := report.ParseMonth(month); err != nil {
		http.Error(w, "invalid month format (expected YYYY-MM)", http.StatusBadRequest)
		return
	}

	all, err := s.store.AllAllocations(s.userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	projects, err := s.store.ListProjects()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BuildMonthView(report.Monthly(all, projects, month)))
}

func (s *Server) handleProjectList(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(r.URL.Query().Get("all")) != "1" {
		active := make([]timesheet.Project, 0, len(projects))
		for _, project := range projects {
			if project.Active {
				active = append(active, project)
			}
		}
		projects = active
	}

	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var body projectCreateRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		http.Error(w, "project name is required", http.StatusBadRequest)
		return
	}

	// New projects are active unless the caller says otherwise.
	project := timesheet.Project{
		ID:           body.ID,
		Name:         body.Name,
		Code:         body.Code,
		Client:       body.Client,
		AccountingID: body.AccountingID,
		Active:       body.Active == nil || *body.Active,
	}
	if project.ID == "" {
		project.ID = importer.NewProjectID()
	}

	if err := s.store.SaveProject(project); err != nil {
		http.Error(w, fmt.Sprintf("save project: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleProjectPatch(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	var body projectPatchRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Active == nil {
		http.Error(w, "active flag is required", http.StatusBadRequest)
		return
	}

	if err := s.store.SetProjectActive(id, *body.Active); err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("update project: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	stripped, err := s.store.DeleteProject(id)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("delete project: %v", err), http.StatusInternalServerError)
		return
	}

	resp := map[string]int{"strippedAllocations": stripped}
	if s.client != nil {
		changed, err := syncer.StripProject(r.Context(), s.client, s.userID, id)
		if err != nil {
			http.Error(w, fmt.Sprintf("strip project from backend: %v", err), http.StatusBadGateway)
			return
		}
		resp["remoteDaysStripped"] = len(changed)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mapperName := strings.TrimSpace(r.FormValue("mapper"))
	if mapperName == "" {
		mapperName = "catalog"
	}
	mapper, err := importer.MapperByName(mapperName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return
	}

	result, err := importer.Run([]string{tmpPath}, "", mapper)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := s.store.SaveProjects(result.Projects)
	if err != nil {
		http.Error(w, fmt.Sprintf("save imported projects: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		FilesProcessed: result.FilesProcessed,
		RowsRead:       result.RowsRead,
		RowsMapped:     result.RowsMapped,
		RowsSkipped:    result.RowsSkipped,
		ProjectsSaved:  len(result.Projects),
		ProjectsNew:    created,
	})
}

func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		http.Error(w, "backend not configured", http.StatusServiceUnavailable)
		return
	}

	all, err := s.store.AllAllocations(s.userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := syncer.Push(r.Context(), s.client, s.userID, all)
	resp := syncPushResponse{DaysPushed: result.DaysPushed, FailedDays: make([]string, 0, len(result.Failures))}
	for _, failure := range result.Failures {
		resp.FailedDays = append(resp.FailedDays, failure.Date)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		http.Error(w, "backend not configured", http.StatusServiceUnavailable)
		return
	}

	result, err := syncer.Pull(r.Context(), s.client, s.store, s.userID)
	if err != nil {
		http.Error(w, fmt.Sprintf("pull from backend: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"days": result.Days, "projects": result.Projects})
}

func requireDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := strings.TrimSpace(r.PathValue("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "invalid date format (expected YYYY-MM-DD)", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func tempUploadPattern(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "cmsrd-upload-*"
	}
	return "cmsrd-upload-*" + ext
}
