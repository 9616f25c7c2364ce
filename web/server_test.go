package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

func newTestServer(t *testing.T) (http.Handler, *storage.SQLiteStore) {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "cmsrd_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewServer(store, nil, "u1"), store
}

func doJSON(t *testing.T, handler http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeDayView(t *testing.T, recorder *httptest.ResponseRecorder) DayView {
	t.Helper()

	var view DayView
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode day view: %v (body %s)", err, recorder.Body.String())
	}
	return view
}

func balancedDay() timesheet.DailyEntry {
	return timesheet.DailyEntry{
		Morning:   timesheet.TimeShift{Start: "08:00", End: "12:00"},
		Afternoon: timesheet.TimeShift{Start: "13:00", End: "17:00"},
		ProjectAllocations: []timesheet.ProjectTimeAllocation{
			{ProjectID: "p-a", Hours: 4},
			{ProjectID: "p-b", Hours: 4},
		},
	}
}

func TestDayPut_SavesBalancedDay(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPut, "/api/day/2026-03-02", balancedDay())
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	view := decodeDayView(t, recorder)
	if !view.Summary.Match {
		t.Fatalf("summary = %+v", view.Summary)
	}
	if view.WorkedHHMM != "08:00" || view.AllocatedHHMM != "08:00" {
		t.Fatalf("formatted totals = %q / %q", view.WorkedHHMM, view.AllocatedHHMM)
	}

	if _, found, _ := store.GetDay("u1", "2026-03-02"); !found {
		t.Fatal("day not persisted")
	}
}

func TestDayPut_RejectsUnbalancedDay(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	entry := balancedDay()
	entry.ProjectAllocations = entry.ProjectAllocations[:1]

	recorder := doJSON(t, server, http.MethodPut, "/api/day/2026-03-02", entry)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", recorder.Code)
	}

	view := decodeDayView(t, recorder)
	if view.Summary.Match {
		t.Fatal("rejected day reported as matching")
	}
	if view.Summary.Delta != 4.0 {
		t.Fatalf("delta = %v, want 4.0", view.Summary.Delta)
	}

	if _, found, _ := store.GetDay("u1", "2026-03-02"); found {
		t.Fatal("unbalanced day must not be persisted")
	}
}

func TestDayPut_ForceOverridesGate(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	entry := balancedDay()
	entry.ProjectAllocations = nil

	recorder := doJSON(t, server, http.MethodPut, "/api/day/2026-03-02?force=1", entry)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	if _, found, _ := store.GetDay("u1", "2026-03-02"); !found {
		t.Fatal("forced day not persisted")
	}
}

func TestDayPut_RejectsBadDate(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPut, "/api/day/02.03.2026", balancedDay())
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestDayGet_UnknownDayIsEmptyView(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	recorder := doJSON(t, server, http.MethodGet, "/api/day/2026-03-02", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	view := decodeDayView(t, recorder)
	if !view.Entry.IsEmpty() {
		t.Fatalf("expected empty entry, got %+v", view.Entry)
	}
	if !view.Summary.Match {
		t.Fatal("an empty day has nothing to reconcile")
	}
}

func TestDayDelete(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	if err := store.PutDay("u1", "2026-03-02", balancedDay()); err != nil {
		t.Fatalf("seed day: %v", err)
	}

	recorder := doJSON(t, server, http.MethodDelete, "/api/day/2026-03-02", nil)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", recorder.Code)
	}

	recorder = doJSON(t, server, http.MethodDelete, "/api/day/2026-03-02", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", recorder.Code)
	}
}

func TestDayDistribute(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	entry := balancedDay()
	entry.ProjectAllocations = nil
	if err := store.PutDay("u1", "2026-03-02", entry); err != nil {
		t.Fatalf("seed day: %v", err)
	}

	recorder := doJSON(t, server, http.MethodPost, "/api/day/2026-03-02/distribute", map[string]any{
		"projectIds": []string{"p-a", "p-b"},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	view := decodeDayView(t, recorder)
	if len(view.Entry.ProjectAllocations) != 2 {
		t.Fatalf("allocations = %+v", view.Entry.ProjectAllocations)
	}
	for _, allocation := range view.Entry.ProjectAllocations {
		if allocation.Hours != 4.0 {
			t.Fatalf("allocation %s = %v, want 4.0", allocation.ProjectID, allocation.Hours)
		}
	}
	if !view.Summary.Match {
		t.Fatal("distributed day must reconcile")
	}
}

func TestDayDistribute_NoWorkedHours(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/api/day/2026-03-02/distribute", map[string]any{
		"projectIds": []string{"p-a"},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "worked hours") {
		t.Fatalf("body = %s", recorder.Body.String())
	}
}

func TestDayReplicate(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	if err := store.PutDay("u1", "2026-03-02", balancedDay()); err != nil {
		t.Fatalf("seed day: %v", err)
	}

	recorder := doJSON(t, server, http.MethodPost, "/api/day/2026-03-02/replicate", map[string]any{
		"dates": []string{"2026-03-03", "2026-03-04"},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	for _, date := range []string{"2026-03-03", "2026-03-04"} {
		if _, found, _ := store.GetDay("u1", date); !found {
			t.Fatalf("replicated day %s missing", date)
		}
	}
}

func TestDayReplicate_MissingSource(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/api/day/2026-03-02/replicate", map[string]any{
		"dates": []string{"2026-03-03"},
	})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestMonthEndpoint(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	if err := store.SaveProject(timesheet.Project{ID: "p-a", Name: "Alpha", Client: "Acme", Active: true}); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if err := store.PutDay("u1", "2026-03-02", timesheet.DailyEntry{
		Morning: timesheet.TimeShift{Start: "08:00", End: "12:00"},
		ProjectAllocations: []timesheet.ProjectTimeAllocation{
			{ProjectID: "p-a", Hours: 4},
		},
	}); err != nil {
		t.Fatalf("seed day: %v", err)
	}

	recorder := doJSON(t, server, http.MethodGet, "/api/month/2026-03", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var view MonthView
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode month view: %v", err)
	}
	if view.TotalWorkedHours != 4.0 || view.TotalWorkedHHMM != "04:00" {
		t.Fatalf("month totals = %v / %q", view.TotalWorkedHours, view.TotalWorkedHHMM)
	}
	if len(view.RankedProjects) != 1 || view.RankedProjects[0].Name != "Alpha" {
		t.Fatalf("ranked projects = %+v", view.RankedProjects)
	}

	recorder = doJSON(t, server, http.MethodGet, "/api/month/march", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("bad month status = %d, want 400", recorder.Code)
	}
}

func TestProjectEndpoints(t *testing.T) {
	t.Parallel()

	server, store := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/api/projects", timesheet.Project{Name: "Alpha", Client: "Acme", Active: true})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var created timesheet.Project
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created project: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created project has no generated id")
	}

	// Deactivate, then confirm the default listing hides it.
	recorder = doJSON(t, server, http.MethodPatch, "/api/projects/"+created.ID, map[string]any{"active": false})
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d", recorder.Code)
	}

	recorder = doJSON(t, server, http.MethodGet, "/api/projects", nil)
	var active []timesheet.Project
	if err := json.Unmarshal(recorder.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode projects: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("inactive project leaked into default listing: %+v", active)
	}

	recorder = doJSON(t, server, http.MethodGet, "/api/projects?all=1", nil)
	var all []timesheet.Project
	if err := json.Unmarshal(recorder.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode projects: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 project with ?all=1, got %d", len(all))
	}

	// Delete cascades into allocations and reports the stripped count.
	if err := store.PutDay("u1", "2026-03-02", timesheet.DailyEntry{
		ProjectAllocations: []timesheet.ProjectTimeAllocation{{ProjectID: created.ID, Hours: 4}},
	}); err != nil {
		t.Fatalf("seed allocation: %v", err)
	}

	recorder = doJSON(t, server, http.MethodDelete, "/api/projects/"+created.ID, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"strippedAllocations":1`) {
		t.Fatalf("delete body = %s", recorder.Body.String())
	}

	recorder = doJSON(t, server, http.MethodDelete, "/api/projects/"+created.ID, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", recorder.Code)
	}
}

func TestProjectCreate_RequiresName(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/api/projects", timesheet.Project{Client: "Acme"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestProjectCreate_DefaultsToActive(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/api/projects", map[string]any{"name": "Data Platform"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var created timesheet.Project
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created project: %v", err)
	}
	if !created.Active {
		t.Fatal("project created without an active flag must default to active")
	}

	recorder = doJSON(t, server, http.MethodGet, "/api/projects", nil)
	var listed []timesheet.Project
	if err := json.Unmarshal(recorder.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode project list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("default project list = %+v, want the new project visible", listed)
	}

	// An explicit false still creates the project hidden.
	recorder = doJSON(t, server, http.MethodPost, "/api/projects", map[string]any{"name": "Archive", "active": false})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	recorder = doJSON(t, server, http.MethodGet, "/api/projects", nil)
	listed = nil
	if err := json.Unmarshal(recorder.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode project list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("default list shows %d projects, want the inactive one hidden", len(listed))
	}

	recorder = doJSON(t, server, http.MethodGet, "/api/projects?all=1", nil)
	var all []timesheet.Project
	if err := json.Unmarshal(recorder.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode project list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("full list shows %d projects, want 2", len(all))
	}
}

type stubBackend struct {
	allocations timesheet.AllAllocations
	putDays     map[string]timesheet.DailyEntry
}

func (b *stubBackend) FetchAllAllocations(ctx context.Context, userID string) (timesheet.AllAllocations, error) {
	return b.allocations, nil
}

func (b *stubBackend) PutDay(ctx context.Context, userID, date string, entry timesheet.DailyEntry) error {
	if b.putDays == nil {
		b.putDays = make(map[string]timesheet.DailyEntry)
	}
	b.putDays[date] = entry
	return nil
}

func (b *stubBackend) DeleteDay(ctx context.Context, userID, date string) error { return nil }

func (b *stubBackend) FetchProjects(ctx context.Context, userID string) ([]timesheet.Project, error) {
	return nil, nil
}

func (b *stubBackend) PutProjects(ctx context.Context, userID string, projects []timesheet.Project) error {
	return nil
}

func (b *stubBackend) FetchSettings(ctx context.Context, userID string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (b *stubBackend) PutSettings(ctx context.Context, userID string, settings map[string]string) error {
	return nil
}

func TestProjectDelete_StripsBackendDays(t *testing.T) {
	t.Parallel()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "cmsrd_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	backend := &stubBackend{
		allocations: timesheet.AllAllocations{
			"2026-03-02": {
				ProjectAllocations: []timesheet.ProjectTimeAllocation{
					{ProjectID: "p-gone", Hours: 4},
					{ProjectID: "p-keep", Hours: 4},
				},
			},
			"2026-03-03": {
				ProjectAllocations: []timesheet.ProjectTimeAllocation{
					{ProjectID: "p-keep", Hours: 3},
				},
			},
		},
	}
	server := NewServer(store, backend, "u1")

	if err := store.SaveProject(timesheet.Project{ID: "p-gone", Name: "Gone", Active: true}); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	recorder := doJSON(t, server, http.MethodDelete, "/api/projects/p-gone", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"remoteDaysStripped":1`) {
		t.Fatalf("delete body = %s", recorder.Body.String())
	}

	rewritten, ok := backend.putDays["2026-03-02"]
	if !ok {
		t.Fatalf("backend day not rewritten, puts = %+v", backend.putDays)
	}
	if len(rewritten.ProjectAllocations) != 1 || rewritten.ProjectAllocations[0].ProjectID != "p-keep" {
		t.Fatalf("backend allocations after delete = %+v", rewritten.ProjectAllocations)
	}
	if _, ok := backend.putDays["2026-03-03"]; ok {
		t.Fatal("untouched backend day was rewritten")
	}
}

func TestSyncEndpointsWithoutBackend(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	for _, target := range []string{"/api/sync/push", "/api/sync/pull"} {
		recorder := doJSON(t, server, http.MethodPost, target, nil)
		if recorder.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s status = %d, want 503", target, recorder.Code)
		}
	}
}

func TestBuildDayView(t *testing.T) {
	t.Parallel()

	view := BuildDayView("2026-03-02", balancedDay())
	if view.Date != "2026-03-02" {
		t.Fatalf("date = %q", view.Date)
	}
	if fmt.Sprintf("%s/%s", view.WorkedHHMM, view.AllocatedHHMM) != "08:00/08:00" {
		t.Fatalf("formatted totals = %q / %q", view.WorkedHHMM, view.AllocatedHHMM)
	}
}
