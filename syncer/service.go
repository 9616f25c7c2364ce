// Package syncer moves data between the hosted backend and the local
// SQLite cache, and provides the remote-first/local-fallback reads the
// rest of the application uses.
package syncer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/reconcile"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/remote"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

type DayError struct {
	Date string
	Err  error
}

type PushResult struct {
	DaysPushed int
	Failures   []DayError
}

// Push writes every given day to the backend, one call per day. Days
// are independent, so the calls run concurrently and the batch awaits
// their collective completion; a failed day does not stop the others.
func Push(ctx context.Context, client remote.Client, userID string, days timesheet.AllAllocations) *PushResult {
	result := &PushResult{Failures: make([]DayError, 0)}
	if len(days) == 0 {
		return result
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for date, entry := range days {
		wg.Add(1)
		go func(date string, entry timesheet.DailyEntry) {
			defer wg.Done()
			err := client.PutDay(ctx, userID, date, entry)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, DayError{Date: date, Err: err})
				return
			}
			result.DaysPushed++
		}(date, entry)
	}
	wg.Wait()

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Date < result.Failures[j].Date
	})
	return result
}

type PullResult struct {
	Days     int
	Projects int
}

// Pull replaces the local cache content with the backend's current
// allocations and projects.
func Pull(ctx context.Context, client remote.Client, store *storage.SQLiteStore, userID string) (*PullResult, error) {
	all, err := client.FetchAllAllocations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pull allocations: %w", err)
	}
	projects, err := client.FetchProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pull projects: %w", err)
	}

	result := &PullResult{}
	for date, entry := range all {
		if err := store.PutDay(userID, date, entry); err != nil {
			return result, fmt.Errorf("cache day %s: %w", date, err)
		}
		result.Days++
	}
	if _, err := store.SaveProjects(projects); err != nil {
		return result, fmt.Errorf("cache projects: %w", err)
	}
	result.Projects = len(projects)

	return result, nil
}

// StripProject removes a deleted project's allocations from the
// backend copy: fetch everything, strip in memory, rewrite only the
// days that changed. Returns the changed dates in ascending order.
func StripProject(ctx context.Context, client remote.Client, userID, projectID string) ([]string, error) {
	all, err := client.FetchAllAllocations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("strip project %s: %w", projectID, err)
	}

	stripped, changed := reconcile.StripProject(all, projectID)
	for _, date := range changed {
		if err := client.PutDay(ctx, userID, date, stripped[date]); err != nil {
			return nil, fmt.Errorf("strip project %s from day %s: %w", projectID, date, err)
		}
	}
	return changed, nil
}

// LoadAllocations reads from the backend first and falls back to the
// local cache when the backend is unreachable. The bool reports whether
// the data came from the backend.
func LoadAllocations(ctx context.Context, client remote.Client, store *storage.SQLiteStore, userID string) (timesheet.AllAllocations, bool, error) {
	if client != nil {
		all, err := client.FetchAllAllocations(ctx, userID)
		if err == nil {
			return all, true, nil
		}
	}

	all, err := store.AllAllocations(userID)
	if err != nil {
		return nil, false, fmt.Errorf("load cached allocations: %w", err)
	}
	return all, false, nil
}

// LoadProjects mirrors LoadAllocations for the project list.
func LoadProjects(ctx context.Context, client remote.Client, store *storage.SQLiteStore, userID string) ([]timesheet.Project, bool, error) {
	if client != nil {
		projects, err := client.FetchProjects(ctx, userID)
		if err == nil {
			return projects, true, nil
		}
	}

	projects, err := store.ListProjects()
	if err != nil {
		return nil, false, fmt.Errorf("load cached projects: %w", err)
	}
	return projects, false, nil
}
