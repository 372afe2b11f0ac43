// Package testing provides an in-process fake of the tracker API.
package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rileyhilliard/usagedash/internal/api"
)

// Request records one call the fake received.
type Request struct {
	Method string
	Path   string
	Query  url.Values
}

// FakeServer serves the tracker endpoints from in-memory fixtures.
// Fields may be changed between requests; hold no references across calls.
type FakeServer struct {
	server *httptest.Server

	mu sync.Mutex

	// Fixtures
	Status         api.Status
	Hourly         []api.HourlyBucket
	Apps           map[api.Period][]api.AppUsage
	Categories     map[api.Period][]api.CategorySlice
	WeekComparison []api.WeekdayAverage
	Trend          []api.TrendPoint
	Week           api.WeekSummary
	Today          api.TodaySummary
	Autostart      bool

	// Failure injection
	FailStatus      map[string]int           // path -> HTTP status to return
	Malformed       map[string]bool          // path -> reply with broken JSON
	NoContent       map[string]bool          // path -> handle, then reply 204 with no body
	Delay           map[string]time.Duration // path -> sleep before replying
	RefuseAutostart bool                     // enable/disable reply with false

	// Call tracking
	Requests []Request
}

// NewFakeServer starts a fake tracker with an idle, empty session.
func NewFakeServer() *FakeServer {
	f := &FakeServer{
		Apps:       make(map[api.Period][]api.AppUsage),
		Categories: make(map[api.Period][]api.CategorySlice),
		FailStatus: make(map[string]int),
		Malformed:  make(map[string]bool),
		NoContent:  make(map[string]bool),
		Delay:      make(map[string]time.Duration),
	}
	f.server = httptest.NewServer(f.routes())
	return f
}

// URL returns the base address to hand to api.NewClient.
func (f *FakeServer) URL() string {
	return f.server.URL
}

// Client returns an api.Client pointed at the fake.
func (f *FakeServer) Client(opts ...api.Option) *api.Client {
	return api.NewClient(f.server.URL, opts...)
}

// Close shuts the fake down.
func (f *FakeServer) Close() {
	f.server.Close()
}

// Update runs fn with the fixture lock held.
func (f *FakeServer) Update(fn func(f *FakeServer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// Count returns how many times method+path was requested.
func (f *FakeServer) Count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.Requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastQuery returns the query of the most recent request to path, or nil.
func (f *FakeServer) LastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Requests) - 1; i >= 0; i-- {
		if f.Requests[i].Path == path {
			return f.Requests[i].Query
		}
	}
	return nil
}

// Running reports the fake's monitoring state.
func (f *FakeServer) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Status.Running
}

func (f *FakeServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+api.PathStatus, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, f.Status)
	})
	mux.HandleFunc("POST "+api.PathStart, func(w http.ResponseWriter, r *http.Request) {
		f.Status.Running = true
		f.reply(w, map[string]string{"status": "started"})
	})
	mux.HandleFunc("POST "+api.PathStop, func(w http.ResponseWriter, r *http.Request) {
		f.Status.Running = false
		f.reply(w, map[string]string{"status": "stopped"})
	})
	mux.HandleFunc("GET "+api.PathHourly, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, nonNil(f.Hourly))
	})
	mux.HandleFunc("GET "+api.PathApps, func(w http.ResponseWriter, r *http.Request) {
		apps := f.Apps[periodOf(r)]
		if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 0 && limit < len(apps) {
			apps = apps[:limit]
		}
		f.reply(w, nonNil(apps))
	})
	mux.HandleFunc("GET "+api.PathCategories, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, nonNil(f.Categories[periodOf(r)]))
	})
	mux.HandleFunc("GET "+api.PathWeekComparison, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, nonNil(f.WeekComparison))
	})
	mux.HandleFunc("GET "+api.PathTrend, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, nonNil(f.Trend))
	})
	mux.HandleFunc("GET "+api.PathStatsWeek, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, f.Week)
	})
	mux.HandleFunc("GET "+api.PathStatsToday, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, f.Today)
	})
	mux.HandleFunc("GET "+api.PathAutostart, func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, api.AutostartState{Enabled: f.Autostart})
	})
	mux.HandleFunc("POST "+api.PathAutostartEnable, func(w http.ResponseWriter, r *http.Request) {
		ok := !f.RefuseAutostart
		if ok {
			f.Autostart = true
		}
		f.reply(w, map[string]bool{"enabled": ok})
	})
	mux.HandleFunc("POST "+api.PathAutostartDisable, func(w http.ResponseWriter, r *http.Request) {
		ok := !f.RefuseAutostart
		if ok {
			f.Autostart = false
		}
		f.reply(w, map[string]bool{"disabled": ok})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.Requests = append(f.Requests, Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()})
		delay := f.Delay[r.URL.Path]
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		if code, ok := f.FailStatus[r.URL.Path]; ok {
			http.Error(w, http.StatusText(code), code)
			return
		}
		if f.Malformed[r.URL.Path] {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"running": tru`))
			return
		}
		if f.NoContent[r.URL.Path] {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, r)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// reply writes v as JSON. Called with f.mu held.
func (f *FakeServer) reply(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func periodOf(r *http.Request) api.Period {
	p := api.Period(r.URL.Query().Get("period"))
	if p == "" {
		return api.PeriodToday
	}
	if p != api.PeriodToday {
		return api.PeriodAll
	}
	return p
}

// nonNil keeps empty fixtures encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
