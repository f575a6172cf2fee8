package server_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"tycoon/internal/server"
)

// TestHubRegistryHandlesConcurrentRequests creates games and looks up
// websocket hubs from parallel goroutines, the way real HTTP traffic hits
// the handlers. Run with -race to catch unguarded map access.
func TestHubRegistryHandlesConcurrentRequests(t *testing.T) {
	h := server.NewHandlers(nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/api/create", nil)
				h.HandleCreateGame(rec, req)
				if rec.Code != http.StatusSeeOther {
					t.Errorf("create: got status %d", rec.Code)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/ws?game=missing", nil)
				h.HandleWS(rec, req)
				if rec.Code != http.StatusNotFound {
					t.Errorf("lookup of a missing game: got status %d", rec.Code)
					return
				}
			}
		}()
	}
	wg.Wait()

	if len(h.Hubs) != 100 {
		t.Errorf("expected 100 hubs, got %d", len(h.Hubs))
	}
}
