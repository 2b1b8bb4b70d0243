// ABOUTME: HTTP API tests using httptest over a real engine with fake platform pieces
// ABOUTME: Covers history filtering, entry actions, settings round-trips, and error mapping

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastify/pastify/internal/capture"
	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/engine"
	"github.com/pastify/pastify/internal/notify"
	"github.com/pastify/pastify/internal/store"
)

type memClipboard struct{}

func (memClipboard) Name() string                 { return "mem" }
func (memClipboard) Read() (*clip.Content, error) { return &clip.Content{}, nil }
func (memClipboard) WriteText([]byte) error       { return nil }
func (memClipboard) WriteImage([]byte) error      { return nil }
func (memClipboard) Watch() <-chan struct{}       { return nil }
func (memClipboard) Close()                       {}

type stubHotkeys struct{}

func (stubHotkeys) Register(string) error      { return nil }
func (stubHotkeys) Rebind(string) error        { return nil }
func (stubHotkeys) Triggered() <-chan struct{} { return nil }
func (stubHotkeys) Close()                     {}

type okInjector struct{}

func (okInjector) PasteGesture() error { return nil }

type nilResolver struct{}

func (nilResolver) Resolve() *capture.SourceInfo { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine, store.Store) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	e, err := engine.New(context.Background(), engine.Options{
		Store:       st,
		Clipboard:   memClipboard{},
		Hotkeys:     stubHotkeys{},
		Resolver:    nilResolver{},
		Injector:    okInjector{},
		SettleDelay: time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	s := NewServer(e, "127.0.0.1:0")
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, e, st
}

func seedText(t *testing.T, st store.Store, text, source string, at time.Time) *store.Entry {
	t.Helper()
	entry, _, err := st.InsertEntry(context.Background(), &store.Entry{
		ContentType: store.ContentTypeText,
		TextContent: text,
		ContentHash: capture.Fingerprint([]byte(text)),
		SourceApp:   source,
		CreatedAt:   at,
	}, store.DefaultHistory)
	require.NoError(t, err)
	return entry
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHistoryEndpoint(t *testing.T) {
	ts, _, st := newTestServer(t)
	now := time.Now()
	seedText(t, st, "alpha text", "Firefox", now.Add(-2*time.Second))
	seedText(t, st, "beta text", "VS Code", now.Add(-time.Second))

	var resp HistoryResponse
	getJSON(t, ts.URL+"/api/history", &resp)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "beta text", resp.Entries[0].TextContent, "newest first")

	resp = HistoryResponse{}
	getJSON(t, ts.URL+"/api/history?q=alpha", &resp)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "alpha text", resp.Entries[0].TextContent)

	resp = HistoryResponse{}
	getJSON(t, ts.URL+"/api/history?source=Firefox", &resp)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Firefox", resp.Entries[0].SourceApp)
}

func TestHistoryOmitsImagePayload(t *testing.T) {
	ts, _, st := newTestServer(t)
	img := []byte{0x89, 0x50, 0x4e, 0x47, 9, 9, 9}
	_, _, err := st.InsertEntry(context.Background(), &store.Entry{
		ContentType: store.ContentTypeImage,
		ImageData:   img,
		ImageThumb:  []byte{1, 2, 3},
		ContentHash: capture.Fingerprint(img),
		CreatedAt:   time.Now(),
	}, store.DefaultHistory)
	require.NoError(t, err)

	var resp HistoryResponse
	getJSON(t, ts.URL+"/api/history", &resp)
	require.Len(t, resp.Entries, 1)
	assert.True(t, strings.HasPrefix(resp.Entries[0].ImageThumb, "data:image/png;base64,"))
}

func TestDeleteEntry(t *testing.T) {
	ts, _, st := newTestServer(t)
	entry := seedText(t, st, "delete me", "", time.Now())

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/entries/%d", ts.URL, entry.ID), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var list HistoryResponse
	getJSON(t, ts.URL+"/api/history", &list)
	assert.Empty(t, list.Entries)
}

func TestPasteEntry(t *testing.T) {
	ts, _, st := newTestServer(t)
	entry := seedText(t, st, "paste me", "", time.Now())

	resp, err := http.Post(
		fmt.Sprintf("%s/api/entries/%d/paste", ts.URL, entry.ID),
		"application/json",
		strings.NewReader(`{"plain":false}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got EntryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, int64(1), got.UsageCount)
}

func TestPasteUnknownEntryIs404(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/entries/9999/paste", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPinEntry(t *testing.T) {
	ts, _, st := newTestServer(t)
	entry := seedText(t, st, "pin me", "", time.Now())

	resp, err := http.Post(fmt.Sprintf("%s/api/entries/%d/pin", ts.URL, entry.ID), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got EntryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.IsPinned)
}

func TestInvalidEntryID(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/entries/abc/pin", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettingsRoundTrip(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var current SettingsResponse
	getJSON(t, ts.URL+"/api/settings", &current)
	assert.Equal(t, store.DefaultHistory, current.MaxHistory)

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/settings",
		strings.NewReader(`{"max_history":300,"blacklist":["KeePass"]}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated SettingsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, 300, updated.MaxHistory)
	assert.Equal(t, []string{"KeePass"}, updated.Blacklist)
}

func TestSettingsRejectsBadHotkey(t *testing.T) {
	ts, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/settings",
		strings.NewReader(`{"hotkey":"not a combo"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventStream(t *testing.T) {
	ts, e, st := newTestServer(t)
	entry := seedText(t, st, "stream me", "", time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan(), "expected the connected handshake")
	assert.Equal(t, "event: connected", scanner.Text())

	// A paste publishes a window.hide event to the stream
	go func() {
		_, _ = e.Paste(context.Background(), entry.ID, false)
	}()

	for scanner.Scan() {
		if scanner.Text() == "event: "+string(notify.KindWindowHide) {
			return
		}
	}
	t.Fatal("window.hide event never arrived")
}

func TestHealth(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp := getJSON(t, ts.URL+"/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
