package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"flamtunes/config"
	"flamtunes/core/auth"
	"flamtunes/core/live"
	"flamtunes/model"
)

type fakeRequestRepo struct {
	requests map[int64]*model.Request
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*model.Request), nextID: 1}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *model.Request) error {
	req.ID = f.nextID
	f.nextID++
	req.CreatedAt = time.Now()
	stored := *req
	f.requests[req.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	c := *req
	return &c, nil
}

func (f *fakeRequestRepo) ListRecent(ctx context.Context, limit int) ([]*model.Request, error) {
	var out []*model.Request
	for _, req := range f.requests {
		if len(out) == limit {
			break
		}
		c := *req
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeRequestRepo) Mark(ctx context.Context, id int64, status model.RequestStatus, handledBy string) (*model.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	req.Status = status
	req.HandledBy = handledBy
	c := *req
	return &c, nil
}

type fakeTrackRepo struct {
	tracks map[int64]*model.Track
}

func (f *fakeTrackRepo) CreateTrack(ctx context.Context, track *model.Track) (int64, error) {
	return 0, nil
}

func (f *fakeTrackRepo) GetTrackByID(ctx context.Context, id int64) (*model.Track, error) {
	track, ok := f.tracks[id]
	if !ok {
		return nil, nil
	}
	c := *track
	return &c, nil
}

func (f *fakeTrackRepo) ListTracks(ctx context.Context) ([]*model.Track, error) {
	return nil, nil
}

func (f *fakeTrackRepo) DeleteTrack(ctx context.Context, id int64) error {
	return nil
}

type fakeNowPlayingRepo struct {
	entries   []*model.NowPlaying
	nextID    int64
	closedAt  []time.Time
}

func (f *fakeNowPlayingRepo) CloseOpen(ctx context.Context, endedAt time.Time) error {
	f.closedAt = append(f.closedAt, endedAt)
	for _, e := range f.entries {
		if e.EndedAt == nil {
			t := endedAt
			e.EndedAt = &t
		}
	}
	return nil
}

func (f *fakeNowPlayingRepo) Create(ctx context.Context, entry *model.NowPlaying) error {
	f.nextID++
	entry.ID = f.nextID
	stored := *entry
	f.entries = append(f.entries, &stored)
	return nil
}

func (f *fakeNowPlayingRepo) GetCurrent(ctx context.Context) (*model.NowPlaying, error) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].EndedAt == nil {
			c := *f.entries[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeNowPlayingRepo) ListHistory(ctx context.Context, limit int) ([]*model.NowPlaying, error) {
	var out []*model.NowPlaying
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		c := *f.entries[i]
		out = append(out, &c)
	}
	return out, nil
}

type fakeSegmentRepo struct {
	segments map[int64]*model.Segment
}

func (f *fakeSegmentRepo) GetByID(_ context.Context, id int64) (*model.Segment, error) {
	return f.segments[id], nil
}

func (f *fakeSegmentRepo) List(_ context.Context, segType model.SegmentType, limit int) ([]*model.Segment, error) {
	var segs []*model.Segment
	for _, seg := range f.segments {
		if segType == "" || seg.Type == segType {
			segs = append(segs, seg)
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].ID > segs[j].ID })
	if len(segs) > limit {
		segs = segs[:limit]
	}
	return segs, nil
}

func newTestHandler() (*APIHandler, *fakeRequestRepo, *fakeNowPlayingRepo, *fakeTrackRepo) {
	reqRepo := newFakeRequestRepo()
	npRepo := &fakeNowPlayingRepo{}
	trackRepo := &fakeTrackRepo{tracks: make(map[int64]*model.Track)}
	segmentRepo := &fakeSegmentRepo{segments: make(map[int64]*model.Segment)}

	cfg := &config.Config{InternalAPIKey: "test-key"}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	h := NewAPIHandler(
		nil, nil, trackRepo, nil,
		nil, nil, reqRepo, npRepo, segmentRepo,
		nil, nil, tokens, live.NewHub(), cfg)
	return h, reqRepo, npRepo, trackRepo
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestCreateRequestHandler(t *testing.T) {
	h, repo, _, trackRepo := newTestHandler()
	trackRepo.tracks[9] = &model.Track{ID: 9, Title: "Night Drive"}

	trackID := int64(9)
	w := postJSON(t, h.CreateRequestHandler, "/api/requests", map[string]interface{}{
		"name":             "Sam",
		"message":          "play Night Drive!",
		"requestedTrackId": trackID,
	}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var got model.Request
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != model.RequestPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
	if len(repo.requests) != 1 {
		t.Errorf("stored %d requests", len(repo.requests))
	}
}

func TestCreateRequestHandlerValidation(t *testing.T) {
	h, repo, _, _ := newTestHandler()

	w := postJSON(t, h.CreateRequestHandler, "/api/requests", map[string]string{"message": "  "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty message: status = %d", w.Code)
	}

	w = postJSON(t, h.CreateRequestHandler, "/api/requests", map[string]interface{}{
		"message":          "play something",
		"requestedTrackId": 404,
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown track: status = %d", w.Code)
	}

	if len(repo.requests) != 0 {
		t.Errorf("invalid input stored %d requests", len(repo.requests))
	}
}

func TestMarkRequestHandler(t *testing.T) {
	h, repo, _, _ := newTestHandler()
	repo.requests[1] = &model.Request{ID: 1, Message: "hi", Status: model.RequestPending}
	repo.nextID = 2

	handler := withIdentity(h.MarkRequestHandler, auth.Identity{UserID: 2, Email: "admin@flamtunes.com", IsAdmin: true})

	w := postJSON(t, handler, "/api/admin/requests/mark", map[string]interface{}{
		"requestId": 1,
		"status":    "queued",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if repo.requests[1].Status != model.RequestQueued {
		t.Errorf("status = %s", repo.requests[1].Status)
	}
	if repo.requests[1].HandledBy != "admin@flamtunes.com" {
		t.Errorf("handled by = %q", repo.requests[1].HandledBy)
	}

	w = postJSON(t, handler, "/api/admin/requests/mark", map[string]interface{}{
		"requestId": 1,
		"status":    "PENDING",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("PENDING mark: status = %d", w.Code)
	}

	w = postJSON(t, handler, "/api/admin/requests/mark", map[string]interface{}{
		"requestId": 99,
		"status":    "PLAYED",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing request: status = %d", w.Code)
	}
}

// withIdentity injects an authenticated identity the way AuthMiddleware
// would.
func withIdentity(next http.HandlerFunc, id auth.Identity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), identityKey, id)
		next(w, r.WithContext(ctx))
	}
}

func TestAuthMiddleware(t *testing.T) {
	h, _, _, _ := newTestHandler()

	var captured auth.Identity
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/artist/profile", nil)
	w := httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/artist/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d", w.Code)
	}

	token, err := h.tokens.Generate(auth.Identity{UserID: 5, Email: "artist@example.com"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/artist/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d", w.Code)
	}
	if captured.UserID != 5 || captured.Email != "artist@example.com" {
		t.Errorf("identity = %+v", captured)
	}
}

func TestAdminMiddleware(t *testing.T) {
	h, _, _, _ := newTestHandler()

	protected := h.AdminMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token, err := h.tokens.Generate(auth.Identity{UserID: 5, Email: "artist@example.com"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/tracks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin: status = %d", w.Code)
	}

	token, err = h.tokens.Generate(auth.Identity{UserID: 1, Email: "admin@flamtunes.com", IsAdmin: true})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/tracks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin: status = %d", w.Code)
	}
}

func TestInternalMiddleware(t *testing.T) {
	h, _, _, _ := newTestHandler()

	protected := h.InternalMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/internal/now-playing", nil)
	w := httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/internal/now-playing", nil)
	req.Header.Set("X-Internal-Key", "wrong")
	w = httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/internal/now-playing", nil)
	req.Header.Set("X-Internal-Key", "test-key")
	w = httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("correct key: status = %d", w.Code)
	}

	// A blank configured key must not mean open access.
	h.cfg.InternalAPIKey = ""
	req = httptest.NewRequest(http.MethodPost, "/api/internal/now-playing", nil)
	req.Header.Set("X-Internal-Key", "")
	w = httptest.NewRecorder()
	protected(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("blank configured key: status = %d", w.Code)
	}
}

func TestIngestNowPlayingHandler(t *testing.T) {
	h, _, npRepo, trackRepo := newTestHandler()
	trackRepo.tracks[9] = &model.Track{ID: 9, Title: "Night Drive"}

	trackID := int64(9)
	w := postJSON(t, h.IngestNowPlayingHandler, "/api/internal/now-playing", map[string]interface{}{
		"itemType": "TRACK",
		"trackId":  trackID,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var entry model.NowPlaying
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.Track == nil || entry.Track.Title != "Night Drive" {
		t.Errorf("track not attached: %+v", entry.Track)
	}
	if len(npRepo.closedAt) != 1 {
		t.Errorf("CloseOpen called %d times", len(npRepo.closedAt))
	}

	// The next report closes the previous entry.
	h.segmentRepo.(*fakeSegmentRepo).segments[3] = &model.Segment{
		ID: 3, Type: model.SegmentNews, TextScript: "Top of the hour news.",
	}
	w = postJSON(t, h.IngestNowPlayingHandler, "/api/internal/now-playing", map[string]interface{}{
		"itemType":  "SEGMENT",
		"segmentId": 3,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("second report: status = %d", w.Code)
	}
	var second model.NowPlaying
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode second report: %v", err)
	}
	if second.Segment == nil || second.Segment.Type != model.SegmentNews {
		t.Errorf("segment not attached: %+v", second.Segment)
	}

	current, err := npRepo.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if current == nil || current.ItemType != model.ItemSegment {
		t.Fatalf("current = %+v", current)
	}
	if npRepo.entries[0].EndedAt == nil {
		t.Error("previous entry not closed")
	}
}

func TestIngestNowPlayingValidation(t *testing.T) {
	h, _, npRepo, _ := newTestHandler()

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown item type", map[string]interface{}{"itemType": "JINGLE"}},
		{"track without id", map[string]interface{}{"itemType": "TRACK"}},
		{"segment without id", map[string]interface{}{"itemType": "SEGMENT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.IngestNowPlayingHandler, "/api/internal/now-playing", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d", w.Code)
			}
		})
	}
	if len(npRepo.entries) != 0 {
		t.Errorf("invalid reports stored %d entries", len(npRepo.entries))
	}
}

func TestGetHistoryHandler(t *testing.T) {
	h, _, npRepo, _ := newTestHandler()
	for i := 0; i < 30; i++ {
		npRepo.Create(context.Background(), &model.NowPlaying{
			StartedAt: time.Now().Add(time.Duration(-i) * time.Minute),
			ItemType:  model.ItemTrack,
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	h.GetHistoryHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var entries []*model.NowPlaying
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("default limit returned %d entries", len(entries))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history?limit=5", nil)
	w = httptest.NewRecorder()
	h.GetHistoryHandler(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("limit=5 returned %d entries", len(entries))
	}
}
