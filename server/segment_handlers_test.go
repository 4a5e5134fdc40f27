package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flamtunes/model"
)

func TestListSegmentsHandler(t *testing.T) {
	h, _, _, _ := newTestHandler()
	segs := h.segmentRepo.(*fakeSegmentRepo).segments
	segs[1] = &model.Segment{ID: 1, Type: model.SegmentAITalk, TextScript: "Welcome back."}
	segs[2] = &model.Segment{ID: 2, Type: model.SegmentNews, TextScript: "Headlines."}
	segs[3] = &model.Segment{ID: 3, Type: model.SegmentNews, TextScript: "More headlines."}

	w := httptest.NewRecorder()
	h.ListSegmentsHandler(w, httptest.NewRequest(http.MethodGet, "/api/admin/segments", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var got []*model.Segment
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != 3 {
		t.Errorf("got[0].ID = %d, want newest first", got[0].ID)
	}

	// Lowercase type filter is accepted.
	w = httptest.NewRecorder()
	h.ListSegmentsHandler(w, httptest.NewRequest(http.MethodGet, "/api/admin/segments?type=news", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode filtered: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("filtered len = %d, want 2", len(got))
	}

	w = httptest.NewRecorder()
	h.ListSegmentsHandler(w, httptest.NewRequest(http.MethodGet, "/api/admin/segments?type=PODCAST", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown type: status = %d, want 400", w.Code)
	}
}

func TestListSegmentsHandlerLimit(t *testing.T) {
	h, _, _, _ := newTestHandler()
	segs := h.segmentRepo.(*fakeSegmentRepo).segments
	for i := int64(1); i <= 5; i++ {
		segs[i] = &model.Segment{ID: i, Type: model.SegmentAd}
	}

	w := httptest.NewRecorder()
	h.ListSegmentsHandler(w, httptest.NewRequest(http.MethodGet, "/api/admin/segments?limit=2", nil))
	var got []*model.Segment
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
