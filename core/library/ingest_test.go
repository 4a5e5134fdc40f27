package library

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"flamtunes/model"
	"flamtunes/storage"
)

type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
	removed   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[bucket+"/"+key] = data
	return nil
}

func (f *fakeStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, 0, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (f *fakeStore) Remove(ctx context.Context, bucket, key string) error {
	f.removed = append(f.removed, bucket+"/"+key)
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeStore) PublicURL(bucket, key string) string {
	return "http://storage.test/" + bucket + "/" + key
}

type fakeTrackRepo struct {
	tracks    map[int64]*model.Track
	nextID    int64
	createErr error
	deleted   []int64
}

func newFakeTrackRepo() *fakeTrackRepo {
	return &fakeTrackRepo{tracks: make(map[int64]*model.Track), nextID: 1}
}

func (f *fakeTrackRepo) CreateTrack(ctx context.Context, track *model.Track) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	stored := *track
	stored.ID = id
	f.tracks[id] = &stored
	return id, nil
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
	var out []*model.Track
	for _, track := range f.tracks {
		c := *track
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeTrackRepo) DeleteTrack(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.tracks, id)
	return nil
}

func newTestService() (*Service, *fakeTrackRepo, *fakeStore) {
	tracks := newFakeTrackRepo()
	store := newFakeStore()
	svc := NewService(tracks, store, "published-bucket")
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC) }
	return svc, tracks, store
}

func TestIngestStoresBlobAndRow(t *testing.T) {
	svc, tracks, store := newTestService()

	bpm := 120
	track, err := svc.Ingest(context.Background(), IngestCommand{
		File:        strings.NewReader("jingle bytes"),
		FileName:    "station id.wav",
		FileSize:    12,
		ContentType: "audio/wav",
		Title:       "Station ID",
		Artist:      "Flam Tunes",
		BPM:         &bpm,
		MoodTags:    "branding",
		IsJingle:    true,
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if !track.IsJingle || track.IsBedMusic {
		t.Errorf("flags = jingle %v, bed %v", track.IsJingle, track.IsBedMusic)
	}
	if !strings.HasSuffix(track.StoragePath, "_station_id.wav") {
		t.Errorf("storage path = %q", track.StoragePath)
	}
	if _, ok := store.objects["published-bucket/"+track.StoragePath]; !ok {
		t.Error("blob not stored")
	}
	if stored, _ := tracks.GetTrackByID(context.Background(), track.ID); stored == nil {
		t.Error("track row not created")
	}
}

func TestIngestRequiresFile(t *testing.T) {
	svc, _, store := newTestService()

	_, err := svc.Ingest(context.Background(), IngestCommand{Title: "No Audio"})
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(store.objects) != 0 {
		t.Error("validation failure wrote a blob")
	}
}

func TestIngestCompensatesOnInsertFailure(t *testing.T) {
	svc, tracks, store := newTestService()
	tracks.createErr = errors.New("deadlock")

	_, err := svc.Ingest(context.Background(), IngestCommand{
		File:        strings.NewReader("bytes"),
		FileName:    "track.mp3",
		FileSize:    5,
		ContentType: "audio/mpeg",
		Title:       "Doomed",
	})
	if err == nil || IsValidation(err) {
		t.Fatalf("err = %v, want dependency error", err)
	}
	if len(store.objects) != 0 {
		t.Error("blob left behind after compensation")
	}
	if len(store.removed) != 1 {
		t.Errorf("removed = %v, want one compensating delete", store.removed)
	}
}

func TestDeleteRemovesRowAndBlob(t *testing.T) {
	svc, tracks, store := newTestService()

	track, err := svc.Ingest(context.Background(), IngestCommand{
		File:        strings.NewReader("bytes"),
		FileName:    "track.mp3",
		FileSize:    5,
		ContentType: "audio/mpeg",
		Title:       "Ephemeral",
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := svc.Delete(context.Background(), track.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(tracks.tracks) != 0 {
		t.Error("row survived delete")
	}
	if len(store.objects) != 0 {
		t.Error("blob survived delete")
	}
}

func TestDeleteMissingTrack(t *testing.T) {
	svc, _, store := newTestService()

	err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("err = %v, want ErrTrackNotFound", err)
	}
	if len(store.removed) != 0 {
		t.Error("storage touched for a missing row")
	}
}
