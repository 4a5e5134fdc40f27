package submission

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"flamtunes/model"
	"flamtunes/repository"
	"flamtunes/storage"
)

// Fixed clock for deterministic object keys and date validation.
var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

type fakeStore struct {
	objects map[string][]byte // "bucket/key"

	uploadErr   error
	downloadErr error
	removeErr   error
	removed     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	full := bucket + "/" + key
	if _, ok := f.objects[full]; ok {
		return storage.ErrObjectExists
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[full] = data
	return nil
}

func (f *fakeStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	if f.downloadErr != nil {
		return nil, 0, f.downloadErr
	}
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, 0, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (f *fakeStore) Remove(ctx context.Context, bucket, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	full := bucket + "/" + key
	f.removed = append(f.removed, full)
	delete(f.objects, full)
	return nil
}

func (f *fakeStore) PublicURL(bucket, key string) string {
	return "http://storage.test/" + bucket + "/" + key
}

func (f *fakeStore) keysIn(bucket string) []string {
	var keys []string
	for full := range f.objects {
		if strings.HasPrefix(full, bucket+"/") {
			keys = append(keys, strings.TrimPrefix(full, bucket+"/"))
		}
	}
	return keys
}

type fakeSubmissionRepo struct {
	subs   map[int64]*model.Submission
	nextID int64

	createErr error
	updateErr error

	lastUpdateID int64
	lastUpdate   *repository.ReviewUpdate
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[int64]*model.Submission), nextID: 1}
}

func (f *fakeSubmissionRepo) CreateSubmission(ctx context.Context, sub *model.Submission) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	stored := *sub
	stored.ID = id
	f.subs[id] = &stored
	return id, nil
}

func (f *fakeSubmissionRepo) GetSubmissionByID(ctx context.Context, id int64) (*model.Submission, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, nil
	}
	c := *sub
	return &c, nil
}

func (f *fakeSubmissionRepo) ListSubmissions(ctx context.Context) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, sub := range f.subs {
		c := *sub
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListSubmissionsByProfile(ctx context.Context, profileID int64) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, sub := range f.subs {
		if sub.ArtistProfileID != nil && *sub.ArtistProfileID == profileID {
			c := *sub
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) UpdateReview(ctx context.Context, id int64, update repository.ReviewUpdate) error {
	f.lastUpdateID = id
	f.lastUpdate = &update
	if f.updateErr != nil {
		return f.updateErr
	}
	sub, ok := f.subs[id]
	if !ok {
		return fmt.Errorf("submission %d not found", id)
	}
	sub.Status = update.Status
	reviewedAt := update.ReviewedAt
	sub.ReviewedAt = &reviewedAt
	sub.ReviewedBy = update.ReviewedBy
	sub.AdminNotes = update.AdminNotes
	sub.ApprovedTrackID = update.ApprovedTrackID
	return nil
}

type fakeTrackRepo struct {
	tracks map[int64]*model.Track
	nextID int64

	createErr error
	deleteErr error
	deleted   []int64
}

func newFakeTrackRepo() *fakeTrackRepo {
	return &fakeTrackRepo{tracks: make(map[int64]*model.Track), nextID: 100}
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
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.tracks, id)
	return nil
}

type fakeNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	subID  int64
	status model.SubmissionStatus
	notes  string
}

func (f *fakeNotifier) StatusChanged(sub *model.Submission, status model.SubmissionStatus, adminNotes string) {
	f.calls = append(f.calls, notifyCall{subID: sub.ID, status: status, notes: adminNotes})
}

type testEnv struct {
	svc      *Service
	subs     *fakeSubmissionRepo
	tracks   *fakeTrackRepo
	store    *fakeStore
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	env := &testEnv{
		subs:     newFakeSubmissionRepo(),
		tracks:   newFakeTrackRepo(),
		store:    newFakeStore(),
		notifier: &fakeNotifier{},
	}
	env.svc = NewService(env.subs, env.tracks, env.store, "pending-bucket", "published-bucket", env.notifier)
	env.svc.now = func() time.Time { return testNow }
	return env
}

func testProfile() *model.ArtistProfile {
	return &model.ArtistProfile{
		ID:           7,
		UserID:       3,
		ArtistName:   "The Test Pilots",
		ContactName:  "Sam Pilot",
		ContactPhone: "555-0100",
	}
}
