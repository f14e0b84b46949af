package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/careerworker/internal/assessment"
	"github.com/muhammadolammi/careerworker/internal/config"
	"github.com/muhammadolammi/careerworker/internal/database"
	"github.com/muhammadolammi/careerworker/internal/insights"
	"github.com/muhammadolammi/careerworker/internal/salary"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]database.User
	insights  map[string]database.IndustryInsight
	uploads   map[uuid.UUID]database.ResumeUpload
	upserts   []database.UpsertIndustryInsightParams
	saved     []database.CreateAssessmentParams
	resumes   map[uuid.UUID]string
	statuses  []string
	stale     []string
	upsertErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]database.User{},
		insights: map[string]database.IndustryInsight{},
		uploads:  map[uuid.UUID]database.ResumeUpload{},
		resumes:  map[uuid.UUID]string{},
	}
}

func (m *memStore) GetUserByID(_ context.Context, id uuid.UUID) (database.User, error) {
	u, ok := m.users[id]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *memStore) GetIndustryInsight(_ context.Context, industry string) (database.IndustryInsight, error) {
	i, ok := m.insights[industry]
	if !ok {
		return database.IndustryInsight{}, sql.ErrNoRows
	}
	return i, nil
}

func (m *memStore) UpsertIndustryInsight(_ context.Context, arg database.UpsertIndustryInsightParams) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, arg)
	return nil
}

func (m *memStore) ListStaleIndustries(context.Context, time.Time) ([]string, error) {
	return m.stale, nil
}

func (m *memStore) GetIndustryProfile(_ context.Context, industry string) (database.IndustryProfile, error) {
	for _, u := range m.users {
		if u.Industry.String == industry {
			return database.IndustryProfile{Location: u.Location.String, Experience: u.Experience.Float64}, nil
		}
	}
	return database.IndustryProfile{}, sql.ErrNoRows
}

func (m *memStore) CreateAssessment(_ context.Context, arg database.CreateAssessmentParams) (database.Assessment, error) {
	m.saved = append(m.saved, arg)
	return database.Assessment{ID: uuid.New(), UserID: arg.UserID, QuizScore: arg.QuizScore}, nil
}

func (m *memStore) GetResumeUpload(_ context.Context, id uuid.UUID) (database.ResumeUpload, error) {
	u, ok := m.uploads[id]
	if !ok {
		return database.ResumeUpload{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *memStore) UpsertResumeContent(_ context.Context, arg database.UpsertResumeContentParams) error {
	m.resumes[arg.UserID] = arg.Content
	return nil
}

func (m *memStore) UpdateJobStatus(ctx context.Context, arg database.UpdateJobStatusParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, arg.Status)
	return nil
}

type memPublisher struct {
	updates []JobUpdate
}

func (p *memPublisher) PublishJobUpdate(_ string, update JobUpdate) error {
	p.updates = append(p.updates, update)
	return nil
}

type fakeGen struct {
	text string
	err  error
}

func (f fakeGen) Generate(context.Context, string) (string, error) { return f.text, f.err }

// cancellingGen simulates a shutdown arriving while the model is working.
type cancellingGen struct{ cancel context.CancelFunc }

func (g cancellingGen) Generate(ctx context.Context, _ string) (string, error) {
	g.cancel()
	return "", ctx.Err()
}

type fakeImprover struct{ out string }

func (f fakeImprover) Improve(context.Context, string, string) (string, error) { return f.out, nil }

type fakeBucket struct{ body []byte }

func (f fakeBucket) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func newTestWorker(store *memStore, gen fakeGen) (*WorkerConfig, *memPublisher) {
	pub := &memPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &WorkerConfig{
		DB:          store,
		Insights:    insights.NewService(gen, logger),
		Assessments: assessment.NewService(gen, logger),
		Publisher:   pub,
		Logger:      logger,
		Now:         func() time.Time { return fixedNow },
	}, pub
}

func addUser(store *memStore, industry, location string, years float64) uuid.UUID {
	id := uuid.New()
	store.users[id] = database.User{
		ID:         id,
		Industry:   sql.NullString{String: industry, Valid: industry != ""},
		Location:   sql.NullString{String: location, Valid: location != ""},
		Experience: sql.NullFloat64{Float64: years, Valid: true},
		Skills:     []string{"Go"},
		UpdatedAt:  fixedNow.Add(-time.Hour),
	}
	return id
}

func jobBody(t *testing.T, job Job) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessInsightsJob(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "tech-software-development-india", "India", 2)
	w, pub := newTestWorker(store, fakeGen{err: errors.New("model offline")})

	job := Job{ID: uuid.New(), Kind: JobInsights, UserID: userID}
	w.process(context.Background(), 1, jobBody(t, job))

	require.Len(t, store.upserts, 1)
	up := store.upserts[0]
	assert.Equal(t, "tech-software-development-india", up.Industry)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), up.NextUpdate)

	var ranges []salary.Range
	require.NoError(t, json.Unmarshal(up.SalaryRanges, &ranges))
	require.Len(t, ranges, 5)
	for _, r := range ranges {
		assert.Less(t, r.Min, r.Median)
		assert.Less(t, r.Median, r.Max)
	}

	assert.Equal(t, []string{StatusProcessing, StatusCompleted}, store.statuses)
	require.Len(t, pub.updates, 2)
	assert.Equal(t, StatusCompleted, pub.updates[1].Status)
	assert.NotEmpty(t, pub.updates[1].Result)
}

func TestProcessInsightsSkipsCurrent(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "finance", "UK", 5)
	store.insights["finance"] = database.IndustryInsight{
		Industry:     "finance",
		SalaryRanges: json.RawMessage(`[{"role":"Analyst"}]`),
		GrowthRate:   4,
		LastUpdated:  fixedNow,
	}
	w, pub := newTestWorker(store, fakeGen{})

	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobInsights, UserID: userID}))
	assert.Empty(t, store.upserts)
	assert.Equal(t, "insights are current", pub.updates[1].Message)

	force := json.RawMessage(`{"force": true}`)
	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobInsights, UserID: userID, Payload: force}))
	assert.Len(t, store.upserts, 1)
}

func TestProcessFailures(t *testing.T) {
	store := newMemStore()
	noIndustry := addUser(store, "", "", 0)
	w, pub := newTestWorker(store, fakeGen{})

	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobInsights, UserID: noIndustry}))
	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: "teleport", UserID: noIndustry}))
	w.process(context.Background(), 1, []byte("not json"))

	assert.Equal(t, []string{StatusProcessing, StatusFailed, StatusProcessing, StatusFailed}, store.statuses)
	require.Len(t, pub.updates, 4)
	assert.Equal(t, "teleport failed", pub.updates[3].Message)
}

func TestProcessRequeuesInterruptedJob(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "finance", "UK", 5)
	w, pub := newTestWorker(store, fakeGen{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Insights = insights.NewService(cancellingGen{cancel: cancel}, w.Logger)

	requeue := w.process(ctx, 1, jobBody(t, Job{ID: uuid.New(), Kind: JobInsights, UserID: userID}))
	assert.True(t, requeue)
	assert.Empty(t, store.upserts)
	assert.Equal(t, []string{StatusProcessing, StatusQueued}, store.statuses)
	require.Len(t, pub.updates, 2)
	assert.Equal(t, "insights interrupted", pub.updates[1].Message)

	// Once shut down, nothing new is started.
	assert.True(t, w.process(ctx, 1, jobBody(t, Job{ID: uuid.New(), Kind: JobInsights, UserID: userID})))
	assert.Len(t, store.statuses, 2)
}

func TestProcessAcksFinishedJobs(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "finance", "UK", 5)
	w, _ := newTestWorker(store, fakeGen{err: errors.New("model offline")})

	assert.False(t, w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobInsights, UserID: userID})))
	assert.False(t, w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: "teleport", UserID: userID})))
	assert.False(t, w.process(context.Background(), 1, []byte("not json")))
}

func TestProcessAssessmentJob(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "tech", "Berlin", 3)
	w, pub := newTestWorker(store, fakeGen{text: "Revisit Go concurrency primitives."})

	payload, err := json.Marshal(AssessmentPayload{
		Questions: []assessment.Question{
			{Question: "q1", CorrectAnswer: "a"},
			{Question: "q2", CorrectAnswer: "b"},
		},
		Answers: []string{"a", "c"},
	})
	require.NoError(t, err)
	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobAssessment, UserID: userID, Payload: payload}))

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, 50.0, saved.QuizScore)
	assert.Equal(t, assessment.CategoryTechnical, saved.Category)
	assert.Equal(t, sql.NullString{String: "Revisit Go concurrency primitives.", Valid: true}, saved.ImprovementTip)
	assert.Equal(t, StatusCompleted, pub.updates[1].Status)
}

func TestProcessQuizJob(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "tech", "", 1)
	w, pub := newTestWorker(store, fakeGen{text: `{"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswer":"a"}]}`})

	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobQuiz, UserID: userID}))
	require.Len(t, pub.updates, 2)
	assert.Equal(t, "1 questions generated", pub.updates[1].Message)

	var qs []assessment.Question
	require.NoError(t, json.Unmarshal(pub.updates[1].Result, &qs))
	assert.Equal(t, "q", qs[0].Question)
}

func TestProcessResumeImportJob(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "tech", "", 1)
	uploadID := uuid.New()
	store.uploads[uploadID] = database.ResumeUpload{ID: uploadID, UserID: userID, Mime: "text/plain", ObjectKey: "u/cv.txt", OriginalFilename: "cv.txt"}

	w, _ := newTestWorker(store, fakeGen{})
	w.R2 = &config.R2{Bucket: "resumes"}
	w.Bucket = fakeBucket{body: []byte("Jane Doe\r\n\r\n\r\nGo developer  ")}

	payload := json.RawMessage(`{"upload_id": "` + uploadID.String() + `"}`)
	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobResumeImport, UserID: userID, Payload: payload}))
	assert.Equal(t, "Jane Doe\n\nGo developer", store.resumes[userID])

	other := addUser(store, "tech", "", 1)
	w.process(context.Background(), 1, jobBody(t, Job{ID: uuid.New(), Kind: JobResumeImport, UserID: other, Payload: payload}))
	_, imported := store.resumes[other]
	assert.False(t, imported)
}

func TestProcessResumeImproveJob(t *testing.T) {
	store := newMemStore()
	userID := addUser(store, "tech-software", "", 1)
	w, pub := newTestWorker(store, fakeGen{})

	payload := json.RawMessage(`{"type": "experience", "current": "did backend stuff"}`)
	job := Job{ID: uuid.New(), Kind: JobResumeImprove, UserID: userID, Payload: payload}

	w.process(context.Background(), 1, jobBody(t, job))
	assert.Equal(t, StatusFailed, pub.updates[1].Status, "no improver configured")

	w.Improver = fakeImprover{out: " Built Go services handling 10k rps. "}
	w.process(context.Background(), 1, jobBody(t, job))
	require.Len(t, pub.updates, 4)
	assert.JSONEq(t, `{"improved": "Built Go services handling 10k rps."}`, string(pub.updates[3].Result))
}

func TestRefreshStaleInsights(t *testing.T) {
	store := newMemStore()
	addUser(store, "finance", "Canada", 8)
	store.stale = []string{"finance", "orphan"}
	w, _ := newTestWorker(store, fakeGen{})

	n, err := w.RefreshStaleInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.upserts, 2)
	assert.Equal(t, "finance", store.upserts[0].Industry)

	var ranges []salary.Range
	require.NoError(t, json.Unmarshal(store.upserts[1].SalaryRanges, &ranges))
	assert.Equal(t, "Global", ranges[0].Location)
}

func TestRetry(t *testing.T) {
	calls := 0
	got, err := retry(context.Background(), 3, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("transient")
		}
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = retry(ctx, 3, func() (int, error) { return 0, errors.New("down") })
	assert.ErrorIs(t, err, context.Canceled)
}
