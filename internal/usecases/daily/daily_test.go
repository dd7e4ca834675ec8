package dailyService

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin/games/daily-guess/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/games/daily-guess/internal/domain"
	"github.com/admin/games/daily-guess/internal/pkg/metrics"
	"github.com/admin/games/daily-guess/internal/ports/store"
	dailyRepo "github.com/admin/games/daily-guess/internal/repository/daily"
	imageRepo "github.com/admin/games/daily-guess/internal/repository/image"
	imageUsageRepo "github.com/admin/games/daily-guess/internal/repository/image_usage"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.GameEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.GameEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) ofType(t domain.EventType) []domain.GameEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.GameEvent
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	svc       *Service
	store     store.Store
	clock     *fakeClock
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T, wrap func(*inmemory.Store) store.Store, opts ...inmemory.Option) *fixture {
	t.Helper()

	clock := &fakeClock{now: time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)}
	mem := inmemory.NewStore(append([]inmemory.Option{inmemory.WithClock(clock.Now)}, opts...)...)

	var s store.Store = mem
	if wrap != nil {
		s = wrap(mem)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := &recordingPublisher{}
	m := metrics.NewMetrics("test", prometheus.NewRegistry())

	svc := New(
		imageRepo.New(s, log),
		imageUsageRepo.New(s, log),
		dailyRepo.New(s, log),
		publisher,
		m,
		log,
	)
	svc.SetClock(clock.Now)

	return &fixture{svc: svc, store: s, clock: clock, publisher: publisher, metrics: m}
}

func (f *fixture) seed(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := f.svc.AddImage(context.Background(), domain.ImageInput{
			ID:       id,
			Name:     "image " + id,
			Labels:   []string{id},
			ImageURL: "https://img.example/" + id + ".jpg",
		})
		require.NoError(t, err)
	}
}

func TestGetDailyImage_EmptyCatalog(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.GetDailyImage(context.Background())
	require.ErrorIs(t, err, domain.ErrNoImagesSeeded)
	assert.Empty(t, f.publisher.ofType(domain.EventDailyPicked))
}

func TestGetDailyImage_StableWithinDay(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "a", "b", "c")
	ctx := context.Background()

	f.clock.Set(time.Date(2025, 9, 15, 0, 0, 1, 0, time.UTC))
	first, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DayKey("2025-09-15"), first.DateUTC)

	f.clock.Set(time.Date(2025, 9, 15, 23, 59, 59, 0, time.UTC))
	second, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Image.ID, second.Image.ID)
	assert.Equal(t, first.DateUTC, second.DateUTC)
	assert.Len(t, f.publisher.ofType(domain.EventDailyPicked), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DailyPicks.WithLabelValues("claimed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DailyPicks.WithLabelValues("cached")))
}

func TestGetDailyImage_PrefersNeverUsed(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "a", "b")
	ctx := context.Background()

	require.NoError(t, f.svc.UsageRepo.MarkUsed(ctx, "a", 20250101))

	challenge, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", challenge.Image.ID)

	scores, err := f.svc.UsageRepo.Scores(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20250915), scores["b"])
	assert.Equal(t, int64(20250101), scores["a"])
}

func TestGetDailyImage_RotatesThroughCatalog(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "a", "b", "c")
	ctx := context.Background()

	start := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	var picked []string
	for i := 0; i < 4; i++ {
		f.clock.Set(start.AddDate(0, 0, i))
		challenge, err := f.svc.GetDailyImage(ctx)
		require.NoError(t, err)
		picked = append(picked, challenge.Image.ID)
	}

	assert.Equal(t, []string{"a", "b", "c", "a"}, picked)
}

func TestGetDailyImage_ConcurrentCallersConverge(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "a", "b", "c")

	const callers = 32
	var wg sync.WaitGroup
	ids := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			challenge, err := f.svc.GetDailyImage(context.Background())
			errs[i] = err
			if err == nil {
				ids[i] = challenge.Image.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Len(t, f.publisher.ofType(domain.EventDailyPicked), 1)
}

func TestGetDailyImage_FallbackWithoutClaim(t *testing.T) {
	f := newFixture(t, nil, inmemory.WithoutClaim())
	f.seed(t, "a", "b")
	ctx := context.Background()

	first, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.Image.ID)

	second, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", second.Image.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DailyPicks.WithLabelValues("fallback")))
	assert.Len(t, f.publisher.ofType(domain.EventDailyPicked), 1)
}

// hiddenDailyStore прячет первый Get ключа дня, как будто другой инстанс закрепил выбор между чтением и claim
type hiddenDailyStore struct {
	*inmemory.Store
	mu     sync.Mutex
	hidden bool
}

func (s *hiddenDailyStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	hide := !s.hidden && strings.HasPrefix(key, "daily:")
	if hide {
		s.hidden = true
	}
	s.mu.Unlock()

	if hide {
		return "", domain.ErrKeyNotFound
	}
	return s.Store.Get(ctx, key)
}

func TestGetDailyImage_AdoptsWinnerOfLostClaim(t *testing.T) {
	f := newFixture(t, func(mem *inmemory.Store) store.Store {
		return &hiddenDailyStore{Store: mem}
	})
	f.seed(t, "a", "b")
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, "daily:2025-09-15", "b", time.Hour))

	challenge, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", challenge.Image.ID)

	scores, err := f.svc.UsageRepo.Scores(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20250915), scores["b"])
	assert.Equal(t, int64(0), scores["a"])

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DailyPicks.WithLabelValues("adopted")))
	assert.Empty(t, f.publisher.ofType(domain.EventDailyPicked))
}

func TestGetDailyImage_PickTTLEndsAtMidnight(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "a", "b")
	ctx := context.Background()

	f.clock.Set(time.Date(2025, 9, 15, 23, 0, 0, 0, time.UTC))
	_, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)

	f.clock.Set(time.Date(2025, 9, 16, 0, 0, 1, 0, time.UTC))
	exists, err := f.store.Exists(ctx, "daily:2025-09-15")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAddImage_Validation(t *testing.T) {
	cases := []struct {
		name  string
		input domain.ImageInput
	}{
		{"no name", domain.ImageInput{Labels: []string{"dog"}, ImageURL: "u"}},
		{"no labels", domain.ImageInput{Name: "Dog", ImageURL: "u"}},
		{"no image url", domain.ImageInput{Name: "Dog", Labels: []string{"dog"}}},
		{"negative width", domain.ImageInput{Name: "Dog", Labels: []string{"dog"}, ImageURL: "u", Width: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			ctx := context.Background()

			_, err := f.svc.AddImage(ctx, tc.input)
			require.ErrorIs(t, err, domain.ErrInvalidImageInput)

			ids, err := f.svc.ImageRepo.ListIDs(ctx)
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestAddImage_EmptyLabelsAccepted(t *testing.T) {
	f := newFixture(t, nil)

	id, err := f.svc.AddImage(context.Background(), domain.ImageInput{
		Name:     "Lighthouse",
		Labels:   []string{},
		ImageURL: "https://img.example/lighthouse.jpg",
	})
	require.NoError(t, err)

	image, err := f.svc.ImageRepo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Lighthouse", image.Canonical())
}

func TestAddImage_GeneratesID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, id := range []string{"", "   "} {
		got, err := f.svc.AddImage(ctx, domain.ImageInput{
			ID:       id,
			Name:     "Dog",
			Labels:   []string{"dog"},
			ImageURL: "https://img.example/dog.jpg",
		})
		require.NoError(t, err)
		_, err = uuid.Parse(got)
		assert.NoError(t, err)
	}

	ids, err := f.svc.ImageRepo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestAddImage_ReseedKeepsCatalogAndUsage(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	input := domain.ImageInput{ID: "x", Name: "Dog", Labels: []string{"dog"}, ImageURL: "u1"}
	_, err := f.svc.AddImage(ctx, input)
	require.NoError(t, err)
	require.NoError(t, f.svc.UsageRepo.MarkUsed(ctx, "x", 20250910))

	input.Name = "Puppy"
	input.ImageURL = "u2"
	id, err := f.svc.AddImage(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "x", id)

	ids, err := f.svc.ImageRepo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids)

	scores, err := f.svc.UsageRepo.Scores(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20250910), scores["x"])

	image, err := f.svc.ImageRepo.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "Puppy", image.Name)
	assert.Equal(t, "u2", image.ImageURL)
}

func TestSubmitGuess(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.AddImage(ctx, domain.ImageInput{
		ID:       "dog-1",
		Name:     "Golden Retriever",
		Labels:   []string{"dog", "puppy"},
		ImageURL: "https://img.example/dog.jpg",
	})
	require.NoError(t, err)

	cases := []struct {
		guess  string
		result domain.GuessResult
	}{
		{"Dogs", domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact}},
		{"the puppies", domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact}},
		{"golden retriever", domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact}},
		{"retriever", domain.GuessResult{Correct: true, Reason: domain.GuessReasonTokens}},
		{"cat", domain.GuessResult{Correct: false}},
		{"   ", domain.GuessResult{Correct: false}},
	}

	for _, tc := range cases {
		result, err := f.svc.SubmitGuess(ctx, tc.guess)
		require.NoError(t, err, tc.guess)
		assert.Equal(t, tc.result, *result, tc.guess)
	}

	graded := f.publisher.ofType(domain.EventGuessGraded)
	require.Len(t, graded, len(cases))
	require.NotNil(t, graded[0].Correct)
	assert.True(t, *graded[0].Correct)
	assert.Equal(t, "dog-1", graded[0].ImageID)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Guesses.WithLabelValues("incorrect")))
}

func TestSubmitGuess_EmptyCatalog(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.SubmitGuess(context.Background(), "dog")
	require.ErrorIs(t, err, domain.ErrNoImagesSeeded)
}

func TestSubmitGuess_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t, nil)
	f.publisher.err = errors.New("broker down")
	f.seed(t, "dog")

	result, err := f.svc.SubmitGuess(context.Background(), "dog")
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestResetDaily(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, "a", "b")
	ctx := context.Background()

	first, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.Image.ID)

	day, err := f.svc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DayKey("2025-09-15"), day)

	second, err := f.svc.GetDailyImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", second.Image.ID)
}

func TestLeastRecentlyUsed(t *testing.T) {
	cases := []struct {
		name   string
		ids    []string
		scores map[string]int64
		want   string
	}{
		{"empty", nil, nil, ""},
		{"tie takes first", []string{"a", "b"}, map[string]int64{}, "a"},
		{"missing score is zero", []string{"a", "b"}, map[string]int64{"a": 20250101}, "b"},
		{"oldest wins", []string{"a", "b", "c"}, map[string]int64{"a": 20250103, "b": 20250101, "c": 20250102}, "b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LeastRecentlyUsed(tc.ids, tc.scores))
		})
	}
}
