package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendmindAPI/internal/composer"
	"trendmindAPI/internal/store"
	caltypes "trendmindAPI/internal/types/calendar"
	ctypes "trendmindAPI/internal/types/composer"
	idtypes "trendmindAPI/internal/types/identity"
	"trendmindAPI/internal/types/post"
)

// conflictStore fails the first n appends with ErrConflict.
type conflictStore struct {
	*store.MemoryStore
	conflicts int
	appends   int
}

func (s *conflictStore) Append(ctx context.Context, owner string, p *post.ScheduledPost) error {
	s.appends++
	if s.conflicts > 0 {
		s.conflicts--
		return store.ErrConflict
	}
	return s.MemoryStore.Append(ctx, owner, p)
}

var errStoreDown = errors.New("dial tcp: connection refused")

// failingStore cannot write.
type failingStore struct {
	*store.MemoryStore
}

func (s *failingStore) Append(ctx context.Context, owner string, p *post.ScheduledPost) error {
	return errStoreDown
}

// blankGenerator returns only whitespace.
type blankGenerator struct{}

func (blankGenerator) Name() string { return "blank" }

func (blankGenerator) Complete(ctx context.Context, req composer.CompletionRequest) (string, error) {
	return "   \n", nil
}

type stubComposer struct {
	result ctypes.GenerateResult
	got    []ctypes.GenerateRequest
}

func (c *stubComposer) Generate(ctx context.Context, req ctypes.GenerateRequest) ctypes.GenerateResult {
	c.got = append(c.got, req)
	return c.result
}

type stubProvider struct {
	user      *idtypes.CurrentUser
	err       error
	deleted   []string
	lastFirst string
	lastLast  string
}

func (p *stubProvider) GetUser(ctx context.Context, userID string) (*idtypes.CurrentUser, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.user, nil
}

func (p *stubProvider) UpdateName(ctx context.Context, userID, firstName, lastName string) (*idtypes.CurrentUser, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.lastFirst, p.lastLast = firstName, lastName
	return &idtypes.CurrentUser{ID: userID, FirstName: firstName, LastName: lastName}, nil
}

func (p *stubProvider) DeleteUser(ctx context.Context, userID string) error {
	if p.err != nil {
		return p.err
	}
	p.deleted = append(p.deleted, userID)
	return nil
}

func newPostService(s store.PostStore) *PostService {
	svc := NewPostService(s, nil)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func TestPostService_SavePost(t *testing.T) {
	ctx := context.Background()
	svc := newPostService(store.NewMemoryStore(nil))

	saved, err := svc.SavePost(ctx, "user_1", &post.CreatePostRequest{
		Topic:   "Why most remote teams fail at async communication",
		Content: "Async is a skill.",
		Date:    "2026-10-21",
		Type:    "Actionable Advice",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, "Why most remote teams fail at async...", saved.Title)
	assert.Equal(t, "09:00", saved.Time)

	posts, err := svc.ListPosts(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, saved, posts[0])
}

func TestPostService_SavePostValidation(t *testing.T) {
	svc := newPostService(store.NewMemoryStore(nil))

	tests := []struct {
		name string
		req  post.CreatePostRequest
	}{
		{"no topic or title", post.CreatePostRequest{Content: "c", Date: "2026-10-21"}},
		{"no content", post.CreatePostRequest{Topic: "t", Date: "2026-10-21"}},
		{"bad date", post.CreatePostRequest{Topic: "t", Content: "c", Date: "21/10/2026"}},
		{"bad time", post.CreatePostRequest{Topic: "t", Content: "c", Date: "2026-10-21", Time: "25:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SavePost(context.Background(), "user_1", &tt.req)
			assert.ErrorIs(t, err, ErrInvalidPost)
		})
	}
}

func TestPostService_RetriesConflicts(t *testing.T) {
	ctx := context.Background()

	s := &conflictStore{MemoryStore: store.NewMemoryStore(nil), conflicts: 2}
	svc := newPostService(s)
	_, err := svc.SavePost(ctx, "user_1", &post.CreatePostRequest{Topic: "t", Content: "c", Date: "2026-10-21"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.appends)

	s = &conflictStore{MemoryStore: store.NewMemoryStore(nil), conflicts: 5}
	svc = newPostService(s)
	_, err = svc.SavePost(ctx, "user_1", &post.CreatePostRequest{Topic: "t", Content: "c", Date: "2026-10-21"})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, appendAttempts, s.appends)
}

func TestPostService_Upcoming(t *testing.T) {
	ctx := context.Background()
	svc := newPostService(store.NewMemoryStore(nil))

	for _, when := range [][2]string{
		{"2026-11-02", "09:00"},
		{"2026-10-20", "18:00"},
		{"2026-10-20", "08:15"},
		{"2026-12-01", "12:00"},
	} {
		_, err := svc.SavePost(ctx, "user_1", &post.CreatePostRequest{
			Topic: "t", Content: "c", Date: when[0], Time: when[1],
		})
		require.NoError(t, err)
	}

	next, total, err := svc.Upcoming(ctx, "user_1", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, next, 3)
	assert.Equal(t, "2026-10-20 08:15", next[0].Date+" "+next[0].Time)
	assert.Equal(t, "2026-10-20 18:00", next[1].Date+" "+next[1].Time)
	assert.Equal(t, "2026-11-02 09:00", next[2].Date+" "+next[2].Time)
}

func TestPostService_CorruptSlotSurfaces(t *testing.T) {
	mem := store.NewMemoryStore(nil)
	mem.Put("user_1", []byte("not json"))
	svc := newPostService(mem)

	_, err := svc.ListPosts(context.Background(), "user_1")
	assert.ErrorIs(t, err, store.ErrCorruptSlot)
}

func TestCalendarService_GetCalendar(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore(nil)
	posts := newPostService(mem)
	_, err := posts.SavePost(ctx, "user_1", &post.CreatePostRequest{
		Topic: "t", Content: "c", Date: "2026-10-21", Time: "14:30",
	})
	require.NoError(t, err)

	svc := NewCalendarService(mem, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC) }

	t.Run("month defaults to today", func(t *testing.T) {
		resp, err := svc.GetCalendar(ctx, "user_1", CalendarQuery{})
		require.NoError(t, err)
		assert.Equal(t, caltypes.ViewMonth, resp.View)
		assert.Equal(t, "2026-10-18", resp.Reference)
		require.NotNil(t, resp.Month)
		assert.Equal(t, "October 2026", resp.Month.Label)
		assert.Nil(t, resp.Week)

		found := 0
		for _, d := range resp.Month.Days {
			if d.Date == "2026-10-21" {
				found = len(d.Posts)
			}
		}
		assert.Equal(t, 1, found)
	})

	t.Run("week view positions post", func(t *testing.T) {
		resp, err := svc.GetCalendar(ctx, "user_1", CalendarQuery{View: caltypes.ViewWeek, Date: "2026-10-19"})
		require.NoError(t, err)
		require.NotNil(t, resp.Week)
		require.Len(t, resp.Week.Slots, 1)
		assert.Equal(t, 3, resp.Week.Slots[0].DayIndex)
		assert.InDelta(t, 928.0, resp.Week.Slots[0].TopPx, 1e-9)
	})

	t.Run("navigation", func(t *testing.T) {
		resp, err := svc.GetCalendar(ctx, "user_1", CalendarQuery{Date: "2026-01-31", Nav: caltypes.NavNext})
		require.NoError(t, err)
		assert.Equal(t, "2026-02-28", resp.Reference)

		resp, err = svc.GetCalendar(ctx, "user_1", CalendarQuery{View: caltypes.ViewWeek, Date: "2026-01-31", Nav: caltypes.NavToday})
		require.NoError(t, err)
		assert.Equal(t, "2026-10-18", resp.Reference)
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := svc.GetCalendar(ctx, "user_1", CalendarQuery{View: "year"})
		assert.ErrorIs(t, err, ErrInvalidQuery)

		_, err = svc.GetCalendar(ctx, "user_1", CalendarQuery{Date: "2026-13-01"})
		assert.ErrorIs(t, err, ErrInvalidQuery)

		_, err = svc.GetCalendar(ctx, "user_1", CalendarQuery{Nav: "sideways"})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestGenerateService_Defaults(t *testing.T) {
	c := &stubComposer{result: ctypes.GenerateResult{Success: true, Content: "post"}}
	svc := NewGenerateService(c, nil, nil)

	_, err := svc.Generate(context.Background(), ctypes.GenerateRequest{Topic: "remote work productivity"})
	require.NoError(t, err)
	require.Len(t, c.got, 1)
	assert.Equal(t, "Actionable Advice", c.got[0].ContentType)
	assert.Equal(t, "Technology / SaaS", c.got[0].Industry)
	assert.Equal(t, "Direct & Hacker", c.got[0].Tone)

	_, err = svc.Generate(context.Background(), ctypes.GenerateRequest{Topic: "   "})
	assert.ErrorIs(t, err, ErrTopicMissing)
	assert.Len(t, c.got, 1)
}

func TestGenerateService_GenerateAndSave(t *testing.T) {
	ctx := context.Background()

	t.Run("saves on success", func(t *testing.T) {
		mem := store.NewMemoryStore(nil)
		c := &stubComposer{result: ctypes.GenerateResult{Success: true, Content: "Remote work is a tool."}}
		svc := NewGenerateService(c, newPostService(mem), nil)

		result, saved, err := svc.GenerateAndSave(ctx, "user_1", &ctypes.GenerateAndSaveRequest{
			GenerateRequest: ctypes.GenerateRequest{Topic: "remote work productivity", ContentType: "Personal Story"},
			Date:            "2026-10-21",
			Time:            "14:30",
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, saved)
		assert.Equal(t, "Remote work is a tool.", saved.Content)
		assert.Equal(t, "Personal Story", saved.Type)
		assert.Equal(t, "remote work productivity...", saved.Title)

		posts, err := mem.Load(ctx, "user_1")
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("nothing saved on failure", func(t *testing.T) {
		mem := store.NewMemoryStore(nil)
		c := &stubComposer{result: ctypes.GenerateResult{Success: false, Error: ctypes.ErrConnect}}
		svc := NewGenerateService(c, newPostService(mem), nil)

		result, saved, err := svc.GenerateAndSave(ctx, "user_1", &ctypes.GenerateAndSaveRequest{
			GenerateRequest: ctypes.GenerateRequest{Topic: "t"},
			Date:            "2026-10-21",
		})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Nil(t, saved)

		posts, err := mem.Load(ctx, "user_1")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("empty completion is not saved", func(t *testing.T) {
		mem := store.NewMemoryStore(nil)
		comp := composer.New(blankGenerator{}, "llama-3.1-8b-instant", nil)
		svc := NewGenerateService(comp, newPostService(mem), nil)

		result, saved, err := svc.GenerateAndSave(ctx, "user_1", &ctypes.GenerateAndSaveRequest{
			GenerateRequest: ctypes.GenerateRequest{Topic: "t"},
			Date:            "2026-10-21",
		})
		require.NoError(t, err)
		assert.Equal(t, ctypes.GenerateResult{Success: true, Content: ctypes.FallbackContent}, result)
		assert.Nil(t, saved)

		_, ok := mem.Raw("user_1")
		assert.False(t, ok)
	})

	t.Run("padded date and time accepted", func(t *testing.T) {
		mem := store.NewMemoryStore(nil)
		c := &stubComposer{result: ctypes.GenerateResult{Success: true, Content: "x"}}
		svc := NewGenerateService(c, newPostService(mem), nil)

		_, saved, err := svc.GenerateAndSave(ctx, "user_1", &ctypes.GenerateAndSaveRequest{
			GenerateRequest: ctypes.GenerateRequest{Topic: "t"},
			Date:            " 2026-10-20",
			Time:            "07:45 ",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "2026-10-20", saved.Date)
		assert.Equal(t, "07:45", saved.Time)
	})

	t.Run("save failure keeps the generated text", func(t *testing.T) {
		c := &stubComposer{result: ctypes.GenerateResult{Success: true, Content: "Remote work is a tool."}}
		svc := NewGenerateService(c, newPostService(&failingStore{MemoryStore: store.NewMemoryStore(nil)}), nil)

		result, saved, err := svc.GenerateAndSave(ctx, "user_1", &ctypes.GenerateAndSaveRequest{
			GenerateRequest: ctypes.GenerateRequest{Topic: "t"},
			Date:            "2026-10-21",
		})
		assert.ErrorIs(t, err, errStoreDown)
		assert.Nil(t, saved)
		assert.True(t, result.Success)
		assert.Equal(t, "Remote work is a tool.", result.Content)
	})

	t.Run("bad date rejected before generating", func(t *testing.T) {
		c := &stubComposer{result: ctypes.GenerateResult{Success: true, Content: "x"}}
		svc := NewGenerateService(c, newPostService(store.NewMemoryStore(nil)), nil)

		_, _, err := svc.GenerateAndSave(ctx, "user_1", &ctypes.GenerateAndSaveRequest{
			GenerateRequest: ctypes.GenerateRequest{Topic: "t"},
			Date:            "tomorrow",
		})
		assert.ErrorIs(t, err, ErrInvalidPost)
		assert.Empty(t, c.got)
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("update trims names", func(t *testing.T) {
		p := &stubProvider{}
		svc := NewUserService(p, newPostService(store.NewMemoryStore(nil)), nil)

		u, err := svc.UpdateProfile(ctx, "user_1", &idtypes.UpdateProfileRequest{FirstName: " Ada ", LastName: "Lovelace"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.FirstName)
		assert.Equal(t, "Ada", p.lastFirst)

		_, err = svc.UpdateProfile(ctx, "user_1", &idtypes.UpdateProfileRequest{})
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("delete clears posts", func(t *testing.T) {
		mem := store.NewMemoryStore(nil)
		posts := newPostService(mem)
		_, err := posts.SavePost(ctx, "user_1", &post.CreatePostRequest{Topic: "t", Content: "c", Date: "2026-10-21"})
		require.NoError(t, err)

		p := &stubProvider{}
		svc := NewUserService(p, posts, nil)
		require.NoError(t, svc.DeleteAccount(ctx, "user_1"))
		assert.Equal(t, []string{"user_1"}, p.deleted)

		_, ok := mem.Raw("user_1")
		assert.False(t, ok)
	})

	t.Run("provider refusal keeps posts", func(t *testing.T) {
		mem := store.NewMemoryStore(nil)
		posts := newPostService(mem)
		_, err := posts.SavePost(ctx, "user_1", &post.CreatePostRequest{Topic: "t", Content: "c", Date: "2026-10-21"})
		require.NoError(t, err)

		p := &stubProvider{err: errors.New("forbidden")}
		svc := NewUserService(p, posts, nil)
		assert.Error(t, svc.DeleteAccount(ctx, "user_1"))

		_, ok := mem.Raw("user_1")
		assert.True(t, ok)
	})
}

func TestCatalogService(t *testing.T) {
	svc, err := NewCatalogService()
	require.NoError(t, err)

	pricing := svc.Pricing()
	assert.Equal(t, 7, pricing.TrialDays)
	assert.Len(t, pricing.Plans, 2)
	assert.Len(t, svc.Tools(), 3)
	assert.True(t, svc.IsPublicPath("/sign-up"))
	assert.False(t, svc.IsPublicPath("/generate"))
}
