package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"time"

	"placement-prep/internal/domain/chat"
	"placement-prep/internal/domain/course"
	"placement-prep/internal/domain/interview"
	"placement-prep/internal/domain/problem"
	"placement-prep/internal/domain/submission"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/infrastructure/judge"

	"github.com/google/uuid"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fakeUsers struct {
	byID        map[uuid.UUID]user.User
	solved      map[uuid.UUID][]uuid.UUID
	leaderboard []user.LeaderboardEntry
	lbCalls     int
}

func newFakeUsers(users ...user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]user.User{}, solved: map[uuid.UUID][]uuid.UUID{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmailOrUsername(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeUsers) SolvedProblemIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return f.solved[id], nil
}

func (f *fakeUsers) Leaderboard(_ context.Context, limit int) ([]user.LeaderboardEntry, error) {
	f.lbCalls++
	if len(f.leaderboard) > limit {
		return f.leaderboard[:limit], nil
	}
	return f.leaderboard, nil
}

type fakeCourseRepo struct {
	items     map[uuid.UUID]course.Course
	listCalls int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{items: map[uuid.UUID]course.Course{}}
}

func (f *fakeCourseRepo) List(context.Context) ([]course.Course, error) {
	f.listCalls++
	out := make([]course.Course, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (course.Course, error) {
	c, ok := f.items[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) Create(_ context.Context, c course.Course) (course.Course, error) {
	c.ID = uuid.New()
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c course.Course) (course.Course, error) {
	if _, ok := f.items[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return course.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeProblemRepo struct {
	items map[uuid.UUID]problem.Problem
}

func newFakeProblemRepo(ps ...problem.Problem) *fakeProblemRepo {
	f := &fakeProblemRepo{items: map[uuid.UUID]problem.Problem{}}
	for _, p := range ps {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProblemRepo) List(context.Context) ([]problem.Problem, error) {
	out := make([]problem.Problem, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProblemRepo) GetByID(_ context.Context, id uuid.UUID) (problem.Problem, error) {
	p, ok := f.items[id]
	if !ok {
		return problem.Problem{}, problem.ErrNotFound
	}
	return p, nil
}

func (f *fakeProblemRepo) Create(_ context.Context, p problem.Problem) (problem.Problem, error) {
	for _, x := range f.items {
		if x.Title == p.Title {
			return problem.Problem{}, problem.ErrDuplicateTitle
		}
	}
	p.ID = uuid.New()
	f.items[p.ID] = p
	return p, nil
}

type fakeSubmissionRepo struct {
	saved  []submission.Submission
	solved map[[2]uuid.UUID]bool
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{solved: map[[2]uuid.UUID]bool{}}
}

func (f *fakeSubmissionRepo) Save(_ context.Context, s submission.Submission, markSolved bool) (submission.Submission, bool, error) {
	s.ID = uuid.New()
	f.saved = append(f.saved, s)
	if !markSolved {
		return s, false, nil
	}
	k := [2]uuid.UUID{s.UserID, s.ProblemID}
	if f.solved[k] {
		return s, false, nil
	}
	f.solved[k] = true
	return s, true, nil
}

func (f *fakeSubmissionRepo) ListByUser(_ context.Context, userID uuid.UUID, _ int) ([]submission.Submission, error) {
	out := make([]submission.Submission, 0)
	for _, s := range f.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeJudge struct {
	res  judge.Result
	err  error
	last judge.Request
}

func (f *fakeJudge) Execute(_ context.Context, req judge.Request) (judge.Result, error) {
	f.last = req
	return f.res, f.err
}

type fakeChatRepo struct {
	msgs []chat.Message
}

func (f *fakeChatRepo) Append(_ context.Context, m chat.Message) (chat.Message, error) {
	m.ID = uuid.New()
	f.msgs = append(f.msgs, m)
	return m, nil
}

func (f *fakeChatRepo) Recent(_ context.Context, userID uuid.UUID, limit int) ([]chat.Message, error) {
	mine := make([]chat.Message, 0)
	for _, m := range f.msgs {
		if m.UserID == userID {
			mine = append(mine, m)
		}
	}
	if len(mine) > limit {
		mine = mine[len(mine)-limit:]
	}
	return mine, nil
}

type fakeBot struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeBot) Reply(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

type fakeInterviewRepo struct {
	mu       sync.Mutex
	slots    map[uuid.UUID]*interview.Slot
	bookings []interview.BookingDetail
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{slots: map[uuid.UUID]*interview.Slot{}}
}

func (f *fakeInterviewRepo) CreateMany(_ context.Context, slots []interview.Slot) ([]interview.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interview.Slot, 0, len(slots))
	for _, s := range slots {
		s.ID = uuid.New()
		cp := s
		f.slots[s.ID] = &cp
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeInterviewRepo) ListAvailable(_ context.Context, from time.Time) ([]interview.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interview.Slot, 0)
	for _, s := range f.slots {
		if !s.IsBooked && !s.StartTime.Before(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) Book(_ context.Context, slotID, userID uuid.UUID) (interview.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.IsBooked {
		return interview.BookingDetail{}, interview.ErrSlotUnavailable
	}
	s.IsBooked = true
	s.BookedBy = &userID
	d := interview.BookingDetail{
		Booking: interview.Booking{
			ID:          uuid.New(),
			UserID:      userID,
			SlotID:      slotID,
			Status:      interview.BookingStatusConfirmed,
			MeetingLink: interview.MeetingLinkPending,
		},
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
	f.bookings = append(f.bookings, d)
	return d, nil
}

func (f *fakeInterviewRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]interview.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interview.BookingDetail, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []interview.BookedEvent
	err    error
}

func (f *fakeNotifier) NotifyBooking(_ context.Context, evt interview.BookedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return f.err
}

type fakeSlotEvents struct {
	mu      sync.Mutex
	created int
	booked  []uuid.UUID
}

func (f *fakeSlotEvents) SlotsCreated(slots []interview.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created += len(slots)
}

func (f *fakeSlotEvents) SlotBooked(s interview.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, s.ID)
}

type fakeArchive struct {
	keys []string
	err  error
}

func (f *fakeArchive) PutResume(_ context.Context, userID uuid.UUID, filename, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	k := userID.String() + "/" + filename
	f.keys = append(f.keys, k)
	return k, nil
}

var errBoom = errors.New("boom")
