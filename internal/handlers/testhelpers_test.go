package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/models"
)

// fakeUserRepo is an in-memory UserRepositoryInterface
type fakeUserRepo struct {
	byID      map[uuid.UUID]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return database.ErrEmailExists
		}
	}
	user.CreatedAt = time.Now().UTC()
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) (time.Time, error) {
	now := time.Now().UTC()
	if u, ok := f.byID[id]; ok {
		u.LastLoginAt = &now
	}
	return now, nil
}

// fakeSubjectRepo serves a fixed subject list
type fakeSubjectRepo struct {
	subjects []*models.Subject
}

func newFakeSubjectRepo(names ...string) *fakeSubjectRepo {
	f := &fakeSubjectRepo{}
	for _, name := range names {
		f.subjects = append(f.subjects, &models.Subject{
			ID:    uuid.New(),
			Name:  name,
			Color: "#000000",
			Icon:  "book",
		})
	}
	return f
}

func (f *fakeSubjectRepo) List(ctx context.Context) ([]*models.Subject, error) {
	return f.subjects, nil
}

func (f *fakeSubjectRepo) GetByName(ctx context.Context, name string) (*models.Subject, error) {
	for _, s := range f.subjects {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, database.ErrNotFound
}

// fakeMessageRepo is an in-memory ChatMessageRepositoryInterface
type fakeMessageRepo struct {
	messages []*models.ChatMessage
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *models.ChatMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageRepo) History(ctx context.Context, userID, subjectID uuid.UUID, limit int) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, m := range f.messages {
		if m.UserID == userID && m.SubjectID == subjectID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeMessageRepo) SetSaved(ctx context.Context, userID, messageID uuid.UUID, saved bool) error {
	for _, m := range f.messages {
		if m.ID == messageID && m.UserID == userID {
			m.Saved = saved
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeMessageRepo) DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	var kept []*models.ChatMessage
	for _, m := range f.messages {
		if m.UserID == userID && m.SubjectID == subjectID {
			continue
		}
		kept = append(kept, m)
	}
	f.messages = kept
	return nil
}

// fakeMoodRepo is an in-memory MoodLogRepositoryInterface
type fakeMoodRepo struct {
	entries []*models.MoodLogEntry
}

func (f *fakeMoodRepo) Create(ctx context.Context, entry *models.MoodLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeMoodRepo) ListByUser(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodLogEntry, error) {
	var out []*models.MoodLogEntry
	cutoff := time.Now().AddDate(0, 0, -days)
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if days > 0 && e.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMoodRepo) AggregateWindow(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodSummary, error) {
	return nil, nil
}

func (f *fakeMoodRepo) DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	var kept []*models.MoodLogEntry
	for _, e := range f.entries {
		if e.UserID == userID && e.SubjectID == subjectID {
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return nil
}

// fakeSummaryRepo is an in-memory MoodSummaryRepositoryInterface
type fakeSummaryRepo struct {
	summaries []*models.MoodSummary
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, summary *models.MoodSummary) error {
	for i, s := range f.summaries {
		if s.UserID == summary.UserID && s.SubjectID == summary.SubjectID {
			f.summaries[i] = summary
			return nil
		}
	}
	f.summaries = append(f.summaries, summary)
	return nil
}

func (f *fakeSummaryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.MoodSummary, error) {
	var out []*models.MoodSummary
	for _, s := range f.summaries {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}
