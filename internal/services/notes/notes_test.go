package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
	services "github.com/magabrotheeeer/notes-keeper/internal/services/notes"
	"github.com/magabrotheeeer/notes-keeper/internal/storage"
)

// Мок для NotesRepository
type NotesRepoMock struct {
	mock.Mock
}

func (m *NotesRepoMock) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *NotesRepoMock) ListNotes(ctx context.Context, userUID string) ([]*models.Note, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *NotesRepoMock) UpdateNote(ctx context.Context, userUID string, noteID int, note models.Note) (*models.Note, error) {
	args := m.Called(ctx, userUID, noteID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *NotesRepoMock) RemoveNote(ctx context.Context, userUID string, noteID int) (*models.Note, error) {
	args := m.Called(ctx, userUID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *NotesRepoMock) RemoveAllNotes(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNotesService(repo *NotesRepoMock, cache *CacheMock) *services.NotesService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return services.NewNotesService(repo, cache, logger)
}

func TestNotesService_Add(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	// Поля заметки приходят в хранилище уже обрезанными.
	repo.On("CreateNote", mock.Anything, models.Note{
		UserUID:     "uid-1",
		Title:       "T",
		Description: "D",
	}).Return(&models.Note{ID: 1, UserUID: "uid-1", Title: "T", Description: "D"}, nil).Once()
	cache.On("Invalidate", "notes:uid-1").Return(nil).Once()

	svc := newNotesService(repo, cache)
	note, err := svc.Add(context.Background(), "uid-1", models.DummyNote{Title: "  T  ", Description: " D "})
	require.NoError(t, err)
	assert.Equal(t, 1, note.ID)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestNotesService_Add_RepoError(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	repo.On("CreateNote", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down")).Once()

	svc := newNotesService(repo, cache)
	_, err := svc.Add(context.Background(), "uid-1", models.DummyNote{Title: "T", Description: "D"})
	assert.Error(t, err)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestNotesService_List_CacheHit(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	cached := []*models.Note{{ID: 2, UserUID: "uid-1"}, {ID: 1, UserUID: "uid-1"}}
	cache.On("Get", "notes:uid-1", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*[]*models.Note)
			*out = cached
		}).Return(true, nil).Once()

	svc := newNotesService(repo, cache)
	notes, err := svc.List(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	repo.AssertNotCalled(t, "ListNotes", mock.Anything, mock.Anything)
}

func TestNotesService_List_CacheMiss(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	fromDB := []*models.Note{{ID: 3, UserUID: "uid-1"}}
	cache.On("Get", "notes:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("ListNotes", mock.Anything, "uid-1").Return(fromDB, nil).Once()
	cache.On("Set", "notes:uid-1", fromDB, time.Hour).Return(nil).Once()

	svc := newNotesService(repo, cache)
	notes, err := svc.List(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestNotesService_List_CacheFailureDoesNotBreakRequest(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	cache.On("Get", "notes:uid-1", mock.Anything).Return(false, errors.New("redis down")).Once()
	repo.On("ListNotes", mock.Anything, "uid-1").Return([]*models.Note{}, nil).Once()
	cache.On("Set", "notes:uid-1", mock.Anything, time.Hour).Return(errors.New("redis down")).Once()

	svc := newNotesService(repo, cache)
	notes, err := svc.List(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNotesService_Update_OwnershipIsolation(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	// Пользователь B пытается изменить заметку пользователя A: хранилище
	// сообщает лишь, что по паре (id, владелец) строки нет.
	repo.On("UpdateNote", mock.Anything, "uid-b", 1, mock.Anything).
		Return(nil, storage.ErrNoteNotFound).Once()

	svc := newNotesService(repo, cache)
	_, err := svc.Update(context.Background(), "uid-b", 1, models.DummyNote{Title: "T", Description: "D"})
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestNotesService_Update_Success(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	repo.On("UpdateNote", mock.Anything, "uid-1", 1, models.Note{Title: "T2", Description: "D2"}).
		Return(&models.Note{ID: 1, UserUID: "uid-1", Title: "T2", Description: "D2"}, nil).Once()
	cache.On("Invalidate", "notes:uid-1").Return(nil).Once()

	svc := newNotesService(repo, cache)
	note, err := svc.Update(context.Background(), "uid-1", 1, models.DummyNote{Title: " T2 ", Description: " D2 "})
	require.NoError(t, err)
	assert.Equal(t, "T2", note.Title)
	cache.AssertExpectations(t)
}

func TestNotesService_Remove(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	repo.On("RemoveNote", mock.Anything, "uid-1", 1).
		Return(&models.Note{ID: 1, UserUID: "uid-1", Title: "T"}, nil).Once()
	cache.On("Invalidate", "notes:uid-1").Return(nil).Once()

	svc := newNotesService(repo, cache)
	note, err := svc.Remove(context.Background(), "uid-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, note.ID)
}

func TestNotesService_Remove_ForeignNote(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	repo.On("RemoveNote", mock.Anything, "uid-b", 1).
		Return(nil, storage.ErrNoteNotFound).Once()

	svc := newNotesService(repo, cache)
	_, err := svc.Remove(context.Background(), "uid-b", 1)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
}

func TestNotesService_RemoveAll(t *testing.T) {
	tests := []struct {
		name      string
		wantCount int
	}{
		{name: "удаление нескольких заметок", wantCount: 5},
		{name: "нет заметок — тоже успех", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(NotesRepoMock)
			cache := new(CacheMock)

			repo.On("RemoveAllNotes", mock.Anything, "uid-1").Return(tt.wantCount, nil).Once()
			cache.On("Invalidate", "notes:uid-1").Return(nil).Once()

			svc := newNotesService(repo, cache)
			count, err := svc.RemoveAll(context.Background(), "uid-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestNotesService_RemoveAll_CacheInvalidateFailureIgnored(t *testing.T) {
	repo := new(NotesRepoMock)
	cache := new(CacheMock)

	repo.On("RemoveAllNotes", mock.Anything, "uid-1").Return(2, nil).Once()
	cache.On("Invalidate", "notes:uid-1").Return(errors.New("redis down")).Once()

	svc := newNotesService(repo, cache)
	count, err := svc.RemoveAll(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
