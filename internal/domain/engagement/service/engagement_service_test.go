package service

import (
	"fmt"
	"sync"
	"testing"

	"blogcore/internal/domain/engagement/model"
	"blogcore/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockEngagementRepository is a mock of EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) RecordView(contentID string) (int64, error) {
	args := m.Called(contentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) ToggleLike(contentID, userID string) (bool, int64, error) {
	args := m.Called(contentID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockEngagementRepository) GetByContentID(contentID string) (*model.EngagementRecord, error) {
	args := m.Called(contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EngagementRecord), args.Error(1)
}

func (m *MockEngagementRepository) IncrementCommentCount(contentID string) (int64, error) {
	args := m.Called(contentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) DecrementCommentCount(contentID string) (int64, error) {
	args := m.Called(contentID)
	return args.Get(0).(int64), args.Error(1)
}

// memoryLedger behaves like the real repository's atomic statements:
// all mutations happen under one lock, so concurrent callers see the
// same lost-update-free semantics the SQL gives.
type memoryLedger struct {
	mu      sync.Mutex
	records map[string]*model.EngagementRecord
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[string]*model.EngagementRecord)}
}

func (l *memoryLedger) get(contentID string) *model.EngagementRecord {
	if r, ok := l.records[contentID]; ok {
		return r
	}
	r := &model.EngagementRecord{ContentID: contentID}
	l.records[contentID] = r
	return r
}

func (l *memoryLedger) RecordView(contentID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.get(contentID)
	r.ViewCount++
	return r.ViewCount, nil
}

func (l *memoryLedger) ToggleLike(contentID, userID string) (bool, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.get(contentID)
	for i, liker := range r.Likers {
		if liker == userID {
			r.Likers = append(r.Likers[:i], r.Likers[i+1:]...)
			return false, int64(len(r.Likers)), nil
		}
	}
	r.Likers = append(r.Likers, userID)
	return true, int64(len(r.Likers)), nil
}

func (l *memoryLedger) GetByContentID(contentID string) (*model.EngagementRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[contentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r
	return &out, nil
}

func (l *memoryLedger) IncrementCommentCount(contentID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.get(contentID)
	r.CommentCount++
	return r.CommentCount, nil
}

func (l *memoryLedger) DecrementCommentCount(contentID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.get(contentID)
	if r.CommentCount > 0 {
		r.CommentCount--
	}
	return r.CommentCount, nil
}

func TestRecordView(t *testing.T) {
	t.Run("Each call counts one view", func(t *testing.T) {
		svc := NewEngagementService(newMemoryLedger(), nil)

		for i := 1; i <= 5; i++ {
			count, err := svc.RecordView("content-1")
			assert.NoError(t, err)
			assert.Equal(t, int64(i), count)
		}
	})

	t.Run("Concurrent views all land", func(t *testing.T) {
		svc := NewEngagementService(newMemoryLedger(), nil)

		const n = 50
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := svc.RecordView("content-1")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		eng, err := svc.GetEngagement("content-1", "")
		assert.NoError(t, err)
		assert.Equal(t, int64(n), eng.ViewCount)
	})

	t.Run("Storage failure surfaces as infrastructure", func(t *testing.T) {
		mockRepo := new(MockEngagementRepository)
		svc := NewEngagementService(mockRepo, nil)

		mockRepo.On("RecordView", "content-1").Return(int64(0), assert.AnError)

		_, err := svc.RecordView("content-1")

		assert.ErrorIs(t, err, apperrors.ErrInfrastructure)
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("Toggle is self-inverse", func(t *testing.T) {
		svc := NewEngagementService(newMemoryLedger(), nil)

		liked, likes, err := svc.ToggleLike("content-1", "user-1")
		assert.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, int64(1), likes)

		liked, likes, err = svc.ToggleLike("content-1", "user-1")
		assert.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, int64(0), likes)
	})

	t.Run("Concurrent toggles from distinct users all count", func(t *testing.T) {
		svc := NewEngagementService(newMemoryLedger(), nil)

		const n = 40
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func(uid string) {
				defer wg.Done()
				liked, _, err := svc.ToggleLike("content-1", uid)
				assert.NoError(t, err)
				assert.True(t, liked)
			}(fmt.Sprintf("user-%d", i))
		}
		wg.Wait()

		eng, err := svc.GetEngagement("content-1", "")
		assert.NoError(t, err)
		assert.Equal(t, int64(n), eng.LikesCount)
	})

	t.Run("Storage failure surfaces as infrastructure", func(t *testing.T) {
		mockRepo := new(MockEngagementRepository)
		svc := NewEngagementService(mockRepo, nil)

		mockRepo.On("ToggleLike", "content-1", "user-1").Return(false, int64(0), assert.AnError)

		_, _, err := svc.ToggleLike("content-1", "user-1")

		assert.ErrorIs(t, err, apperrors.ErrInfrastructure)
	})
}

func TestGetEngagement(t *testing.T) {
	t.Run("Unknown content reads as zeroes", func(t *testing.T) {
		mockRepo := new(MockEngagementRepository)
		svc := NewEngagementService(mockRepo, nil)

		mockRepo.On("GetByContentID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		eng, err := svc.GetEngagement("ghost", "")

		assert.NoError(t, err)
		assert.Zero(t, eng.ViewCount)
		assert.Zero(t, eng.LikesCount)
		assert.Zero(t, eng.CommentCount)
		assert.Nil(t, eng.LikedByUser)
	})

	t.Run("likedByUser present only with a viewer", func(t *testing.T) {
		mockRepo := new(MockEngagementRepository)
		svc := NewEngagementService(mockRepo, nil)

		record := &model.EngagementRecord{
			ContentID: "content-1",
			Likers:    []string{"user-1", "user-2"},
			ViewCount: 7,
		}
		mockRepo.On("GetByContentID", "content-1").Return(record, nil)

		anon, err := svc.GetEngagement("content-1", "")
		assert.NoError(t, err)
		assert.Nil(t, anon.LikedByUser)

		viewer, err := svc.GetEngagement("content-1", "user-2")
		assert.NoError(t, err)
		assert.NotNil(t, viewer.LikedByUser)
		assert.True(t, *viewer.LikedByUser)

		stranger, err := svc.GetEngagement("content-1", "user-9")
		assert.NoError(t, err)
		assert.NotNil(t, stranger.LikedByUser)
		assert.False(t, *stranger.LikedByUser)
	})

	t.Run("Likes count derives from the likers set", func(t *testing.T) {
		mockRepo := new(MockEngagementRepository)
		svc := NewEngagementService(mockRepo, nil)

		record := &model.EngagementRecord{
			ContentID:    "content-1",
			Likers:       []string{"a", "b", "c"},
			ViewCount:    100,
			CommentCount: 4,
		}
		mockRepo.On("GetByContentID", "content-1").Return(record, nil)

		eng, err := svc.GetEngagement("content-1", "")
		assert.NoError(t, err)
		assert.Equal(t, int64(3), eng.LikesCount)
		assert.Equal(t, int64(100), eng.ViewCount)
		assert.Equal(t, int64(4), eng.CommentCount)
	})
}
