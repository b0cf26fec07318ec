package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"

	"tiktok-planner/domain/model"
	"tiktok-planner/domain/repository"
	"tiktok-planner/infrastructure/logger"
)

// QueueItemUpdate carries the editable fields of a queue item. Nil fields
// are left unchanged.
type QueueItemUpdate struct {
	ScheduledFor *string
	Caption      *string
	Notes        *string
}

const defaultQueueKey = "tiktok-queue"

type IQueueStore interface {
	Add(ctx context.Context, video model.VideoRecord) bool
	Remove(ctx context.Context, id string) bool
	UpdateFields(ctx context.Context, id string, update QueueItemUpdate) bool
	ToggleInteraction(ctx context.Context, id string, action model.InteractionAction) bool
	SetInteractionDetails(ctx context.Context, id string, action model.InteractionAction, details string) bool
	SuggestCaption(ctx context.Context, id string) (string, bool)
	Items() []model.QueueItem
	Sorted() []model.QueueItem
	Get(id string) (model.QueueItem, bool)
	Len() int
}

// QueueStore is the ordered list of planned reposts, most recently added
// first. Every mutation rewrites the whole list to the blob store under key;
// write failures are logged and the in-memory change stands.
type QueueStore struct {
	blob repository.IBlobStore
	key  string

	mu    sync.Mutex
	items []model.QueueItem
}

// NewQueueStore loads the persisted queue once. A missing, unreadable or
// malformed value yields an empty queue.
func NewQueueStore(ctx context.Context, blob repository.IBlobStore, key string) *QueueStore {
	if key == "" {
		key = defaultQueueKey
	}
	s := &QueueStore{blob: blob, key: key, items: []model.QueueItem{}}
	s.items = s.load(ctx)
	return s
}

func (s *QueueStore) load(ctx context.Context) []model.QueueItem {
	log := logger.GetLogger().WithField("key", s.key)

	data, err := s.blob.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrBlobNotFound) {
			log.Debug("No stored queue, starting empty")
		} else {
			log.WithField("error", err).Warn("Failed to read stored queue, starting empty")
		}
		return []model.QueueItem{}
	}

	var stored []model.QueueItem
	if err := json.Unmarshal(data, &stored); err != nil {
		log.WithField("error", err).Warn("Stored queue is malformed, starting empty")
		return []model.QueueItem{}
	}

	items := make([]model.QueueItem, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		if item.ID == "" {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		repairInteractions(&item)
		items = append(items, item)
	}
	log.WithField("items", len(items)).Info("Queue loaded")
	return items
}

// persist must be called with s.mu held.
func (s *QueueStore) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to encode queue")
		return
	}
	if err := s.blob.Set(ctx, s.key, data); err != nil {
		logger.GetLogger().WithField("key", s.key).WithField("error", err).Warn("Failed to persist queue")
	}
}

func (s *QueueStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add prepends a default plan for video. It reports false when the video is
// already queued.
func (s *QueueStore) Add(ctx context.Context, video model.VideoRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(video.ID) >= 0 {
		return false
	}
	s.items = append([]model.QueueItem{newQueueItem(video)}, s.items...)
	s.persist(ctx)
	return true
}

func (s *QueueStore) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
	return true
}

func (s *QueueStore) UpdateFields(ctx context.Context, id string, update QueueItemUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	item := &s.items[i]
	if update.ScheduledFor != nil {
		item.ScheduledFor = *update.ScheduledFor
	}
	if update.Caption != nil {
		item.Caption = *update.Caption
	}
	if update.Notes != nil {
		item.Notes = *update.Notes
	}
	s.persist(ctx)
	return true
}

func (s *QueueStore) ToggleInteraction(ctx context.Context, id string, action model.InteractionAction) bool {
	return s.mutateInteraction(ctx, id, action, func(entry *model.InteractionPlanEntry) {
		entry.Enabled = !entry.Enabled
	})
}

func (s *QueueStore) SetInteractionDetails(ctx context.Context, id string, action model.InteractionAction, details string) bool {
	return s.mutateInteraction(ctx, id, action, func(entry *model.InteractionPlanEntry) {
		entry.Details = details
	})
}

func (s *QueueStore) mutateInteraction(ctx context.Context, id string, action model.InteractionAction, fn func(*model.InteractionPlanEntry)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	entry := s.items[i].Interaction(action)
	if entry == nil {
		return false
	}
	fn(entry)
	s.persist(ctx)
	return true
}

// SuggestCaption replaces the caption with one crediting the author and
// returns it.
func (s *QueueStore) SuggestCaption(ctx context.Context, id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return "", false
	}
	caption := SuggestedCaption(s.items[i].Author)
	s.items[i].Caption = caption
	s.persist(ctx)
	return caption, true
}

// Items returns a copy in store order.
func (s *QueueStore) Items() []model.QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Sorted returns a copy in display order: stable by scheduledFor, unscheduled
// first. Store order is not affected.
func (s *QueueStore) Sorted() []model.QueueItem {
	s.mu.Lock()
	out := s.copyItems()
	s.mu.Unlock()

	slices.SortStableFunc(out, func(a, b model.QueueItem) int {
		return strings.Compare(a.ScheduledFor, b.ScheduledFor)
	})
	return out
}

func (s *QueueStore) Get(id string) (model.QueueItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.QueueItem{}, false
	}
	return s.items[i].Clone(), true
}

func (s *QueueStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *QueueStore) copyItems() []model.QueueItem {
	out := make([]model.QueueItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}
