package guide

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/debemdeboas/guidebot/internal/model"
)

// MemoryStore is the process-lifetime Store implementation. A single
// mutex guards both indexes, so every compound operation on one draft
// (approve-then-report, remove-then-report) is atomic with respect to
// concurrent handlers: an approve/cancel race resolves to one winner.
type MemoryStore struct {
	mu      sync.RWMutex
	byTitle map[string]*model.Draft
	byID    map[model.DraftID]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byTitle: make(map[string]*model.Draft),
		byID:    make(map[model.DraftID]string),
	}
}

func (s *MemoryStore) Create(title, text string, creator model.UserID, chat model.ChatID) *model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byTitle[title]; ok {
		delete(s.byID, old.ID)
	}

	now := time.Now()
	draft := &model.Draft{
		ID:      model.DraftID(uuid.New().String()),
		Title:   title,
		Text:    text,
		Images:  []model.ImageRef{},
		Creator: creator,
		Chat:    chat,
		Created: now,
		Updated: now,
	}
	s.byTitle[title] = draft
	s.byID[draft.ID] = title

	return draft.Clone()
}

func (s *MemoryStore) Get(id model.DraftID) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, err := s.locked(id)
	if err != nil {
		return nil, err
	}
	return draft.Clone(), nil
}

func (s *MemoryStore) GetByTitle(title string) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if draft, ok := s.byTitle[title]; ok {
		return draft.Clone(), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SetText(id model.DraftID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(id)
	if err != nil {
		return err
	}
	if draft.Approved {
		return ErrSealed
	}

	draft.Text = text
	draft.Updated = time.Now()
	return nil
}

func (s *MemoryStore) AppendImage(id model.DraftID, ref model.ImageRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(id)
	if err != nil {
		return err
	}
	if draft.Approved {
		return ErrSealed
	}

	draft.Images = append(draft.Images, ref)
	draft.Updated = time.Now()
	return nil
}

func (s *MemoryStore) Approve(id model.DraftID) (*model.Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(id)
	if err != nil {
		return nil, false, err
	}

	sealed := !draft.Approved
	if sealed {
		draft.Approved = true
		draft.Updated = time.Now()
	}
	return draft.Clone(), sealed, nil
}

func (s *MemoryStore) Remove(id model.DraftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byTitle, title)
	return nil
}

func (s *MemoryStore) Search(keyword string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyword = strings.ToLower(keyword)
	var titles []string
	for title := range s.byTitle {
		if strings.Contains(strings.ToLower(title), keyword) {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byTitle)
}

// locked resolves id under the caller-held mutex.
func (s *MemoryStore) locked(id model.DraftID) (*model.Draft, error) {
	title, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.byTitle[title], nil
}
