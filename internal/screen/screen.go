package screen

import (
	"context"
	"sync"

	"glam-admin/internal/domain/toast"
	xerrors "glam-admin/internal/pkg/errors"

	"go.uber.org/zap"
)

// Source is the read and delete side of a resource.
type Source[T, F any] interface {
	List(ctx context.Context, f F) ([]T, int, error)
	Remove(ctx context.Context, id string) error
	ID(item T) string
	Match(item T, q string) bool
	Labels() Labels
}

// Editor is the create/edit side. Resources without a modal form have none.
type Editor[T, D any] interface {
	Empty() D
	DraftOf(item T) D
	Validate(d D) error
	Create(ctx context.Context, d D) (T, error)
	Update(ctx context.Context, id string, d D) (T, error)
}

// Labels are the user-facing words a screen needs for toasts and empty states.
type Labels struct {
	Noun     string `json:"noun"`
	EmptyMsg string `json:"emptyMessage"`
	EmptyCTA string `json:"emptyCta,omitempty"`
}

// Notifier receives toasts.
type Notifier interface {
	Notify(t toast.Toast)
}

type nopNotifier struct{}

func (nopNotifier) Notify(toast.Toast) {}

// NoDraft is the draft type of a screen without an editor.
type NoDraft struct{}

// View is a point-in-time copy of a screen's state.
type View[T, F, D any] struct {
	Filter          F                 `json:"filter"`
	Search          string            `json:"search"`
	Items           []T               `json:"items"`
	Total           int               `json:"total"`
	Loading         bool              `json:"loading"`
	Error           string            `json:"error,omitempty"`
	Empty           bool              `json:"empty"`
	Labels          Labels            `json:"labels"`
	Draft           *D                `json:"draft"`
	EditingID       string            `json:"editingId"`
	Submitting      bool              `json:"submitting"`
	FieldErrors     map[string]string `json:"fieldErrors,omitempty"`
	PendingDeleteID string            `json:"pendingDeleteId"`
	Deleting        bool              `json:"deleting"`
}

// Screen holds the list, filter, draft and pending-confirmation state of one
// admin page and drives its list and mutation calls.
type Screen[T, F, D any] struct {
	src    Source[T, F]
	ed     Editor[T, D]
	notify Notifier
	logger *zap.Logger

	initial F

	mu      sync.Mutex
	filter  F
	search  string
	items   []T
	total   int
	loading bool
	loadErr string
	loaded  bool
	gen     uint64

	draft      *D
	editingID  string
	submitting bool
	fieldErrs  map[string]string

	pendingDelete string
	deleting      bool
}

func New[T, F, D any](src Source[T, F], ed Editor[T, D], initial F, notify Notifier, logger *zap.Logger) *Screen[T, F, D] {
	if notify == nil {
		notify = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen[T, F, D]{
		src:     src,
		ed:      ed,
		notify:  notify,
		logger:  logger.With(zap.String("screen", src.Labels().Noun)),
		initial: initial,
		filter:  initial,
	}
}

// Refresh re-runs the list call for the current filter. Only the response to
// the most recently issued call is applied; older responses are dropped.
func (s *Screen[T, F, D]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	f := s.filter
	s.loading = true
	s.mu.Unlock()

	items, total, err := s.src.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.logger.Debug("stale list response dropped", zap.Uint64("generation", gen))
		return nil
	}
	s.loading = false
	if err != nil {
		s.loadErr = xerrors.UserMessage(err, "Failed to load "+s.src.Labels().Noun+" list")
		if !xerrors.IsAuth(err) {
			s.notify.Notify(toast.Error(s.src.Labels().Noun, s.loadErr))
		}
		return err
	}
	s.items = items
	s.total = total
	s.loadErr = ""
	s.loaded = true
	return nil
}

// SetFilter replaces the server-side filter and re-fetches.
func (s *Screen[T, F, D]) SetFilter(ctx context.Context, f F) error {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetSearch narrows the loaded items client-side. It never calls the API.
func (s *Screen[T, F, D]) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = q
}

func (s *Screen[T, F, D]) Filter() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Screen[T, F, D]) Snapshot() View[T, F, D] {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if s.src.Match(it, s.search) {
			items = append(items, it)
		}
	}

	v := View[T, F, D]{
		Filter:          s.filter,
		Search:          s.search,
		Items:           items,
		Total:           s.total,
		Loading:         s.loading || (!s.loaded && s.loadErr == ""),
		Error:           s.loadErr,
		Labels:          s.src.Labels(),
		EditingID:       s.editingID,
		Submitting:      s.submitting,
		PendingDeleteID: s.pendingDelete,
		Deleting:        s.deleting,
	}
	v.Empty = !v.Loading && v.Error == "" && len(items) == 0
	if s.draft != nil {
		d := *s.draft
		v.Draft = &d
	}
	if len(s.fieldErrs) > 0 {
		v.FieldErrors = make(map[string]string, len(s.fieldErrs))
		for k, msg := range s.fieldErrs {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

// find looks an item up in the last loaded list. Callers hold mu.
func (s *Screen[T, F, D]) find(id string) (T, bool) {
	for _, it := range s.items {
		if s.src.ID(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *Screen[T, F, D]) OpenCreate() error {
	if s.ed == nil {
		return xerrors.ErrNotEditable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.ed.Empty()
	s.draft = &d
	s.editingID = ""
	s.fieldErrs = nil
	return nil
}

func (s *Screen[T, F, D]) OpenEdit(id string) error {
	if s.ed == nil {
		return xerrors.ErrNotEditable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.find(id)
	if !ok {
		return xerrors.ErrNotFound
	}
	d := s.ed.DraftOf(it)
	s.draft = &d
	s.editingID = id
	s.fieldErrs = nil
	return nil
}

// EditDraft applies fn to the open draft.
func (s *Screen[T, F, D]) EditDraft(fn func(d *D)) error {
	return s.UpdateDraft(func(d *D) error {
		fn(d)
		return nil
	})
}

// UpdateDraft applies fn to a copy of the open draft and keeps the copy only
// if fn succeeds.
func (s *Screen[T, F, D]) UpdateDraft(fn func(d *D) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return xerrors.ErrNoDraft
	}
	d := *s.draft
	if err := fn(&d); err != nil {
		return err
	}
	*s.draft = d
	return nil
}

// Draft returns a copy of the open draft.
func (s *Screen[T, F, D]) Draft() (D, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		var zero D
		return zero, false
	}
	return *s.draft, true
}

func (s *Screen[T, F, D]) CloseDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	s.editingID = ""
	s.fieldErrs = nil
}

// Submit validates the draft and creates or updates. A second Submit while
// one is in flight returns ErrBusy without calling the API.
func (s *Screen[T, F, D]) Submit(ctx context.Context) (T, error) {
	var zero T
	if s.ed == nil {
		return zero, xerrors.ErrNotEditable
	}

	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return zero, xerrors.ErrNoDraft
	}
	if s.submitting {
		s.mu.Unlock()
		return zero, xerrors.ErrBusy
	}
	d := *s.draft
	id := s.editingID
	if err := s.ed.Validate(d); err != nil {
		if e, ok := xerrors.As(err); ok {
			s.fieldErrs = e.Fields
		}
		s.mu.Unlock()
		return zero, err
	}
	s.fieldErrs = nil
	s.submitting = true
	s.mu.Unlock()

	noun := s.src.Labels().Noun
	var (
		saved T
		err   error
		verb  string
	)
	if id == "" {
		saved, err = s.ed.Create(ctx, d)
		verb = "created"
	} else {
		saved, err = s.ed.Update(ctx, id, d)
		verb = "updated"
	}

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("save failed", zap.String("id", id), zap.Error(err))
		if !xerrors.IsAuth(err) {
			s.notify.Notify(toast.Error(noun, xerrors.UserMessage(err, "Failed to save "+noun)))
		}
		return zero, err
	}
	s.draft = nil
	s.editingID = ""
	s.mu.Unlock()

	s.notify.Notify(toast.Success(noun, capitalize(noun)+" "+verb))
	s.refreshAfterWrite(ctx)
	return saved, nil
}

// RequestDelete is the first step of a delete. Nothing is sent yet.
func (s *Screen[T, F, D]) RequestDelete(id string) error {
	if id == "" {
		return xerrors.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = id
	return nil
}

func (s *Screen[T, F, D]) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = ""
}

// ConfirmDelete removes the pending item. The pending id is cleared whether
// or not the call succeeds; a failed delete must be requested again. A
// different id requested while the call was in flight stays pending.
func (s *Screen[T, F, D]) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.pendingDelete == "" {
		s.mu.Unlock()
		return xerrors.ErrNoPending
	}
	if s.deleting {
		s.mu.Unlock()
		return xerrors.ErrBusy
	}
	id := s.pendingDelete
	s.deleting = true
	s.mu.Unlock()

	err := s.src.Remove(ctx, id)
	noun := s.src.Labels().Noun

	s.mu.Lock()
	s.deleting = false
	if s.pendingDelete == id {
		s.pendingDelete = ""
	}
	if err == nil && s.editingID == id {
		s.draft = nil
		s.editingID = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("delete failed", zap.String("id", id), zap.Error(err))
		if !xerrors.IsAuth(err) {
			s.notify.Notify(toast.Error(noun, xerrors.UserMessage(err, "Failed to delete "+noun)))
		}
		return err
	}
	s.notify.Notify(toast.Success(noun, capitalize(noun)+" deleted"))
	s.refreshAfterWrite(ctx)
	return nil
}

// Reset drops everything the screen learned under the previous session:
// loaded items, search, filter, draft and pending confirmations. Responses
// still in flight are discarded when they land.
func (s *Screen[T, F, D]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.filter = s.initial
	s.search = ""
	s.items = nil
	s.total = 0
	s.loading = false
	s.loadErr = ""
	s.loaded = false
	s.draft = nil
	s.editingID = ""
	s.fieldErrs = nil
	s.pendingDelete = ""
}

// refreshAfterWrite re-fetches after a successful mutation. The write already
// succeeded, so a failed re-fetch only shows up as the list's load error.
func (s *Screen[T, F, D]) refreshAfterWrite(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after write failed", zap.Error(err))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
