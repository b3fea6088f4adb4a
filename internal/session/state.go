// Package session holds the per-browser state of the manual entry form.
//
// A State owns one income list and one expense list. Rows are addressed by
// (kind, index); the index is the row identity for as long as the list is not
// reset, so edits to one row never touch another.
package session

import (
	"fmt"
	"sync"

	"finapp/internal/core"
)

// State is the session-scoped context object handed to view handlers.
type State struct {
	mu       sync.Mutex
	lists    map[core.Kind]core.EntryList
	currency string
}

// NewState returns an initialized state with one blank row per kind. The zero
// State is also usable: it starts with empty lists.
func NewState() *State {
	s := &State{}
	s.Init()
	return s
}

// Init creates a single-blank-row list for every kind that has none yet.
// Existing lists are left untouched, so calling Init repeatedly is safe.
func (s *State) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLists()
	for _, k := range []core.Kind{core.Income, core.Expense} {
		if _, ok := s.lists[k]; !ok {
			s.lists[k] = core.EntryList{{}}
		}
	}
	if s.currency == "" {
		s.currency = core.DefaultCurrency
	}
}

// ensureLists allocates the list map; callers hold mu.
func (s *State) ensureLists() {
	if s.lists == nil {
		s.lists = make(map[core.Kind]core.EntryList, 2)
	}
}

// AppendBlank adds one empty row at the end of the kind's list.
func (s *State) AppendBlank(kind core.Kind) error {
	if _, err := core.ParseKind(string(kind)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLists()
	s.lists[kind] = append(s.lists[kind], core.EntryRecord{})
	return nil
}

// ResetAll discards every row and leaves one blank row per kind.
func (s *State) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLists()
	s.lists[core.Income] = core.EntryList{{}}
	s.lists[core.Expense] = core.EntryList{{}}
}

// Update replaces the fields of exactly one row.
func (s *State) Update(kind core.Kind, index int, rec core.EntryRecord) error {
	if _, err := core.ParseKind(string(kind)); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%s row %d: %w", kind, index, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[kind]
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%s row %d of %d: %w", kind, index, len(list), core.ErrIndexOutOfRange)
	}
	list[index] = rec
	return nil
}

// Entries returns a copy of the kind's list.
func (s *State) Entries(kind core.Kind) core.EntryList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists[kind].Clone()
}

// Len returns the number of rows of the kind.
func (s *State) Len(kind core.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lists[kind])
}

// Currency returns the currency last selected in the form.
func (s *State) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency records the selected currency. Unknown codes are ignored.
func (s *State) SetCurrency(code string) bool {
	if !core.IsCurrency(code) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = code
	return true
}

// RequestText serializes the current rows into analysis text.
func (s *State) RequestText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.BuildRequestText(s.lists[core.Income], s.lists[core.Expense], s.currency)
}
