package records

import "fmt"

// State owns the record list, the add-mode draft, the edit cursor, the search
// term and the pagination cursor. All transitions run synchronously on the
// caller's goroutine; derived views are recomputed from State on demand.
type State struct {
	Records     []Record
	Draft       Record
	CurrentPage int
	SearchTerm  string

	// Strict enables validation on Submit. Off by default: every input is accepted.
	Strict bool

	editIndex int
	editing   bool
}

// New returns an empty state on page 1 in add mode.
func New() *State {
	return &State{CurrentPage: 1}
}

// EditIndex returns the index of the record being edited, if any.
func (s *State) EditIndex() (int, bool) {
	if !s.editing {
		return 0, false
	}
	return s.editIndex, true
}

// Editing reports whether a record is currently in edit mode.
func (s *State) Editing() bool {
	return s.editing
}

// FormRecord returns the record the form should display: the draft in add
// mode, or the record under edit.
func (s *State) FormRecord() Record {
	if idx, ok := s.EditIndex(); ok {
		return s.Records[idx]
	}
	return s.Draft
}

// ChangeField writes value into the record under edit, or into the draft
// when no edit is active.
func (s *State) ChangeField(f Field, value string) {
	if idx, ok := s.EditIndex(); ok {
		s.Records[idx].Set(f, value)
		return
	}
	s.Draft.Set(f, value)
}

// Submit ends an active edit, or appends the draft and lands on the last page.
// Edits were already applied by ChangeField, so ending one changes no data.
func (s *State) Submit() error {
	if idx, ok := s.EditIndex(); ok {
		if s.Strict {
			if err := Validate(s.Records[idx]); err != nil {
				return err
			}
		}
		s.clearEdit()
		return nil
	}
	if s.Strict {
		if err := Validate(s.Draft); err != nil {
			return err
		}
	}
	s.Records = append(s.Records, s.Draft)
	s.Draft = Record{}
	s.landOnLastPage()
	return nil
}

// Rejection is a batch record that AppendAll refused in strict mode.
type Rejection struct {
	Position int
	Err      error
}

// AppendAll appends a batch of records in order and lands on the last page.
// In strict mode records that fail validation are left out and reported by
// their position in batch.
func (s *State) AppendAll(batch []Record) []Rejection {
	var rejected []Rejection
	added := 0
	for i, r := range batch {
		if s.Strict {
			if err := Validate(r); err != nil {
				rejected = append(rejected, Rejection{Position: i, Err: err})
				continue
			}
		}
		s.Records = append(s.Records, r)
		added++
	}
	if added > 0 {
		s.landOnLastPage()
	}
	return rejected
}

// Edit puts the record at index into edit mode. Values already applied to a
// previously edited record stay as they are.
func (s *State) Edit(index int) error {
	if index < 0 || index >= len(s.Records) {
		return fmt.Errorf("edit %d: %w", index, ErrIndexOutOfRange)
	}
	s.editIndex = index
	s.editing = true
	return nil
}

// Delete removes the record at index, shifting later records up by one.
func (s *State) Delete(index int) error {
	if index < 0 || index >= len(s.Records) {
		return fmt.Errorf("delete %d: %w", index, ErrIndexOutOfRange)
	}
	firstRow := FirstRowIndex(s.CurrentPage)
	s.Records = append(s.Records[:index], s.Records[index+1:]...)

	if s.editing {
		switch {
		case s.editIndex == index:
			s.clearEdit()
		case s.editIndex > index:
			s.editIndex--
		}
	}
	if len(s.Records) == 0 {
		s.Records = nil
		s.SearchTerm = ""
	}
	if s.CurrentPage > 1 && len(s.Records) <= firstRow {
		s.CurrentPage--
	}
	s.clampPage()
	return nil
}

// ChangeSearch sets the search term. Filtering is derived live from it.
func (s *State) ChangeSearch(text string) {
	s.SearchTerm = text
	s.clampPage()
}

// Search rewinds to the first page of results.
func (s *State) Search() {
	s.CurrentPage = 1
}

// ChangePage jumps to page n, which must be one of PageNumbers.
func (s *State) ChangePage(n int) error {
	if n < 1 || n > maxPage(s.VisibleCount()) {
		return fmt.Errorf("page %d: %w", n, ErrPageOutOfRange)
	}
	s.CurrentPage = n
	return nil
}

// VisibleCount is the number of records that pass the current search term.
func (s *State) VisibleCount() int {
	if s.SearchTerm == "" {
		return len(s.Records)
	}
	return len(Filter(s.Records, s.SearchTerm))
}

func (s *State) clearEdit() {
	s.editing = false
	s.editIndex = 0
}

// landOnLastPage moves to the last page of the full list, then clamps to the
// pages a search term leaves visible.
func (s *State) landOnLastPage() {
	s.CurrentPage = maxPage(len(s.Records))
	s.clampPage()
}

func (s *State) clampPage() {
	if limit := maxPage(s.VisibleCount()); s.CurrentPage > limit {
		s.CurrentPage = limit
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
}

func maxPage(n int) int {
	if pages := TotalPages(n); pages > 1 {
		return pages
	}
	return 1
}
