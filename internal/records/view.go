package records

import "strings"

// Row is a record as rendered in the table.
type Row struct {
	// Index is the record's position in State.Records.
	Index int
	// Number is the 1-based serial shown in the S.No. column.
	Number int
	Record Record
}

// View is everything the presentation layer needs to draw the table.
type View struct {
	Rows           []Row
	Visible        int
	CurrentPage    int
	PageNumbers    []int
	ShowTable      bool
	ShowPagination bool
}

// Filter returns the records whose first or last name contains term,
// ignoring case. An empty term matches everything. Order is preserved.
func Filter(list []Record, term string) []Row {
	needle := strings.ToLower(term)
	rows := make([]Row, 0, len(list))
	for i, r := range list {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.FirstName), needle) &&
			!strings.Contains(strings.ToLower(r.LastName), needle) {
			continue
		}
		rows = append(rows, Row{Index: i, Number: len(rows) + 1, Record: r})
	}
	return rows
}

// TotalPages is ceil(count / PageSize).
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// PageNumbers lists 1..TotalPages(count).
func PageNumbers(count int) []int {
	total := TotalPages(count)
	pages := make([]int, 0, total)
	for i := 1; i <= total; i++ {
		pages = append(pages, i)
	}
	return pages
}

// FirstRowIndex is the zero-based position of the first row on page.
func FirstRowIndex(page int) int {
	return (page - 1) * PageSize
}

// Page slices rows down to the given page. Out of range pages yield no rows.
func Page(rows []Row, page int) []Row {
	start := FirstRowIndex(page)
	if start < 0 || start >= len(rows) {
		return nil
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// View derives the table for the current records, search term and page.
func (s *State) View() View {
	rows := Filter(s.Records, s.SearchTerm)
	return View{
		Rows:           Page(rows, s.CurrentPage),
		Visible:        len(rows),
		CurrentPage:    s.CurrentPage,
		PageNumbers:    PageNumbers(len(rows)),
		ShowTable:      len(rows) > 0,
		ShowPagination: s.SearchTerm == "",
	}
}
