package dao

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based pagination window.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

// NewPage normalizes number and size.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: min(size, MaxPageSize)}
}

// Limit returns the SQL LIMIT.
func (p Page) Limit() int {
	return NewPage(p.Number, p.Size).Size
}

// Offset returns the SQL OFFSET.
func (p Page) Offset() int {
	n := NewPage(p.Number, p.Size)
	return (n.Number - 1) * n.Size
}
