package tui

// viewKind identifies one screen of the application
type viewKind int

const (
	viewCatalog viewKind = iota
	viewDetail
	viewReader
)

func (v viewKind) String() string {
	switch v {
	case viewDetail:
		return "Manga"
	case viewReader:
		return "Reader"
	default:
		return "Catalog"
	}
}

// viewStack records the screens the user drilled through.
// The catalog is always at the bottom and is never popped.
//
//	Catalog:  [Catalog]
//	Detail:   [Catalog, Manga]
//	Reader:   [Catalog, Manga, Reader] or [Catalog, Reader] from the shelf
type viewStack struct {
	views []viewKind
}

func newViewStack() *viewStack {
	return &viewStack{views: []viewKind{viewCatalog}}
}

// Top returns the current view
func (s *viewStack) Top() viewKind {
	return s.views[len(s.views)-1]
}

// Push shows a view on top of the current one. Pushing the view that is
// already on top is a no-op.
func (s *viewStack) Push(v viewKind) {
	if s.Top() == v {
		return
	}
	s.views = append(s.views, v)
}

// Pop removes the current view and returns it. The catalog stays.
func (s *viewStack) Pop() (viewKind, bool) {
	if len(s.views) <= 1 {
		return viewCatalog, false
	}
	top := s.Top()
	s.views = s.views[:len(s.views)-1]
	return top, true
}

// Contains reports whether v is anywhere on the stack
func (s *viewStack) Contains(v viewKind) bool {
	for _, view := range s.views {
		if view == v {
			return true
		}
	}
	return false
}

// CanGoBack returns true if we can navigate back (not at root)
func (s *viewStack) CanGoBack() bool {
	return len(s.views) > 1
}

// Breadcrumb returns the stack as "Catalog > Manga > Reader"
func (s *viewStack) Breadcrumb() []string {
	parts := make([]string, len(s.views))
	for i, v := range s.views {
		parts[i] = v.String()
	}
	return parts
}
