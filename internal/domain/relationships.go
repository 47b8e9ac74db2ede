package domain

// Relationship is one entry of a catalog entity's relationship list.
// Concrete variants: CoverArt, MangaRef, AuthorRef, UnknownRelationship.
type Relationship interface {
	RelatedID() string
	relationship()
}

// CoverArt links a manga to its cover image
type CoverArt struct {
	ID       string
	FileName string // Empty when the response did not include attributes
}

// MangaRef links a chapter to the manga it belongs to
type MangaRef struct {
	ID string
}

// AuthorRef links a manga to an author or artist
type AuthorRef struct {
	ID   string
	Name string
	Role string // "author" or "artist"
}

// UnknownRelationship keeps relationship types the client does not model
type UnknownRelationship struct {
	ID   string
	Type string
}

func (r CoverArt) RelatedID() string            { return r.ID }
func (r MangaRef) RelatedID() string            { return r.ID }
func (r AuthorRef) RelatedID() string           { return r.ID }
func (r UnknownRelationship) RelatedID() string { return r.ID }

func (CoverArt) relationship()            {}
func (MangaRef) relationship()            {}
func (AuthorRef) relationship()           {}
func (UnknownRelationship) relationship() {}

// FindCoverArt returns the first cover art relationship that carries a file
// name. This is the single lookup used for cover resolution.
func FindCoverArt(rels []Relationship) (CoverArt, bool) {
	for _, r := range rels {
		if c, ok := r.(CoverArt); ok && c.FileName != "" {
			return c, true
		}
	}
	return CoverArt{}, false
}

// FindManga returns the owning manga reference of a chapter
func FindManga(rels []Relationship) (MangaRef, bool) {
	for _, r := range rels {
		if m, ok := r.(MangaRef); ok && m.ID != "" {
			return m, true
		}
	}
	return MangaRef{}, false
}

// Authors returns the names of author relationships, skipping unnamed ones
func Authors(rels []Relationship) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rels {
		a, ok := r.(AuthorRef)
		if !ok || a.Name == "" || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		names = append(names, a.Name)
	}
	return names
}
