package service

// Cache keys for catalog content
const (
	// KeyTags is the cache key for the full tag list
	KeyTags = "tags"

	// PrefixChapters is the prefix for chapter list caches (chapters:{lang}:{mangaID})
	PrefixChapters = "chapters:"
)

// chaptersKey returns the cache key of a manga's chapter list in one language
func chaptersKey(mangaID, language string) string {
	return PrefixChapters + language + ":" + mangaID
}
