package mangadex

import (
	"bytes"
	"encoding/json"
)

// LocalizedString maps locale to text. The API encodes an empty one as []
// instead of {}, so both are accepted.
type LocalizedString map[string]string

func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.HasPrefix(trimmed, []byte("[")) {
		*l = LocalizedString{}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// envelope is the part every response shares
type envelope struct {
	Result string     `json:"result"` // "ok" or "error"
	Errors []APIError `json:"errors,omitempty"`
}

// APIError is one entry of an error response
type APIError struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// MangaListResponse is the /manga collection response
type MangaListResponse struct {
	Result string      `json:"result"`
	Data   []MangaData `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Total  int         `json:"total"`
}

// MangaResponse is the /manga/{id} entity response
type MangaResponse struct {
	Result string    `json:"result"`
	Data   MangaData `json:"data"`
}

// MangaData is a manga entity
type MangaData struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	Attributes    MangaAttributes    `json:"attributes"`
	Relationships []RelationshipData `json:"relationships"`
}

// MangaAttributes holds the manga fields the client reads
type MangaAttributes struct {
	Title         LocalizedString   `json:"title"`
	AltTitles     []LocalizedString `json:"altTitles"`
	Description   LocalizedString   `json:"description"`
	Status        string            `json:"status"`
	Year          int               `json:"year"`
	ContentRating string            `json:"contentRating"`
	LastChapter   string            `json:"lastChapter"`
	Tags          []TagData         `json:"tags"`
}

// TagData is a tag entity
type TagData struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Name  LocalizedString `json:"name"`
		Group string          `json:"group"`
	} `json:"attributes"`
}

// TagListResponse is the /manga/tag response
type TagListResponse struct {
	Result string    `json:"result"`
	Data   []TagData `json:"data"`
}

// RelationshipData is one relationship entry. Attributes are only present
// when the request asked for the type with includes[], and their shape
// depends on Type.
type RelationshipData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Related    string          `json:"related,omitempty"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// coverArtAttributes is the attributes shape of a cover_art relationship
type coverArtAttributes struct {
	FileName string `json:"fileName"`
	Volume   string `json:"volume"`
}

// authorAttributes is the attributes shape of author/artist relationships
type authorAttributes struct {
	Name string `json:"name"`
}

// ChapterListResponse is the /chapter collection response
type ChapterListResponse struct {
	Result string        `json:"result"`
	Data   []ChapterData `json:"data"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Total  int           `json:"total"`
}

// ChapterResponse is the /chapter/{id} entity response
type ChapterResponse struct {
	Result string      `json:"result"`
	Data   ChapterData `json:"data"`
}

// ChapterData is a chapter entity
type ChapterData struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	Attributes    ChapterAttributes  `json:"attributes"`
	Relationships []RelationshipData `json:"relationships"`
}

// ChapterAttributes holds the chapter fields the client reads.
// Volume, Chapter and Title are null for oneshots and specials.
type ChapterAttributes struct {
	Volume             string `json:"volume"`
	Chapter            string `json:"chapter"`
	Title              string `json:"title"`
	TranslatedLanguage string `json:"translatedLanguage"`
	Pages              int    `json:"pages"`
	PublishAt          string `json:"publishAt"`
}

// AtHomeResponse is the /at-home/server/{chapterId} page manifest
type AtHomeResponse struct {
	Result  string `json:"result"`
	BaseURL string `json:"baseUrl"`
	Chapter struct {
		Hash      string   `json:"hash"`
		Data      []string `json:"data"`
		DataSaver []string `json:"dataSaver"`
	} `json:"chapter"`
}
