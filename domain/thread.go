package domain

import "time"

// Thread is a discussion topic returned by the board feed.
// Values are immutable once fetched; stores reference them by No.
type Thread struct {
	No          int64  `json:"no"`
	Subject     string `json:"sub,omitempty"`
	Comment     string `json:"com,omitempty"` // Plain text, HTML stripped
	SemanticURL string `json:"semantic_url,omitempty"`
	Replies     int    `json:"replies"`
	Tim         int64  `json:"tim,omitempty"` // Thumbnail id; 0 when the OP has no file
}

// HasThumbnail reports whether the opening post carries a file.
func (t Thread) HasThumbnail() bool {
	return t.Tim != 0
}

// Media is a single file attached to a post in a thread.
type Media struct {
	Tim      int64  `json:"tim"`
	Filename string `json:"filename"`
	Ext      string `json:"ext"`
	Width    int    `json:"w,omitempty"`
	Height   int    `json:"h,omitempty"`
}

// Name returns the original filename with its extension.
func (m Media) Name() string {
	return m.Filename + m.Ext
}

// FavouriteEntry records when a thread was favourited.
type FavouriteEntry struct {
	Thread  Thread    `json:"thread"`
	AddedAt time.Time `json:"addedTimestamp"`
}

// HiddenEntry records when a thread was hidden.
type HiddenEntry struct {
	Thread   Thread    `json:"thread"`
	HiddenAt time.Time `json:"hiddenTimestamp"`
}

// PositionEntry is the last viewed media index of a thread.
type PositionEntry struct {
	ThreadNo int64
	Index    int
}
