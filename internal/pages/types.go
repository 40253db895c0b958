package pages

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MemoryPage is the canonical record for a shareable memory page. The JSON
// field names are the public wire contract; the synced flag is persisted but
// never serialized.
type MemoryPage struct {
	bun.BaseModel `bun:"table:memory_pages,alias:mp"`

	ID            uuid.UUID  `bun:",pk,type:uuid"                                   json:"id"`
	Slug          string     `bun:"slug,notnull,unique"                             json:"slug"`
	DedicatedText string     `bun:"dedicated_text,notnull"                          json:"dedicatedText"`
	ImageURLs     []string   `bun:"image_urls,type:jsonb"                           json:"imageUrls"`
	MusicURL      *string    `bun:"music_url"                                       json:"musicUrl,omitempty"`
	TargetDate    *time.Time `bun:"target_date,nullzero"                            json:"targetDate,omitempty"`
	CreationDate  time.Time  `bun:"creation_date,nullzero,default:current_timestamp" json:"creationDate"`
	ViewCount     int64      `bun:"view_count,notnull,default:0"                    json:"viewCount"`
	Synced        bool       `bun:"is_synced,notnull,default:false"                 json:"-"`
}

// CreatePageRequest captures the payload required to create a memory page.
type CreatePageRequest struct {
	DedicatedText string
	ImageURLs     []string
	MusicURL      *string
	TargetDate    *time.Time
	SuggestedSlug string
}

// UpdatePageRequest captures the mutable fields for an existing page. Nil
// fields are left untouched; a non-nil ImageURLs replaces the stored list
// wholesale.
type UpdatePageRequest struct {
	DedicatedText *string
	ImageURLs     []string
	MusicURL      *string
	TargetDate    *time.Time
}

// Upload carries a single incoming file. Content is consumed exactly once and
// streams to the object store; Size may be -1 when the length is unknown.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

func clonePage(record *MemoryPage) *MemoryPage {
	if record == nil {
		return nil
	}
	copied := *record
	if record.ImageURLs != nil {
		copied.ImageURLs = append([]string(nil), record.ImageURLs...)
	}
	if record.MusicURL != nil {
		music := *record.MusicURL
		copied.MusicURL = &music
	}
	if record.TargetDate != nil {
		target := *record.TargetDate
		copied.TargetDate = &target
	}
	return &copied
}
