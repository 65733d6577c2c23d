package model

import (
	"strings"
	"time"
)

// Content type values stored in content.content_type.
const (
	ContentTypePDF   = "pdf"
	ContentTypeEPUB  = "epub"
	ContentTypeDoc   = "doc"
	ContentTypeDocx  = "docx"
	ContentTypePpt   = "ppt"
	ContentTypePptx  = "pptx"
	ContentTypeTxt   = "txt"
	ContentTypeAudio = "audio"
	ContentTypeVideo = "video"
	ContentTypeOther = "other"
)

// ContentItem represents a row in the `content` table. PriceCents of
// zero marks the item as free, which makes it implicitly accessible to
// every user. The File* fields stay empty until an upload completed;
// FileKey is the opaque object-store reference and is never exposed to
// clients directly.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title.
//  Description – long description.
//  Subject     – subject/category label.
//  PriceCents  – price in cents; 0 means free.
//  PreviewURL  – optional public preview link.
//  Type        – one of the ContentType* values.
//  Lessons     – number of lessons in the kit.
//  FileKey     – object-store key of the artifact (empty = no upload yet).
//  FileName    – original file name, used for Content-Disposition.
//  FileType    – declared mime type of the artifact.
//  FileSize    – artifact size in bytes.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type ContentItem struct {
	ID          uint64
	Title       string
	Description string
	Subject     string
	PriceCents  uint32
	PreviewURL  string
	Type        string
	Lessons     uint32
	FileKey     string
	FileName    string
	FileType    string
	FileSize    uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Free reports whether the item is universally accessible.
func (c *ContentItem) Free() bool { return c.PriceCents == 0 }

// HasArtifact reports whether an upload ever completed for the item.
func (c *ContentItem) HasArtifact() bool { return c.FileKey != "" }

// DetectContentType maps a mime type reported at upload time to one of
// the ContentType* values. Unknown mime types fall back to "other".
func DetectContentType(mime string) string {
	m := strings.ToLower(mime)
	switch {
	case strings.Contains(m, "pdf"):
		return ContentTypePDF
	case strings.Contains(m, "word"), strings.Contains(m, "msword"), strings.Contains(m, "doc"):
		return ContentTypeDocx
	case strings.Contains(m, "presentation"), strings.Contains(m, "powerpoint"):
		return ContentTypePptx
	case strings.Contains(m, "text"):
		return ContentTypeTxt
	case strings.Contains(m, "audio"):
		return ContentTypeAudio
	case strings.Contains(m, "video"):
		return ContentTypeVideo
	case strings.Contains(m, "epub"):
		return ContentTypeEPUB
	default:
		return ContentTypeOther
	}
}
