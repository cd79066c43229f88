package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
)

// Media is the metadata record for an uploaded asset. URL is the
// storage-relative path the file is served from; Filename keeps the original
// upload name.
type Media struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Type        string        `bson:"type" json:"type"`
	URL         string        `bson:"url" json:"url"`
	Filename    string        `bson:"filename" json:"filename"`
	Size        int64         `bson:"size" json:"size"`
	Mimetype    string        `bson:"mimetype" json:"mimetype"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

// MediaTypeFromMime maps a MIME type onto the stored media type by its major
// part: image/* and video/* keep their kind, everything else is a document.
func MediaTypeFromMime(mimetype string) string {
	major, _, _ := strings.Cut(mimetype, "/")
	switch major {
	case "image":
		return MediaTypeImage
	case "video":
		return MediaTypeVideo
	default:
		return MediaTypeDocument
	}
}
