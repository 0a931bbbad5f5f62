package models

// ContentKind distinguishes the two unified content shapes.
type ContentKind string

const (
	KindBlog    ContentKind = "blog"
	KindProject ContentKind = "project"
)

// Engagement is the denormalized counter/membership pair for views and likes.
// Counters are a derived cache of set cardinality and are only ever written
// together with the matching set operation in a single document update.
type Engagement struct {
	ViewCount int64    `json:"view_count" bson:"viewCount"`
	LikeCount int64    `json:"like_count" bson:"likeCount"`
	ViewedBy  []string `json:"viewed_by"  bson:"viewedBy"`
	LikedBy   []string `json:"liked_by"   bson:"likedBy"`
}

// ContentModel is a blog post or project in the content-items collection.
type ContentModel struct {
	Base        `bson:",inline"`
	Kind        ContentKind `json:"kind"         bson:"kind"`
	Title       string      `json:"title"        bson:"title"`
	Text        string      `json:"text"         bson:"text"`
	Category    string      `json:"category"     bson:"category"`
	Tags        []string    `json:"tags"         bson:"tags"`
	IsPublished bool        `json:"is_published" bson:"isPublished"`
	IsFeatured  bool        `json:"is_featured"  bson:"isFeatured"`
	Engagement  Engagement  `json:"engagement"   bson:"engagement"`
	Media       string      `json:"media,omitempty" bson:"media,omitempty"`
}

func (ContentModel) CollectionName() string { return "content-items" }
