package models

// CommentModel is a comment attached to exactly one content item. Comments
// have no independent lifecycle: deleting the parent removes them.
type CommentModel struct {
	Base      `bson:",inline"`
	ContentID string `json:"content_id" bson:"contentId"`
	AuthorID  string `json:"author_id"  bson:"authorId"`
	Author    string `json:"author"     bson:"author"`
	Text      string `json:"text"       bson:"text"`
}

func (CommentModel) CollectionName() string { return "comments" }
