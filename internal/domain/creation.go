package domain

import "time"

// CreationType labels a creation-log row by the feature that produced it.
type CreationType string

const (
	CreationArticle      CreationType = "article"
	CreationBlogTitle    CreationType = "blog-title"
	CreationExam         CreationType = "exam-generator"
	CreationResumeReview CreationType = "resume-review"
	CreationDocumentSum  CreationType = "document-summary"
	CreationVideoSummary CreationType = "youtube-summary"
	CreationVideoChat    CreationType = "youtube-chat"
)

// Creation is one row of the generation history log.
type Creation struct {
	ID        int64
	UserID    string
	Prompt    string
	Content   string
	Type      CreationType
	CreatedAt time.Time
}
