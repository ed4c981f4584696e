package models

type YouTubeCommentThreadsResponse struct {
	NextPageToken string                 `json:"nextPageToken"`
	Items         []YouTubeCommentThread `json:"items"`
}

type YouTubeCommentThread struct {
	Snippet YouTubeThreadSnippet `json:"snippet"`
	Replies YouTubeReplyList     `json:"replies"`
}

type YouTubeThreadSnippet struct {
	TopLevelComment YouTubeComment `json:"topLevelComment"`
}

type YouTubeReplyList struct {
	Comments []YouTubeComment `json:"comments"`
}

type YouTubeComment struct {
	Snippet YouTubeCommentSnippet `json:"snippet"`
}

type YouTubeCommentSnippet struct {
	TextDisplay string `json:"textDisplay"`
	LikeCount   int    `json:"likeCount"`
	PublishedAt string `json:"publishedAt"`
}
