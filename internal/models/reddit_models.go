package models

import "encoding/json"

type RedditListing struct {
	Kind string            `json:"kind"`
	Data RedditListingData `json:"data"`
}

type RedditListingData struct {
	After    string        `json:"after"`
	Children []RedditThing `json:"children"`
}

type RedditThing struct {
	Kind string          `json:"kind"`
	Data RedditThingData `json:"data"`
}

type RedditThingData struct {
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	// Replies is a nested listing for comments that have replies and the
	// empty string for those that do not, so it cannot decode into a struct
	// directly.
	Replies json.RawMessage `json:"replies"`
}
