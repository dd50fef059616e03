// Package redis implements the session, memory, story and media stores on
// Redis using github.com/redis/go-redis. Entities are stored as JSON values
// keyed by id, with set indexes for listing.
package redis

import (
	"fmt"

	"github.com/storee/storee"
)

const keyPrefix = "storee"

func sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

func ownerSessionsKey(owner string) string {
	return fmt.Sprintf("%s:owner:%s:sessions", keyPrefix, owner)
}

func memoryKey(id string) string {
	return fmt.Sprintf("%s:memory:%s", keyPrefix, id)
}

func ownerMemoriesKey(owner string) string {
	return fmt.Sprintf("%s:owner:%s:memories", keyPrefix, owner)
}

func storyKey(id string) string {
	return fmt.Sprintf("%s:story:%s", keyPrefix, id)
}

func ownerStoriesKey(owner string) string {
	return fmt.Sprintf("%s:owner:%s:stories", keyPrefix, owner)
}

func attachmentKey(id string) string {
	return fmt.Sprintf("%s:attachment:%s", keyPrefix, id)
}

func memoryAttachmentsKey(memoryID string) string {
	return fmt.Sprintf("%s:memory:%s:attachments", keyPrefix, memoryID)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, storee.ErrNotFound)
}
