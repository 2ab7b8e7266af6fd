// Package notify fans out "comment added" events over redis pub/sub, one
// channel per item. Delivery is best effort; whoever relays the channel to
// browsers owns the rest.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type CommentPublisher struct {
	rdb *redis.Client
}

func NewCommentPublisher(rdb *redis.Client) *CommentPublisher {
	return &CommentPublisher{rdb: rdb}
}

type CommentEvent struct {
	ItemID     string    `json:"itemId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

func channel(itemID string) string { return fmt.Sprintf("catalog:item_comments:%s", itemID) }

// Publish never fails the request that triggered it; a dropped event is
// only a missed live update.
func (p *CommentPublisher) Publish(ctx context.Context, ev CommentEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, channel(ev.ItemID), b).Err(); err != nil {
		log.Printf("publish comment event for item %s: %v", ev.ItemID, err)
	}
}
