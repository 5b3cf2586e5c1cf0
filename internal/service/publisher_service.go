package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Metadata keys on order-finalized messages. The payload itself is the
// finished workbook.
const (
	MetaOrderID      = "order_id"
	MetaFilename     = "filename"
	MetaRequesterID  = "requester_id"
	MetaUserName     = "user_name"
	MetaStore        = "store"
	MetaProductCount = "product_count"
)

type IPublisherService interface {
	PublishOrderFinalized(ctx context.Context, meta map[string]string, workbook []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishOrderFinalized(ctx context.Context, meta map[string]string, workbook []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), workbook)
	msg.Metadata.Set(MetaOrderID, uuid.NewString())
	for k, v := range meta {
		msg.Metadata.Set(k, v)
	}
	msg.SetContext(ctx)
	return ps.pubSub.Publish(ps.topicName, msg)
}
