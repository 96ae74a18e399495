package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type messageDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SenderID   primitive.ObjectID `bson:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiverId"`
	Text       string             `bson:"text,omitempty"`
	Image      string             `bson:"image,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *messageDoc) toDomain() *domain.Message {
	return &domain.Message{
		ID:         d.ID.Hex(),
		SenderID:   d.SenderID.Hex(),
		ReceiverID: d.ReceiverID.Hex(),
		Text:       d.Text,
		Image:      d.Image,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	sender, ok := objectID(msg.SenderID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	receiver, ok := objectID(msg.ReceiverID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDoc{
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       msg.Text,
		Image:      msg.Image,
		CreatedAt:  msg.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert message: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// Conversation returns the messages between a and b, oldest first.
func (r *MessageRepository) Conversation(ctx context.Context, a, b string) ([]*domain.Message, error) {
	oa, okA := objectID(a)
	ob, okB := objectID(b)
	if !okA || !okB {
		return []*domain.Message{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"senderId": oa, "receiverId": ob},
		bson.M{"senderId": ob, "receiverId": oa},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	msgs := make([]*domain.Message, len(docs))
	for i := range docs {
		msgs[i] = docs[i].toDomain()
	}
	return msgs, nil
}

type partnerRow struct {
	Partner primitive.ObjectID `bson:"_id"`
	Last    messageDoc         `bson:"last"`
}

// LatestPerPartner groups the user's messages by counterparty and keeps the
// most recent one of each group.
func (r *MessageRepository) LatestPerPartner(ctx context.Context, userID string) ([]domain.Conversation, error) {
	oid, ok := objectID(userID)
	if !ok {
		return []domain.Conversation{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, latestPerPartnerPipeline(oid))
	if err != nil {
		return nil, fmt.Errorf("aggregate chat partners: %w", err)
	}
	var rows []partnerRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode chat partners: %w", err)
	}

	out := make([]domain.Conversation, len(rows))
	for i := range rows {
		out[i] = domain.Conversation{
			PartnerID:   rows[i].Partner.Hex(),
			LastMessage: *rows[i].Last.toDomain(),
		}
	}
	return out, nil
}

func latestPerPartnerPipeline(user primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"senderId": user},
			bson.M{"receiverId": user},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$senderId", user}},
				"$receiverId",
				"$senderId",
			}},
			"last": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last.createdAt", Value: -1}}}},
	}
}

// EnsureIndexes creates the compound indexes backing conversation lookups.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "receiverId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "senderId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
