package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskbid/marketplace/internal/core/domain"
)

const bidsCollection = "bids"

// BidRepository implements ports.BidRepository using MongoDB.
type BidRepository struct {
	col *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{col: db.Collection(bidsCollection)}
}

// Create inserts a new bid. The unique (task_id, seller) index enforces the
// one-bid-per-pair invariant even under racing submissions.
func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBid
		}
		return err
	}
	return nil
}

func (r *BidRepository) FindByTaskAndSeller(ctx context.Context, taskID, seller string) (*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bid
	err := r.col.FindOne(ctx, bson.M{"task_id": taskID, "seller": seller}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoSuchBid
		}
		return nil, decodeError("find bid", err)
	}
	return &b, nil
}

func (r *BidRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Bid, error) {
	return r.list(ctx, bson.M{"task_id": taskID})
}

func (r *BidRepository) ListBySeller(ctx context.Context, seller string) ([]*domain.Bid, error) {
	return r.list(ctx, bson.M{"seller": seller})
}

// list returns bids in submission order.
func (r *BidRepository) list(ctx context.Context, filter bson.M) ([]*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bids []*domain.Bid
	if err := cur.All(ctx, &bids); err != nil {
		return nil, decodeError("list bids", err)
	}
	return bids, nil
}
