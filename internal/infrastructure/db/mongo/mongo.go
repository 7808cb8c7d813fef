package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskbid/marketplace/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes the ledgers rely on for their uniqueness
// invariants: usernames, active task titles, and (task, seller) bid pairs.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection(tasksCollection).Indexes().CreateOne(ctx, activeTitleIndex())
	if err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}

	_, err = db.Collection(bidsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "seller", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "seller", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("bids indexes: %w", err)
	}

	return nil
}

// activeTitleIndex enforces title uniqueness among non-completed tasks:
// completed tasks release their title. The filter enumerates the active
// statuses with $in because partial index filters only accept equality-style
// operators; negations like $ne are rejected by createIndexes.
func activeTitleIndex() mongo.IndexModel {
	active := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		active = append(active, string(s))
	}
	return mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": bson.M{"$in": active}}),
	}
}

// decodeError classifies a failed read. Transport problems are surfaced as-is;
// anything else means the stored document no longer matches the schema, which
// is reported as ErrStoreCorrupt and never papered over by resetting data.
func decodeError(op string, err error) error {
	var cmdErr mongo.CommandError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.As(err, &cmdErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreCorrupt, err)
}
