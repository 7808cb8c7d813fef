package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskbid/marketplace/internal/core/domain"
)

const tasksCollection = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(tasksCollection)}
}

// Create inserts a new task document. The partial unique index on active
// titles turns a racing duplicate insert into ErrDuplicateTitle.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTitle
		}
		return err
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TaskRepository) FindActiveByTitle(ctx context.Context, title string) (*domain.Task, error) {
	return r.findOne(ctx, bson.M{"title": title, "status": bson.M{"$ne": string(domain.StatusCompleted)}})
}

func (r *TaskRepository) FindActiveByTitleAndBuyer(ctx context.Context, title, buyer string) (*domain.Task, error) {
	return r.findOne(ctx, bson.M{"title": title, "buyer": buyer, "status": bson.M{"$ne": string(domain.StatusCompleted)}})
}

func (r *TaskRepository) findOne(ctx context.Context, filter bson.M) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, filter).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, decodeError("find task", err)
	}
	return &t, nil
}

func (r *TaskRepository) ListOpenExcluding(ctx context.Context, username string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{
		"status": string(domain.StatusOpen),
		"buyer":  bson.M{"$ne": username},
	})
}

func (r *TaskRepository) ListByBuyer(ctx context.Context, buyer string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"buyer": buyer})
}

func (r *TaskRepository) ListAssignedTo(ctx context.Context, seller string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{
		"assigned_seller": seller,
		"status":          bson.M{"$ne": string(domain.StatusCompleted)},
	})
}

func (r *TaskRepository) list(ctx context.Context, filter bson.M) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, decodeError("list tasks", err)
	}
	return tasks, nil
}

// Transition performs the status-guarded write that arbitrates concurrent
// mutations: the update only matches while the persisted status is still
// `from`, so the loser of a race gets ErrStaleState to re-read and explain.
func (r *TaskRepository) Transition(ctx context.Context, id string, from, to domain.TaskStatus, assignedSeller, actor string, ts time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     string(to),
		"updated_at": ts.UTC(),
	}
	if assignedSeller != "" {
		set["assigned_seller"] = assignedSeller
	}

	update := bson.M{
		"$set": set,
		"$push": bson.M{"status_history": bson.M{
			"status":    string(to),
			"timestamp": ts.UTC(),
			"actor":     actor,
		}},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": string(from)}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStaleState
	}
	return nil
}
