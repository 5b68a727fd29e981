package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alumnx/mentor-api/internal/domain"
	"github.com/alumnx/mentor-api/internal/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	colProjects = "projects"
	colTasks    = "tasks"
	colGoals    = "goals"
	colAgents   = "ai_agents"
	colChats    = "chats"
)

// MongoStore implements Repository using MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to MongoDB, verifies connectivity and ensures the
// indexes the API relies on.
func NewMongo(ctx context.Context, uri, dbName string) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	type indexSet struct {
		collection string
		models     []mongo.IndexModel
	}

	sets := []indexSet{
		{colProjects, []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		}},
		{colTasks, []mongo.IndexModel{
			{Keys: bson.D{{Key: "project_id", Value: 1}}},
			{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		}},
		{colGoals, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{colAgents, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		}},
		{colChats, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}}},
		}},
	}

	for _, set := range sets {
		if _, err := s.db.Collection(set.collection).Indexes().CreateMany(ctx, set.models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", set.collection, err)
		}
	}
	return nil
}

// Ping verifies database connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateProject inserts a project and returns the stored document.
func (s *MongoStore) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := time.Now()
	p.ID = primitive.NilObjectID
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = "active"
	}

	res, err := s.db.Collection(colProjects).InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	var created domain.Project
	if err := s.db.Collection(colProjects).FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, fmt.Errorf("fetch created project: %w", err)
	}
	return &created, nil
}

// ListProjects returns all projects, newest first.
func (s *MongoStore) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(colProjects).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := []*domain.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by id.
func (s *MongoStore) GetProject(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	var p domain.Project
	err := s.db.Collection(colProjects).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// UpdateProject applies the non-nil fields of update and returns the
// resulting document.
func (s *MongoStore) UpdateProject(ctx context.Context, id primitive.ObjectID, update *domain.ProjectUpdate) (*domain.Project, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.StartDate != nil {
		set["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		set["end_date"] = *update.EndDate
	}

	if len(set) > 0 {
		set["updated_at"] = time.Now()
		if _, err := s.db.Collection(colProjects).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes a project and all tasks that reference it.
func (s *MongoStore) DeleteProject(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.db.Collection(colTasks).DeleteMany(ctx, bson.M{"project_id": id.Hex()}); err != nil {
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}

	res, err := s.db.Collection(colProjects).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete project: %w", err)
	}
	return res.DeletedCount, nil
}

// ProjectStats returns task counts by status for a project.
func (s *MongoStore) ProjectStats(ctx context.Context, projectID string) (*domain.ProjectStats, error) {
	tasks := s.db.Collection(colTasks)

	total, err := tasks.CountDocuments(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("count project tasks: %w", err)
	}

	stats := &domain.ProjectStats{TotalTasks: total}
	for status, dst := range map[string]*int64{
		domain.TaskStatusPending:    &stats.Pending,
		domain.TaskStatusInProgress: &stats.InProgress,
		domain.TaskStatusCompleted:  &stats.Completed,
		domain.TaskStatusBlocked:    &stats.Blocked,
	} {
		n, err := tasks.CountDocuments(ctx, bson.M{"project_id": projectID, "status": status})
		if err != nil {
			return nil, fmt.Errorf("count %s tasks: %w", status, err)
		}
		*dst = n
	}
	return stats, nil
}

// CreateTask inserts a task and returns the stored document.
func (s *MongoStore) CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	now := time.Now()
	t.ID = primitive.NilObjectID
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}

	res, err := s.db.Collection(colTasks).InsertOne(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	var created domain.Task
	if err := s.db.Collection(colTasks).FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, fmt.Errorf("fetch created task: %w", err)
	}
	return &created, nil
}

// ListTasks returns tasks, newest first, optionally filtered by project id.
func (s *MongoStore) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	filter := bson.M{}
	if projectID != "" {
		filter["project_id"] = projectID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(colTasks).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := []*domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// ListUserTasks returns all tasks assigned to a user.
func (s *MongoStore) ListUserTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	cursor, err := s.db.Collection(colTasks).Find(ctx, bson.M{"assigned_to": userID})
	if err != nil {
		return nil, fmt.Errorf("list user tasks: %w", err)
	}

	tasks := []*domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode user tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by id.
func (s *MongoStore) GetTask(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	var t domain.Task
	err := s.db.Collection(colTasks).FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// UpdateTask applies the non-nil fields of update and returns the
// resulting document.
func (s *MongoStore) UpdateTask(ctx context.Context, id primitive.ObjectID, update *domain.TaskUpdate) (*domain.Task, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.AssignedTo != nil {
		set["assigned_to"] = *update.AssignedTo
	}
	if update.DueDate != nil {
		set["due_date"] = *update.DueDate
	}

	if len(set) > 0 {
		set["updated_at"] = time.Now()
		if _, err := s.db.Collection(colTasks).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task.
func (s *MongoStore) DeleteTask(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.db.Collection(colTasks).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount, nil
}

// FindActiveTask returns one non-completed task assigned to the user,
// or nil if none exists.
func (s *MongoStore) FindActiveTask(ctx context.Context, userID string) (*domain.Task, error) {
	filter := bson.M{
		"assigned_to": userID,
		"status":      bson.M{"$ne": domain.TaskStatusCompleted},
	}

	var t domain.Task
	err := s.db.Collection(colTasks).FindOne(ctx, filter).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active task: %w", err)
	}
	return &t, nil
}

// UpsertGoalSet creates or replaces the user's goal list and returns
// the stored record.
func (s *MongoStore) UpsertGoalSet(ctx context.Context, userID string, goals []string) (*domain.GoalSet, error) {
	if goals == nil {
		goals = []string{}
	}

	now := time.Now()
	filter := bson.M{"userId": userID}
	patch := bson.M{
		"$set":         bson.M{"goals": goals, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	_, err := s.db.Collection(colGoals).UpdateOne(ctx, filter, patch, opts)
	if shared.IsDuplicateKeyError(err) {
		// Two concurrent upserts for a new user can race on the unique
		// userId index; the loser retries as a plain update.
		_, err = s.db.Collection(colGoals).UpdateOne(ctx, filter, patch, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert goals: %w", err)
	}

	return s.GetUserGoalSet(ctx, userID)
}

// ListGoalSets returns goal sets, optionally filtered by user id.
func (s *MongoStore) ListGoalSets(ctx context.Context, userID string) ([]*domain.GoalSet, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}

	cursor, err := s.db.Collection(colGoals).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	sets := []*domain.GoalSet{}
	if err := cursor.All(ctx, &sets); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	return sets, nil
}

// GetGoalSet retrieves a goal set by document id.
func (s *MongoStore) GetGoalSet(ctx context.Context, id primitive.ObjectID) (*domain.GoalSet, error) {
	var g domain.GoalSet
	err := s.db.Collection(colGoals).FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goal set: %w", err)
	}
	return &g, nil
}

// GetUserGoalSet retrieves the goal set for a user, or nil if absent.
func (s *MongoStore) GetUserGoalSet(ctx context.Context, userID string) (*domain.GoalSet, error) {
	var g domain.GoalSet
	err := s.db.Collection(colGoals).FindOne(ctx, bson.M{"userId": userID}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user goals: %w", err)
	}
	return &g, nil
}

// CreateAgent inserts an agent registry entry.
func (s *MongoStore) CreateAgent(ctx context.Context, a *domain.AIAgent) (*domain.AIAgent, error) {
	now := time.Now()
	a.ID = primitive.NilObjectID
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := s.db.Collection(colAgents).InsertOne(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	var created domain.AIAgent
	if err := s.db.Collection(colAgents).FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, fmt.Errorf("fetch created agent: %w", err)
	}
	return &created, nil
}

// ListAgents returns agent entries, optionally filtered by user id.
func (s *MongoStore) ListAgents(ctx context.Context, userID string) ([]*domain.AIAgent, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}

	cursor, err := s.db.Collection(colAgents).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	agents := []*domain.AIAgent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	return agents, nil
}

// GetAgent retrieves an agent entry by id.
func (s *MongoStore) GetAgent(ctx context.Context, id primitive.ObjectID) (*domain.AIAgent, error) {
	var a domain.AIAgent
	err := s.db.Collection(colAgents).FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &a, nil
}

// UpdateAgent applies the non-nil fields of update and returns the
// resulting document.
func (s *MongoStore) UpdateAgent(ctx context.Context, id primitive.ObjectID, update *domain.AIAgentUpdate) (*domain.AIAgent, error) {
	set := bson.M{}
	if update.UserID != nil {
		set["userId"] = *update.UserID
	}
	if update.Name != nil {
		set["name"] = *update.Name
	}

	if len(set) > 0 {
		set["updated_at"] = time.Now()
		if _, err := s.db.Collection(colAgents).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update agent: %w", err)
		}
	}
	return s.GetAgent(ctx, id)
}

// DeleteAgent removes an agent entry.
func (s *MongoStore) DeleteAgent(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.db.Collection(colAgents).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete agent: %w", err)
	}
	return res.DeletedCount, nil
}

// InsertChatMessage persists a chat record with a server-assigned
// timestamp and returns the stored document.
func (s *MongoStore) InsertChatMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	m.ID = primitive.NilObjectID
	m.Timestamp = time.Now()

	res, err := s.db.Collection(colChats).InsertOne(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}

	var created domain.ChatMessage
	if err := s.db.Collection(colChats).FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, fmt.Errorf("fetch created chat message: %w", err)
	}
	return &created, nil
}

// ChatHistory returns a user's chat records in ascending timestamp order.
func (s *MongoStore) ChatHistory(ctx context.Context, userID string) ([]*domain.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.db.Collection(colChats).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}

	messages := []*domain.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode chat history: %w", err)
	}
	return messages, nil
}
