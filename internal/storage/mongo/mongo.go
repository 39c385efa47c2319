package mongo

import (
	"context"
	"errors"
	"fmt"

	"todo_service/internal/config"
	"todo_service/internal/models"
	"todo_service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	todosCollection = "todos"
)

type MongoRepo struct {
	client *mongo.Client
	users  *mongo.Collection
	todos  *mongo.Collection
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

type todoDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Title     string             `bson:"title"`
	Completed bool               `bson:"completed"`
}

func New(ctx context.Context, cfg *config.Config) (*MongoRepo, error) {
	const op = "storage.mongo.New"

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetTimeout(cfg.Mongo.Timeout).
		SetMaxPoolSize(10).
		SetMinPoolSize(2)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	db := client.Database(cfg.Mongo.Database)

	repo := &MongoRepo{
		client: client,
		users:  db.Collection(usersCollection),
		todos:  db.Collection(todosCollection),
	}

	if err := repo.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return repo, nil
}

func (r *MongoRepo) ensureIndexes(ctx context.Context) error {
	const op = "storage.mongo.ensureIndexes"

	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: users.email: %w", op, err)
	}

	_, err = r.todos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%s: todos.userId: %w", op, err)
	}

	return nil
}

func (r *MongoRepo) SaveUser(ctx context.Context, name, email string, passHash []byte) (string, error) {
	const op = "storage.mongo.SaveUser"

	res, err := r.users.InsertOne(ctx, userDocument{
		Name:     name,
		Email:    email,
		Password: string(passHash),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", storage.ErrUserExists
		}

		return "", fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected id type %T", op, res.InsertedID)
	}

	return id.Hex(), nil
}

func (r *MongoRepo) User(ctx context.Context, email string) (models.User, error) {
	const op = "storage.mongo.User"

	var doc userDocument

	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrUserNotFound
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.User{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		Email:    doc.Email,
		PassHash: []byte(doc.Password),
	}, nil
}

func (r *MongoRepo) SaveTodo(ctx context.Context, userID, title string) (models.Todo, error) {
	const op = "storage.mongo.SaveTodo"

	doc := todoDocument{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Title:  title,
	}

	if _, err := r.todos.InsertOne(ctx, doc); err != nil {
		return models.Todo{}, fmt.Errorf("%s: failed to save todo: %w", op, err)
	}

	return doc.model(), nil
}

func (r *MongoRepo) Todos(ctx context.Context, userID string) ([]models.Todo, error) {
	const op = "storage.mongo.Todos"

	cur, err := r.todos.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	todos := make([]models.Todo, 0, len(docs))
	for _, d := range docs {
		todos = append(todos, d.model())
	}

	return todos, nil
}

func (r *MongoRepo) Todo(ctx context.Context, id string) (models.Todo, error) {
	const op = "storage.mongo.Todo"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Todo{}, storage.ErrTodoNotFound
	}

	var doc todoDocument

	err = r.todos.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Todo{}, storage.ErrTodoNotFound
		}

		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.model(), nil
}

// UpdateTodo rewrites title and completed of the todo matching both id and owner.
func (r *MongoRepo) UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	const op = "storage.mongo.UpdateTodo"

	oid, err := primitive.ObjectIDFromHex(todo.ID)
	if err != nil {
		return models.Todo{}, storage.ErrTodoNotFound
	}

	var doc todoDocument

	err = r.todos.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "userId": todo.UserID},
		bson.M{"$set": bson.M{"title": todo.Title, "completed": todo.Completed}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Todo{}, storage.ErrTodoNotFound
		}

		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.model(), nil
}

func (r *MongoRepo) DeleteTodo(ctx context.Context, id, userID string) error {
	const op = "storage.mongo.DeleteTodo"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrTodoNotFound
	}

	res, err := r.todos.DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return storage.ErrTodoNotFound
	}

	return nil
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (d todoDocument) model() models.Todo {
	return models.Todo{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Title:     d.Title,
		Completed: d.Completed,
	}
}
