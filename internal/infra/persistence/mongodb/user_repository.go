package mongodb

import (
	"context"
	"time"

	"soko/internal/domain/entity"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/repository"
	"soko/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// userRepository implements repository.UserRepository on MongoDB.
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{collection: db.Collection(usersCollection)}
}

// FindByID retrieves a single user by their provider id.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var doc model.UserModel
	err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}

	return doc.ToEntity(), nil
}

// Upsert inserts the user or refreshes the profile fields synced from the
// identity provider. Role and createdAt are set once at insert and never
// touched afterwards, so a promoted admin stays an admin across logins.
func (repo *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"email":      user.Email,
			"name":       user.Name,
			"avatar":     user.Avatar,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"role":       entity.RoleUser.String(),
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := repo.collection.UpdateByID(ctx, user.ID, update, opts); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert user")
	}

	return nil
}

// FindAll retrieves every user, for platform-wide rollups.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query users")
	}

	var docs []*model.UserModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode users")
	}

	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.ToEntity())
	}

	return users, nil
}
