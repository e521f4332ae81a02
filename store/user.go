package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medi-route/triage-api/schema"
)

var (
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrUserTaken    = fmt.Errorf("user id or email is taken")
	ErrInvalidRole  = fmt.Errorf("invalid role")
)

type User interface {
	CreateUser(ctx context.Context, user schema.User) (*schema.User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*schema.User, error)
}

// CreateUser registers a user. New users are active and own no reports.
func (m *mongoDB) CreateUser(ctx context.Context, user schema.User) (*schema.User, error) {
	if user.Role == "" {
		user.Role = schema.RoleUser
	}
	if !user.Role.Valid() {
		return nil, ErrInvalidRole
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Status = schema.UserStatusActive
	user.Reports = []primitive.ObjectID{}
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	c := m.client.Database(m.database).Collection(schema.UserCollection)
	if _, err := c.InsertOne(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrUserTaken
		}
		return nil, err
	}

	return &user, nil
}

// GetUser returns the user of an id
func (m *mongoDB) GetUser(ctx context.Context, id primitive.ObjectID) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	var user schema.User
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (m *mongoDB) userExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	c := m.client.Database(m.database).Collection(schema.UserCollection)
	count, err := c.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
