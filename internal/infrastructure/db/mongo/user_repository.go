package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pressroom/auth-service/internal/core/domain"
)

const (
	usersCollection = "users"

	usernameIndex = "username_unique"
	emailIndex    = "email_unique"
)

// UserRepository implements ports.UserRepository on the users collection.
// Document field names stay camelCase so existing user documents load as-is.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoAvatar struct {
	Title    string `bson:"title,omitempty"`
	ImageURL string `bson:"imageUrl,omitempty"`
}

type mongoUser struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Username            string             `bson:"username"`
	Email               string             `bson:"email"`
	Password            string             `bson:"password"`
	Role                string             `bson:"role"`
	Avatar              *mongoAvatar       `bson:"avatar,omitempty"`
	PhoneNumber         string             `bson:"phoneNumber,omitempty"`
	IsSubscriptionValid bool               `bson:"isSubscriptionValid"`
	IsVerified          bool               `bson:"isVerified"`
	AuthCode            string             `bson:"authCode,omitempty"`
	City                string             `bson:"city,omitempty"`
	Country             string             `bson:"country,omitempty"`
	Region              string             `bson:"region,omitempty"`
	Language            string             `bson:"language,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomain(user)
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return toDomain(&doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids can never match a document.
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
}

// UpdateRole atomically sets the role and returns the document after the update.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"role":      string(role),
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mu mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return toDomain(&mu), nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: decode: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, toDomain(&docs[i]))
	}
	return users, nil
}

// EnsureIndexes creates the unique indexes that enforce username and email
// uniqueness. They are the source of truth for concurrent signups.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usernameIndex)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

// duplicateKeyError maps a unique-index violation to the matching conflict.
// Mongo reports the violated index by name, e.g.
// "E11000 duplicate key error collection: newsroom.users index: email_unique dup key: ...".
func duplicateKeyError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, usernameIndex), strings.Contains(msg, "dup key: { username"):
		return domain.ErrUsernameTaken
	case strings.Contains(msg, emailIndex), strings.Contains(msg, "dup key: { email"):
		return domain.ErrEmailTaken
	default:
		return domain.ErrUsernameTaken
	}
}

func fromDomain(u *domain.User) mongoUser {
	doc := mongoUser{
		Username:            u.Username,
		Email:               u.Email,
		Password:            u.PasswordHash,
		Role:                string(u.Role),
		PhoneNumber:         u.PhoneNumber,
		IsSubscriptionValid: u.IsSubscriptionValid,
		IsVerified:          u.IsVerified,
		AuthCode:            u.AuthCode,
		City:                u.City,
		Country:             u.Country,
		Region:              u.Region,
		Language:            u.Language,
		CreatedAt:           u.CreatedAt.UTC(),
		UpdatedAt:           u.UpdatedAt.UTC(),
	}
	if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		doc.ID = oid
	}
	if u.Avatar != nil {
		doc.Avatar = &mongoAvatar{Title: u.Avatar.Title, ImageURL: u.Avatar.ImageURL}
	}
	return doc
}

func toDomain(mu *mongoUser) *domain.User {
	u := &domain.User{
		ID:                  mu.ID.Hex(),
		Username:            mu.Username,
		Email:               mu.Email,
		PasswordHash:        mu.Password,
		Role:                domain.Role(mu.Role),
		PhoneNumber:         mu.PhoneNumber,
		IsSubscriptionValid: mu.IsSubscriptionValid,
		IsVerified:          mu.IsVerified,
		AuthCode:            mu.AuthCode,
		City:                mu.City,
		Country:             mu.Country,
		Region:              mu.Region,
		Language:            mu.Language,
		CreatedAt:           mu.CreatedAt.UTC(),
		UpdatedAt:           mu.UpdatedAt.UTC(),
	}
	if mu.Avatar != nil {
		u.Avatar = &domain.Avatar{Title: mu.Avatar.Title, ImageURL: mu.Avatar.ImageURL}
	}
	return u
}
