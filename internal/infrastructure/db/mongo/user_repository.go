package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formotex/inventory-api/internal/core/domain"
)

const collectionUsers = "users"

// withoutHash is applied to every read except the credential lookup.
var withoutHash = bson.M{"passwordHash": 0}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash,omitempty"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// Create inserts u and sets its ID. A unique-index violation on email is
// reported as domain.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate("insert user", err, nil, domain.ErrEmailTaken)
	}

	u.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutHash)).Decode(&doc)
	if err != nil {
		return nil, translate("find user", err, domain.ErrUserNotFound, nil)
	}
	return doc.toDomain(), nil
}

// FindByIDs skips malformed ids instead of failing the whole lookup.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := parseID(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetProjection(withoutHash))
	if err != nil {
		return nil, translate("find users", err, nil, nil)
	}
	return decodeUsers(ctx, cur)
}

func (r *UserRepository) FindCredentials(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translate("find credentials", err, domain.ErrUserNotFound, nil)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != "" {
		oid, err := parseID(excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translate("count users", err, nil, nil)
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(withoutHash).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate("list users", err, nil, nil)
	}
	return decodeUsers(ctx, cur)
}

// Update writes the mutable fields. The stored hash is only replaced when u
// carries a new one.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	oid, err := parseID(u.ID)
	if err != nil {
		return err
	}

	set := bson.M{
		"name":      u.Name,
		"email":     u.Email,
		"role":      string(u.Role),
		"updatedAt": u.UpdatedAt,
	}
	if u.PasswordHash != "" {
		set["passwordHash"] = u.PasswordHash
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return translate("update user", err, nil, domain.ErrEmailTaken)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate("delete user", err, nil, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]*domain.User, error) {
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("decode users", err, nil, nil)
	}
	out := make([]*domain.User, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}
