package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on a MongoDB collection.
// Unique indexes on username and email make uniqueness atomic at the store.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// userDoc mirrors the stored layout; the password digest is kept as BSON
// binary under "password".
type userDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Username          string             `bson:"username"`
	Email             string             `bson:"email"`
	Password          []byte             `bson:"password,omitempty"`
	Role              string             `bson:"role"`
	Approved          *bool              `bson:"approved,omitempty"`
	HospitalName      string             `bson:"hospital_name,omitempty"`
	ContactNumber     string             `bson:"contact_number,omitempty"`
	Specialization    string             `bson:"specialization,omitempty"`
	YearsOfExperience int                `bson:"years_of_experience,omitempty"`
	CreatedAt         *time.Time         `bson:"created_at,omitempty"`
}

func toDoc(u *domain.User) userDoc {
	doc := userDoc{
		Username:          u.Username,
		Email:             u.Email,
		Password:          u.PasswordHash,
		Role:              string(u.Role),
		HospitalName:      u.HospitalName,
		ContactNumber:     u.ContactNumber,
		Specialization:    u.Specialization,
		YearsOfExperience: u.YearsOfExperience,
	}
	// Admin records carry neither an approval flag nor a creation time.
	if u.Role == domain.RoleProvider {
		approved := u.Approved
		doc.Approved = &approved
		created := u.CreatedAt.UTC()
		doc.CreatedAt = &created
	}
	return doc
}

func (d userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:                d.ID.Hex(),
		Username:          d.Username,
		Email:             d.Email,
		PasswordHash:      d.Password,
		Role:              domain.Role(d.Role),
		HospitalName:      d.HospitalName,
		ContactNumber:     d.ContactNumber,
		Specialization:    d.Specialization,
		YearsOfExperience: d.YearsOfExperience,
	}
	if d.Approved != nil {
		u.Approved = *d.Approved
	}
	if d.CreatedAt != nil {
		u.CreatedAt = d.CreatedAt.UTC()
	}
	return u
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByRole returns users holding role with the password digest projected out.
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"role": string(role)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]*domain.User, 0)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Approve flips a pending provider to approved in a single conditional update.
// Ids that are not valid ObjectIDs match nothing.
func (r *UserRepository) Approve(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, approveFilter(oid), bson.M{"$set": bson.M{"approved": true}})
	if err != nil {
		return false, fmt.Errorf("approve user: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *UserRepository) DeleteByRole(ctx context.Context, id string, role domain.Role) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, deleteFilter(oid, role))
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// approveFilter matches only a provider that is not yet approved, so a second
// approval and an admin id both match nothing.
func approveFilter(oid primitive.ObjectID) bson.M {
	return bson.M{
		"_id":      oid,
		"role":     string(domain.RoleProvider),
		"approved": bson.M{"$ne": true},
	}
}

func deleteFilter(oid primitive.ObjectID, role domain.Role) bson.M {
	return bson.M{"_id": oid, "role": string(role)}
}

// EnsureIndexes creates the unique indexes backing username and email uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
