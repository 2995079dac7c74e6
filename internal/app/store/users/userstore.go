// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/text"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user. Email is normalized before storage and
// is unique across the collection.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateProfile sets the profile fields a user fills in after first
// sign-in. Choosing a leader role sets leader status to pending;
// choosing a non-leader role clears it (non-leader roles never carry
// a leader status).
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, phone, stake, ward, role string) (models.User, error) {
	role = normalize.Role(role)
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if fullName != "" {
		set["full_name"] = normalize.Name(fullName)
		set["full_name_ci"] = text.Fold(fullName)
	}
	if phone != "" {
		set["phone"] = normalize.Phone(phone)
	}
	if stake != "" {
		set["stake"] = normalize.Place(stake)
	}
	if ward != "" {
		set["ward"] = normalize.Place(ward)
	}
	update := bson.M{"$set": set}
	if role != "" {
		set["role"] = role
		if roles.IsLeader(role) {
			set["leader_status"] = roles.LeaderPending
		} else {
			update["$unset"] = bson.M{"leader_status": ""}
		}
	}
	if _, err := s.c.UpdateByID(ctx, id, update); err != nil {
		return models.User{}, err
	}
	return s.GetByID(ctx, id)
}

// SetRole records an admin's role change with the same leader-status
// bookkeeping as UpdateProfile.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) (models.User, error) {
	role = normalize.Role(role)
	set := bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if roles.IsLeader(role) {
		set["leader_status"] = roles.LeaderPending
	} else {
		update["$unset"] = bson.M{"leader_status": ""}
	}
	if _, err := s.c.UpdateByID(ctx, id, update); err != nil {
		return models.User{}, err
	}
	return s.GetByID(ctx, id)
}

// SetLeaderStatus records an admin's approval decision on a leader
// account.
func (s *Store) SetLeaderStatus(ctx context.Context, id primitive.ObjectID, status string) (models.User, error) {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"leader_status": normalize.LeaderStatus(status),
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return models.User{}, err
	}
	return s.GetByID(ctx, id)
}

// ListLeaders returns every user holding a leader role, optionally
// filtered by leader status, sorted by folded name.
func (s *Store) ListLeaders(ctx context.Context, leaderStatus string) ([]models.User, error) {
	filter := bson.M{"role": bson.M{"$in": []string{
		roles.SessionLeader, roles.StakePresident, roles.Bishop,
	}}}
	if leaderStatus != "" {
		filter["leader_status"] = normalize.LeaderStatus(leaderStatus)
	}
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// VerifyPassword checks an email/password pair and returns the user
// on success. mongo.ErrNoDocuments doubles as the wrong-password
// error so callers cannot distinguish the two.
func (s *Store) VerifyPassword(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if u.PasswordHash == "" {
		return models.User{}, mongo.ErrNoDocuments
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

// CreateWithPassword inserts a password-auth user with a bcrypt hash.
func (s *Store) CreateWithPassword(ctx context.Context, u models.User, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u.AuthMethod = "password"
	u.PasswordHash = string(hash)
	return s.Create(ctx, u)
}

// EnsureAdmin promotes the user with the given email to admin,
// creating the account if it does not exist. Called once at startup
// when bootstrap_admin_email is configured.
func (s *Store) EnsureAdmin(ctx context.Context, email string) error {
	email = normalize.Email(email)
	if email == "" {
		return nil
	}
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"role": roles.Admin, "updated_at": now},
			"$unset":       bson.M{"leader_status": ""},
			"$setOnInsert": bson.M{"email": email, "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
