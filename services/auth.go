package services

import (
	"context"
	"strings"
	"time"

	db "SehatCare/config/db"
	jwt "SehatCare/config/jwt"
	"SehatCare/models"
	"SehatCare/role"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
* Every field is mandatory and the role must be known
* Check if user with same email exists
* bcrypt the password and save
 */
func Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" || in.Role == "" {
		return nil, util.Validation(util.ALL_FIELDS_REQUIRED)
	}
	if !role.Valid(in.Role) {
		return nil, util.Validation(util.INVALID_ROLE)
	}

	coll := db.OpenCollections(util.UserCollection)
	existing := &models.User{}
	err := db.FindOne(ctx, coll, bson.M{"email": email}, existing)
	if err == nil {
		return nil, util.Validation(util.USER_ALREADY_EXIST)
	}
	if !db.IsNotFound(err) {
		log.Error().Err(err).Msg("Error from findOne")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := db.CreateOne(ctx, coll, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, util.Validation(util.USER_ALREADY_EXIST)
		}
		log.Error().Err(err).Msg("Error from createOne")
		return nil, err
	}
	user.ID = insertedID(res)
	log.Info().Str("user", user.ID.Hex()).Str("role", user.Role).Msg("user signed up")
	return user, nil
}

/*
* Find the user by email
* Compare the bcrypt hash
* Issue a token carrying id, email and role
 */
func Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, "", util.Validation(util.ALL_FIELDS_REQUIRED)
	}
	user := &models.User{}
	coll := db.OpenCollections(util.UserCollection)
	if err := db.FindOne(ctx, coll, bson.M{"email": email}, user); err != nil {
		if db.IsNotFound(err) {
			return nil, "", util.Unauthorized(util.INVALID_CREDENTIALS)
		}
		log.Error().Err(err).Msg("Error from findOne")
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", util.Unauthorized(util.INVALID_CREDENTIALS)
	}
	token, err := jwt.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("Error from generateJWT")
		return nil, "", err
	}
	return user, token, nil
}

func FetchUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	coll := db.OpenCollections(util.UserCollection)
	if err := db.FindOne(ctx, coll, bson.M{"_id": oid}, user); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NotFound(util.USER_DOES_NOT_EXIST)
		}
		return nil, err
	}
	return user, nil
}
