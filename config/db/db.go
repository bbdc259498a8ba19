package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect(ctx context.Context, uri, database string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client
	DB = client.Database(database)
	log.Info().Str("database", database).Msg("Connected to MongoDB")
	return nil
}

func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Error while disconnecting from MongoDB")
	}
}

func OpenCollections(name string) *mongo.Collection {
	return DB.Collection(name)
}

func CreateOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
	return coll.InsertOne(ctx, doc)
}

// FindOne decodes the first match into out. mongo.ErrNoDocuments is returned
// untouched so callers can map it to their own not-found error.
func FindOne(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOneOptions) error {
	return coll.FindOne(ctx, filter, opts...).Decode(out)
}

func FindAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func Aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func CreateMany(ctx context.Context, coll *mongo.Collection, docs []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	return coll.InsertMany(ctx, docs, opts...)
}

func DeleteMany(ctx context.Context, coll *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	return coll.DeleteMany(ctx, filter)
}

// OnlyDuplicateKeys reports whether every write error of a bulk insert is a
// duplicate key; the other documents were still written.
func OnlyDuplicateKeys(err error) bool {
	var bulk mongo.BulkWriteException
	if !errors.As(err, &bulk) || bulk.WriteConcernError != nil || len(bulk.WriteErrors) == 0 {
		return false
	}
	for _, we := range bulk.WriteErrors {
		if we.Code != 11000 {
			return false
		}
	}
	return true
}

func Count(ctx context.Context, coll *mongo.Collection, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return coll.CountDocuments(ctx, filter)
}

func UpdateOne(ctx context.Context, coll *mongo.Collection, filter, update interface{}) (*mongo.UpdateResult, error) {
	return coll.UpdateOne(ctx, filter, update)
}

func UpdateMany(ctx context.Context, coll *mongo.Collection, filter, update interface{}) (*mongo.UpdateResult, error) {
	return coll.UpdateMany(ctx, filter, update)
}

// FindOneAndUpdate applies update and decodes the document as it is after the
// update.
func FindOneAndUpdate(ctx context.Context, coll *mongo.Collection, filter, update interface{}, out interface{}) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(out)
}

func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
