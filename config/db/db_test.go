package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestCollectionHelpers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find one decodes the match", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "City Hospital"},
		}))

		var out bson.M
		require.NoError(mt, FindOne(ctx, mt.Coll, bson.M{"_id": id}, &out))
		assert.Equal(mt, "City Hospital", out["name"])
	})

	mt.Run("find one reports missing documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		var out bson.M
		err := FindOne(ctx, mt.Coll, bson.M{"_id": primitive.NewObjectID()}, &out)
		assert.True(mt, IsNotFound(err))
	})

	mt.Run("find all walks every batch", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch, bson.D{{Key: "name", Value: "A"}})
		last := mtest.CreateCursorResponse(0, namespace(mt), mtest.NextBatch, bson.D{{Key: "name", Value: "B"}})
		mt.AddMockResponses(first, last)

		var out []bson.M
		require.NoError(mt, FindAll(ctx, mt.Coll, nil, &out))
		require.Len(mt, out, 2)
		assert.Equal(mt, "B", out[1]["name"])
	})

	mt.Run("create one", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		res, err := CreateOne(ctx, mt.Coll, bson.M{"name": "A"})
		require.NoError(mt, err)
		assert.NotNil(mt, res.InsertedID)
	})

	mt.Run("find one and update returns the new document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "status", Value: "completed"},
		}}))

		var out bson.M
		err := FindOneAndUpdate(ctx, mt.Coll, bson.M{}, bson.M{"$set": bson.M{"status": "completed"}}, &out)
		require.NoError(mt, err)
		assert.Equal(mt, "completed", out["status"])
	})

	mt.Run("open collections uses the shared database", func(mt *mtest.T) {
		DB = mt.DB
		defer func() { DB = nil }()
		assert.Equal(mt, "doctors", OpenCollections("doctors").Name())
	})
}

func TestOnlyDuplicateKeys(t *testing.T) {
	dup := mongo.WriteError{Code: 11000, Message: "E11000 duplicate key error"}
	other := mongo.WriteError{Code: 2, Message: "bad value"}

	assert.True(t, OnlyDuplicateKeys(mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{{WriteError: dup}}}))
	assert.False(t, OnlyDuplicateKeys(mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{{WriteError: dup}, {WriteError: other}}}))
	assert.False(t, OnlyDuplicateKeys(mongo.BulkWriteException{}))
	assert.False(t, OnlyDuplicateKeys(errors.New("network down")))
}
