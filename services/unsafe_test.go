package services

import (
	"context"
	"errors"
	"testing"

	"SehatCare/geo"
	"SehatCare/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func float(v float64) *float64 { return &v }
func level(v int) *int         { return &v }

func TestBuildUnsafeArea(t *testing.T) {
	area, err := BuildUnsafeArea(UnsafeAreaInput{Lat: float(28.61), Lng: float(77.20)})
	require.NoError(t, err)
	assert.Equal(t, util.DefaultSafetyLevel, area.SafetyLevel)
	assert.Equal(t, 28.61, area.Lat)
	assert.Equal(t, 77.20, area.Lng)

	area, err = BuildUnsafeArea(UnsafeAreaInput{Lat: float(0), Lng: float(0), SafetyLevel: level(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, area.SafetyLevel)

	_, err = BuildUnsafeArea(UnsafeAreaInput{Lat: float(1), Lng: float(1), SafetyLevel: level(4)})
	assert.EqualError(t, err, util.INVALID_SAFETY_LEVEL)

	_, err = BuildUnsafeArea(UnsafeAreaInput{Lng: float(1)})
	assert.EqualError(t, err, util.LAT_LNG_REQUIRED)

	_, err = BuildUnsafeArea(UnsafeAreaInput{Lat: float(91), Lng: float(1)})
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestMarkUnsafe(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("inserts every marker", func(mt *mtest.T) {
		useMockDB(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		first, err := MarkUnsafe(ctx, UnsafeAreaInput{Lat: float(28.61), Lng: float(77.20), SafetyLevel: level(3)})
		require.NoError(mt, err)
		second, err := MarkUnsafe(ctx, UnsafeAreaInput{Lat: float(28.61), Lng: float(77.20), SafetyLevel: level(3)})
		require.NoError(mt, err)
		assert.NotEqual(mt, first.ID, second.ID)
	})

	mt.Run("check point against level 3 markers", func(mt *mtest.T) {
		useMockDB(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "lat", Value: marker.Lat},
			{Key: "lng", Value: marker.Lng},
			{Key: "safetyLevel", Value: 3},
		}))

		check, err := CheckPoint(ctx, nearMarker)
		require.NoError(mt, err)
		assert.True(mt, check.Unsafe)
	})

	mt.Run("check point rejects bad coordinates", func(mt *mtest.T) {
		_, err := CheckPoint(ctx, geo.Point{Lat: 10, Lng: 190})
		assert.EqualError(mt, err, util.INVALID_COORDINATES)
	})
}
