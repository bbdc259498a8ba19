package services

import (
	"context"
	"time"

	db "SehatCare/config/db"
	"SehatCare/geo"
	"SehatCare/models"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Radius around a level-3 marker, plus the extra buffer, in meters.
var (
	UnsafeRadius   = 50.0
	BufferDistance = 50.0
)

func SafetyThreshold() float64 {
	return UnsafeRadius + BufferDistance
}

// UnsafeAreaInput uses pointers so an omitted safetyLevel can be told apart
// from an explicit 0.
type UnsafeAreaInput struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	SafetyLevel *int     `json:"safetyLevel"`
}

func BuildUnsafeArea(in UnsafeAreaInput) (*models.UnsafeArea, error) {
	if in.Lat == nil || in.Lng == nil {
		return nil, util.Validation(util.LAT_LNG_REQUIRED)
	}
	if !geo.ValidCoordinates(geo.Point{Lat: *in.Lat, Lng: *in.Lng}) {
		return nil, util.Validation(util.INVALID_COORDINATES)
	}
	level := util.DefaultSafetyLevel
	if in.SafetyLevel != nil {
		level = *in.SafetyLevel
	}
	if level < 0 || level > util.UnsafeSafetyLevel {
		return nil, util.Validation(util.INVALID_SAFETY_LEVEL)
	}
	now := time.Now().UTC()
	return &models.UnsafeArea{
		Lat:         *in.Lat,
		Lng:         *in.Lng,
		SafetyLevel: level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkUnsafe always inserts; markers at the same spot accumulate.
func MarkUnsafe(ctx context.Context, in UnsafeAreaInput) (*models.UnsafeArea, error) {
	area, err := BuildUnsafeArea(in)
	if err != nil {
		return nil, err
	}
	coll := db.OpenCollections(util.UnsafeAreaCollection)
	res, err := db.CreateOne(ctx, coll, area)
	if err != nil {
		log.Error().Err(err).Msg("Error from createOne")
		return nil, err
	}
	area.ID = insertedID(res)
	log.Info().Float64("lat", area.Lat).Float64("lng", area.Lng).Int("safetyLevel", area.SafetyLevel).Msg("location marked")
	return area, nil
}

func FetchUnsafeAreas(ctx context.Context) ([]models.UnsafeArea, error) {
	areas := []models.UnsafeArea{}
	coll := db.OpenCollections(util.UnsafeAreaCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := db.FindAll(ctx, coll, bson.M{}, &areas, opts); err != nil {
		log.Error().Err(err).Msg("Error from findAll")
		return nil, err
	}
	return areas, nil
}

// UnsafeCenters keeps only the markers that block routes.
func UnsafeCenters(areas []models.UnsafeArea) []geo.Point {
	centers := []geo.Point{}
	for _, a := range areas {
		if a.SafetyLevel == util.UnsafeSafetyLevel {
			centers = append(centers, geo.Point{Lat: a.Lat, Lng: a.Lng})
		}
	}
	return centers
}

func fetchUnsafeCenters(ctx context.Context) ([]geo.Point, error) {
	areas := []models.UnsafeArea{}
	coll := db.OpenCollections(util.UnsafeAreaCollection)
	if err := db.FindAll(ctx, coll, bson.M{"safetyLevel": util.UnsafeSafetyLevel}, &areas); err != nil {
		log.Error().Err(err).Msg("Error while fetching unsafe markers")
		return nil, err
	}
	return UnsafeCenters(areas), nil
}

type PointCheck struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Unsafe bool    `json:"unsafe"`
}

func CheckPoint(ctx context.Context, p geo.Point) (*PointCheck, error) {
	if !geo.ValidCoordinates(p) {
		return nil, util.Validation(util.INVALID_COORDINATES)
	}
	centers, err := fetchUnsafeCenters(ctx)
	if err != nil {
		return nil, err
	}
	return &PointCheck{Lat: p.Lat, Lng: p.Lng, Unsafe: geo.Within(p, centers, SafetyThreshold())}, nil
}
