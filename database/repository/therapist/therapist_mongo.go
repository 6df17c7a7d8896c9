package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"solbooking/database"
	"solbooking/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo creates a new instance of TherapistRepository using MongoDB.
func NewMongoTherapistRepo() TherapistRepository {
	// Use the "solbooking" database and the "therapists" collection.
	coll := database.MongoClient.Database("solbooking").Collection("therapists")
	return &MongoTherapistRepo{coll: coll}
}

func (r *MongoTherapistRepo) GetByCalendarEmail(calendarEmail string) (*models.Therapist, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var therapist models.Therapist
	filter := bson.M{"calendarEmail": calendarEmail}
	if err := r.coll.FindOne(ctx, filter).Decode(&therapist); err != nil {
		return nil, fmt.Errorf("failed to fetch therapist with calendar email %s: %w", calendarEmail, err)
	}
	return &therapist, nil
}

func (r *MongoTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var therapist models.Therapist
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&therapist); err != nil {
		return nil, fmt.Errorf("failed to fetch therapist with id %s: %w", id, err)
	}
	return &therapist, nil
}

func (r *MongoTherapistRepo) GetByState(state string) ([]models.Therapist, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"states": state, "acceptingNewClients": true}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve therapists for state %s: %w", state, err)
	}
	defer cursor.Close(ctx)
	var therapists []models.Therapist
	for cursor.Next(ctx) {
		var t models.Therapist
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode therapist: %w", err)
		}
		therapists = append(therapists, t)
	}
	return therapists, nil
}
