package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/annihlj/AutomationFit/internal/model"
)

// AssessmentRepo handles processes and their assessments.
type AssessmentRepo interface {
	CreateProcess(ctx context.Context, process *model.Process) error
	GetProcess(ctx context.Context, id string) (*model.Process, error)
	UpdateProcess(ctx context.Context, process *model.Process) error

	Create(ctx context.Context, assessment *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	Touch(ctx context.Context, id string) error
}

type assessmentRepo struct {
	processes   *mongo.Collection
	assessments *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository.
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		processes:   db.Collection("processes"),
		assessments: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) CreateProcess(ctx context.Context, process *model.Process) error {
	if process.ID == "" {
		process.ID = primitive.NewObjectID().Hex()
	}
	if process.CreatedAt.IsZero() {
		process.CreatedAt = time.Now()
	}
	_, err := r.processes.InsertOne(ctx, process)
	return err
}

func (r *assessmentRepo) GetProcess(ctx context.Context, id string) (*model.Process, error) {
	var process model.Process
	err := r.processes.FindOne(ctx, bson.M{"_id": id}).Decode(&process)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &process, nil
}

func (r *assessmentRepo) UpdateProcess(ctx context.Context, process *model.Process) error {
	_, err := r.processes.ReplaceOne(ctx, bson.M{"_id": process.ID}, process)
	return err
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	assessment.UpdatedAt = now
	_, err := r.assessments.InsertOne(ctx, assessment)
	return err
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.assessments.FindOne(ctx, bson.M{"_id": id}).Decode(&assessment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepo) Touch(ctx context.Context, id string) error {
	_, err := r.assessments.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"updatedAt": time.Now()}})
	return err
}
