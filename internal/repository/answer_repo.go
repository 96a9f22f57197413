package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/annihlj/AutomationFit/internal/model"
)

// AnswerRepo stores assessment answers. Writes always replace the whole
// answer set of an assessment; there is no row-level patching.
type AnswerRepo interface {
	ReplaceForAssessment(ctx context.Context, assessmentID string, answers []model.Answer) error
	GetByAssessment(ctx context.Context, assessmentID string) ([]model.Answer, error)
}

type answerRepo struct {
	client  *mongo.Client
	answers *mongo.Collection
}

// NewAnswerRepo creates a new answer repository.
func NewAnswerRepo(client *mongo.Client, db *mongo.Database) AnswerRepo {
	return &answerRepo{
		client:  client,
		answers: db.Collection("answers"),
	}
}

// ReplaceForAssessment deletes all answer rows of the assessment and inserts
// the new set inside one session transaction, so concurrent readers never
// observe a half-replaced answer set.
func (r *answerRepo) ReplaceForAssessment(ctx context.Context, assessmentID string, answers []model.Answer) error {
	docs := make([]interface{}, 0, len(answers))
	for i := range answers {
		a := answers[i]
		if a.ID == "" {
			a.ID = primitive.NewObjectID().Hex()
		}
		a.AssessmentID = assessmentID
		docs = append(docs, a)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.answers.DeleteMany(sc, bson.M{"assessmentId": assessmentID}); err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			if _, err := r.answers.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("replace answers for assessment %s: %w", assessmentID, err)
	}
	return nil
}

func (r *answerRepo) GetByAssessment(ctx context.Context, assessmentID string) ([]model.Answer, error) {
	cursor, err := r.answers.Find(ctx, bson.M{"assessmentId": assessmentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
