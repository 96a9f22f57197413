package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/annihlj/AutomationFit/internal/model"
	"github.com/annihlj/AutomationFit/internal/scoring"
)

// QuestionnaireRepo loads and seeds the read-only questionnaire master data.
type QuestionnaireRepo interface {
	ActiveVersion(ctx context.Context) (*model.QuestionnaireVersion, error)
	GraphData(ctx context.Context, versionID string) (*scoring.GraphData, error)
	HasData(ctx context.Context) (bool, error)
	SeedGraph(ctx context.Context, data *scoring.GraphData) error
}

type questionnaireRepo struct {
	versions     *mongo.Collection
	dimensions   *mongo.Collection
	scales       *mongo.Collection
	scaleOptions *mongo.Collection
	questions    *mongo.Collection
	optionScores *mongo.Collection
	hints        *mongo.Collection
}

// NewQuestionnaireRepo creates a new questionnaire repository.
func NewQuestionnaireRepo(db *mongo.Database) QuestionnaireRepo {
	return &questionnaireRepo{
		versions:     db.Collection("questionnaire_versions"),
		dimensions:   db.Collection("dimensions"),
		scales:       db.Collection("scales"),
		scaleOptions: db.Collection("scale_options"),
		questions:    db.Collection("questions"),
		optionScores: db.Collection("option_scores"),
		hints:        db.Collection("hints"),
	}
}

func (r *questionnaireRepo) ActiveVersion(ctx context.Context) (*model.QuestionnaireVersion, error) {
	var version model.QuestionnaireVersion
	err := r.versions.FindOne(ctx, bson.M{"isActive": true}).Decode(&version)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active questionnaire version: %w", err)
	}
	return &version, nil
}

func (r *questionnaireRepo) GraphData(ctx context.Context, versionID string) (*scoring.GraphData, error) {
	var version model.QuestionnaireVersion
	if err := r.versions.FindOne(ctx, bson.M{"_id": versionID}).Decode(&version); err != nil {
		return nil, fmt.Errorf("load questionnaire version %s: %w", versionID, err)
	}

	data := &scoring.GraphData{Version: version}

	byVersion := bson.M{"questionnaireVersionId": versionID}
	if err := findAll(ctx, r.dimensions, byVersion, &data.Dimensions); err != nil {
		return nil, fmt.Errorf("load dimensions: %w", err)
	}
	if err := findAll(ctx, r.questions, byVersion, &data.Questions); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	// Scales and scores are keyed by the questions that reference them.
	scaleIDs := make([]string, 0, len(data.Questions))
	questionIDs := make([]string, 0, len(data.Questions))
	seenScales := make(map[string]bool)
	for _, q := range data.Questions {
		questionIDs = append(questionIDs, q.ID)
		if q.ScaleID != "" && !seenScales[q.ScaleID] {
			seenScales[q.ScaleID] = true
			scaleIDs = append(scaleIDs, q.ScaleID)
		}
	}
	if len(scaleIDs) > 0 {
		if err := findAll(ctx, r.scales, bson.M{"_id": bson.M{"$in": scaleIDs}}, &data.Scales); err != nil {
			return nil, fmt.Errorf("load scales: %w", err)
		}
		if err := findAll(ctx, r.scaleOptions, bson.M{"scaleId": bson.M{"$in": scaleIDs}}, &data.Options); err != nil {
			return nil, fmt.Errorf("load scale options: %w", err)
		}
	}
	if len(questionIDs) > 0 {
		if err := findAll(ctx, r.optionScores, bson.M{"questionId": bson.M{"$in": questionIDs}}, &data.Scores); err != nil {
			return nil, fmt.Errorf("load option scores: %w", err)
		}
		if err := findAll(ctx, r.hints, bson.M{"questionId": bson.M{"$in": questionIDs}}, &data.Hints); err != nil {
			return nil, fmt.Errorf("load hints: %w", err)
		}
	}

	return data, nil
}

func (r *questionnaireRepo) HasData(ctx context.Context) (bool, error) {
	count, err := r.versions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *questionnaireRepo) SeedGraph(ctx context.Context, data *scoring.GraphData) error {
	if data.Version.ID == "" {
		data.Version.ID = primitive.NewObjectID().Hex()
	}
	if data.Version.CreatedAt.IsZero() {
		data.Version.CreatedAt = time.Now()
	}

	if _, err := r.versions.InsertOne(ctx, data.Version); err != nil {
		return fmt.Errorf("insert questionnaire version: %w", err)
	}
	if err := insertAll(ctx, r.dimensions, toDocs(data.Dimensions)); err != nil {
		return fmt.Errorf("insert dimensions: %w", err)
	}
	if err := insertAll(ctx, r.scales, toDocs(data.Scales)); err != nil {
		return fmt.Errorf("insert scales: %w", err)
	}
	if err := insertAll(ctx, r.scaleOptions, toDocs(data.Options)); err != nil {
		return fmt.Errorf("insert scale options: %w", err)
	}
	if err := insertAll(ctx, r.questions, toDocs(data.Questions)); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	if err := insertAll(ctx, r.optionScores, toDocs(data.Scores)); err != nil {
		return fmt.Errorf("insert option scores: %w", err)
	}
	if err := insertAll(ctx, r.hints, toDocs(data.Hints)); err != nil {
		return fmt.Errorf("insert hints: %w", err)
	}
	return nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) error {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func insertAll(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}
