package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/annihlj/AutomationFit/internal/model"
)

// ResultRepo stores computed results. Dimension results, the total result,
// and the economic metrics of an assessment are always replaced together in
// one transaction; partial staleness across a recompute is not permitted.
type ResultRepo interface {
	ReplaceForAssessment(ctx context.Context, assessmentID string,
		dimensions []model.DimensionResult, total model.TotalResult,
		metrics []model.EconomicMetric) error

	GetTotal(ctx context.Context, assessmentID string) (*model.TotalResult, error)
	GetDimensionResults(ctx context.Context, assessmentID string) ([]model.DimensionResult, error)
	GetMetrics(ctx context.Context, assessmentID string) ([]model.EconomicMetric, error)
	ListTotals(ctx context.Context) ([]model.TotalResult, error)
}

type resultRepo struct {
	client           *mongo.Client
	dimensionResults *mongo.Collection
	totalResults     *mongo.Collection
	economicMetrics  *mongo.Collection
}

// NewResultRepo creates a new result repository.
func NewResultRepo(client *mongo.Client, db *mongo.Database) ResultRepo {
	return &resultRepo{
		client:           client,
		dimensionResults: db.Collection("dimension_results"),
		totalResults:     db.Collection("total_results"),
		economicMetrics:  db.Collection("economic_metrics"),
	}
}

func (r *resultRepo) ReplaceForAssessment(ctx context.Context, assessmentID string,
	dimensions []model.DimensionResult, total model.TotalResult,
	metrics []model.EconomicMetric) error {

	dimDocs := make([]interface{}, 0, len(dimensions))
	for i := range dimensions {
		d := dimensions[i]
		if d.ID == "" {
			d.ID = primitive.NewObjectID().Hex()
		}
		d.AssessmentID = assessmentID
		dimDocs = append(dimDocs, d)
	}

	metricDocs := make([]interface{}, 0, len(metrics))
	for i := range metrics {
		m := metrics[i]
		if m.ID == "" {
			m.ID = primitive.NewObjectID().Hex()
		}
		m.AssessmentID = assessmentID
		metricDocs = append(metricDocs, m)
	}

	if total.ID == "" {
		total.ID = primitive.NewObjectID().Hex()
	}
	total.AssessmentID = assessmentID
	if total.CreatedAt.IsZero() {
		total.CreatedAt = time.Now()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	byAssessment := bson.M{"assessmentId": assessmentID}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.dimensionResults.DeleteMany(sc, byAssessment); err != nil {
			return nil, err
		}
		if _, err := r.totalResults.DeleteMany(sc, byAssessment); err != nil {
			return nil, err
		}
		if _, err := r.economicMetrics.DeleteMany(sc, byAssessment); err != nil {
			return nil, err
		}

		if len(dimDocs) > 0 {
			if _, err := r.dimensionResults.InsertMany(sc, dimDocs); err != nil {
				return nil, err
			}
		}
		if _, err := r.totalResults.InsertOne(sc, total); err != nil {
			return nil, err
		}
		if len(metricDocs) > 0 {
			if _, err := r.economicMetrics.InsertMany(sc, metricDocs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("replace results for assessment %s: %w", assessmentID, err)
	}
	return nil
}

func (r *resultRepo) GetTotal(ctx context.Context, assessmentID string) (*model.TotalResult, error) {
	var total model.TotalResult
	err := r.totalResults.FindOne(ctx, bson.M{"assessmentId": assessmentID}).Decode(&total)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &total, nil
}

func (r *resultRepo) GetDimensionResults(ctx context.Context, assessmentID string) ([]model.DimensionResult, error) {
	var results []model.DimensionResult
	if err := findAll(ctx, r.dimensionResults, bson.M{"assessmentId": assessmentID}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepo) GetMetrics(ctx context.Context, assessmentID string) ([]model.EconomicMetric, error) {
	var metrics []model.EconomicMetric
	if err := findAll(ctx, r.economicMetrics, bson.M{"assessmentId": assessmentID}, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *resultRepo) ListTotals(ctx context.Context) ([]model.TotalResult, error) {
	var totals []model.TotalResult
	if err := findAll(ctx, r.totalResults, bson.M{}, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}
