package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/annihlj/AutomationFit/internal/cache"
	"github.com/annihlj/AutomationFit/internal/repository"
	"github.com/annihlj/AutomationFit/internal/scoring"
)

// ErrNoActiveQuestionnaire is returned when no questionnaire version is
// flagged active.
var ErrNoActiveQuestionnaire = errors.New("no active questionnaire version")

// QuestionnaireService serves immutable question-graph snapshots.
type QuestionnaireService struct {
	repo       repository.QuestionnaireRepo
	graphCache cache.GraphCache
}

// NewQuestionnaireService creates a new questionnaire service.
func NewQuestionnaireService(repo repository.QuestionnaireRepo, graphCache cache.GraphCache) *QuestionnaireService {
	return &QuestionnaireService{
		repo:       repo,
		graphCache: graphCache,
	}
}

// ActiveGraph returns the graph of the active questionnaire version.
func (s *QuestionnaireService) ActiveGraph(ctx context.Context) (*scoring.Graph, error) {
	version, err := s.repo.ActiveVersion(ctx)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, ErrNoActiveQuestionnaire
	}
	return s.GraphForVersion(ctx, version.ID)
}

// GraphForVersion returns the graph snapshot for one questionnaire version,
// consulting the cache first. Cache failures degrade to a repository load.
func (s *QuestionnaireService) GraphForVersion(ctx context.Context, versionID string) (*scoring.Graph, error) {
	if data, err := s.graphCache.Get(ctx, versionID); err != nil {
		log.Printf("graph cache read failed for version %s: %v", versionID, err)
	} else if data != nil {
		return scoring.NewGraph(*data), nil
	}

	data, err := s.repo.GraphData(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("load question graph: %w", err)
	}

	if err := s.graphCache.Set(ctx, versionID, data); err != nil {
		log.Printf("graph cache write failed for version %s: %v", versionID, err)
	}

	return scoring.NewGraph(*data), nil
}
