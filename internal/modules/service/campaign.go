package service

import (
	"context"
	"fmt"

	"github.com/opencollect/collect-api/internal/modules/repo"
)

type CampaignService interface {
	List(ctx context.Context) ([]repo.CampaignSummary, error)
}

type campaignService struct {
	r repo.CampaignRepo
}

func NewCampaignService(r repo.CampaignRepo) CampaignService {
	return &campaignService{r: r}
}

func (s *campaignService) List(ctx context.Context) ([]repo.CampaignSummary, error) {
	campaigns, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}
