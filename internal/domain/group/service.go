package group

import (
	"context"
	"fmt"
	"strings"

	"church-app-go/internal/domain/cascade"
	"church-app-go/internal/domain/images"
	"church-app-go/internal/domain/validation"
	"church-app-go/pkg/logger"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	families Dependents
	members  Dependents
	images   cascade.ImageCleaner
	log      logger.Logger
}

func NewService(repo Repository, families, members Dependents, cleaner cascade.ImageCleaner, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		families: families,
		members:  members,
		images:   cleaner,
		log:      log,
	}
}

func (s *Service) List(ctx context.Context) ([]GroupWithStats, error) {
	return s.repo.ListWithStats(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Group, error) {
	input.GroupName = strings.TrimSpace(input.GroupName)
	input.LeaderName = strings.TrimSpace(input.LeaderName)
	input.SecretaryName = strings.TrimSpace(input.SecretaryName)
	input.Location = strings.TrimSpace(input.Location)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	group := Group{
		ID:            uuid.NewString(),
		GroupName:     input.GroupName,
		LeaderName:    input.LeaderName,
		SecretaryName: input.SecretaryName,
		Location:      input.Location,
		ImageURL:      strings.TrimSpace(input.ImageURL),
		PublicID:      strings.TrimSpace(input.PublicID),
	}
	if err := s.repo.Create(ctx, &group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Group, error) {
	changes := make(map[string]any)
	setTrimmed(changes, "group_name", &input.GroupName)
	setTrimmed(changes, "leader_name", &input.LeaderName)
	setTrimmed(changes, "secretary_name", &input.SecretaryName)
	setTrimmed(changes, "location", &input.Location)
	setTrimmed(changes, "image_url", &input.ImageURL)
	setTrimmed(changes, "public_id", &input.PublicID)

	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, changes)
}

// Delete removes a group, its families and the members tagged with the group.
// Members attached to one of those families without carrying the group id are
// left in place with a dangling family reference.
func (s *Service) Delete(ctx context.Context, id string) (*cascade.Report, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &cascade.Report{}
	steps := []cascade.Step{
		{Name: "group_image", Run: func(ctx context.Context) error {
			s.images.Cleanup(ctx, group.PublicID, &report.Images)
			return nil
		}},
		{Name: "families", Run: func(ctx context.Context) error {
			n, err := s.purge(ctx, s.families, id, &report.Images)
			report.FamiliesDeleted = n
			return err
		}},
		{Name: "members", Run: func(ctx context.Context) error {
			n, err := s.purge(ctx, s.members, id, &report.Images)
			report.MembersDeleted = n
			return err
		}},
		{Name: "group", Run: func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		}},
	}

	if err := cascade.Run(ctx, "group", id, steps); err != nil {
		return report, err
	}

	s.log.Info("groups.delete: group deleted",
		"group_id", id,
		"families_deleted", report.FamiliesDeleted,
		"members_deleted", report.MembersDeleted,
		"images_deleted", report.Images.Deleted,
		"images_failed", len(report.Images.Failed),
	)
	return report, nil
}

func (s *Service) purge(ctx context.Context, deps Dependents, groupID string, report *images.CleanupReport) (int64, error) {
	publicIDs, err := deps.PublicIDsByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	for _, publicID := range publicIDs {
		s.images.Cleanup(ctx, publicID, report)
	}
	return deps.DeleteByGroup(ctx, groupID)
}

func setTrimmed(changes map[string]any, column string, value **string) {
	if *value == nil {
		return
	}
	trimmed := strings.TrimSpace(**value)
	*value = &trimmed
	changes[column] = trimmed
}
