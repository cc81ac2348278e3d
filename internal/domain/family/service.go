package family

import (
	"context"
	"fmt"
	"strings"

	"church-app-go/internal/domain/cascade"
	"church-app-go/internal/domain/validation"
	"church-app-go/pkg/logger"
	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	groups  GroupLookup
	members Dependents
	images  cascade.ImageCleaner
	log     logger.Logger
}

func NewService(repo Repository, groups GroupLookup, members Dependents, cleaner cascade.ImageCleaner, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		groups:  groups,
		members: members,
		images:  cleaner,
		log:     log,
	}
}

func (s *Service) List(ctx context.Context) ([]FamilyWithStats, error) {
	return s.repo.ListWithStats(ctx)
}

func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]Family, error) {
	return s.repo.ListByGroup(ctx, strings.TrimSpace(groupID))
}

func (s *Service) Get(ctx context.Context, id string) (*Family, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Family, error) {
	input.FamilyName = strings.TrimSpace(input.FamilyName)
	input.HeadOfFamily = strings.TrimSpace(input.HeadOfFamily)
	input.ContactNo = strings.TrimSpace(input.ContactNo)
	input.Location = strings.TrimSpace(input.Location)
	input.Address = strings.TrimSpace(input.Address)
	input.GroupID = strings.TrimSpace(input.GroupID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, input.GroupID); err != nil {
		return nil, err
	}

	family := Family{
		ID:           uuid.NewString(),
		FamilyName:   input.FamilyName,
		HeadOfFamily: input.HeadOfFamily,
		ContactNo:    input.ContactNo,
		Location:     input.Location,
		Address:      input.Address,
		GroupID:      input.GroupID,
		ImageURL:     strings.TrimSpace(input.ImageURL),
		PublicID:     strings.TrimSpace(input.PublicID),
	}
	if err := s.repo.Create(ctx, &family); err != nil {
		return nil, fmt.Errorf("create family: %w", err)
	}
	return &family, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Family, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)
	setTrimmed(changes, "family_name", &input.FamilyName)
	setTrimmed(changes, "head_of_family", &input.HeadOfFamily)
	setTrimmed(changes, "contact_no", &input.ContactNo)
	setTrimmed(changes, "location", &input.Location)
	setTrimmed(changes, "address", &input.Address)
	setTrimmed(changes, "group_id", &input.GroupID)
	setTrimmed(changes, "image_url", &input.ImageURL)
	setTrimmed(changes, "public_id", &input.PublicID)

	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.GroupID != nil && *input.GroupID != current.GroupID {
		if err := s.checkGroup(ctx, *input.GroupID); err != nil {
			return nil, err
		}
	}
	if len(changes) == 0 {
		return current, nil
	}
	return s.repo.Update(ctx, id, changes)
}

// Delete removes the family image, the members attached to the family and
// then the family row. The parent group is not touched.
func (s *Service) Delete(ctx context.Context, id string) (*cascade.Report, error) {
	family, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &cascade.Report{}
	steps := []cascade.Step{
		{Name: "family_image", Run: func(ctx context.Context) error {
			s.images.Cleanup(ctx, family.PublicID, &report.Images)
			return nil
		}},
		{Name: "members", Run: func(ctx context.Context) error {
			publicIDs, err := s.members.PublicIDsByFamily(ctx, id)
			if err != nil {
				return err
			}
			for _, publicID := range publicIDs {
				s.images.Cleanup(ctx, publicID, &report.Images)
			}
			n, err := s.members.DeleteByFamily(ctx, id)
			report.MembersDeleted = n
			return err
		}},
		{Name: "family", Run: func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		}},
	}

	if err := cascade.Run(ctx, "family", id, steps); err != nil {
		return report, err
	}

	s.log.Info("families.delete: family deleted",
		"family_id", id,
		"members_deleted", report.MembersDeleted,
		"images_deleted", report.Images.Deleted,
	)
	return report, nil
}

func (s *Service) checkGroup(ctx context.Context, groupID string) error {
	ok, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return fmt.Errorf("check group %s: %w", groupID, err)
	}
	if !ok {
		return validation.Field("group", "Group not found")
	}
	return nil
}

func setTrimmed(changes map[string]any, column string, value **string) {
	if *value == nil {
		return
	}
	trimmed := strings.TrimSpace(**value)
	*value = &trimmed
	changes[column] = trimmed
}
