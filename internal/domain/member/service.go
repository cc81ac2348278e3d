package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"church-app-go/internal/domain/cascade"
	"church-app-go/internal/domain/family"
	"church-app-go/internal/domain/validation"
	"church-app-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Service struct {
	repo     Repository
	families FamilyLookup
	groups   GroupLookup
	images   cascade.ImageCleaner
	log      logger.Logger
}

func NewService(repo Repository, families FamilyLookup, groups GroupLookup, cleaner cascade.ImageCleaner, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		families: families,
		groups:   groups,
		images:   cleaner,
		log:      log,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*MemberWithFamily, error) {
	return s.repo.GetWithFamily(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]MemberWithFamily, error) {
	return s.repo.ListWithFamily(ctx)
}

func (s *Service) ListByFamily(ctx context.Context, familyID string) ([]Member, error) {
	return s.repo.ListByFamily(ctx, strings.TrimSpace(familyID))
}

func (s *Service) Birthdays(ctx context.Context) ([]MemberWithFamily, error) {
	return s.repo.ListWithBirthday(ctx)
}

func (s *Service) PublicMembers(ctx context.Context) ([]Member, error) {
	return s.repo.ListByRoles(ctx, PublicRoles)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*MemberWithFamily, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Sex = strings.TrimSpace(input.Sex)
	input.BaptismName = strings.TrimSpace(input.BaptismName)
	input.Role = strings.TrimSpace(input.Role)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	role, err := ParseRole(input.Role)
	if err != nil {
		return nil, validation.Field("role", err.Error())
	}

	member := Member{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Sex:          input.Sex,
		BaptismName:  input.BaptismName,
		BaptismDate:  input.BaptismDate,
		DateOfBirth:  input.DateOfBirth,
		Married:      input.Married,
		MarriageDate: input.MarriageDate,
		DateOfDeath:  input.DateOfDeath,
		IsActive:     *input.IsActive,
		Role:         role,
		FamilyID:     optional(input.FamilyID),
		GroupID:      optional(input.GroupID),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		PublicID:     strings.TrimSpace(input.PublicID),
	}

	if member.FamilyID != nil {
		fam, err := s.lookupFamily(ctx, *member.FamilyID)
		if err != nil {
			return nil, err
		}
		// Group deletes match members by group_id. Inheriting it here is what
		// lets the group cascade reach family members.
		if member.GroupID == nil {
			member.GroupID = lo.ToPtr(fam.GroupID)
		}
	}
	if member.GroupID != nil {
		if err := s.checkGroup(ctx, *member.GroupID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return s.repo.GetWithFamily(ctx, member.ID)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*MemberWithFamily, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)
	setTrimmed(changes, "name", &input.Name)
	setTrimmed(changes, "sex", &input.Sex)
	setTrimmed(changes, "baptism_name", &input.BaptismName)
	setTrimmed(changes, "image_url", &input.ImageURL)
	setTrimmed(changes, "public_id", &input.PublicID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		changes["is_active"] = *input.IsActive
	}
	if input.Role != nil {
		role, err := ParseRole(*input.Role)
		if err != nil {
			return nil, validation.Field("role", err.Error())
		}
		changes["role"] = role
	}
	setNullable(changes, "married", input.Married)
	setNullable(changes, "baptism_date", input.BaptismDate)
	setNullable(changes, "date_of_birth", input.DateOfBirth)
	setNullable(changes, "marriage_date", input.MarriageDate)
	setNullable(changes, "date_of_death", input.DateOfDeath)

	familyID := current.FamilyID
	if input.FamilyID.Set {
		familyID = optionalPtr(input.FamilyID.Value)
		setRef(changes, "family_id", familyID)
	}
	groupID := current.GroupID
	if input.GroupID.Set {
		groupID = optionalPtr(input.GroupID.Value)
		setRef(changes, "group_id", groupID)
	}

	if input.FamilyID.Set && familyID != nil {
		fam, err := s.lookupFamily(ctx, *familyID)
		if err != nil {
			return nil, err
		}
		if groupID == nil {
			groupID = lo.ToPtr(fam.GroupID)
			setRef(changes, "group_id", groupID)
		}
	}
	if groupID != nil && lo.FromPtr(current.GroupID) != *groupID {
		if err := s.checkGroup(ctx, *groupID); err != nil {
			return nil, err
		}
	}

	if len(changes) > 0 {
		if err := s.repo.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}
	return s.repo.GetWithFamily(ctx, id)
}

// Delete removes the member image and then the row. Members are leaves, no
// further cascade happens.
func (s *Service) Delete(ctx context.Context, id string) (*cascade.Report, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &cascade.Report{}
	steps := []cascade.Step{
		{Name: "member_image", Run: func(ctx context.Context) error {
			s.images.Cleanup(ctx, member.PublicID, &report.Images)
			return nil
		}},
		{Name: "member", Run: func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		}},
	}
	if err := cascade.Run(ctx, "member", id, steps); err != nil {
		return report, err
	}
	s.log.Info("members.delete: member deleted", "member_id", id, "images_deleted", report.Images.Deleted)
	return report, nil
}

func (s *Service) lookupFamily(ctx context.Context, familyID string) (*family.Family, error) {
	fam, err := s.families.GetByID(ctx, familyID)
	if errors.Is(err, family.ErrFamilyNotFound) {
		return nil, validation.Field("family", "Family not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup family %s: %w", familyID, err)
	}
	return fam, nil
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

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func optionalPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return optional(*value)
}

func setTrimmed(changes map[string]any, column string, value **string) {
	if *value == nil {
		return
	}
	trimmed := strings.TrimSpace(**value)
	*value = &trimmed
	changes[column] = trimmed
}

func setRef(changes map[string]any, column string, value *string) {
	if value == nil {
		changes[column] = nil
		return
	}
	changes[column] = *value
}

func setNullable[T bool | time.Time](changes map[string]any, column string, value Nullable[T]) {
	if !value.Set {
		return
	}
	if value.Value == nil {
		changes[column] = nil
		return
	}
	changes[column] = *value.Value
}
