package mapper

import (
	"time"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/model"
	"spacenotes-be/pkg/fieldschema"

	"gorm.io/datatypes"
)

type SpaceMapper struct{}

func NewSpaceMapper() *SpaceMapper {
	return &SpaceMapper{}
}

func (m *SpaceMapper) ToEntity(s *model.Space) (*entity.Space, error) {
	if s == nil {
		return nil, nil
	}
	schema, err := fieldschema.Parse(s.FieldSchema)
	if err != nil {
		return nil, err
	}
	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}
	return &entity.Space{
		Slug:        s.Slug,
		Title:       s.Title,
		Description: s.Description,
		Fields:      schema,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (m *SpaceMapper) ToModel(s *entity.Space) (*model.Space, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := s.Fields.Marshal()
	if err != nil {
		return nil, err
	}
	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}
	return &model.Space{
		Slug:        s.Slug,
		Title:       s.Title,
		Description: s.Description,
		FieldSchema: datatypes.JSON(raw),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (m *SpaceMapper) ToEntities(spaces []*model.Space) ([]*entity.Space, error) {
	entities := make([]*entity.Space, len(spaces))
	for i, s := range spaces {
		e, err := m.ToEntity(s)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

type SpaceMemberMapper struct{}

func NewSpaceMemberMapper() *SpaceMemberMapper {
	return &SpaceMemberMapper{}
}

func (m *SpaceMemberMapper) ToEntity(sm *model.SpaceMember) *entity.SpaceMember {
	if sm == nil {
		return nil
	}
	return &entity.SpaceMember{
		SpaceSlug: sm.SpaceSlug,
		Username:  sm.Username,
		AddedAt:   sm.AddedAt,
	}
}

func (m *SpaceMemberMapper) ToModel(sm *entity.SpaceMember) *model.SpaceMember {
	if sm == nil {
		return nil
	}
	return &model.SpaceMember{
		SpaceSlug: sm.SpaceSlug,
		Username:  sm.Username,
		AddedAt:   sm.AddedAt,
	}
}

func (m *SpaceMemberMapper) ToEntities(members []*model.SpaceMember) []*entity.SpaceMember {
	entities := make([]*entity.SpaceMember, len(members))
	for i, sm := range members {
		entities[i] = m.ToEntity(sm)
	}
	return entities
}
