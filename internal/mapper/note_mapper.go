package mapper

import (
	"encoding/json"

	"spacenotes-be/internal/entity"
	"spacenotes-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) (*entity.Note, error) {
	if n == nil {
		return nil, nil
	}
	fields := make(map[string]interface{})
	if len(n.Fields) > 0 {
		if err := json.Unmarshal(n.Fields, &fields); err != nil {
			return nil, err
		}
	}
	return &entity.Note{
		SpaceSlug:  n.SpaceSlug,
		Number:     n.Number,
		CreatedBy:  n.CreatedBy,
		CreatedAt:  n.CreatedAt,
		EditedAt:   n.EditedAt,
		ActivityAt: n.ActivityAt,
		Fields:     fields,
	}, nil
}

func (m *NoteMapper) ToModel(n *entity.Note) (*model.Note, error) {
	if n == nil {
		return nil, nil
	}
	fields := n.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return &model.Note{
		SpaceSlug:  n.SpaceSlug,
		Number:     n.Number,
		CreatedBy:  n.CreatedBy,
		CreatedAt:  n.CreatedAt,
		EditedAt:   n.EditedAt,
		ActivityAt: n.ActivityAt,
		Fields:     datatypes.JSON(raw),
	}, nil
}

func (m *NoteMapper) ToEntities(notes []*model.Note) ([]*entity.Note, error) {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		e, err := m.ToEntity(n)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}
	return &entity.Attachment{
		SpaceSlug:  a.SpaceSlug,
		Number:     a.Number,
		NoteNumber: a.NoteNumber,
		UploadedBy: a.UploadedBy,
		Filename:   a.Filename,
		Size:       a.Size,
		MimeType:   a.MimeType,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}
	return &model.Attachment{
		SpaceSlug:  a.SpaceSlug,
		Number:     a.Number,
		NoteNumber: a.NoteNumber,
		UploadedBy: a.UploadedBy,
		Filename:   a.Filename,
		Size:       a.Size,
		MimeType:   a.MimeType,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToEntities(attachments []*model.Attachment) []*entity.Attachment {
	entities := make([]*entity.Attachment, len(attachments))
	for i, a := range attachments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
