package dao

import (
	"context"
	"strings"

	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/note"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteInput holds the fields for a new note. CreatedBy is the acting user, if known.
type NoteInput struct {
	ClientID  uuid.UUID  `validate:"required"`
	Content   string     `validate:"required"`
	CreatedBy *uuid.UUID `validate:"-"`
}

// NoteDAO handles notes attached to clients
type NoteDAO struct {
	DB *gorm.DB
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{DB: db}
}

func (d *NoteDAO) Create(ctx context.Context, input NoteInput) (*note.Note, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, d.DB, &client.Client{}, input.ClientID, "client"); err != nil {
		return nil, err
	}

	n := &note.Note{
		ClientID:  input.ClientID,
		Content:   input.Content,
		CreatedBy: input.CreatedBy,
	}
	if err := d.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, translateError(err)
	}
	return n, nil
}

func (d *NoteDAO) GetByID(ctx context.Context, id uuid.UUID) (*note.Note, error) {
	return first[note.Note](ctx, d.DB, "id = ?", id)
}

func (d *NoteDAO) GetByClient(ctx context.Context, clientID uuid.UUID) ([]note.Note, error) {
	return find[note.Note](ctx, d.DB, "client_id = ?", clientID)
}

func (d *NoteDAO) GetByCreatedBy(ctx context.Context, userID uuid.UUID) ([]note.Note, error) {
	return find[note.Note](ctx, d.DB, "created_by = ?", userID)
}

func (d *NoteDAO) List(ctx context.Context) ([]note.Note, error) {
	notes := []note.Note{}
	if err := d.DB.WithContext(ctx).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateContent replaces the note text. Blank content is rejected.
func (d *NoteDAO) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*note.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidf("note content is empty")
	}
	if err := updateColumns(ctx, d.DB, &note.Note{}, id, map[string]interface{}{"content": content}); err != nil {
		return nil, err
	}
	return d.GetByID(ctx, id)
}

func (d *NoteDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, d.DB, &note.Note{}, id)
}
