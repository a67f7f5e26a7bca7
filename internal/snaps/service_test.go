package snaps

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/domain"
	"github.com/twitsnap/twits/internal/models"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "empty message rejected",
			content: "",
			wantErr: true,
		},
		{
			name:    "plain message accepted",
			content: "hello #world",
			wantErr: false,
		},
		{
			name:    "280 code points accepted",
			content: strings.Repeat("a", 280),
			wantErr: false,
		},
		{
			name:    "281 code points rejected",
			content: strings.Repeat("a", 281),
			wantErr: true,
		},
		{
			name: "multibyte runes counted as code points",
			// 280 runes but far more than 280 bytes
			content: strings.Repeat("é", 280),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContent(tt.content)
			if tt.wantErr {
				if !domain.IsKind(err, domain.KindValidationFailed) {
					t.Errorf("validateContent(%q) = %v, want ValidationFailed", tt.content, err)
				}
			} else if err != nil {
				t.Errorf("validateContent(%q) unexpected error: %v", tt.content, err)
			}
		})
	}
}

func TestTranslateInsert(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected domain.Kind
	}{
		{
			name:     "duplicate key is a conflict",
			err:      gorm.ErrDuplicatedKey,
			expected: domain.KindConflict,
		},
		{
			name:     "foreign key violation means snap not found",
			err:      gorm.ErrForeignKeyViolated,
			expected: domain.KindNotFound,
		},
		{
			name:     "anything else is a store failure",
			err:      errors.New("connection reset"),
			expected: domain.KindStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateInsert(tt.err, "like")
			if got := domain.KindOf(err); got != tt.expected {
				t.Errorf("translateInsert() kind = %v, want %v", got, tt.expected)
			}
		})
	}

	if translateInsert(nil, "like") != nil {
		t.Error("translateInsert(nil) should be nil")
	}
}

// fakeTxRunner hands the closure a nil handle; the fake stores ignore it.
type fakeTxRunner struct{}

func (fakeTxRunner) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// fakeSnapStore backs the service with an in-memory map and records writes.
type fakeSnapStore struct {
	rows    map[uuid.UUID]*models.Snap
	created []*models.Snap
	saved   []*models.Snap
	deleted []uuid.UUID
}

func newFakeSnapStore(snaps ...*models.Snap) *fakeSnapStore {
	s := &fakeSnapStore{rows: make(map[uuid.UUID]*models.Snap)}
	for _, snap := range snaps {
		s.rows[snap.ID] = snap
	}
	return s
}

func (s *fakeSnapStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Snap, error) {
	return s.rows[id], nil
}

func (s *fakeSnapStore) ListVisible(ctx context.Context) ([]models.Snap, error) { return nil, nil }
func (s *fakeSnapStore) ListBlocked(ctx context.Context) ([]models.Snap, error) { return nil, nil }

func (s *fakeSnapStore) Search(ctx context.Context, q string) ([]models.Snap, error) {
	return nil, nil
}

func (s *fakeSnapStore) ListByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Snap, error) {
	return nil, nil
}

func (s *fakeSnapStore) ListReplies(ctx context.Context, parentID uuid.UUID) ([]models.Snap, error) {
	return nil, nil
}

func (s *fakeSnapStore) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (bool, error) {
	snap, ok := s.rows[id]
	if !ok {
		return false, nil
	}
	snap.IsBlocked = blocked
	return true, nil
}

func (s *fakeSnapStore) CreateTx(ctx context.Context, tx *gorm.DB, snap *models.Snap) error {
	s.rows[snap.ID] = snap
	s.created = append(s.created, snap)
	return nil
}

func (s *fakeSnapStore) SaveTx(ctx context.Context, tx *gorm.DB, snap *models.Snap) error {
	s.rows[snap.ID] = snap
	s.saved = append(s.saved, snap)
	return nil
}

func (s *fakeSnapStore) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(s.rows, id)
	s.deleted = append(s.deleted, id)
	return nil
}

// fakeIndexer records reindex calls without touching any store.
type fakeIndexer struct {
	indexed   []string
	reindexed []string
}

func (i *fakeIndexer) IndexOnCreate(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, content string) error {
	i.indexed = append(i.indexed, content)
	return nil
}

func (i *fakeIndexer) ReindexOnEdit(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, oldContent, newContent string) error {
	i.reindexed = append(i.reindexed, newContent)
	return nil
}

func newTestService(store *fakeSnapStore, indexer *fakeIndexer) *Service {
	return &Service{
		repo:    fakeTxRunner{},
		snaps:   store,
		indexer: indexer,
		logger:  zap.NewNop(),
	}
}

func strPtr(s string) *string { return &s }

func TestCreateSnap_ParentCheck(t *testing.T) {
	parent := &models.Snap{ID: uuid.New(), Content: strPtr("root post"), CreatedBy: uuid.New()}

	tests := []struct {
		name         string
		parentID     uuid.NullUUID
		wantNotFound bool
	}{
		{
			name:         "missing parent rejected",
			parentID:     uuid.NullUUID{UUID: uuid.New(), Valid: true},
			wantNotFound: true,
		},
		{
			name:     "existing parent accepted",
			parentID: uuid.NullUUID{UUID: parent.ID, Valid: true},
		},
		{
			name: "no parent accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeSnapStore(parent)
			indexer := &fakeIndexer{}
			svc := newTestService(store, indexer)

			snap, err := svc.CreateSnap(context.Background(), "hello #go", uuid.New(), false, tt.parentID)
			if tt.wantNotFound {
				if !domain.IsKind(err, domain.KindNotFound) {
					t.Fatalf("CreateSnap() = %v, want NotFound", err)
				}
				if len(store.created) != 0 {
					t.Error("CreateSnap() wrote a row despite the rejected parent")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateSnap() unexpected error: %v", err)
			}
			if snap.ParentID != tt.parentID {
				t.Errorf("CreateSnap() parent = %v, want %v", snap.ParentID, tt.parentID)
			}
			if len(store.created) != 1 || len(indexer.indexed) != 1 {
				t.Errorf("CreateSnap() wrote %d rows and indexed %d contents, want 1 and 1",
					len(store.created), len(indexer.indexed))
			}
		})
	}
}

func TestEditSnap_NotFound(t *testing.T) {
	redacted := &models.Snap{
		ID:       uuid.New(),
		Content:  nil,
		ParentID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
	}

	tests := []struct {
		name string
		id   uuid.UUID
	}{
		{
			name: "missing snap",
			id:   uuid.New(),
		},
		{
			name: "soft-deleted reply",
			id:   redacted.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeSnapStore(redacted)
			svc := newTestService(store, &fakeIndexer{})

			_, err := svc.EditSnap(context.Background(), tt.id, "new text", nil)
			if !domain.IsKind(err, domain.KindNotFound) {
				t.Errorf("EditSnap() = %v, want NotFound", err)
			}
			if len(store.saved) != 0 {
				t.Error("EditSnap() wrote a row for an uneditable snap")
			}
		})
	}
}

func TestDeleteSnap(t *testing.T) {
	parentID := uuid.New()

	t.Run("reply is soft-deleted", func(t *testing.T) {
		reply := &models.Snap{
			ID:       uuid.New(),
			Content:  strPtr("a reply with a #tag"),
			ParentID: uuid.NullUUID{UUID: parentID, Valid: true},
		}
		store := newFakeSnapStore(reply)
		indexer := &fakeIndexer{}
		svc := newTestService(store, indexer)

		if err := svc.DeleteSnap(context.Background(), reply.ID); err != nil {
			t.Fatalf("DeleteSnap() unexpected error: %v", err)
		}
		if len(store.deleted) != 0 {
			t.Error("DeleteSnap() hard-deleted a reply")
		}
		row, ok := store.rows[reply.ID]
		if !ok {
			t.Fatal("DeleteSnap() removed the reply row")
		}
		if row.Content != nil {
			t.Errorf("DeleteSnap() left content %q, want nulled", *row.Content)
		}
		if !row.ParentID.Valid || row.ParentID.UUID != parentID {
			t.Error("DeleteSnap() dropped the parent linkage")
		}
		// The redacted content no longer carries tags.
		if len(indexer.reindexed) != 1 || indexer.reindexed[0] != "" {
			t.Errorf("DeleteSnap() reindexed %v, want one pass against empty content", indexer.reindexed)
		}
	})

	t.Run("top-level snap is hard-deleted", func(t *testing.T) {
		snap := &models.Snap{ID: uuid.New(), Content: strPtr("root post")}
		store := newFakeSnapStore(snap)
		svc := newTestService(store, &fakeIndexer{})

		if err := svc.DeleteSnap(context.Background(), snap.ID); err != nil {
			t.Fatalf("DeleteSnap() unexpected error: %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != snap.ID {
			t.Errorf("DeleteSnap() deleted %v, want [%v]", store.deleted, snap.ID)
		}
		if len(store.saved) != 0 {
			t.Error("DeleteSnap() soft-deleted a top-level snap")
		}
		if _, ok := store.rows[snap.ID]; ok {
			t.Error("DeleteSnap() left the row in place")
		}
	})

	t.Run("deleting twice is not found", func(t *testing.T) {
		redacted := &models.Snap{
			ID:       uuid.New(),
			Content:  nil,
			ParentID: uuid.NullUUID{UUID: parentID, Valid: true},
		}
		store := newFakeSnapStore(redacted)
		svc := newTestService(store, &fakeIndexer{})

		if err := svc.DeleteSnap(context.Background(), redacted.ID); !domain.IsKind(err, domain.KindNotFound) {
			t.Errorf("DeleteSnap() on redacted reply = %v, want NotFound", err)
		}
		if err := svc.DeleteSnap(context.Background(), uuid.New()); !domain.IsKind(err, domain.KindNotFound) {
			t.Errorf("DeleteSnap() on missing id = %v, want NotFound", err)
		}
	})
}
