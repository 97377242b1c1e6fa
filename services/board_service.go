// services/board_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"akis.link/configs"
	"akis.link/configs/configslog"
	"akis.link/models"
	"akis.link/pkg/ordering"
	"akis.link/pkg/queryparams"
	"akis.link/repositories"
)

// BoardServiceError özel servis hataları
type BoardServiceError string

func (e BoardServiceError) Error() string { return string(e) }

// Hata sabitleri
const (
	ErrBoardNotFound       BoardServiceError = "pano bulunamadı"
	ErrBoardCreationFailed BoardServiceError = "pano oluşturulamadı"
	ErrBoardUpdateFailed   BoardServiceError = "pano güncellenemedi"
	ErrBoardDeletionFailed BoardServiceError = "pano silinemedi"
	ErrBoardForbidden      BoardServiceError = "bu işlem için yetkiniz yok"
	ErrBrdInvalidInput     BoardServiceError = "geçersiz girdi verisi"
	ErrBoardNameRequired   BoardServiceError = "pano adı zorunludur"
	ErrColumnNotFound      BoardServiceError = "kolon bulunamadı"
	ErrColumnTitleRequired BoardServiceError = "kolon başlığı zorunludur"
	ErrColumnNotEmpty      BoardServiceError = "kolonda kart varken silinemez"
	ErrCardNotFound        BoardServiceError = "kart bulunamadı"
	ErrCardTitleRequired   BoardServiceError = "kart başlığı zorunludur"
	ErrFolderNotFound      BoardServiceError = "klasör bulunamadı"
	ErrFolderNameRequired  BoardServiceError = "klasör adı zorunludur"
)

// CardMoveRequest kartın hedef kolon ve hedef indeksini taşır.
// Aynı kolon içinde taşıma için ToColumnID kartın mevcut kolonu olabilir.
type CardMoveRequest struct {
	CardID     uuid.UUID
	ToColumnID uuid.UUID
	ToIndex    int
}

// IBoardService pano, kolon ve kart işlemleri için arayüz.
type IBoardService interface {
	// Pano
	CreateBoard(ctx context.Context, ownerID uuid.UUID, name, templateKind string, folderID *uuid.UUID) (*models.Board, error)
	GetBoardByID(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Board, error)
	GetBoardsForUserPaginated(ctx context.Context, ownerID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateBoard(ctx context.Context, id, updatingUserID uuid.UUID, name string, folderID *uuid.UUID) error
	DeleteBoard(ctx context.Context, id, deletingUserID uuid.UUID) error

	// Klasör
	CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (*models.Folder, error)
	GetFoldersForUser(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error)
	RenameFolder(ctx context.Context, id, updatingUserID uuid.UUID, name string) error
	DeleteFolder(ctx context.Context, id, deletingUserID uuid.UUID) error

	// Kolon
	CreateColumn(ctx context.Context, boardID, requestingUserID uuid.UUID, title, icon string) (*models.BoardColumn, error)
	UpdateColumn(ctx context.Context, columnID, updatingUserID uuid.UUID, title, icon string) error
	ReorderColumn(ctx context.Context, boardID, columnID, requestingUserID uuid.UUID, toIndex int) error
	DeleteColumn(ctx context.Context, columnID, deletingUserID uuid.UUID, cascade bool) error

	// Kart
	CreateCard(ctx context.Context, columnID, requestingUserID uuid.UUID, title, description, priority string) (*models.BoardCard, error)
	UpdateCard(ctx context.Context, cardID, updatingUserID uuid.UUID, data map[string]interface{}) error
	DeleteCard(ctx context.Context, cardID, deletingUserID uuid.UUID) error
	MoveCard(ctx context.Context, requestingUserID uuid.UUID, req CardMoveRequest) error
}

// BoardService IBoardService arayüzünü uygular.
type BoardService struct {
	boardRepo      repositories.IBoardRepository
	columnRepo     repositories.IBoardColumnRepository
	cardRepo       repositories.IBoardCardRepository
	attachmentRepo repositories.ICardAttachmentRepository
	folderRepo     repositories.IFolderRepository
	db             *gorm.DB // Transaction yönetimi için
}

// NewBoardService yeni bir BoardService örneği oluşturur.
func NewBoardService() IBoardService {
	db := configs.GetDB()
	return NewBoardServiceTx(db)
}

// NewBoardServiceTx verilen DB bağlantısıyla (test, transaction) örnek oluşturur.
func NewBoardServiceTx(db *gorm.DB) IBoardService {
	return &BoardService{
		boardRepo:      repositories.NewBoardRepositoryTx(db),
		columnRepo:     repositories.NewBoardColumnRepositoryTx(db),
		cardRepo:       repositories.NewBoardCardRepositoryTx(db),
		attachmentRepo: repositories.NewCardAttachmentRepositoryTx(db),
		folderRepo:     repositories.NewFolderRepositoryTx(db),
		db:             db,
	}
}

// "leads" şablonunun hazır kolonları. Sıra, oluşturma sırasıdır.
var leadsTemplateColumns = []struct {
	Title string
	Icon  string
}{
	{"Yeni", "inbox"},
	{"İletişimde", "phone"},
	{"Teklif Gönderildi", "send"},
	{"Kazanıldı", "check"},
	{"Kaybedildi", "x"},
}

// --- Pano ---

// CreateBoard yeni pano oluşturur. "leads" şablonu hazır kolon setiyle gelir.
func (s *BoardService) CreateBoard(ctx context.Context, ownerID uuid.UUID, name, templateKind string, folderID *uuid.UUID) (*models.Board, error) {
	if name == "" {
		return nil, ErrBoardNameRequired
	}
	if templateKind == "" {
		templateKind = models.BoardTemplateFree
	}
	if !models.ValidBoardTemplate(templateKind) {
		return nil, fmt.Errorf("%w: geçersiz şablon türü: %s", ErrBrdInvalidInput, templateKind)
	}
	if folderID != nil {
		folder, err := s.folderRepo.FindByID(ctx, *folderID)
		if err != nil {
			return nil, ErrFolderNotFound
		}
		if folder.OwnerUserID != ownerID {
			return nil, ErrBoardForbidden
		}
	}

	ctx = models.ContextWithUserID(ctx, ownerID)
	board := &models.Board{
		OwnerUserID:  ownerID,
		Name:         name,
		TemplateKind: templateKind,
		FolderID:     folderID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		boardRepo := repositories.NewBoardRepositoryTx(tx)
		columnRepo := repositories.NewBoardColumnRepositoryTx(tx)

		if err := boardRepo.Create(ctx, board); err != nil {
			return err
		}
		if templateKind == models.BoardTemplateLeads {
			for i, tpl := range leadsTemplateColumns {
				col := &models.BoardColumn{
					BoardID:    board.ID,
					Title:      tpl.Title,
					Icon:       tpl.Icon,
					OrderIndex: i,
				}
				if err := columnRepo.Create(ctx, col); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Pano oluşturulamadı", zap.String("name", name), zap.Error(err))
		return nil, ErrBoardCreationFailed
	}
	return board, nil
}

// GetBoardByID panoyu kolonları ve kartlarıyla birlikte getirir.
func (s *BoardService) GetBoardByID(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Board, error) {
	board, err := s.boardRepo.FindByIDWithColumns(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		configslog.Log.Error("Pano getirilemedi", zap.String("board_id", id.String()), zap.Error(err))
		return nil, err
	}
	if board.OwnerUserID != requestingUserID {
		return nil, ErrBoardForbidden
	}
	return board, nil
}

// GetBoardsForUserPaginated kullanıcının panolarını sayfalayarak listeler.
func (s *BoardService) GetBoardsForUserPaginated(ctx context.Context, ownerID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	boards, totalCount, err := s.boardRepo.FindAllByOwnerPaginated(ownerID, params)
	if err != nil {
		configslog.Log.Error("Pano listesi alınamadı", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(boards, params, totalCount), nil
}

// UpdateBoard pano adını ve klasörünü günceller.
func (s *BoardService) UpdateBoard(ctx context.Context, id, updatingUserID uuid.UUID, name string, folderID *uuid.UUID) error {
	if name == "" {
		return ErrBoardNameRequired
	}
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		return ErrBoardNotFound
	}
	if board.OwnerUserID != updatingUserID {
		return ErrBoardForbidden
	}
	if folderID != nil {
		folder, err := s.folderRepo.FindByID(ctx, *folderID)
		if err != nil {
			return ErrFolderNotFound
		}
		if folder.OwnerUserID != updatingUserID {
			return ErrBoardForbidden
		}
	}

	ctx = models.ContextWithUserID(ctx, updatingUserID)
	data := map[string]interface{}{"name": name, "folder_id": folderID}
	if err := s.boardRepo.Update(ctx, id, data); err != nil {
		configslog.Log.Error("Pano güncellenemedi", zap.String("board_id", id.String()), zap.Error(err))
		return ErrBoardUpdateFailed
	}
	return nil
}

// DeleteBoard panoyu tüm kolonları, kartları ve ek satırlarıyla birlikte siler.
func (s *BoardService) DeleteBoard(ctx context.Context, id, deletingUserID uuid.UUID) error {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		return ErrBoardNotFound
	}
	if board.OwnerUserID != deletingUserID {
		return ErrBoardForbidden
	}

	ctx = models.ContextWithUserID(ctx, deletingUserID)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		boardRepo := repositories.NewBoardRepositoryTx(tx)
		columnRepo := repositories.NewBoardColumnRepositoryTx(tx)
		cardRepo := repositories.NewBoardCardRepositoryTx(tx)
		attachmentRepo := repositories.NewCardAttachmentRepositoryTx(tx)

		cards, err := cardRepo.FindAllByBoard(ctx, id)
		if err != nil {
			return err
		}
		for _, card := range cards {
			if err := attachmentRepo.DeleteAllByCard(ctx, card.ID); err != nil {
				return err
			}
			if err := cardRepo.Delete(ctx, card.ID); err != nil {
				return err
			}
		}
		columns, err := columnRepo.FindAllByBoard(ctx, id)
		if err != nil {
			return err
		}
		for _, col := range columns {
			if err := columnRepo.Delete(ctx, col.ID); err != nil {
				return err
			}
		}
		return boardRepo.Delete(ctx, id)
	})
	if err != nil {
		configslog.Log.Error("Pano silinemedi", zap.String("board_id", id.String()), zap.Error(err))
		return ErrBoardDeletionFailed
	}
	configslog.SLog.Infof("Pano silindi: %s (kullanıcı: %s)", id, deletingUserID)
	return nil
}

// --- Klasör ---

func (s *BoardService) CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (*models.Folder, error) {
	if name == "" {
		return nil, ErrFolderNameRequired
	}
	ctx = models.ContextWithUserID(ctx, ownerID)
	folder := &models.Folder{OwnerUserID: ownerID, Name: name}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		configslog.Log.Error("Klasör oluşturulamadı", zap.Error(err))
		return nil, ErrBoardCreationFailed
	}
	return folder, nil
}

func (s *BoardService) GetFoldersForUser(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	return s.folderRepo.FindAllByOwner(ctx, ownerID)
}

func (s *BoardService) RenameFolder(ctx context.Context, id, updatingUserID uuid.UUID, name string) error {
	if name == "" {
		return ErrFolderNameRequired
	}
	folder, err := s.folderRepo.FindByID(ctx, id)
	if err != nil {
		return ErrFolderNotFound
	}
	if folder.OwnerUserID != updatingUserID {
		return ErrBoardForbidden
	}
	ctx = models.ContextWithUserID(ctx, updatingUserID)
	return s.folderRepo.Update(ctx, id, map[string]interface{}{"name": name})
}

// DeleteFolder klasörü siler; içindeki panolar klasörsüz kalır.
func (s *BoardService) DeleteFolder(ctx context.Context, id, deletingUserID uuid.UUID) error {
	folder, err := s.folderRepo.FindByID(ctx, id)
	if err != nil {
		return ErrFolderNotFound
	}
	if folder.OwnerUserID != deletingUserID {
		return ErrBoardForbidden
	}
	ctx = models.ContextWithUserID(ctx, deletingUserID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Board{}).
			Where("folder_id = ?", id).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		return repositories.NewFolderRepositoryTx(tx).Delete(ctx, id)
	})
}

// --- Kolon ---

// CreateColumn kolonu panonun sonuna ekler (kuyruk indeksi).
func (s *BoardService) CreateColumn(ctx context.Context, boardID, requestingUserID uuid.UUID, title, icon string) (*models.BoardColumn, error) {
	if title == "" {
		return nil, ErrColumnTitleRequired
	}
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, ErrBoardNotFound
	}
	if board.OwnerUserID != requestingUserID {
		return nil, ErrBoardForbidden
	}

	count, err := s.columnRepo.CountByBoard(boardID)
	if err != nil {
		return nil, err
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	column := &models.BoardColumn{
		BoardID:    boardID,
		Title:      title,
		Icon:       icon,
		OrderIndex: int(count),
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		configslog.Log.Error("Kolon oluşturulamadı", zap.String("board_id", boardID.String()), zap.Error(err))
		return nil, ErrBoardCreationFailed
	}
	return column, nil
}

// UpdateColumn başlık ve ikonu günceller; sıra indeksine dokunmaz.
func (s *BoardService) UpdateColumn(ctx context.Context, columnID, updatingUserID uuid.UUID, title, icon string) error {
	if title == "" {
		return ErrColumnTitleRequired
	}
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return ErrColumnNotFound
	}
	if err := s.checkBoardOwner(ctx, column.BoardID, updatingUserID); err != nil {
		return err
	}
	ctx = models.ContextWithUserID(ctx, updatingUserID)
	return s.columnRepo.Update(ctx, columnID, map[string]interface{}{"title": title, "icon": icon})
}

// ReorderColumn kolonu pano içinde yeni indekse taşır.
// Tek mutasyon, tek transaction; yazım sonrası tüm indeksler yoğundur.
func (s *BoardService) ReorderColumn(ctx context.Context, boardID, columnID, requestingUserID uuid.UUID, toIndex int) error {
	if err := s.checkBoardOwner(ctx, boardID, requestingUserID); err != nil {
		return err
	}

	ctx = models.ContextWithUserID(ctx, requestingUserID)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		columnRepo := repositories.NewBoardColumnRepositoryTx(tx)

		columns, err := columnRepo.FindAllByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		arrangement := make(ordering.Arrangement[uuid.UUID], 0, len(columns))
		byID := make(map[uuid.UUID]models.BoardColumn, len(columns))
		for _, col := range columns {
			arrangement = append(arrangement, col.ID)
			byID[col.ID] = col
		}

		moved, err := arrangement.MoveWithin(columnID, toIndex)
		if err != nil {
			return ErrColumnNotFound
		}
		if moved.Equal(arrangement) {
			return nil // Aynı yuvaya bırakma, yazma yok
		}

		updated := make([]models.BoardColumn, 0, len(moved))
		ordering.Renumber(len(moved), func(position, orderIndex int) {
			col := byID[moved[position]]
			col.OrderIndex = orderIndex
			updated = append(updated, col)
		})
		return columnRepo.UpdateOrderIndexes(ctx, updated)
	})
	if err != nil {
		if errors.Is(err, ErrColumnNotFound) {
			return err
		}
		configslog.Log.Error("Kolon taşınamadı", zap.String("column_id", columnID.String()), zap.Error(err))
		return ErrBoardUpdateFailed
	}
	return nil
}

// DeleteColumn kolonu siler. İçinde kart varken cascade=false ise reddedilir;
// cascade=true ise kartlar ve ek satırları aynı transaction'da silinir.
// Kalan kolonların indeksleri silme sonrası yeniden numaralandırılır.
func (s *BoardService) DeleteColumn(ctx context.Context, columnID, deletingUserID uuid.UUID, cascade bool) error {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return ErrColumnNotFound
	}
	if err := s.checkBoardOwner(ctx, column.BoardID, deletingUserID); err != nil {
		return err
	}

	cardCount, err := s.cardRepo.CountByColumn(columnID)
	if err != nil {
		return err
	}
	if cardCount > 0 && !cascade {
		return ErrColumnNotEmpty
	}

	ctx = models.ContextWithUserID(ctx, deletingUserID)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		columnRepo := repositories.NewBoardColumnRepositoryTx(tx)
		cardRepo := repositories.NewBoardCardRepositoryTx(tx)
		attachmentRepo := repositories.NewCardAttachmentRepositoryTx(tx)

		if cardCount > 0 {
			cards, err := cardRepo.FindAllByColumn(ctx, columnID)
			if err != nil {
				return err
			}
			for _, card := range cards {
				if err := attachmentRepo.DeleteAllByCard(ctx, card.ID); err != nil {
					return err
				}
			}
			if err := cardRepo.DeleteAllByColumn(ctx, columnID); err != nil {
				return err
			}
		}
		if err := columnRepo.Delete(ctx, columnID); err != nil {
			return err
		}

		// Kalan kolonları yeniden numaralandır
		remaining, err := columnRepo.FindAllByBoard(ctx, column.BoardID)
		if err != nil {
			return err
		}
		ordering.Renumber(len(remaining), func(position, orderIndex int) {
			remaining[position].OrderIndex = orderIndex
		})
		return columnRepo.UpdateOrderIndexes(ctx, remaining)
	})
	if err != nil {
		configslog.Log.Error("Kolon silinemedi", zap.String("column_id", columnID.String()), zap.Error(err))
		return ErrBoardDeletionFailed
	}
	return nil
}

// --- Kart ---

// CreateCard kartı kolonun sonuna ekler.
func (s *BoardService) CreateCard(ctx context.Context, columnID, requestingUserID uuid.UUID, title, description, priority string) (*models.BoardCard, error) {
	if title == "" {
		return nil, ErrCardTitleRequired
	}
	if !models.ValidCardPriority(priority) {
		return nil, fmt.Errorf("%w: geçersiz öncelik: %s", ErrBrdInvalidInput, priority)
	}
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, ErrColumnNotFound
	}
	if err := s.checkBoardOwner(ctx, column.BoardID, requestingUserID); err != nil {
		return nil, err
	}

	count, err := s.cardRepo.CountByColumn(columnID)
	if err != nil {
		return nil, err
	}
	ctx = models.ContextWithUserID(ctx, requestingUserID)
	card := &models.BoardCard{
		BoardID:     column.BoardID,
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    priority,
		OrderIndex:  int(count),
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		configslog.Log.Error("Kart oluşturulamadı", zap.String("column_id", columnID.String()), zap.Error(err))
		return nil, ErrBoardCreationFailed
	}
	return card, nil
}

// UpdateCard başlık/açıklama/öncelik/tamamlandı alanlarını günceller.
// Kolon ve sıra alanları buradan geçmez; taşıma için MoveCard kullanılır.
func (s *BoardService) UpdateCard(ctx context.Context, cardID, updatingUserID uuid.UUID, data map[string]interface{}) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return ErrCardNotFound
	}
	if err := s.checkBoardOwner(ctx, card.BoardID, updatingUserID); err != nil {
		return err
	}
	if p, ok := data["priority"].(string); ok && !models.ValidCardPriority(p) {
		return fmt.Errorf("%w: geçersiz öncelik: %s", ErrBrdInvalidInput, p)
	}
	delete(data, "column_id")
	delete(data, "order_index")
	if len(data) == 0 {
		return nil
	}

	ctx = models.ContextWithUserID(ctx, updatingUserID)
	if err := s.cardRepo.Update(ctx, cardID, data); err != nil {
		configslog.Log.Error("Kart güncellenemedi", zap.String("card_id", cardID.String()), zap.Error(err))
		return ErrBoardUpdateFailed
	}
	return nil
}

// DeleteCard kartı ve eklerini siler; kolonun kalan kartları yeniden numaralandırılır.
func (s *BoardService) DeleteCard(ctx context.Context, cardID, deletingUserID uuid.UUID) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return ErrCardNotFound
	}
	if err := s.checkBoardOwner(ctx, card.BoardID, deletingUserID); err != nil {
		return err
	}

	ctx = models.ContextWithUserID(ctx, deletingUserID)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		cardRepo := repositories.NewBoardCardRepositoryTx(tx)
		attachmentRepo := repositories.NewCardAttachmentRepositoryTx(tx)

		if err := attachmentRepo.DeleteAllByCard(ctx, cardID); err != nil {
			return err
		}
		if err := cardRepo.Delete(ctx, cardID); err != nil {
			return err
		}
		remaining, err := cardRepo.FindAllByColumn(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		ordering.Renumber(len(remaining), func(position, orderIndex int) {
			remaining[position].OrderIndex = orderIndex
		})
		return cardRepo.UpdateOrderIndexes(ctx, remaining)
	})
	if err != nil {
		configslog.Log.Error("Kart silinemedi", zap.String("card_id", cardID.String()), zap.Error(err))
		return ErrBoardDeletionFailed
	}
	return nil
}

// MoveCard kartı hedef kolona ve hedef indekse taşır.
// Aynı kolon içinde sıra değişikliği de bu yoldan geçer. Tek transaction:
// yazım bittiğinde kart tam olarak tek kolonda görünür ve her iki kolonun
// indeks kümesi yoğundur.
func (s *BoardService) MoveCard(ctx context.Context, requestingUserID uuid.UUID, req CardMoveRequest) error {
	card, err := s.cardRepo.FindByID(ctx, req.CardID)
	if err != nil {
		return ErrCardNotFound
	}
	if err := s.checkBoardOwner(ctx, card.BoardID, requestingUserID); err != nil {
		return err
	}
	target, err := s.columnRepo.FindByID(ctx, req.ToColumnID)
	if err != nil {
		return ErrColumnNotFound
	}
	if target.BoardID != card.BoardID {
		return fmt.Errorf("%w: hedef kolon başka bir panoda", ErrBrdInvalidInput)
	}

	ctx = models.ContextWithUserID(ctx, requestingUserID)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		cardRepo := repositories.NewBoardCardRepositoryTx(tx)

		if card.ColumnID == req.ToColumnID {
			return s.moveWithinColumn(ctx, cardRepo, card, req.ToIndex)
		}
		return s.moveBetweenColumns(ctx, cardRepo, card, req.ToColumnID, req.ToIndex)
	})
	if err != nil {
		configslog.Log.Error("Kart taşınamadı",
			zap.String("card_id", req.CardID.String()),
			zap.String("to_column_id", req.ToColumnID.String()),
			zap.Error(err))
		return ErrBoardUpdateFailed
	}
	return nil
}

// moveWithinColumn aynı kolon içinde sıra değişikliği yapar.
func (s *BoardService) moveWithinColumn(ctx context.Context, cardRepo repositories.IBoardCardRepository, card *models.BoardCard, toIndex int) error {
	cards, err := cardRepo.FindAllByColumn(ctx, card.ColumnID)
	if err != nil {
		return err
	}
	arrangement := make(ordering.Arrangement[uuid.UUID], 0, len(cards))
	byID := make(map[uuid.UUID]models.BoardCard, len(cards))
	for _, c := range cards {
		arrangement = append(arrangement, c.ID)
		byID[c.ID] = c
	}

	moved, err := arrangement.MoveWithin(card.ID, toIndex)
	if err != nil {
		return err
	}
	if moved.Equal(arrangement) {
		return nil // Aynı yuvaya bırakma, yazma yok
	}

	updated := make([]models.BoardCard, 0, len(moved))
	ordering.Renumber(len(moved), func(position, orderIndex int) {
		c := byID[moved[position]]
		c.OrderIndex = orderIndex
		updated = append(updated, c)
	})
	return cardRepo.UpdateOrderIndexes(ctx, updated)
}

// moveBetweenColumns kartı kaynak kolondan çıkarıp hedef kolona ekler.
// Kartın kolonu ve indeksi tek adımda yazılır; ardından her iki kolon
// yeniden numaralandırılır.
func (s *BoardService) moveBetweenColumns(ctx context.Context, cardRepo repositories.IBoardCardRepository, card *models.BoardCard, toColumnID uuid.UUID, toIndex int) error {
	srcCards, err := cardRepo.FindAllByColumn(ctx, card.ColumnID)
	if err != nil {
		return err
	}
	dstCards, err := cardRepo.FindAllByColumn(ctx, toColumnID)
	if err != nil {
		return err
	}

	src := make(ordering.Arrangement[uuid.UUID], 0, len(srcCards))
	for _, c := range srcCards {
		src = append(src, c.ID)
	}
	dst := make(ordering.Arrangement[uuid.UUID], 0, len(dstCards))
	for _, c := range dstCards {
		dst = append(dst, c.ID)
	}

	newSrc, newDst, err := ordering.MoveBetween(src, dst, card.ID, toIndex)
	if err != nil {
		return err
	}

	// Kolon geçişi: kart hedef kolona hedef indeksle yazılır
	finalIndex := newDst.IndexOf(card.ID)
	if err := cardRepo.UpdatePlacement(ctx, card.ID, toColumnID, finalIndex); err != nil {
		return err
	}

	// Kaynak kolonu yeniden numaralandır
	byID := make(map[uuid.UUID]models.BoardCard, len(srcCards)+len(dstCards))
	for _, c := range srcCards {
		byID[c.ID] = c
	}
	for _, c := range dstCards {
		byID[c.ID] = c
	}

	updated := make([]models.BoardCard, 0, len(newSrc)+len(newDst))
	ordering.Renumber(len(newSrc), func(position, orderIndex int) {
		c := byID[newSrc[position]]
		c.OrderIndex = orderIndex
		updated = append(updated, c)
	})
	// Hedef kolonda taşınan kartın satırı zaten yazıldı; diğerleri numaralanır
	ordering.Renumber(len(newDst), func(position, orderIndex int) {
		if newDst[position] == card.ID {
			return
		}
		c := byID[newDst[position]]
		c.OrderIndex = orderIndex
		updated = append(updated, c)
	})
	return cardRepo.UpdateOrderIndexes(ctx, updated)
}

// checkBoardOwner panonun sahipliğini doğrular.
func (s *BoardService) checkBoardOwner(ctx context.Context, boardID, userID uuid.UUID) error {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return ErrBoardNotFound
	}
	if board.OwnerUserID != userID {
		return ErrBoardForbidden
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IBoardService = (*BoardService)(nil)
