// services/attachment_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"akis.link/configs"
	"akis.link/configs/configslog"
	"akis.link/models"
	"akis.link/pkg/blobstore"
	"akis.link/repositories"
)

// AttachmentServiceError özel servis hataları
type AttachmentServiceError string

func (e AttachmentServiceError) Error() string { return string(e) }

const (
	ErrAttachmentNotFound       AttachmentServiceError = "ek bulunamadı"
	ErrAttachmentUploadFailed   AttachmentServiceError = "ek yüklenemedi"
	ErrAttachmentDeletionFailed AttachmentServiceError = "ek silinemedi"
	ErrAttachmentForbidden      AttachmentServiceError = "bu işlem için yetkiniz yok"
	ErrAttFileNameRequired      AttachmentServiceError = "dosya adı zorunludur"
	ErrAttEmptyContent          AttachmentServiceError = "dosya içeriği boş"
)

// IBlobStore ek içeriğinin konulduğu depolamanın arayüzü (test için).
type IBlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// IAttachmentService kart eki işlemleri için arayüz.
type IAttachmentService interface {
	UploadAttachment(ctx context.Context, cardID, requestingUserID uuid.UUID, fileName, mimeType string, data []byte) (*models.CardAttachment, error)
	GetAttachmentsForCard(ctx context.Context, cardID, requestingUserID uuid.UUID) ([]models.CardAttachment, error)
	DeleteAttachment(ctx context.Context, attachmentID, deletingUserID uuid.UUID) error
}

// AttachmentService IAttachmentService arayüzünü uygular.
//
// Sıralama sözleşmesi: yüklemede önce blob sonra satır; satır yazılamazsa
// blob yetim kalır ve işlem başarısız raporlanır. Silmede önce blob
// (best-effort), sonucu satır silme belirler.
type AttachmentService struct {
	attachmentRepo repositories.ICardAttachmentRepository
	cardRepo       repositories.IBoardCardRepository
	boardRepo      repositories.IBoardRepository
	blobs          IBlobStore
	db             *gorm.DB
}

// NewAttachmentService yeni bir AttachmentService örneği oluşturur.
func NewAttachmentService() IAttachmentService {
	return NewAttachmentServiceWith(configs.GetDB(), blobstore.New(configs.GetBlobBaseURL()))
}

// NewAttachmentServiceWith verilen DB ve blob deposuyla örnek oluşturur (test için).
func NewAttachmentServiceWith(db *gorm.DB, blobs IBlobStore) IAttachmentService {
	return &AttachmentService{
		attachmentRepo: repositories.NewCardAttachmentRepositoryTx(db),
		cardRepo:       repositories.NewBoardCardRepositoryTx(db),
		boardRepo:      repositories.NewBoardRepositoryTx(db),
		blobs:          blobs,
		db:             db,
	}
}

// UploadAttachment içeriği blob deposuna koyar, sonra metadata satırını yazar.
// Satır yazımı başarısız olursa blob silinmeye çalışılmaz; yetim blob kabul
// edilir ve çağrı hata döndürür.
func (s *AttachmentService) UploadAttachment(ctx context.Context, cardID, requestingUserID uuid.UUID, fileName, mimeType string, data []byte) (*models.CardAttachment, error) {
	if fileName == "" {
		return nil, ErrAttFileNameRequired
	}
	if len(data) == 0 {
		return nil, ErrAttEmptyContent
	}
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, ErrAttachmentNotFound
	}
	if err := s.checkCardOwner(ctx, card, requestingUserID); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("cards/%s/%s-%s", cardID, uuid.NewString(), fileName)
	url, err := s.blobs.Upload(ctx, path, data, mimeType)
	if err != nil {
		configslog.Log.Error("Ek içeriği yüklenemedi",
			zap.String("card_id", cardID.String()),
			zap.String("file_name", fileName),
			zap.Error(err))
		return nil, ErrAttachmentUploadFailed
	}

	ctx = models.ContextWithUserID(ctx, requestingUserID)
	attachment := &models.CardAttachment{
		CardID:   cardID,
		FileName: fileName,
		URL:      url,
		MimeType: mimeType,
		ByteSize: int64(len(data)),
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Blob yüklendi ama satır yazılamadı: blob yetim kalır, işlem başarısız
		configslog.Log.Error("Ek satırı yazılamadı, blob yetim kaldı",
			zap.String("card_id", cardID.String()),
			zap.String("blob_path", path),
			zap.Error(err))
		return nil, ErrAttachmentUploadFailed
	}
	return attachment, nil
}

// GetAttachmentsForCard kartın eklerini listeler.
func (s *AttachmentService) GetAttachmentsForCard(ctx context.Context, cardID, requestingUserID uuid.UUID) ([]models.CardAttachment, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, ErrAttachmentNotFound
	}
	if err := s.checkCardOwner(ctx, card, requestingUserID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.FindAllByCard(ctx, cardID)
}

// DeleteAttachment önce blobu (best-effort) sonra satırı siler.
// Sonucu satır silme belirler: blob silinemese bile satır silindiyse işlem
// başarılıdır; iki hata birden oluşursa log satırında birleştirilir.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, attachmentID, deletingUserID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return ErrAttachmentNotFound
	}
	card, err := s.cardRepo.FindByID(ctx, attachment.CardID)
	if err != nil {
		return ErrAttachmentNotFound
	}
	if err := s.checkCardOwner(ctx, card, deletingUserID); err != nil {
		return err
	}

	blobErr := s.blobs.Delete(ctx, s.blobPath(attachment.URL))

	ctx = models.ContextWithUserID(ctx, deletingUserID)
	rowErr := s.attachmentRepo.Delete(ctx, attachmentID)
	if combined := multierr.Append(blobErr, rowErr); combined != nil {
		configslog.Log.Warn("Ek silme kısmen başarısız",
			zap.String("attachment_id", attachmentID.String()),
			zap.Error(combined))
	}
	if rowErr != nil {
		return ErrAttachmentDeletionFailed
	}
	return nil
}

// blobPath public URL'den depo yolunu çıkarır.
func (s *AttachmentService) blobPath(url string) string {
	return strings.TrimPrefix(url, configs.GetBlobBaseURL()+"/")
}

// checkCardOwner kartın bağlı olduğu panonun sahipliğini doğrular.
func (s *AttachmentService) checkCardOwner(ctx context.Context, card *models.BoardCard, userID uuid.UUID) error {
	board, err := s.boardRepo.FindByID(ctx, card.BoardID)
	if err != nil {
		return ErrAttachmentNotFound
	}
	if board.OwnerUserID != userID {
		return ErrAttachmentForbidden
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IAttachmentService = (*AttachmentService)(nil)
