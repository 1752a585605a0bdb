package payments

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/storage"
)

// ProofService stores bank-transfer receipts. The transfer itself happens
// out of band; a seller marks the order paid manually after checking the
// receipt.
type ProofService struct {
	db    *gorm.DB
	store storage.Storage
}

func NewProofService(db *gorm.DB, store storage.Storage) *ProofService {
	return &ProofService{db: db, store: store}
}

type ProofUpload struct {
	OrderID     string
	UserID      string
	Filename    string
	ContentType string
	Size        int64
}

func (s *ProofService) Upload(ctx context.Context, in ProofUpload, r io.Reader) (PaymentProof, error) {
	var o orders.Order
	if err := s.db.WithContext(ctx).First(&o, "id = ?", in.OrderID).Error; err != nil {
		return PaymentProof{}, err
	}
	if o.UserID != in.UserID {
		return PaymentProof{}, ErrForbidden
	}
	if o.PaymentMethod != orders.MethodBankTransfer || o.PaymentStatus != orders.PaymentAwaitingTransfer {
		return PaymentProof{}, ErrProofNotAllowed
	}

	put, err := s.store.Put(ctx, r, storage.PutInput{
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Size:        in.Size,
	})
	if err != nil {
		return PaymentProof{}, err
	}

	proof := PaymentProof{
		ID:       uuid.NewString(),
		OrderID:  o.ID,
		FileKey:  put.Key,
		FileURL:  put.URL,
		Uploaded: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&proof).Error; err != nil {
		return PaymentProof{}, err
	}
	return proof, nil
}
