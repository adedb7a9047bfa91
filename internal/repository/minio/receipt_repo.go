package minio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/niholbooks/shop-bot/internal/cfg"
	"github.com/niholbooks/shop-bot/pkg/e"
)

// ReceiptRepo хранит чеки об оплате в MinIO.
type ReceiptRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewReceiptRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ReceiptRepo {
	return &ReceiptRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// ArchiveReceipt загружает чек и возвращает ключ объекта.
// Ключ включает заказ и покупателя, чтобы чек находился по любому из них.
func (r *ReceiptRepo) ArchiveReceipt(ctx context.Context, orderID string, buyerID int64, data []byte, mimeType string) (string, error) {
	objectKey := fmt.Sprintf("%s/%d_%d%s", orderID, buyerID, time.Now().Unix(), extensionFor(mimeType))

	info, err := r.mc.PutObject(ctx, r.cfg.BucketName, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет чек по ключу объекта.
func (r *ReceiptRepo) Delete(ctx context.Context, key string) error {
	if err := r.mc.RemoveObject(ctx, r.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
