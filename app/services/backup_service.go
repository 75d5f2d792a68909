package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/logger"
	"github.com/escobarvape/backend/pkg/storage"
)

// BackupProductStore is the catalog surface the backup service needs.
type BackupProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	ReplaceAll(ctx context.Context, products []models.Product) error
}

// BackupOrderStore is the order surface the backup service needs.
type BackupOrderStore interface {
	Find(ctx context.Context, filter bson.M) ([]models.Order, error)
	ReplaceAll(ctx context.Context, orders []models.Order) error
}

// BackupService serializes store contents to downloadable JSON documents and
// restores them. Restore fully decodes and validates the upload before
// touching the store, and serializes per store with a mutex so two concurrent
// restores cannot interleave delete and insert phases. The replace itself is
// still delete-then-insert, not a transaction; keep the pre-restore snapshot
// written to the storage disk.
type BackupService struct {
	products BackupProductStore
	orders   BackupOrderStore

	productMu sync.Mutex
	orderMu   sync.Mutex
}

func NewBackupService(products BackupProductStore, orders BackupOrderStore) *BackupService {
	return &BackupService{products: products, orders: orders}
}

// BackupProducts returns the full catalog as a JSON document and archives a
// timestamped copy on the storage disk.
func (s *BackupService) BackupProducts(ctx context.Context) ([]byte, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return nil, err
	}
	s.archive(ctx, "products", data)
	return data, nil
}

// BackupOrders returns all orders as a JSON document. Each order carries its
// branch at the top level; legacy documents without one get the first item's
// branch copied up, which is a lossy heuristic when an order's items span
// branches.
func (s *BackupService) BackupOrders(ctx context.Context) ([]byte, error) {
	orders, err := s.orders.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Branch == "" && len(orders[i].Items) > 0 {
			orders[i].Branch = orders[i].Items[0].Branch
		}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return nil, err
	}
	s.archive(ctx, "orders", data)
	return data, nil
}

func (s *BackupService) archive(ctx context.Context, kind string, data []byte) {
	path := fmt.Sprintf("backups/%s-%s.json", kind, time.Now().UTC().Format("20060102-150405"))
	if err := storage.Put(path, data); err != nil {
		logger.WithCtx(ctx).Warn("backup archive failed", "path", path, "error", err)
	}
}

// RestoreProducts replaces the catalog with the uploaded document. The
// upload must decode cleanly and contain at least one valid product, or the
// existing catalog is left untouched.
func (s *BackupService) RestoreProducts(ctx context.Context, r io.Reader) (int, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return 0, apperr.Wrap(apperr.InvalidInput, err, "backup document is not valid JSON")
	}
	if len(products) == 0 {
		return 0, apperr.New(apperr.InvalidInput, "backup document contains no products")
	}
	for i, p := range products {
		if p.Name == "" {
			return 0, apperr.New(apperr.InvalidInput, "product %d has no name", i)
		}
		if p.Price < 0 {
			return 0, apperr.New(apperr.InvalidInput, "product %d has a negative price", i)
		}
	}

	s.productMu.Lock()
	defer s.productMu.Unlock()

	if err := s.snapshot(ctx, "products"); err != nil {
		return 0, err
	}
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// RestoreOrders replaces the order set with the uploaded document, with the
// same validate-then-replace discipline as RestoreProducts.
func (s *BackupService) RestoreOrders(ctx context.Context, r io.Reader) (int, error) {
	var orders []models.Order
	if err := json.NewDecoder(r).Decode(&orders); err != nil {
		return 0, apperr.Wrap(apperr.InvalidInput, err, "backup document is not valid JSON")
	}
	if len(orders) == 0 {
		return 0, apperr.New(apperr.InvalidInput, "backup document contains no orders")
	}
	for i := range orders {
		o := &orders[i]
		if o.OrderNumber == "" {
			return 0, apperr.New(apperr.InvalidInput, "order %d has no order number", i)
		}
		if !o.Status.Valid() {
			return 0, apperr.New(apperr.InvalidInput, "order %d has invalid status %q", i, o.Status)
		}
		if o.Branch == "" && len(o.Items) > 0 {
			o.Branch = o.Items[0].Branch
		}
	}

	s.orderMu.Lock()
	defer s.orderMu.Unlock()

	if err := s.snapshot(ctx, "orders"); err != nil {
		return 0, err
	}
	if err := s.orders.ReplaceAll(ctx, orders); err != nil {
		return 0, err
	}
	return len(orders), nil
}

// snapshot writes the current store contents to the storage disk before a
// restore overwrites them, so a bad restore can be undone by hand.
func (s *BackupService) snapshot(ctx context.Context, kind string) error {
	var (
		data []byte
		err  error
	)
	switch kind {
	case "products":
		var products []models.Product
		products, err = s.products.All(ctx)
		if err == nil {
			data, err = json.Marshal(products)
		}
	case "orders":
		var orders []models.Order
		orders, err = s.orders.Find(ctx, bson.M{})
		if err == nil {
			data, err = json.Marshal(orders)
		}
	}
	if err != nil {
		return err
	}

	path := fmt.Sprintf("backups/pre-restore-%s-%s.json", kind, time.Now().UTC().Format("20060102-150405"))
	if err := storage.Put(path, data); err != nil {
		return apperr.Wrap(apperr.Unavailable, err, "could not write pre-restore snapshot")
	}
	return nil
}
