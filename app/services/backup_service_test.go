package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/storage"
)

// memDisk keeps backup archives in memory for tests.
type memDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, data)
}

func (d *memDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.files[path], nil
}

func (d *memDisk) GetStream(path string) (io.ReadCloser, error) {
	data, _ := d.Get(path)
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *memDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) Size(path string) (int64, error) {
	data, _ := d.Get(path)
	return int64(len(data)), nil
}

func (d *memDisk) URL(path string) string { return "/storage/" + path }
func (d *memDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

type fakeBackupProducts struct {
	products []models.Product
}

func (f *fakeBackupProducts) All(context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeBackupProducts) ReplaceAll(_ context.Context, products []models.Product) error {
	f.products = products
	return nil
}

type fakeBackupOrders struct {
	orders []models.Order
}

func (f *fakeBackupOrders) Find(context.Context, bson.M) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeBackupOrders) ReplaceAll(_ context.Context, orders []models.Order) error {
	f.orders = orders
	return nil
}

func newBackupFixture(t *testing.T) (*BackupService, *fakeBackupProducts, *fakeBackupOrders, *memDisk) {
	t.Helper()
	disk := newMemDisk()
	storage.RegisterDisk("local", disk)

	products := &fakeBackupProducts{products: []models.Product{
		{ID: primitive.NewObjectID(), Name: "Mango Ice", Category: "disposable", Image: "/storage/uploads/mango.jpg", Price: 12.5},
	}}
	orders := &fakeBackupOrders{orders: []models.Order{
		{
			ID: primitive.NewObjectID(), OrderNumber: "ORD-20260831-0001",
			Status: models.StatusReceived,
			Items:  []models.OrderItem{{Product: primitive.NewObjectID(), Variant: "Mango", Quantity: 1, Price: 12.5, Branch: "main"}},
		},
	}}
	return NewBackupService(products, orders), products, orders, disk
}

func TestBackupRestoreProductsRoundTrip(t *testing.T) {
	svc, products, _, _ := newBackupFixture(t)

	data, err := svc.BackupProducts(context.Background())
	require.NoError(t, err)

	products.products = nil
	n, err := svc.RestoreProducts(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, products.products, 1)
	assert.Equal(t, "Mango Ice", products.products[0].Name)
}

func TestBackupOrdersDenormalizesBranch(t *testing.T) {
	svc, _, _, _ := newBackupFixture(t)

	data, err := svc.BackupOrders(context.Background())
	require.NoError(t, err)

	var dumped []models.Order
	require.NoError(t, json.Unmarshal(data, &dumped))
	require.Len(t, dumped, 1)
	// Legacy order without a top-level branch gets the first item's branch.
	assert.Equal(t, "main", dumped[0].Branch)
}

func TestRestoreOrdersCorruptUploadLeavesDataIntact(t *testing.T) {
	svc, _, orders, _ := newBackupFixture(t)
	before := len(orders.orders)

	_, err := svc.RestoreOrders(context.Background(), strings.NewReader("{not json"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
	assert.Len(t, orders.orders, before, "a corrupt upload must not delete anything")
}

func TestRestoreOrdersEmptyUploadRejected(t *testing.T) {
	svc, _, orders, _ := newBackupFixture(t)
	before := len(orders.orders)

	_, err := svc.RestoreOrders(context.Background(), strings.NewReader("[]"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
	assert.Len(t, orders.orders, before)
}

func TestRestoreOrdersInvalidStatusRejected(t *testing.T) {
	svc, _, orders, _ := newBackupFixture(t)
	before := len(orders.orders)

	upload := `[{"orderNumber":"ORD-1","status":"Bogus","items":[]}]`
	_, err := svc.RestoreOrders(context.Background(), strings.NewReader(upload))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
	assert.Len(t, orders.orders, before)
}

func TestRestoreWritesPreRestoreSnapshot(t *testing.T) {
	svc, _, orders, disk := newBackupFixture(t)

	upload := `[{"orderNumber":"ORD-2","status":"Preparing","branch":"second","items":[]}]`
	n, err := svc.RestoreOrders(context.Background(), strings.NewReader(upload))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ORD-2", orders.orders[0].OrderNumber)

	var snapshots int
	for path := range disk.files {
		if strings.HasPrefix(path, "backups/pre-restore-orders-") {
			snapshots++
		}
	}
	assert.Equal(t, 1, snapshots, "restore must archive the prior order set first")
}
