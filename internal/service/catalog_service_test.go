package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	catalog := newFakeCatalogStore()
	audit := &fakeAuditLog{}
	svc := NewCatalogService(catalog, audit)

	p := &models.Product{
		Name:            "  Camisa Lino  ",
		Category:        "camisas",
		Price:           55000,
		Quantity:        10,
		Reference:       " REF-001 ",
		MonthlySales:    99, // must be reset
		MonthlyRotation: 9.9,
	}
	require.NoError(t, svc.CreateProduct(p))

	assert.Equal(t, "Camisa Lino", p.Name)
	assert.Equal(t, "REF-001", p.Reference)
	assert.Equal(t, 0, p.MonthlySales)
	assert.Equal(t, 0.0, p.MonthlyRotation)
	assert.NotZero(t, p.ID)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "product", audit.entries[0].Type)
}

func TestCatalogService_CreateProduct_DuplicateName(t *testing.T) {
	catalog := newFakeCatalogStore(&models.Product{ID: 1, Name: "Camisa Lino"})
	svc := NewCatalogService(catalog, &fakeAuditLog{})

	err := svc.CreateProduct(&models.Product{Name: "Camisa Lino", Category: "camisas", Price: 55000})
	assert.ErrorIs(t, err, utils.ErrDuplicateName)
}

func TestCatalogService_CreateProduct_DuplicateReference(t *testing.T) {
	catalog := newFakeCatalogStore(&models.Product{ID: 1, Name: "Camisa Lino", Reference: "REF-001"})
	svc := NewCatalogService(catalog, &fakeAuditLog{})

	err := svc.CreateProduct(&models.Product{Name: "Otra Camisa", Reference: "REF-001", Price: 55000})
	assert.ErrorIs(t, err, utils.ErrDuplicateReference)
}

func TestCatalogService_CreateProduct_EmptyReferenceNeverCollides(t *testing.T) {
	catalog := newFakeCatalogStore(&models.Product{ID: 1, Name: "Camisa Lino", Reference: ""})
	svc := NewCatalogService(catalog, &fakeAuditLog{})

	err := svc.CreateProduct(&models.Product{Name: "Otra Camisa", Reference: "", Price: 55000})
	assert.NoError(t, err)
}

func TestCatalogService_UpdateProduct_ExcludesOwnRow(t *testing.T) {
	catalog := newFakeCatalogStore(&models.Product{ID: 1, Name: "Camisa Lino", Reference: "REF-001"})
	svc := NewCatalogService(catalog, &fakeAuditLog{})

	// same name and reference on its own row is fine
	err := svc.UpdateProduct(&models.Product{ID: 1, Name: "Camisa Lino", Reference: "REF-001", Price: 60000})
	require.NoError(t, err)

	updated, err := svc.GetProduct(1)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), updated.Price)
}

func TestCatalogService_UpdateProduct_CollidesWithOtherRow(t *testing.T) {
	catalog := newFakeCatalogStore(
		&models.Product{ID: 1, Name: "Camisa Lino"},
		&models.Product{ID: 2, Name: "Camisa Seda"},
	)
	svc := NewCatalogService(catalog, &fakeAuditLog{})

	err := svc.UpdateProduct(&models.Product{ID: 2, Name: "Camisa Lino", Price: 55000})
	assert.ErrorIs(t, err, utils.ErrDuplicateName)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogStore(), &fakeAuditLog{})

	_, err := svc.GetProduct(42)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	catalog := newFakeCatalogStore(&models.Product{ID: 1, Name: "Camisa Lino"})
	audit := &fakeAuditLog{}
	svc := NewCatalogService(catalog, audit)

	require.NoError(t, svc.DeleteProduct(1))
	_, err := svc.GetProduct(1)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
	assert.Len(t, audit.entries, 1)
}
