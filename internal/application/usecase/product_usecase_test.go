package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/application/usecase"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/infrastructure/memory"
)

func newProductUC(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	store := memory.NewStore(time.Second)
	return usecase.NewProductUseCase(memory.NewProductRepository(store))
}

func TestProductUseCase_Create(t *testing.T) {
	uc := newProductUC(t)

	out, err := uc.Create(dto.CreateProductRequest{Name: "  Guante nitrilo ", Unit: "par"})
	require.NoError(t, err)
	assert.Equal(t, "Guante nitrilo", out.Name, "el nombre se normaliza")
	assert.Equal(t, int64(0), out.Quantity, "la proyección arranca en cero")
	assert.NotEmpty(t, out.ID)
}

func TestProductUseCase_Create_NombreOUnidadEnBlanco(t *testing.T) {
	uc := newProductUC(t)

	_, err := uc.Create(dto.CreateProductRequest{Name: "   ", Unit: "par"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Guante", Unit: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_Update_NoTocaQuantity(t *testing.T) {
	uc := newProductUC(t)

	created, err := uc.Create(dto.CreateProductRequest{Name: "Casco", Unit: "unidad"})
	require.NoError(t, err)

	newName := "Casco dieléctrico"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Casco dieléctrico", out.Name)
	assert.Equal(t, int64(0), out.Quantity)

	blank := "  "
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_Update_Inexistente(t *testing.T) {
	uc := newProductUC(t)
	name := "X"
	out, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductUseCase_List_Paginado(t *testing.T) {
	uc := newProductUC(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := uc.Create(dto.CreateProductRequest{Name: name, Unit: "unidad"})
		require.NoError(t, err)
	}

	out, err := uc.List(dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "A", out.Products[0].Name)
	assert.Equal(t, "B", out.Products[1].Name)

	out, err = uc.List(dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "C", out.Products[0].Name)
}

func TestProductUseCase_Delete_Inexistente(t *testing.T) {
	uc := newProductUC(t)
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}

func TestLocationUseCase_Create(t *testing.T) {
	store := memory.NewStore(time.Second)
	uc := usecase.NewLocationUseCase(memory.NewLocationRepository(store))

	out, err := uc.Create(dto.CreateLocationRequest{Name: " Dock 4 "})
	require.NoError(t, err)
	assert.Equal(t, "Dock 4", out.Name)

	// Nombre duplicado.
	_, err = uc.Create(dto.CreateLocationRequest{Name: "Dock 4"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Nombre en blanco.
	_, err = uc.Create(dto.CreateLocationRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
