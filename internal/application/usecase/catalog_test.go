package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// fakeRepo implementa los puertos del catálogo en memoria.
type fakeRepo struct {
	productos  []entity.Producto
	areas      []entity.Area
	recetas    []entity.Receta
	ventas     []entity.Venta
	modelos    entity.ModelosIPV
	registros  []entity.RegistroIPV
	historial  []entity.HistorialCambio
	sortBy     string
	filterBy   string
	creado     any
	borradas   []string
	guardado   *entity.ModeloArea
	importado  *entity.ArchivoSubido
	historTipo string
}

func (f *fakeRepo) ListProductos(_ context.Context, sortBy string) ([]entity.Producto, error) {
	f.sortBy = sortBy
	return append([]entity.Producto(nil), f.productos...), nil
}
func (f *fakeRepo) GetProducto(context.Context, string) (*entity.Producto, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeRepo) CreateProducto(_ context.Context, p entity.Producto) (*entity.Producto, error) {
	f.creado = p
	p.ID = "nuevo"
	return &p, nil
}
func (f *fakeRepo) UpdateProducto(_ context.Context, _ string, p entity.Producto) (*entity.Producto, error) {
	return &p, nil
}
func (f *fakeRepo) DeleteProducto(context.Context, string) error { return nil }
func (f *fakeRepo) ExportProductos(context.Context) (*entity.Archivo, error) {
	return &entity.Archivo{Nombre: "productos.xlsx"}, nil
}
func (f *fakeRepo) ImportProductos(_ context.Context, a entity.ArchivoSubido) (*entity.Mensaje, error) {
	f.importado = &a
	return &entity.Mensaje{Message: "ok"}, nil
}

func (f *fakeRepo) ListAreas(context.Context) ([]entity.Area, error) {
	return append([]entity.Area(nil), f.areas...), nil
}

func (f *fakeRepo) GetArea(context.Context, string) (*entity.Area, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeRepo) CreateArea(_ context.Context, a entity.Area) (*entity.Area, error) { return &a, nil }
func (f *fakeRepo) UpdateArea(_ context.Context, _ string, a entity.Area) (*entity.Area, error) {
	return &a, nil
}
func (f *fakeRepo) DeleteArea(context.Context, string) error { return nil }

func (f *fakeRepo) ListRecetas(_ context.Context, sortBy, filterBy string) ([]entity.Receta, error) {
	f.sortBy, f.filterBy = sortBy, filterBy
	return append([]entity.Receta(nil), f.recetas...), nil
}
func (f *fakeRepo) CreateReceta(_ context.Context, r entity.Receta) (*entity.Receta, error) {
	f.creado = r
	return &r, nil
}
func (f *fakeRepo) GetReceta(context.Context, string) (*entity.Receta, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeRepo) UpdateReceta(_ context.Context, _ string, r entity.Receta) (*entity.Receta, error) {
	return &r, nil
}
func (f *fakeRepo) DeleteReceta(context.Context, string) error { return nil }
func (f *fakeRepo) ExportRecetas(context.Context) (*entity.Archivo, error) {
	return &entity.Archivo{Nombre: "recetas.xlsx"}, nil
}
func (f *fakeRepo) ImportRecetas(_ context.Context, a entity.ArchivoSubido) (*entity.Mensaje, error) {
	f.importado = &a
	return &entity.Mensaje{Message: "ok"}, nil
}

func (f *fakeRepo) ListVentas(context.Context) ([]entity.Venta, error) { return f.ventas, nil }
func (f *fakeRepo) UpdateVenta(_ context.Context, _ string, v entity.Venta) (*entity.Venta, error) {
	return &v, nil
}
func (f *fakeRepo) DeleteVenta(context.Context, string) error { return nil }
func (f *fakeRepo) DeleteVentas(_ context.Context, ids []string) error {
	f.borradas = ids
	return nil
}
func (f *fakeRepo) ImportVentas(_ context.Context, a entity.ArchivoSubido) (*entity.ImportacionVentas, error) {
	f.importado = &a
	return &entity.ImportacionVentas{Message: "Se importaron 0 ventas correctamente"}, nil
}

func (f *fakeRepo) ObtenerModelos(context.Context) (entity.ModelosIPV, error) { return f.modelos, nil }
func (f *fakeRepo) GuardarModelo(_ context.Context, m entity.ModeloArea) (*entity.ModeloArea, error) {
	f.guardado = &m
	return &m, nil
}
func (f *fakeRepo) ListRegistros(context.Context) ([]entity.RegistroIPV, error) {
	return f.registros, nil
}

func (f *fakeRepo) ListHistorial(_ context.Context, tipo string) ([]entity.HistorialCambio, error) {
	f.historTipo = tipo
	return f.historial, nil
}

func nombres(ps []entity.Producto) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Nombre
	}
	return out
}

func TestProductoUseCase_ListOrdenEspanol(t *testing.T) {
	repo := &fakeRepo{productos: []entity.Producto{
		{ID: "1", Nombre: "Olivo"}, {ID: "2", Nombre: "ñame"}, {ID: "3", Nombre: "Nabo"},
		{ID: "4", Nombre: "Banana"}, {ID: "5", Nombre: "Ábaco"},
	}}
	uc := usecase.NewProductoUseCase(repo)

	got, err := uc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ábaco", "Banana", "Nabo", "ñame", "Olivo"}, nombres(got))
}

func TestProductoUseCase_ListBuscaSinTildes(t *testing.T) {
	repo := &fakeRepo{productos: []entity.Producto{
		{ID: "1", Nombre: "Limón"}, {ID: "2", Nombre: "LIMONADA"}, {ID: "3", Nombre: "Tomate"},
	}}
	uc := usecase.NewProductoUseCase(repo)

	got, err := uc.List(context.Background(), "unidad_medida", "limon")
	require.NoError(t, err)
	assert.Equal(t, []string{"Limón", "LIMONADA"}, nombres(got), "otro orden se respeta tal cual")
	assert.Equal(t, "unidad_medida", repo.sortBy)

	got, err = uc.List(context.Background(), "", "xyz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProductoUseCase_CreateValida(t *testing.T) {
	repo := &fakeRepo{}
	uc := usecase.NewProductoUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, entity.Producto{Nombre: "  ", UnidadMedida: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, entity.Producto{Nombre: "Tomate"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(ctx, entity.Producto{ID: "ignorado", Nombre: " Tomate ", UnidadMedida: "kg "})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", out.ID)
	assert.Equal(t, entity.Producto{Nombre: "Tomate", UnidadMedida: "kg"}, repo.creado)
}

func TestProductoUseCase_ImportSoloPlanillas(t *testing.T) {
	repo := &fakeRepo{}
	uc := usecase.NewProductoUseCase(repo)
	ctx := context.Background()

	_, err := uc.Import(ctx, entity.ArchivoSubido{Nombre: "productos.csv", Contenido: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Import(ctx, entity.ArchivoSubido{Nombre: "", Contenido: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	msg, err := uc.Import(ctx, entity.ArchivoSubido{Nombre: "Productos.XLSX", Contenido: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Message)
}

func TestAreaUseCase_ListOrdenada(t *testing.T) {
	repo := &fakeRepo{areas: []entity.Area{{Nombre: "Cocina"}, {Nombre: "almacén"}, {Nombre: "Bar"}}}
	got, err := usecase.NewAreaUseCase(repo).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Area{{Nombre: "almacén"}, {Nombre: "Bar"}, {Nombre: "Cocina"}}, got)
}

func TestRecetaUseCase_ValidaIngredientes(t *testing.T) {
	repo := &fakeRepo{}
	uc := usecase.NewRecetaUseCase(repo)
	ctx := context.Background()
	uno := decimal.NewFromInt(1)

	cases := map[string]entity.Receta{
		"sin nombre":    {Nombre: " "},
		"sin producto":  {Nombre: "Pizza", Ingredientes: []entity.Ingrediente{{AreaID: "A1", Cantidad: uno}}},
		"sin área":      {Nombre: "Pizza", Ingredientes: []entity.Ingrediente{{ProductoID: "P1", Cantidad: uno}}},
		"cantidad cero": {Nombre: "Pizza", Ingredientes: []entity.Ingrediente{{ProductoID: "P1", AreaID: "A1"}}},
		"cantidad neg":  {Nombre: "Pizza", Ingredientes: []entity.Ingrediente{{ProductoID: "P1", AreaID: "A1", Cantidad: uno.Neg()}}},
		"repetido":      {Nombre: "Pizza", Ingredientes: []entity.Ingrediente{{ProductoID: "P1", AreaID: "A1", Cantidad: uno}, {ProductoID: "P1", AreaID: "A1", Cantidad: uno}}},
	}
	for name, r := range cases {
		_, err := uc.Create(ctx, r)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	out, err := uc.Create(ctx, entity.Receta{Nombre: "Pizza", Activa: true, Ingredientes: []entity.Ingrediente{
		{ProductoID: "P1", AreaID: "A1", Cantidad: decimal.RequireFromString("0.2")},
		{ProductoID: "P1", AreaID: "A2", Cantidad: uno},
	}})
	require.NoError(t, err)
	assert.Len(t, out.Ingredientes, 2)

	out, err = uc.Create(ctx, entity.Receta{Nombre: "Agua"})
	require.NoError(t, err)
	assert.NotNil(t, out.Ingredientes, "sin ingredientes viaja como lista vacía")
}

func TestRecetaUseCase_ListFiltro(t *testing.T) {
	repo := &fakeRepo{recetas: []entity.Receta{{Nombre: "Pizza"}, {Nombre: "Ensalada"}}}
	uc := usecase.NewRecetaUseCase(repo)

	got, err := uc.List(context.Background(), "", usecase.FiltroSinIngredientes, "")
	require.NoError(t, err)
	assert.Equal(t, "sin_ingredientes", repo.filterBy)
	assert.Equal(t, "Ensalada", got[0].Nombre)

	_, err = uc.List(context.Background(), "", "borradas", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVentaUseCase_ListFiltraPorFechaYNombre(t *testing.T) {
	repo := &fakeRepo{ventas: []entity.Venta{
		{ID: "1", RecetaNombre: "Pizza Margarita", Cantidad: 2, Fecha: "2024-03-01"},
		{ID: "2", RecetaNombre: "Café", Cantidad: 5, Fecha: "2024-03-01"},
		{ID: "3", RecetaNombre: "Pizza Napolitana", Cantidad: 1, Fecha: "2024-03-02"},
	}}
	uc := usecase.NewVentaUseCase(repo)
	ctx := context.Background()

	got, err := uc.List(ctx, "2024-03-01", "pizza")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = uc.List(ctx, "", "cafe")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	_, err = uc.List(ctx, "marzo", "")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestVentaUseCase_DeleteMany(t *testing.T) {
	repo := &fakeRepo{}
	uc := usecase.NewVentaUseCase(repo)

	_, err := uc.DeleteMany(context.Background(), []string{"", " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ids, err := uc.DeleteMany(context.Background(), []string{"V1", "V2", "V1", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"V1", "V2"}, ids)
	assert.Equal(t, []string{"V1", "V2"}, repo.borradas)
}

func TestVentaUseCase_ImportAgregaFecha(t *testing.T) {
	repo := &fakeRepo{}
	uc := usecase.NewVentaUseCase(repo)

	_, err := uc.Import(context.Background(), entity.ArchivoSubido{Nombre: "ventas.xls", Contenido: strings.NewReader("x")}, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", repo.importado.Campos["fecha"])

	_, err = uc.Import(context.Background(), entity.ArchivoSubido{Nombre: "ventas.xls"}, "01-03-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestModeloIPVUseCase_GuardarRenumera(t *testing.T) {
	repo := &fakeRepo{}
	uc := usecase.NewModeloIPVUseCase(repo)

	out, err := uc.Guardar(context.Background(), "A1", []string{"P3", "P1", "P3", "", "P2"})
	require.NoError(t, err)
	assert.Equal(t, []entity.ModeloProducto{{ID: "P3", Orden: 0}, {ID: "P1", Orden: 1}, {ID: "P2", Orden: 2}}, out.Productos)
	assert.Equal(t, "A1", repo.guardado.AreaID)

	_, err = uc.Guardar(context.Background(), " ", []string{"P1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestModeloIPVUseCase_ObtenerYRegistros(t *testing.T) {
	repo := &fakeRepo{
		modelos: entity.ModelosIPV{"A1": {{ProductoID: "P2", Orden: 1}, {ProductoID: "P1", Orden: 0}}},
		registros: []entity.RegistroIPV{
			{Fecha: "2024-02-28"}, {Fecha: "2024-03-10"}, {Fecha: "2023-12-31"},
		},
	}
	uc := usecase.NewModeloIPVUseCase(repo)
	ctx := context.Background()

	m, err := uc.Obtener(ctx)
	require.NoError(t, err)
	assert.Equal(t, "P1", m["A1"][0].ProductoID)

	regs, err := uc.Registros(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.RegistroIPV{{Fecha: "2024-03-10"}, {Fecha: "2024-02-28"}, {Fecha: "2023-12-31"}}, regs)
}

func TestHistorialUseCase_List(t *testing.T) {
	a, b := "2024-03-01T10:00:00", "2024-03-02T09:00:00"
	repo := &fakeRepo{historial: []entity.HistorialCambio{
		{ID: "h1", FechaCambio: &a}, {ID: "h2", FechaCambio: &b}, {ID: "h3"},
	}}
	uc := usecase.NewHistorialUseCase(repo)

	got, err := uc.List(context.Background(), usecase.EntidadProducto)
	require.NoError(t, err)
	assert.Equal(t, "Producto", repo.historTipo)
	assert.Equal(t, []string{"h2", "h1", "h3"}, []string{got[0].ID, got[1].ID, got[2].ID})

	_, err = uc.List(context.Background(), "Usuario")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
