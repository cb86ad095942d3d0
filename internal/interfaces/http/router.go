package http

import (
	"github.com/gofiber/fiber/v2"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions    *appipv.Registry
	ReportUC    *appipv.ReportUseCase
	ProductoUC  *usecase.ProductoUseCase
	AreaUC      *usecase.AreaUseCase
	RecetaUC    *usecase.RecetaUseCase
	VentaUC     *usecase.VentaUseCase
	ModeloIPVUC *usecase.ModeloIPVUseCase
	HistorialUC *usecase.HistorialUseCase
	Backend     BackendPinger
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.ServiceName, deps.Backend)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	// IPV: sesiones de conteo diario
	ipvGroup := api.Group("/ipv")
	ipvHandler := NewIPVHandler(deps.Sessions, deps.ReportUC)
	ipvGroup.Post("/evaluar", ipvHandler.Evaluar)
	ipvGroup.Post("/sesiones", ipvHandler.Create)

	sesion := ipvGroup.Group("/sesiones/:id", RequireSession(deps.Sessions))
	sesion.Get("/", ipvHandler.Get)
	sesion.Delete("/", ipvHandler.Delete)
	sesion.Post("/cargar", ipvHandler.Cargar)
	sesion.Put("/valor", ipvHandler.SetValor)
	sesion.Put("/comentario", ipvHandler.SetComentario)
	sesion.Post("/consumo", ipvHandler.Consumo)
	sesion.Post("/diferencias", ipvHandler.Diferencias)
	sesion.Post("/limpiar", ipvHandler.Limpiar)
	sesion.Post("/guardar", ipvHandler.Guardar)
	sesion.Get("/reporte", ipvHandler.Reporte)
	sesion.Get("/reporte.pdf", ipvHandler.ReportePDF)

	// IPV: modelos por área y registros guardados
	modeloHandler := NewModeloIPVHandler(deps.ModeloIPVUC)
	ipvGroup.Get("/modelos", modeloHandler.Obtener)
	ipvGroup.Post("/modelos", modeloHandler.Guardar)
	ipvGroup.Get("/registros", modeloHandler.Registros)

	// Productos
	productos := api.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", productoHandler.List)
	productos.Post("/", productoHandler.Create)
	productos.Get("/export", productoHandler.Export)
	productos.Post("/import", productoHandler.Import)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)

	// Áreas
	areas := api.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Get("/", areaHandler.List)
	areas.Post("/", areaHandler.Create)
	areas.Get("/:id", areaHandler.GetByID)
	areas.Put("/:id", areaHandler.Update)
	areas.Delete("/:id", areaHandler.Delete)

	// Recetas
	recetas := api.Group("/recetas")
	recetaHandler := NewRecetaHandler(deps.RecetaUC)
	recetas.Get("/", recetaHandler.List)
	recetas.Post("/", recetaHandler.Create)
	recetas.Get("/export", recetaHandler.Export)
	recetas.Post("/import", recetaHandler.Import)
	recetas.Get("/:id", recetaHandler.GetByID)
	recetas.Put("/:id", recetaHandler.Update)
	recetas.Delete("/:id", recetaHandler.Delete)

	// Ventas
	ventas := api.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventas.Get("/", ventaHandler.List)
	ventas.Post("/delete-multiple", ventaHandler.DeleteMultiple)
	ventas.Post("/importar", ventaHandler.Importar)
	ventas.Put("/:id", ventaHandler.Update)
	ventas.Delete("/:id", ventaHandler.Delete)

	// Historial
	historialHandler := NewHistorialHandler(deps.HistorialUC)
	api.Get("/historial/:entidad_tipo", historialHandler.List)
}
