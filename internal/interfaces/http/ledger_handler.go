package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	appledger "github.com/jhoicas/FlotaStock-api/internal/application/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/domain"
)

// LedgerHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type LedgerHandler struct {
	register *appledger.RegisterMovementUseCase
	query    *appledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(register *appledger.RegisterMovementUseCase, query *appledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento en el libro
// @Description  Agrega un evento append-only (in|out|reserve|reserve_release|return|consume|ordered).
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "code, type, qty; job_id, ts, return_date, eta, source_id opcionales"
// @Success      201   {object}  dto.MovementEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [post]
func (h *LedgerHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	event, err := h.register.RegisterMovementFromRequest(c.Context(), companyID, GetEmail(c), in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appledger.EventToResponse(event))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Historial paginado con filtros por código, obra, tipo y rango de fechas.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        code    query  string  false  "Filtrar por código de ítem"
// @Param        job_id  query  string  false  "Filtrar por obra"
// @Param        type    query  string  false  "Filtrar por tipo de movimiento"
// @Param        from    query  string  false  "Fecha inicial (flexible: epoch ms, ISO, YYYY-MM-DD)"
// @Param        to      query  string  false  "Fecha final"
// @Param        limit   query  int     false  "Tamaño de página (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.query.ListMovements(companyID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

// BulkClear godoc
// @Summary      Barrido administrativo por tipo
// @Description  Elimina todos los eventos de un tipo para la empresa. Solo admin.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkClearRequest  true  "type a eliminar"
// @Success      200   {object}  dto.BulkClearResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/ledger/clear [post]
func (h *LedgerHandler) BulkClear(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BulkClearRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deleted, err := h.register.BulkClear(c.Context(), companyID, in.Type)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.BulkClearResponse{Type: in.Type, Deleted: deleted})
}

// GetStock godoc
// @Summary      Saldos por ítem
// @Description  Disponible, prestado, reservado y en bodega por código, con desglose por obra.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        code  query  string  false  "Solo el saldo de este código"
// @Success      200  {object}  dto.StockListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/ledger/stock [get]
func (h *LedgerHandler) GetStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.query.GetStock(companyID, c.Query("code"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

// GetOverdue godoc
// @Summary      Préstamos vencidos
// @Description  Salidas con fecha de devolución pactada ya vencida y saldo pendiente.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverdueListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/ledger/overdue [get]
func (h *LedgerHandler) GetOverdue(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.query.GetOverdue(companyID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

// GetIncoming godoc
// @Summary      Pedidos en tránsito
// @Description  Órdenes abiertas con cantidad recibida y saldo por llegar (matching FIFO).
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IncomingListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/ledger/incoming [get]
func (h *LedgerHandler) GetIncoming(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.query.GetIncoming(companyID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

// ledgerError traduce los errores de dominio del libro a códigos HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para el movimiento"})
	case domain.ErrReturnExceedsOutstanding:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RETURN_EXCEEDS_OUTSTANDING", Message: "la devolución excede el saldo prestado"})
	case domain.ErrReserveExceedsReserved:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RELEASE_EXCEEDS_RESERVED", Message: "la liberación excede lo reservado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
