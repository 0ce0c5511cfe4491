// Package reports arma reportes imprimibles a partir de las vistas derivadas
// del libro.
package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	appledger "github.com/jhoicas/FlotaStock-api/internal/application/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/domain"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// StockReportGenerator puerto de generación del PDF del reporte de stock.
// La implementación vive en infrastructure (Maroto).
type StockReportGenerator interface {
	GenerateStockReport(
		ctx context.Context,
		company *entity.Company,
		stock *dto.StockListResponse,
		overdue *dto.OverdueListResponse,
	) ([]byte, error)
}

// StockReportUseCase genera el reporte de inventario de una empresa: saldos
// por ítem y préstamos vencidos, al corte del momento de la solicitud.
type StockReportUseCase struct {
	queryUC     *appledger.QueryUseCase
	companyRepo repository.CompanyRepository
	generator   StockReportGenerator
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	queryUC *appledger.QueryUseCase,
	companyRepo repository.CompanyRepository,
	generator StockReportGenerator,
) *StockReportUseCase {
	return &StockReportUseCase{queryUC: queryUC, companyRepo: companyRepo, generator: generator}
}

// GenerateStockReportPDF pliega el libro y produce los bytes del PDF.
func (uc *StockReportUseCase) GenerateStockReportPDF(ctx context.Context, companyID string) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	stock, err := uc.queryUC.GetStock(companyID, "")
	if err != nil {
		return nil, fmt.Errorf("reporte: stock: %w", err)
	}
	overdue, err := uc.queryUC.GetOverdue(companyID)
	if err != nil {
		return nil, fmt.Errorf("reporte: vencidos: %w", err)
	}

	return uc.generator.GenerateStockReport(ctx, company, stock, overdue)
}
