package service

import (
	"bytes"
	"fmt"

	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ReportService renders admin reports as spreadsheet downloads.
type ReportService interface {
	OrdersXLSX(filter repository.AdminOrderFilter) ([]byte, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{orderRepo: orderRepo}
}

// OrdersXLSX exports the filtered admin order listing as an xlsx workbook,
// one row per order plus an item breakdown column. Pagination is bypassed so
// the export covers every matching row.
func (s *reportService) OrdersXLSX(filter repository.AdminOrderFilter) ([]byte, error) {
	filter.Page = 1
	filter.PerPage = 200

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Customer", "Email", "Status", "Payment", "Total", "Items", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for {
		orders, total, err := s.orderRepo.SearchAdmin(filter)
		if err != nil {
			logger.Error("Failed to load orders for export", err, nil)
			return nil, err
		}

		for _, order := range orders {
			items := ""
			for i, item := range order.Items {
				if i > 0 {
					items += "; "
				}
				items += fmt.Sprintf("%s x%d @ %.2f", item.ProductName, item.Quantity, item.UnitPrice)
			}
			values := []interface{}{
				order.ID,
				order.User.Username,
				order.User.Email,
				string(order.Status),
				order.PaymentMethod,
				order.Total,
				items,
				order.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if int64(filter.Page*filter.PerPage) >= total || len(orders) == 0 {
			break
		}
		filter.Page++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to render orders spreadsheet", err, nil)
		return nil, err
	}

	logger.Info("Orders spreadsheet generated", map[string]interface{}{
		"rows": row - 2,
	})
	return buf.Bytes(), nil
}
