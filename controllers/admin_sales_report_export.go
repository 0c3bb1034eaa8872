package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
	"github.com/tealeg/xlsx"
)

// salesReportOrders loads the paid orders for a report period. Dates come in
// as YYYY-MM-DD; a missing range defaults to the last 30 days.
func salesReportOrders(c *gin.Context) ([]models.Order, time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, start, end, fmt.Errorf("invalid start date")
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return nil, start, end, fmt.Errorf("invalid end date")
		}
		end = parsed.AddDate(0, 0, 1) // inclusive end day
	}

	var orders []models.Order
	err := config.DB.
		Where("payment_status = ? AND created_at >= ? AND created_at < ?", models.PaymentStatusPaid, start, end).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, start, end, err
}

// AdminSalesReportExcel streams the period's paid orders as a spreadsheet.
func AdminSalesReportExcel(c *gin.Context) {
	utils.LogInfo("AdminSalesReportExcel called")

	orders, start, end, err := salesReportOrders(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to build spreadsheet: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Order ID", "Date", "Payment Method", "Coupon", "Discount", "Total"} {
		cell := header.AddCell()
		cell.Value = title
	}

	var totalRevenue, totalDiscount float64
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(o.ID))
		row.AddCell().Value = o.CreatedAt.Format("2006-01-02")
		row.AddCell().Value = o.PaymentMethod
		row.AddCell().Value = o.CouponCode
		row.AddCell().SetFloat(o.CouponDiscount)
		row.AddCell().SetFloat(o.TotalAmount)
		totalRevenue += o.TotalAmount
		totalDiscount += o.CouponDiscount
	}

	summary := sheet.AddRow()
	summary.AddCell().Value = "Total"
	summary.AddCell()
	summary.AddCell()
	summary.AddCell()
	summary.AddCell().SetFloat(totalDiscount)
	summary.AddCell().SetFloat(totalRevenue)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write spreadsheet: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	filename := fmt.Sprintf("sales-%s-%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// AdminSalesReportPDF streams the period's paid orders as a PDF table.
func AdminSalesReportPDF(c *gin.Context) {
	utils.LogInfo("AdminSalesReportPDF called")

	orders, start, end, err := salesReportOrders(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Sales Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(25, 8, "Order", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Method", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Coupon", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Discount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalRevenue, totalDiscount float64
	for _, o := range orders {
		pdf.CellFormat(25, 8, fmt.Sprintf("#%d", o.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, o.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, o.PaymentMethod, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, o.CouponCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", o.CouponDiscount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", o.TotalAmount), "1", 1, "R", false, 0, "")
		totalRevenue += o.TotalAmount
		totalDiscount += o.CouponDiscount
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(125, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", totalDiscount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", totalRevenue), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render report PDF: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	filename := fmt.Sprintf("sales-%s-%s.pdf", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/pdf", buf.Bytes())
}
