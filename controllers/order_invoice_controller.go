package controllers

import (
	"bytes"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// DownloadInvoice renders a PDF invoice for one of the customer's own orders.
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	order, ok := loadUserOrder(c)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "ThreadKart")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice for order #%d", order.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, order.Shipping.FullName)
	pdf.Ln(5)
	pdf.Cell(0, 5, order.Shipping.Address)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("%s, %s", order.Shipping.City, order.Shipping.Province))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var subtotal float64
	for _, item := range order.Items {
		lineTotal := item.Price * float64(item.Quantity)
		subtotal += lineTotal
		pdf.CellFormat(90, 8, item.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", lineTotal), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(140, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("NPR %.2f", subtotal), "", 1, "R", false, 0, "")
	if order.CouponDiscount > 0 {
		pdf.CellFormat(140, 6, fmt.Sprintf("Discount (%s)", order.CouponCode), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("-NPR %.2f", order.CouponDiscount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("NPR %.2f", order.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Payment method: %s", order.PaymentMethod))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Payment status: %s", order.PaymentStatus))
	if order.PaymentStatus == models.PaymentStatusPaid {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 5, "PAID")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render invoice for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", order.ID))
	c.Data(200, "application/pdf", buf.Bytes())
}
