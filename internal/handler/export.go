package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/middleware"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/service"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams the caller's inventory as CSV or XLSX.
type ExportHandler struct {
	Service *service.ProductService
}

func NewExportHandler(svc *service.ProductService) *ExportHandler {
	return &ExportHandler{Service: svc}
}

var exportHeader = []string{"Nama", "Kategori", "Harga", "Stok", "Deskripsi", "Gambar"}

// ExportCSV writes the product list as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	products, err := h.Service.List(user.ID)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"products_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for _, p := range products {
		writer.Write([]string{
			p.Name,
			p.Category,
			strconv.FormatInt(p.Price, 10),
			strconv.Itoa(p.Stock),
			p.Description,
			p.Image,
		})
	}
}

// ExportXLSX writes the product list as an XLSX workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	products, err := h.Service.List(user.ID)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Produk"
	f.SetSheetName("Sheet1", sheet)

	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, p := range products {
		values := []interface{}{p.Name, p.Category, p.Price, p.Stock, p.Description, p.Image}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"products_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, util.MsgServerError)
		return
	}
}
