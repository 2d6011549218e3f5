// Package excel lee reportes de pedidos (.xlsx o .csv) exportados por la plataforma
// logística y los convierte en filas de orders.Row.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/orders"
)

const (
	colStatus        = "status"
	colPurchaseValue = "purchase_value"
	colFreight       = "freight"
	colReturnFreight = "return_freight"
	colSupplierTotal = "supplier_total"
)

// column cabecera esperada y letra de respaldo cuando la cabecera no aparece.
type column struct {
	header string
	letter string
}

var orderColumns = map[string]column{
	colStatus:        {header: "ESTATUS", letter: "K"},
	colPurchaseValue: {header: "VALOR DE COMPRA EN PRODUCTOS", letter: "T"},
	colFreight:       {header: "PRECIO FLETE", letter: "V"},
	colReturnFreight: {header: "COSTO DEVOLUCION FLETE", letter: "W"},
	colSupplierTotal: {header: "TOTAL EN PRECIOS DE PROVEEDOR", letter: "Y"},
}

// OrderReportParser implementa el puerto de ingesta de reportes de pedidos.
type OrderReportParser struct{}

// NewOrderReportParser construye el parser.
func NewOrderReportParser() *OrderReportParser {
	return &OrderReportParser{}
}

// Parse lee el reporte completo. El formato se decide por la extensión de fileName
// (.csv; cualquier otra se abre como libro de Excel, primera hoja).
func (p *OrderReportParser) Parse(reader io.Reader, fileName string) ([]orders.Row, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}

	var table [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		table, err = readCSV(data)
	default:
		table, err = readWorkbook(data)
	}
	if err != nil {
		return nil, err
	}
	return parseTable(table)
}

func readWorkbook(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: abrir excel: %v", domain.ErrInvalidInput, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene hojas", domain.ErrInvalidInput)
	}
	rows, err := file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	return rows, nil
}

// readCSV lee un CSV separado por comas o punto y coma. Los archivos que no son
// UTF-8 válido se decodifican como Windows-1252 (exportaciones de Excel en español).
func readCSV(data []byte) ([][]string, error) {
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}
	r := csv.NewReader(src)
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: leer csv: %v", domain.ErrInvalidInput, err)
	}
	return rows, nil
}

// detectDelimiter elige ';' cuando la primera línea tiene más puntos y coma que comas.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func parseTable(table [][]string) ([]orders.Row, error) {
	if len(table) < 2 {
		return nil, fmt.Errorf("%w: el archivo está vacío o no tiene el formato correcto", domain.ErrInvalidInput)
	}
	colMap := mapColumns(table[0])

	result := make([]orders.Row, 0, len(table)-1)
	for _, cells := range table[1:] {
		if isBlank(cells) {
			continue
		}
		result = append(result, orders.Row{
			Status:        strings.TrimSpace(readCell(cells, colMap[colStatus])),
			PurchaseValue: entity.ParseAmount(readCell(cells, colMap[colPurchaseValue])),
			Freight:       entity.ParseAmount(readCell(cells, colMap[colFreight])),
			ReturnFreight: entity.ParseAmount(readCell(cells, colMap[colReturnFreight])),
			SupplierTotal: entity.ParseAmount(readCell(cells, colMap[colSupplierTotal])),
		})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene filas de pedidos", domain.ErrInvalidInput)
	}
	return result, nil
}

// mapColumns ubica cada columna por su cabecera; si no aparece, usa la letra de respaldo.
func mapColumns(header []string) map[string]int {
	byHeader := make(map[string]int, len(header))
	for idx, h := range header {
		name := orders.Normalize(h)
		if name == "" {
			continue
		}
		if _, exists := byHeader[name]; !exists {
			byHeader[name] = idx
		}
	}

	mapped := make(map[string]int, len(orderColumns))
	for key, col := range orderColumns {
		if idx, ok := byHeader[col.header]; ok {
			mapped[key] = idx
			continue
		}
		idx, err := excelize.ColumnNameToNumber(col.letter)
		if err != nil {
			mapped[key] = -1
			continue
		}
		mapped[key] = idx - 1
	}
	return mapped
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
