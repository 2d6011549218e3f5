// profitcli calcula el estado de resultados de un reporte de pedidos sin base de datos.
//
// Uso:
//
//	go run ./cmd/profitcli -file pedidos.xlsx -country colombia \
//	    -ad-spend 1500 -ad-currency USD -agency -rate COP=4100 -pdf reporte.pdf
//
// Imprime el P&L en texto (o JSON con -json). Con -pdf además exporta el documento.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/Coinnecta-api/internal/application/analytics"
	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/excel"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Coinnecta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Coinnecta-api/pkg/logger"
	"github.com/jhoicas/Coinnecta-api/pkg/numfmt"
)

const workspaceID = "cli"

// rateFlags acumula -rate COP=4100 repetidos.
type rateFlags currency.RateTable

func (r rateFlags) String() string { return fmt.Sprint(map[string]decimal.Decimal(r)) }

func (r rateFlags) Set(value string) error {
	code, raw, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("formato esperado MONEDA=VALOR, recibido %q", value)
	}
	r[strings.ToUpper(strings.TrimSpace(code))] = entity.ParseAmount(raw)
	return nil
}

type options struct {
	file       string
	country    string
	business   string
	adSpend    string
	adCurrency string
	agency     bool
	shopify    string
	other      string
	pdfOut     string
	asJSON     bool
	logLevel   string
	rates      rateFlags
}

func main() {
	opts := options{rates: rateFlags(currency.DefaultRates())}
	flag.StringVar(&opts.file, "file", "", "reporte de pedidos (.xlsx o .csv)")
	flag.StringVar(&opts.country, "country", "colombia", "país del reporte")
	flag.StringVar(&opts.business, "business", "", "nombre del negocio para el PDF")
	flag.StringVar(&opts.adSpend, "ad-spend", "0", "gasto publicitario")
	flag.StringVar(&opts.adCurrency, "ad-currency", currency.USD, "moneda del gasto publicitario")
	flag.BoolVar(&opts.agency, "agency", false, "el gasto pasa por agencia (aplica comisión)")
	flag.StringVar(&opts.shopify, "shopify", "0", "suscripción Shopify en USD")
	flag.StringVar(&opts.other, "other", "0", "otros gastos en moneda local")
	flag.StringVar(&opts.pdfOut, "pdf", "", "ruta del PDF a generar")
	flag.BoolVar(&opts.asJSON, "json", false, "imprimir el reporte como JSON")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "nivel de log")
	flag.Var(opts.rates, "rate", "tasa MONEDA=VALOR (unidades por 1 USD); repetible")
	flag.Parse()

	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "falta -file")
		flag.Usage()
		os.Exit(2)
	}

	logger.New(logger.Config{Env: "development", Level: opts.logLevel, Out: os.Stderr})

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "profitcli: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	content, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("leer archivo: %w", err)
	}

	rates := currency.RateTable(opts.rates).Normalize()
	store := memory.NewStore()
	if err := store.Workspaces().Create(ctx, &entity.Workspace{
		ID: workspaceID, BusinessName: opts.business, Status: "active",
	}); err != nil {
		return err
	}

	settingsUC := settings.NewSettingsUseCase(store.Settings(), store.Workspaces(), rates)
	if _, err := settingsUC.UpdateAdSpend(ctx, workspaceID, dto.AdSpendDTO{
		Amount:     dto.NewAmount(entity.ParseAmount(opts.adSpend)),
		Currency:   opts.adCurrency,
		UsesAgency: opts.agency,
	}); err != nil {
		return err
	}
	if _, err := settingsUC.UpdateExpenses(ctx, workspaceID, dto.UpdateExpensesRequest{
		ShopifyUSD: dto.NewAmount(entity.ParseAmount(opts.shopify)),
		Other:      dto.NewAmount(entity.ParseAmount(opts.other)),
	}); err != nil {
		return err
	}

	importUC := imports.NewImportUseCase(store.Imports(), store.Workspaces(), store, excel.NewOrderReportParser())
	if _, err := importUC.Upload(ctx, workspaceID, dto.UploadImportInput{
		FileName: filepath.Base(opts.file),
		Country:  opts.country,
		Content:  content,
	}); err != nil {
		return err
	}

	reportUC := appanalytics.NewReportUseCase(store.Imports(), store.Workspaces(), store.Settings(), rates, infrapdf.NewMarotoPDFGenerator())
	res, err := reportUC.GetReport(ctx, workspaceID, 0)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printReport(out, res)
	}

	if opts.pdfOut != "" {
		doc, _, err := reportUC.DownloadPDF(ctx, workspaceID, 0)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfOut, doc, 0o644); err != nil {
			return fmt.Errorf("escribir PDF: %w", err)
		}
		fmt.Fprintf(out, "\nPDF: %s\n", opts.pdfOut)
	}
	return nil
}

func printReport(w io.Writer, res *dto.ProfitReportResponse) {
	r := res.Report
	symbol := "$"
	if p, ok := market.Profile(r.CountryCode); ok {
		symbol = p.CurrencySymbol
	}
	money := func(d decimal.Decimal) string { return numfmt.Money(symbol, d) }

	fmt.Fprintf(w, "%s (%s, %s)\n", res.Import.Label, r.CountryCode, r.LocalCurrency)
	fmt.Fprintf(w, "Pedidos: %d  Enviados: %d  Entregados: %d  Tasa de entrega: %s\n\n",
		r.TotalOrders, r.Shipped, r.Delivered, numfmt.Percent(r.DeliveryRatePct))

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Ventas facturadas", r.BilledRevenue},
		{"Costo de producto", r.ProductCost.Neg()},
		{"Fletes", r.ShippingCost.Neg()},
		{"Fletes de devolución", r.ReturnShipping.Neg()},
		{"Beneficio operativo", r.OperatingProfit},
		{"Publicidad", r.TotalAdSpendLocal.Neg()},
		{"Beneficio después de publicidad", r.ProfitAfterAds},
		{"Gastos operativos", r.TotalOperatingExpenses.Neg()},
		{"PROFIT FINAL", r.FinalProfit},
	}
	for _, l := range lines {
		fmt.Fprintf(w, "%-34s %18s\n", l.label, money(l.amount))
	}
	fmt.Fprintf(w, "\nROI: %s  CPA real: %s\n", numfmt.Percent(r.ROIPct), money(r.RealCPA))
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "Sin tasa de cambio (1:1): %s\n", strings.Join(r.Warnings, ", "))
	}
}
