// assetgen — генератор шаблона ассетов из вендорской XLSX книги.
//
// Читает лист, выводит роли колонок, показывает оператору экран
// подтверждения и пишет шестиколоночную книгу импорта + текстовый лог.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ilkoid/assetgen/internal/app"
	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/table"
	"github.com/ilkoid/assetgen/pkg/utils"
)

var (
	configFlag = flag.String("config", "config.yaml", "Path to config.yaml")
	inFlag     = flag.String("in", "", "Input vendor workbook (.xlsx)")
	outFlag    = flag.String("out", "", "Output workbook path (default: <in>_assets.xlsx)")
	logFlag    = flag.String("log", "", "Generation log path (default: <out>.log)")

	sheetFlag     = flag.String("sheet", "", "Sheet name (default: from config or the only sheet)")
	headerRowFlag = flag.Int("header-row", 0, "1-based header row, 1..5 (default: from config or 2)")
	skuFlag       = flag.String("sku-column", "", "SKU column name (default: autodetect)")

	vendorFlag = flag.String("vendor", "", "Vendor name, e.g. \"AFX Lighting\"")
	prefixFlag = flag.String("prefix", "", "Manufacturer ID prefix, e.g. 2605")
	brandFlag  = flag.String("brand-folder", "", "Brand folder, e.g. afx")

	modelFlag    = flag.String("model", "", "Vision model alias from config")
	yesFlag      = flag.Bool("yes", false, "Skip confirmation screen")
	noVisionFlag = flag.Bool("no-vision", false, "Disable vision media type enrichment")
	listFlag     = flag.Bool("list-sheets", false, "Print workbook sheets and exit")
	previewFlag  = flag.Bool("preview", false, "Print the first raw rows of the sheet and exit (helps pick -header-row)")
)

func main() {
	flag.Parse()

	// === ИНИЦИАЛИЗАЦИЯ ЛОГГЕРА ===
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer utils.SetupGracefulShutdown(cancel)()

	if *inFlag == "" {
		fmt.Fprintln(os.Stderr, "Input workbook is required: -in vendor.xlsx")
		os.Exit(1)
	}

	if *listFlag {
		sheets, err := table.ListSheets(*inFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "List sheets failed: %v\n", err)
			os.Exit(1)
		}
		for _, s := range sheets {
			fmt.Println(s)
		}
		return
	}

	cfg := loadConfig(*configFlag)

	if *previewFlag {
		sheet := *sheetFlag
		if sheet == "" {
			sheet = cfg.Input.Sheet
		}
		if sheet == "" {
			sheets, err := table.ListSheets(*inFlag)
			if err != nil || len(sheets) == 0 {
				fmt.Fprintf(os.Stderr, "Preview failed: cannot list sheets: %v\n", err)
				os.Exit(1)
			}
			sheet = sheets[0]
		}
		rows, err := table.ReadPreview(*inFlag, sheet, 10)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Preview failed: %v\n", err)
			os.Exit(1)
		}
		for i, row := range rows {
			fmt.Printf("%2d | %s\n", i+1, strings.Join(row, " | "))
		}
		return
	}

	out := *outFlag
	if out == "" {
		out = defaultOutputPath(*inFlag)
	}

	opts := app.RunOptions{
		InputPath:   *inFlag,
		OutputPath:  out,
		LogPath:     *logFlag,
		Sheet:       *sheetFlag,
		HeaderRow:   *headerRowFlag,
		SKUColumn:   *skuFlag,
		Vendor:      *vendorFlag,
		Prefix:      *prefixFlag,
		BrandFolder: *brandFlag,
		Model:       *modelFlag,
		Yes:         *yesFlag,
		NoVision:    *noVisionFlag,
	}

	pipeline, err := app.New(cfg, opts)
	if err != nil {
		utils.Error("Initialization failed", "error", err)
		fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
		os.Exit(1)
	}

	result, err := pipeline.Run(ctx, opts)
	if errors.Is(err, app.ErrCancelled) {
		fmt.Println("Cancelled, nothing written.")
		return
	}
	if err != nil {
		utils.Error("Generation failed", "error", err)
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Report.Render())
	fmt.Printf("Output : %s\n", out)
}

// loadConfig читает config.yaml; отсутствие файла не фатально —
// всё можно задать флагами.
func loadConfig(path string) *config.AppConfig {
	cfg, err := config.Load(path)
	if err != nil {
		utils.Warn("config not loaded, using flags only", "path", path, "error", err)
		return &config.AppConfig{}
	}
	utils.Info("config loaded", "path", path)
	return cfg
}

// defaultOutputPath: vendor.xlsx -> vendor_assets.xlsx
func defaultOutputPath(in string) string {
	ext := ".xlsx"
	base := in
	if n := len(in) - len(ext); n > 0 && in[n:] == ext {
		base = in[:n]
	}
	return base + "_assets" + ext
}
