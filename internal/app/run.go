package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ilkoid/assetgen/internal/ui"
	"github.com/ilkoid/assetgen/pkg/assets"
	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/mfg"
	"github.com/ilkoid/assetgen/pkg/table"
	"github.com/ilkoid/assetgen/pkg/utils"
)

// defaultHeaderRow: у вендорских книг заголовок чаще всего во второй строке.
const defaultHeaderRow = 2

// outputSheet — имя листа в выходной книге.
const outputSheet = "assets"

// Run выполняет полный прогон генерации.
//
// Возвращает ErrCancelled, если оператор отказался на экране
// подтверждения. Конфигурационные ошибки (нет SKU, битый нейминг)
// фатальны: частичный выход не пишется.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*assets.Result, error) {
	// 1. Выбор листа и строки заголовка
	sheet, err := p.resolveSheet(opts)
	if err != nil {
		return nil, err
	}

	headerRow := opts.HeaderRow
	if headerRow == 0 {
		headerRow = p.cfg.Input.HeaderRow
	}
	if headerRow == 0 {
		headerRow = defaultHeaderRow
	}

	utils.Info("reading workbook", "path", opts.InputPath, "sheet", sheet, "header_row", headerRow)

	t, err := table.ReadTable(opts.InputPath, sheet, headerRow)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	// 2. Классификация колонок + перекрытия из конфига
	profiles, rejected := columns.Classify(t)
	profiles = applyColumnRules(profiles, t, p.cfg.Columns)

	utils.Info("columns classified",
		"profiles", len(profiles),
		"rejected", len(rejected),
		"rows", t.RowCount())

	// 3. Нейминг: флаги -> конфиг -> справочник производителей
	naming, err := p.resolveNaming(opts)
	if err != nil {
		return nil, err
	}

	// 4. SKU колонка (догадка; финальное слово за оператором)
	names := t.ColumnNames()
	manualSKU := opts.SKUColumn
	if manualSKU == "" {
		manualSKU = p.cfg.Input.SKUColumn
	}

	skuColumn, skuErr := columns.ResolveSKUColumn(manualSKU, names)

	// 5. Vision обогащение: media type для картиночных колонок без
	// именной подсказки. До подтверждения — оператор видит результат
	// и может его перекрыть.
	if p.classifier != nil && !opts.NoVision {
		p.enrichMediaTypes(ctx, t, profiles)
	}

	// 6. Подтверждение оператором
	if opts.Yes {
		if skuErr != nil {
			return nil, skuErr
		}
		profiles = keepConfirmed(profiles)
	} else {
		confirmation, err := p.confirm(profiles, names, skuColumn)
		if err != nil {
			return nil, fmt.Errorf("confirmation screen: %w", err)
		}
		if !confirmation.Accepted {
			return nil, ErrCancelled
		}
		profiles = applyConfirmation(profiles, confirmation)
		skuColumn = confirmation.SKUColumn
		if skuColumn == "" {
			return nil, fmt.Errorf("no sku column selected")
		}
	}

	// 7. Генерация
	result, err := assets.Build(t, profiles, assets.Options{
		SKUColumn: skuColumn,
		Naming:    naming,
		HeaderRow: headerRow,
	})
	if err != nil {
		return nil, err
	}
	for _, rej := range rejected {
		result.Report.RejectColumn(rej.Name, rej.Reason)
	}

	// 8. Запись книги и лога
	rows := make([][]string, len(result.Records))
	for i, rec := range result.Records {
		rows[i] = rec.OutputRow()
	}
	if err := table.WriteSheet(opts.OutputPath, outputSheet, assets.OutputHeader, rows); err != nil {
		return nil, fmt.Errorf("write output workbook: %w", err)
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = opts.OutputPath + ".log"
	}
	if err := os.WriteFile(logPath, []byte(result.Report.Render()), 0o644); err != nil {
		return nil, fmt.Errorf("write generation log: %w", err)
	}

	utils.Info("generation finished",
		"records", len(result.Records),
		"output", opts.OutputPath,
		"log", logPath)

	return result, nil
}

// resolveSheet: флаг -> конфиг -> единственный лист книги.
// Несколько листов без явного выбора — ошибка со списком имён.
func (p *Pipeline) resolveSheet(opts RunOptions) (string, error) {
	if opts.Sheet != "" {
		return opts.Sheet, nil
	}
	if p.cfg.Input.Sheet != "" {
		return p.cfg.Input.Sheet, nil
	}

	sheets, err := table.ListSheets(opts.InputPath)
	if err != nil {
		return "", fmt.Errorf("list sheets: %w", err)
	}
	if len(sheets) == 1 {
		return sheets[0], nil
	}
	return "", fmt.Errorf("workbook has %d sheets, specify one of: %s",
		len(sheets), strings.Join(sheets, ", "))
}

// resolveNaming: флаги -> конфиг -> справочник производителей.
func (p *Pipeline) resolveNaming(opts RunOptions) (assets.Naming, error) {
	vendor := opts.Vendor
	if vendor == "" {
		vendor = p.cfg.Naming.Vendor
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = p.cfg.Naming.Prefix
	}
	if prefix == "" && vendor != "" {
		if id, ok := p.registry.PrefixFor(vendor); ok {
			utils.Info("manufacturer prefix from registry", "vendor", vendor, "prefix", id)
			prefix = id
		}
	}
	if prefix == "" {
		return assets.Naming{}, fmt.Errorf("manufacturer prefix is not set (flag, config or registry)")
	}

	folder := opts.BrandFolder
	if folder == "" {
		folder = p.cfg.Naming.BrandFolder
	}
	if folder == "" && vendor != "" {
		folder = mfg.DefaultBrandFolder(vendor)
	}
	if folder == "" {
		return assets.Naming{}, fmt.Errorf("brand folder is not set (flag, config or vendor name)")
	}

	return assets.Naming{Prefix: prefix, BrandFolder: folder}, nil
}

// keepConfirmed отбрасывает колонки без роли (режим -yes, без TUI).
func keepConfirmed(profiles []columns.Profile) []columns.Profile {
	kept := profiles[:0]
	for _, p := range profiles {
		if p.Role == columns.RoleImage || p.Role == columns.RolePDF || p.Role == columns.RoleVideo {
			kept = append(kept, p)
		}
	}
	return kept
}

// applyConfirmation накладывает решения оператора на профили.
func applyConfirmation(profiles []columns.Profile, c ui.Confirmation) []columns.Profile {
	byName := make(map[string]ui.ColumnChoice, len(c.Columns))
	for _, choice := range c.Columns {
		byName[choice.Name] = choice
	}

	kept := profiles[:0]
	for _, p := range profiles {
		choice, ok := byName[p.Name]
		if !ok || !choice.Keep {
			continue
		}
		p.MediaType = choice.MediaType
		kept = append(kept, p)
	}
	return kept
}
