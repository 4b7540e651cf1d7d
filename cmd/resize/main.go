// resize — утилита подгонки картинок под квадрат с умными полями.
//
// Каждая картинка вписывается в target x target с сохранением
// пропорций; поля заливаются доминирующим цветом фона (по углам
// исходника). Выход всегда JPEG.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/utils"
)

var (
	configFlag  = flag.String("config", "config.yaml", "Path to config.yaml")
	sizeFlag    = flag.Int("size", 0, "Target square size (default: from config or 1000)")
	qualityFlag = flag.Int("quality", 0, "JPEG quality (default: from config or 95)")
	outDirFlag  = flag.String("out", "", "Output directory (default: next to originals)")
)

func main() {
	flag.Parse()

	// === ИНИЦИАЛИЗАЦИЯ ЛОГГЕРА ===
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}
	defer utils.Close()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: resize [flags] <image> [<image> ...]")
		os.Exit(1)
	}

	rc := resizeSettings()

	ok, failed := 0, 0
	for _, path := range files {
		if err := processFile(path, rc.TargetSize, rc.Quality); err != nil {
			utils.Error("resize failed", "file", path, "error", err)
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		ok++
	}

	fmt.Printf("Processed %d image(s), %d failed, target %dx%d\n", ok, failed, rc.TargetSize, rc.TargetSize)
	if failed > 0 {
		os.Exit(1)
	}
}

// resizeSettings: флаги -> конфиг -> дефолты (1000x1000, качество 95).
func resizeSettings() config.ResizeConfig {
	rc := config.ResizeConfig{}
	if cfg, err := config.Load(*configFlag); err == nil {
		rc = cfg.Resize
	}
	rc = rc.GetDefaults()

	if *sizeFlag > 0 {
		rc.TargetSize = *sizeFlag
	}
	if *qualityFlag > 0 {
		rc.Quality = *qualityFlag
	}
	return rc
}

func processFile(path string, size, quality int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	resized, err := utils.ResizeWithPadding(data, size, quality)
	if err != nil {
		return err
	}

	out := outputPath(path)
	if err := os.WriteFile(out, resized, 0o644); err != nil {
		return err
	}

	utils.Info("image resized", "in", path, "out", out, "bytes", len(resized))
	return nil
}

// outputPath: jpg/jpeg сохраняют имя, прочие форматы получают .jpg.
// С -out файл уходит в указанную директорию, иначе ложится рядом
// с исходником с суффиксом _resized.
func outputPath(in string) string {
	dir := filepath.Dir(in)
	base := filepath.Base(in)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	name := stem + ".jpg"
	if ext == ".jpg" || ext == ".jpeg" {
		name = base
	}

	if *outDirFlag != "" {
		return filepath.Join(*outDirFlag, name)
	}
	return filepath.Join(dir, stem+"_resized.jpg")
}
