package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"wedding-voucher/voucher-svc/internal/service"
)

const selfTestCode = "WEDD-VOUCHER-TEST123"

func runSelfTest(w io.Writer, renderer service.QRRenderer, outDir string, now time.Time) error {
	fmt.Fprintln(w, "=== QR CODE RENDER ===")
	fmt.Fprintf(w, "Rendering QR code for: %s\n", selfTestCode)

	img, err := renderer.Render(selfTestCode, service.VoucherRenderOptions)
	if err != nil {
		fmt.Fprintf(w, "render failed: %v\n", err)
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := "qr_test_" + strconv.FormatInt(now.Unix(), 10) + ".png"
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, img.PNG, 0o644); err != nil {
		return fmt.Errorf("failed to write test image: %w", err)
	}

	fmt.Fprintln(w, "QR code rendered")
	fmt.Fprintf(w, "  - File: %s\n", filename)
	fmt.Fprintf(w, "  - Path: %s\n", path)
	fmt.Fprintf(w, "  - Size: %.2f KB\n", float64(len(img.PNG))/1024)

	dataURI := img.DataURI()
	prefix := dataURI
	if len(prefix) > 50 {
		prefix = prefix[:50]
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== BASE64 OUTPUT ===")
	fmt.Fprintf(w, "  - Prefix: %s...\n", prefix)
	fmt.Fprintf(w, "  - Length: %d characters\n", len(dataURI))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "All checks passed")
	return nil
}
