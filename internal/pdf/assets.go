package pdf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"

	"github.com/go-pdf/fpdf"
)

//go:embed assets/*.svg
var bundledAssets embed.FS

const (
	iconAssetPath = "assets/icon.svg"
	logoAssetPath = "assets/logo.svg"

	// iconRasterWidth is the pixel width the header icon is rasterized at
	iconRasterWidth = 256
)

// Asset is a decorative image that can be drawn into a report page
type Asset interface {
	// Size returns the natural extent; only the aspect ratio is used.
	Size() (w, h float64)
	// Draw renders the asset with its top-left corner at (x, top) scaled
	// to width × height.
	Draw(doc *fpdf.Fpdf, x, top, width, height float64) error
}

// Assets are the decorations of a report. A nil entry is simply skipped.
type Assets struct {
	Icon Asset
	Logo Asset
}

// LoadAssets reads the header icon and footer logo from fsys. The icon is
// rasterized to PNG, the logo is kept as vector paths. Failures are logged
// and leave the corresponding asset nil.
func LoadAssets(fsys fs.FS, iconPath, logoPath string) Assets {
	var assets Assets

	if img, err := loadVector(fsys, iconPath); err != nil {
		log.Printf("Header icon unavailable: %v", err)
	} else if icon, err := RasterAssetFromVector("header-icon", img, iconRasterWidth); err != nil {
		log.Printf("Header icon unavailable: %v", err)
	} else {
		assets.Icon = icon
	}

	if img, err := loadVector(fsys, logoPath); err != nil {
		log.Printf("Footer logo unavailable: %v", err)
	} else {
		assets.Logo = NewVectorAsset(img)
	}

	return assets
}

// DefaultAssets loads the icon and logo bundled with the binary
func DefaultAssets() Assets {
	return LoadAssets(bundledAssets, iconAssetPath, logoAssetPath)
}

func loadVector(fsys fs.FS, path string) (*VectorImage, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	img, err := ParseVector(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return img, nil
}

// fitSize scales a to fit inside maxW × maxH keeping its aspect ratio
func fitSize(a Asset, maxW, maxH float64) (float64, float64) {
	w, h := a.Size()
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if hs := maxH / h; hs < scale {
		scale = hs
	}
	return w * scale, h * scale
}
