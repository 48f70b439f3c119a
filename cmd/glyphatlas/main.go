// Command glyphatlas shapes a string, resolves its glyphs through an MSDF
// glyph atlas cache and writes the resulting atlases as PNG images.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/geometry"
	"github.com/gogpu/glyphatlas/gpuatlas"
)

type config struct {
	fontPath   string
	faceIndex  int
	text       string
	size       float64
	params     geometry.Params
	atlasSize  uint32
	maxAtlases int
	outDir     string
	sync       bool
	timeout    time.Duration
}

func main() {
	var (
		fontPath   = flag.String("font", "", "font file (TTF/OTF/TTC); default: Go Regular")
		faceIndex  = flag.Int("index", 0, "face index within a collection")
		text       = flag.String("text", "The quick brown fox jumps over the lazy dog", "text to shape")
		size       = flag.Float64("size", 32, "shaping size in pixels")
		border     = flag.Float64("border", 4, "SDF border in texels")
		density    = flag.Float64("tpe", 64, "texels per em")
		atlasSize  = flag.Uint("atlas", 512, "atlas width and height")
		maxAtlases = flag.Int("max-atlases", 8, "maximum number of atlases")
		outDir     = flag.String("out", ".", "output directory")
		syncMode   = flag.Bool("sync", false, "rasterize on the calling goroutine")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		glyphatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config{
		fontPath:  *fontPath,
		faceIndex: *faceIndex,
		text:      *text,
		size:      *size,
		params: geometry.Params{
			BorderTexels: float32(*border),
			TexelsPerEmX: float32(*density),
			TexelsPerEmY: float32(*density),
		},
		atlasSize:  uint32(*atlasSize),
		maxAtlases: *maxAtlases,
		outDir:     *outDir,
		sync:       *syncMode,
		timeout:    30 * time.Second,
	}

	res, err := run(cfg)
	if err != nil {
		log.Fatalf("glyphatlas: %v", err)
	}

	s := res.stats
	log.Printf("%d glyphs: %d placed, %d without shape or failed, %d atlases",
		res.glyphs, s.Present, s.Failed, s.Atlases)
	for _, path := range res.files {
		log.Printf("wrote %s", path)
	}
}

type result struct {
	glyphs int
	stats  glyphatlas.Stats
	files  []string
}

func run(cfg config) (result, error) {
	data := goregular.TTF
	if cfg.fontPath != "" {
		b, err := os.ReadFile(cfg.fontPath)
		if err != nil {
			return result{}, err
		}
		data = b
	}

	atlases, err := gpuatlas.New(gpuatlas.Config{
		Width:      cfg.atlasSize,
		Height:     cfg.atlasSize,
		MaxAtlases: cfg.maxAtlases,
		Label:      "glyphatlas",
	})
	if err != nil {
		return result{}, err
	}

	if cfg.sync {
		prev := glyphatlas.BackgroundRendering()
		glyphatlas.SetBackgroundRendering(false)
		defer glyphatlas.SetBackgroundRendering(prev)
	}
	cache := glyphatlas.New[gpuatlas.AtlasID, gpuatlas.Coords]()
	defer cache.Close()

	fh, err := cache.AddFace(data, cfg.faceIndex, cfg.params)
	if err != nil {
		return result{}, err
	}
	f, _ := cache.Face(fh)
	ids := shapeText(f.Shaping(), cfg.text, cfg.size)

	if err := resolve(cache, fh, ids, atlases, cfg.timeout); err != nil {
		return result{}, err
	}

	res := result{glyphs: len(ids), stats: cache.Stats()}
	for i := 0; i < atlases.AtlasCount(); i++ {
		id := gpuatlas.AtlasID(i)
		path := filepath.Join(cfg.outDir, fmt.Sprintf("atlas-%d.png", id))
		if err := writePNG(atlases, id, path); err != nil {
			return res, err
		}
		atlases.MarkClean(id)
		res.files = append(res.files, path)
	}
	return res, nil
}

// resolve requests every glyph, waits for the background worker and
// requests them again so that background results are settled.
func resolve(cache *glyphatlas.Cache[gpuatlas.AtlasID, gpuatlas.Coords], fh glyphatlas.Handle,
	ids []glyphatlas.GlyphID, atlases *gpuatlas.Manager, timeout time.Duration,
) error {
	for _, id := range ids {
		if _, _, err := cache.Glyph(fh, id, atlases); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := cache.Flush(ctx); err != nil {
		return err
	}

	for _, id := range ids {
		if _, _, err := cache.Glyph(fh, id, atlases); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(m *gpuatlas.Manager, id gpuatlas.AtlasID, path string) (err error) {
	a, ok := m.Atlas(id)
	if !ok {
		return fmt.Errorf("atlas %d not found", id)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(out, a.Image())
}
