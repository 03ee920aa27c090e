package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/dotfinder/internal/analyzer"
	"github.com/ivlev/dotfinder/internal/config"
	"github.com/ivlev/dotfinder/internal/overlay"
	"github.com/ivlev/dotfinder/internal/report"
	"github.com/ivlev/dotfinder/internal/source"
	"github.com/ivlev/dotfinder/internal/system"
)

type Project struct {
	Config   *config.Config
	Source   source.Source
	Detector analyzer.Detector
}

func NewProject(cfg *config.Config, src source.Source, det analyzer.Detector) *Project {
	return &Project{
		Config:   cfg,
		Source:   src,
		Detector: det,
	}
}

// Run detects markers on every frame of the source. Frames are processed
// in parallel up to Config.Workers; the report keeps source order.
// The first failing frame cancels the rest and its error is returned.
func (p *Project) Run(ctx context.Context) (*report.Report, error) {
	startTime := time.Now()

	frameCount := p.Source.FrameCount()
	if frameCount == 0 {
		return nil, fmt.Errorf("источник не содержит кадров")
	}

	log.Printf("[*] Источник: %s | Кадров: %d | Потоков: %d", p.Config.InputPath, frameCount, p.workers(frameCount))

	rep := report.NewReport(p.Config.Detector, frameCount)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers(frameCount))

	for i := 0; i < frameCount; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame, err := p.processFrame(i)
			if err != nil {
				return err
			}
			rep.Frames[i] = frame
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Config.ShowStats {
		p.printStats(rep, time.Since(startTime))
	}

	return rep, nil
}

func (p *Project) processFrame(i int) (report.Frame, error) {
	name := p.Source.FrameName(i)

	img, err := p.Source.Frame(i)
	if err != nil {
		return report.Frame{}, err
	}

	markers, err := p.Detector.Detect(img)
	if err != nil {
		return report.Frame{}, fmt.Errorf("%s: %w", name, err)
	}

	if p.Config.OverlayDir != "" {
		path := overlayPath(p.Config.OverlayDir, name, i)
		if err := overlay.Save(path, overlay.Annotate(img, markers)); err != nil {
			return report.Frame{}, fmt.Errorf("overlay %s: %w", path, err)
		}
	}

	bounds := img.Bounds()
	return report.Frame{
		Index:   i,
		Input:   name,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Markers: report.FromPoints(markers),
	}, nil
}

func (p *Project) workers(frameCount int) int {
	n := p.Config.Workers
	if n > frameCount {
		n = frameCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// overlayPath names the annotated copy after the frame, with its index to
// keep PDF pages apart.
func overlayPath(dir, name string, index int) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("#", "_", " ", "_").Replace(base)
	return filepath.Join(dir, fmt.Sprintf("%s_%03d.png", base, index+1))
}

func (p *Project) printStats(rep *report.Report, total time.Duration) {
	rss, err := system.MemoryUsage()
	if err != nil {
		log.Printf("[!] Не удалось получить использование памяти: %v", err)
	}

	fmt.Fprintf(os.Stderr,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Run: %s\n"+
			"Total Time: %.3fs\n"+
			"Frames: %d\n"+
			"Markers: %d\n"+
			"RSS: %.1f MiB\n"+
			"----------------------------\n",
		p.Config.BuildVersion, rep.RunID, total.Seconds(), len(rep.Frames), rep.MarkerCount(), float64(rss)/(1<<20),
	)
}
