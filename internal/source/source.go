package source

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields the frames to analyze: image files or rendered PDF pages.
type Source interface {
	FrameCount() int
	FrameName(index int) string
	Frame(index int) (image.Image, error)
	Close() error
}

// LoadError reports a path that could not be opened or decoded as an image.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Open picks the source type by path: a .pdf file, a directory of images,
// or a single image file.
func Open(path string, dpi int) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewFitzPDFSource(path, dpi)
	}
	return NewImageSource(path)
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewFitzPDFSource(path string, dpi int) (*FitzPDFSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *FitzPDFSource) FrameCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) FrameName(index int) string {
	return fmt.Sprintf("%s#%d", f.path, index+1)
}

// Frame rasterizes one page. go-fitz documents are not safe for concurrent
// use, so every call opens its own handle.
func (f *FitzPDFSource) Frame(index int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, &LoadError{Path: f.FrameName(index), Err: err}
	}
	defer workerDoc.Close()

	img, err := workerDoc.ImageDPI(index, float64(f.dpi))
	if err != nil {
		return nil, &LoadError{Path: f.FrameName(index), Err: err}
	}
	return img, nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
