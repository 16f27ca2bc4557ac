package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/poster"
	"github.com/matzehuels/lyricspiral/pkg/render"
	"github.com/matzehuels/lyricspiral/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, doc poster.Document, opts Options) (map[string][]byte, error) {
	sinkOpts, err := buildSinkOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(doc, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(doc, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, doc, sinkOpts...)
			if stderrors.Is(err, render.ErrNoConverter) {
				err = errors.Wrap(errors.ErrCodeUnsupported, err, "pdf output is not available")
			}
		case FormatJSON:
			data, err = sink.RenderJSON(doc)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSinkOptions builds the visual options shared by svg, png and pdf.
func buildSinkOptions(opts Options) ([]sink.Option, error) {
	theme, err := sink.LookupTheme(opts.Theme)
	if err != nil {
		return nil, err
	}

	sinkOpts := []sink.Option{sink.WithTheme(theme)}
	if opts.CenterLabel {
		sinkOpts = append(sinkOpts, sink.WithCenterLabel())
	}
	if opts.QR != "" {
		sinkOpts = append(sinkOpts, sink.WithQR(opts.QR))
	}
	if opts.Scale > 0 {
		sinkOpts = append(sinkOpts, sink.WithScale(opts.Scale))
	}
	return sinkOpts, nil
}

// RenderFromLayoutData renders output from a serialized layout document
// without going through a cache.
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	doc, err := poster.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	return Render(ctx, doc, opts)
}
