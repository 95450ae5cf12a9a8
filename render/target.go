// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// AdaptiveTarget is a CPU render target that honors the store's adaptive
// quality scalar: Begin hands out a working image scaled by the current
// quality, and Resolve upscales the finished frame back to full size.
//
// The scaler is picked by how far quality dropped: nearest neighbor when
// rendering at half size or less (the cheap path for regressed frames),
// approximate bilinear for mild drops, and a plain copy at full quality.
//
// AdaptiveTarget is not safe for concurrent use; it belongs to the frame
// goroutine, like the store it serves.
type AdaptiveTarget struct {
	width  int
	height int

	working  *image.RGBA
	resolved *image.RGBA
	quality  float64
}

// NewAdaptiveTarget creates a target resolving to width×height pixels.
func NewAdaptiveTarget(width, height int) *AdaptiveTarget {
	t := &AdaptiveTarget{}
	t.Resize(width, height)
	return t
}

// Resize replaces the full-size resolution. Existing working and resolved
// images are dropped.
func (t *AdaptiveTarget) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t.width, t.height = width, height
	t.working = nil
	t.resolved = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Size returns the full resolution.
func (t *AdaptiveTarget) Size() (width, height int) {
	return t.width, t.height
}

// Begin starts a frame at the given quality in (0, 1] and returns the
// working image to draw into. Its bounds are the full size scaled by
// quality (at least 1×1). The working image is reused across frames of
// the same quality. Out-of-range quality is clamped.
func (t *AdaptiveTarget) Begin(quality float64) *image.RGBA {
	if quality <= 0 || math.IsNaN(quality) {
		quality = 1
	}
	if quality > 1 {
		quality = 1
	}

	w := int(math.Ceil(float64(t.width) * quality))
	h := int(math.Ceil(float64(t.height) * quality))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	if t.working == nil || t.working.Bounds().Dx() != w || t.working.Bounds().Dy() != h {
		t.working = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		clear(t.working.Pix)
	}
	t.quality = quality
	return t.working
}

// Resolve scales the working frame up to full size and returns the
// resolved image. At quality 1 the working image is the resolved image
// and no scaling runs. Resolve before Begin returns the (blank) full-size
// image.
func (t *AdaptiveTarget) Resolve() *image.RGBA {
	if t.working == nil {
		return t.resolved
	}
	if t.quality == 1 {
		t.resolved = t.working
		return t.resolved
	}

	if t.resolved == nil || t.resolved.Bounds().Dx() != t.width || t.resolved.Bounds().Dy() != t.height {
		t.resolved = image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	}
	scaler := draw.Scaler(draw.ApproxBiLinear)
	if t.quality <= 0.5 {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(t.resolved, t.resolved.Bounds(), t.working, t.working.Bounds(), draw.Src, nil)
	return t.resolved
}

// Image returns the last resolved frame.
func (t *AdaptiveTarget) Image() *image.RGBA {
	return t.resolved
}
