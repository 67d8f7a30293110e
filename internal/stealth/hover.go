// Package stealth - random hover demo behavior, driven by the cursor engine
// rather than a bespoke mouse controller.
package stealth

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"

	"humancursor/internal/cursor"
)

// HoverRandomElement moves the cursor to element, already located and
// scrolled into view by the browser adapter, then pauses briefly as if
// reading it.
func HoverRandomElement(ctx context.Context, element *rod.Element, cur *cursor.Cursor, newElementTarget func(*rod.Element) cursor.ElementHandle, logger zerolog.Logger) error {
	logger.Debug().Msg("performing random hover")

	handle := newElementTarget(element)
	if err := cur.MoveTo(ctx, cursor.ElementTarget(handle, nil), cursor.AutoDuration()); err != nil {
		return err
	}

	hoverTime := time.Duration(200+rand.Intn(600)) * time.Millisecond
	time.Sleep(hoverTime)

	logger.Debug().Dur("duration", hoverTime).Msg("hovered random element")
	return nil
}

// HoverAndRead moves to element and pauses for a duration scaled to its
// text length, simulating the time a person would spend reading it.
func HoverAndRead(ctx context.Context, element *rod.Element, cur *cursor.Cursor, newElementTarget func(*rod.Element) cursor.ElementHandle, logger zerolog.Logger) error {
	logger.Debug().Msg("hover and read simulation")

	handle := newElementTarget(element)
	if err := cur.MoveTo(ctx, cursor.ElementTarget(handle, nil), cursor.AutoDuration()); err != nil {
		return err
	}

	text, err := element.Text()
	if err != nil {
		text = ""
	}

	wordCount := len(text) / 5
	if wordCount < 2 {
		wordCount = 2
	}
	if wordCount > 50 {
		wordCount = 50
	}

	readingTime := time.Duration(float64(wordCount)/3.5*1000) * time.Millisecond
	readingTime = time.Duration(float64(readingTime) * (0.8 + rand.Float64()*0.4))

	time.Sleep(readingTime)
	return nil
}
