package minimap

import (
	"math"
	"testing"
)

func TestSliderHeightEditorHeight(t *testing.T) {
	o := newTestOptions(100, 600)
	o.MinimapHeightIsEditorHeight = true
	o.LineHeight = 20
	o.MinimapLineHeight = 1

	ctx := RenderingContext{
		ViewportStartLine: 1,
		ViewportEndLine:   30,
		ScrollHeight:      20000,
		ViewportHeight:    600,
	}
	l := ComputeLayout(o, ctx, 1000, 1000, nil)
	if l.SliderHeight != 18 {
		t.Errorf("SliderHeight = %d, want 18", l.SliderHeight)
	}
	if !l.SliderNeeded {
		t.Error("SliderNeeded = false, want true")
	}
	if l.StartLine != 1 || l.EndLine != 600 {
		t.Errorf("rows = [%d, %d], want [1, 600]", l.StartLine, l.EndLine)
	}

	// scrolled to the bottom, the slider touches the end of the minimap
	ctx.ScrollTop = 20000 - 600
	l = ComputeLayout(o, ctx, 1000, 1000, nil)
	if got, want := l.SliderTop, float64(600-18); math.Abs(got-want) > 1e-6 {
		t.Errorf("SliderTop at bottom = %v, want %v", got, want)
	}
}

func TestLayoutAllLinesFit(t *testing.T) {
	o := newTestOptions(100, 200)
	ctx := fitContext(40)
	l := ComputeLayout(o, ctx, 40, 40, nil)
	if l.StartLine != 1 || l.EndLine != 40 {
		t.Errorf("rows = [%d, %d], want [1, 40]", l.StartLine, l.EndLine)
	}
	if l.SliderNeeded {
		t.Error("SliderNeeded = true for a document that fits the viewport")
	}
}

func TestLayoutTopPadding(t *testing.T) {
	o := newTestOptions(100, 200)
	o.PaddingTop = 32
	l := ComputeLayout(o, fitContext(40), 40, 40, nil)
	if l.TopPaddingLineCount != 2 {
		t.Errorf("TopPaddingLineCount = %d, want 2", l.TopPaddingLineCount)
	}
	if got := l.YForLine(1, o.MinimapLineHeight); got != 4 {
		t.Errorf("YForLine(1) = %d, want 4", got)
	}
}

func TestLayoutMonotonicStartLine(t *testing.T) {
	o := newTestOptions(100, 200)
	ctx := RenderingContext{
		ScrollHeight:   16000,
		ViewportWidth:  800,
		ViewportHeight: 800,
	}

	var prev *Layout
	for scrollTop := 0; scrollTop <= 15200; scrollTop += 7 {
		ctx.ScrollTop = scrollTop
		ctx.ViewportStartLine = scrollTop/16 + 1
		ctx.ViewportEndLine = ctx.ViewportStartLine + 49
		ctx.ViewportStartLineVerticalOffset = (ctx.ViewportStartLine - 1) * 16

		l := ComputeLayout(o, ctx, 1000, 1000, prev)
		if l.Empty() {
			t.Fatalf("layout at scrollTop %d is empty", scrollTop)
		}
		if prev != nil && l.StartLine < prev.StartLine {
			t.Fatalf("StartLine went from %d to %d scrolling down to %d", prev.StartLine, l.StartLine, scrollTop)
		}
		if l.SliderTop < 0 {
			t.Fatalf("SliderTop = %v at scrollTop %d", l.SliderTop, scrollTop)
		}
		prev = l
	}

	// and never increases scrolling back up
	for scrollTop := 15200; scrollTop >= 0; scrollTop -= 5 {
		ctx.ScrollTop = scrollTop
		ctx.ViewportStartLine = scrollTop/16 + 1
		ctx.ViewportEndLine = ctx.ViewportStartLine + 49
		ctx.ViewportStartLineVerticalOffset = (ctx.ViewportStartLine - 1) * 16

		l := ComputeLayout(o, ctx, 1000, 1000, prev)
		if l.StartLine > prev.StartLine {
			t.Fatalf("StartLine went from %d to %d scrolling up to %d", prev.StartLine, l.StartLine, scrollTop)
		}
		prev = l
	}
}

func TestIntersectWithViewport(t *testing.T) {
	l := &Layout{StartLine: 10, EndLine: 20}
	tests := []struct {
		r          Range
		start, end int
		ok         bool
	}{
		{LineRange(1, 5), 0, 0, false},
		{LineRange(21, 30), 0, 0, false},
		{LineRange(5, 12), 10, 12, true},
		{LineRange(15, 40), 15, 20, true},
		{LineRange(1, 100), 10, 20, true},
	}
	for _, tt := range tests {
		start, end, ok := l.IntersectWithViewport(tt.r)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Errorf("IntersectWithViewport(%d-%d) = %d, %d, %v, want %d, %d, %v",
				tt.r.StartLine, tt.r.EndLine, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
}

func TestDesiredScrollTop(t *testing.T) {
	l := &Layout{ScrollTop: 100, SliderHeight: 20, sliderRatio: 0.5}
	if got := l.DesiredScrollTopFromDelta(10); got != 120 {
		t.Errorf("DesiredScrollTopFromDelta(10) = %d, want 120", got)
	}
	if got := l.DesiredScrollTopFromTouchY(60); got != 100 {
		t.Errorf("DesiredScrollTopFromTouchY(60) = %d, want 100", got)
	}

	// nothing to scroll
	l = &Layout{ScrollTop: 0, SliderHeight: 20}
	if got := l.DesiredScrollTopFromDelta(10); got != 0 {
		t.Errorf("DesiredScrollTopFromDelta(10) without a slider = %d, want 0", got)
	}
}
