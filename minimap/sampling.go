package minimap

import "math"

// DefaultMaxSamplingEvents is the number of discrete insert/delete events a
// re-sampling may report before it gives up and reports a single flush.
const DefaultMaxSamplingEvents = 10

// DefaultSamplingRatioTolerance is the relative change in sampling ratio
// below which an edited sampling table is kept as patched instead of being
// recomputed.
const DefaultSamplingRatioTolerance = 0.01

// SamplingParams tunes the re-sampling heuristics.
type SamplingParams struct {
	MaxEvents      int
	RatioTolerance float64
}

// DefaultSamplingParams returns the stock heuristics.
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		MaxEvents:      DefaultMaxSamplingEvents,
		RatioTolerance: DefaultSamplingRatioTolerance,
	}
}

// SamplingEvent describes how minimap rows moved after a re-sampling.
// It is one of SamplingInserted, SamplingDeleted or SamplingFlush.
type SamplingEvent interface {
	samplingEvent()
}

// SamplingInserted reports new minimap rows [From, To], 1-based, in the
// coordinates of the rows as they are being patched.
type SamplingInserted struct {
	From, To int
}

// SamplingDeleted reports removed minimap rows [From, To], 1-based.
type SamplingDeleted struct {
	From, To int
}

// SamplingFlush tells the consumer to drop everything it cached.
type SamplingFlush struct{}

func (SamplingInserted) samplingEvent() {}
func (SamplingDeleted) samplingEvent()  {}
func (SamplingFlush) samplingEvent()    {}

// SamplingState maps minimap rows to the document lines drawn in them
// while the document has more lines than the minimap has rows.
type SamplingState struct {
	ratio float64
	lines []int // lines[i] is the 1-based document line shown in row i+1
}

// NewSamplingState builds a state from an explicit mapping.
func NewSamplingState(ratio float64, lines []int) *SamplingState {
	return &SamplingState{ratio: ratio, lines: lines}
}

// Ratio returns document lines per minimap row.
func (s *SamplingState) Ratio() float64 { return s.ratio }

// Lines returns the row to line mapping. The slice must not be modified.
func (s *SamplingState) Lines() []int { return s.lines }

// LineCount returns the number of minimap rows.
func (s *SamplingState) LineCount() int { return len(s.lines) }

// ModelLine returns the document line drawn in minimap row row (1-based).
func (s *SamplingState) ModelLine(row int) int {
	if s == nil {
		return row
	}
	return s.lines[row-1]
}

// ComputeSampling decides whether the minimap must down-sample and, if so,
// returns the new row mapping together with the row events needed to bring
// a renderer built for prev up to date. A nil state means rows and document
// lines are the same thing.
func ComputeSampling(opts *Options, lineCount int, prev *SamplingState, params SamplingParams) (*SamplingState, []SamplingEvent) {
	if opts.RenderMode == RenderNone || !opts.IsSampling {
		return nil, nil
	}
	if params.MaxEvents <= 0 {
		params.MaxEvents = DefaultMaxSamplingEvents
	}
	c := ContainedLineCount(opts.EditorHeight, opts.LineHeight, opts.PixelRatio, lineCount,
		opts.PaddingTop, opts.PaddingBottom, opts.ScrollBeyondLastLine)
	rows := c.MinimapLineCount
	if rows < 1 || lineCount < 1 {
		return nil, nil
	}
	ratio := float64(lineCount) / float64(rows)

	if prev == nil || len(prev.lines) == 0 {
		return initialSampling(ratio, rows, lineCount), nil
	}
	if prev.withinTolerance(ratio, rows, lineCount, params.RatioTolerance) {
		return prev, nil
	}
	return resample(prev, ratio, rows, lineCount, params.MaxEvents)
}

// initialSampling centers each row within its bucket of ratio lines.
// The first row always shows line 1 and the last row the last line.
func initialSampling(ratio float64, rows, lineCount int) *SamplingState {
	half := ratio / 2
	lines := make([]int, rows)
	for i := 1; i < rows-1; i++ {
		lines[i] = int(math.Round(float64(i)*ratio + half))
	}
	lines[0] = 1
	if rows > 1 {
		lines[rows-1] = lineCount
	}
	return &SamplingState{ratio: ratio, lines: lines}
}

// withinTolerance reports whether a patched mapping can be kept as is: the
// row count is unchanged, the ends still pin the document and the ratio
// moved less than tolerance.
func (s *SamplingState) withinTolerance(ratio float64, rows, lineCount int, tolerance float64) bool {
	if len(s.lines) != rows || s.lines[0] != 1 || s.lines[rows-1] != lineCount {
		return false
	}
	return math.Abs(ratio-s.ratio) <= tolerance*s.ratio
}

// eventBuilder coalesces adjacent row events and gives up past the cap.
type eventBuilder struct {
	max      int
	events   []SamplingEvent
	overflow bool

	lastKind  int // 0 none, 1 deleted, 2 inserted
	lastIndex int // old index for deletes, new index for inserts
}

func (b *eventBuilder) deleted(oldIndex, row int) bool {
	if b.overflow {
		return false
	}
	if b.lastKind == 1 && b.lastIndex == oldIndex-1 {
		e := b.events[len(b.events)-1].(SamplingDeleted)
		e.To++
		b.events[len(b.events)-1] = e
		b.lastIndex = oldIndex
		return true
	}
	if len(b.events) == b.max {
		b.overflow = true
		return false
	}
	b.events = append(b.events, SamplingDeleted{From: row, To: row})
	b.lastKind, b.lastIndex = 1, oldIndex
	return true
}

func (b *eventBuilder) inserted(newIndex, row int) bool {
	if b.overflow {
		return false
	}
	if b.lastKind == 2 && b.lastIndex == newIndex-1 {
		e := b.events[len(b.events)-1].(SamplingInserted)
		e.To++
		b.events[len(b.events)-1] = e
		b.lastIndex = newIndex
		return true
	}
	if len(b.events) == b.max {
		b.overflow = true
		return false
	}
	b.events = append(b.events, SamplingInserted{From: row, To: row})
	b.lastKind, b.lastIndex = 2, newIndex
	return true
}

func (b *eventBuilder) result() []SamplingEvent {
	if b.overflow {
		return []SamplingEvent{SamplingFlush{}}
	}
	return b.events
}

// resample walks the new rows keeping previous choices whenever they still
// fall in the row's bucket, so small changes in ratio move few rows.
func resample(prev *SamplingState, ratio float64, rows, lineCount, maxEvents int) (*SamplingState, []SamplingEvent) {
	old := prev.lines
	half := ratio / 2
	lines := make([]int, rows)
	b := &eventBuilder{max: maxEvents}

	oldIndex := 0
	delta := 0 // rows inserted minus rows deleted so far, for event numbering
	minLine := 1

	for i := 0; i < rows; i++ {
		from := max(minLine, int(math.Round(float64(i)*ratio)))
		to := max(from, int(math.Round(float64(i+1)*ratio)))

		for oldIndex < len(old) && old[oldIndex] < from {
			if b.deleted(oldIndex, oldIndex+1+delta) {
				delta--
			}
			oldIndex++
		}

		var line int
		if oldIndex < len(old) && old[oldIndex] <= to && pinned(i, rows, old[oldIndex], lineCount) {
			line = old[oldIndex]
			oldIndex++
		} else {
			switch {
			case i == 0:
				line = 1
			case i == rows-1:
				line = lineCount
			default:
				line = int(math.Round(float64(i)*ratio + half))
			}
			if b.inserted(i, oldIndex+1+delta) {
				delta++
			}
		}
		lines[i] = line
		minLine = line
	}

	for ; oldIndex < len(old); oldIndex++ {
		if b.deleted(oldIndex, oldIndex+1+delta) {
			delta--
		}
	}

	return &SamplingState{ratio: ratio, lines: lines}, b.result()
}

// pinned reports whether line may be kept for row i: the first row must
// show line 1 and the last row the last line.
func pinned(i, rows, line, lineCount int) bool {
	switch {
	case i == 0:
		return line == 1
	case i == rows-1:
		return line == lineCount
	}
	return true
}

// ModelLineToMinimapLine returns the row that represents a document line.
// A nil state maps every line to itself.
func (s *SamplingState) ModelLineToMinimapLine(line int) int {
	if s == nil {
		return line
	}
	row := int(math.Round(float64(line) / s.ratio))
	return min(len(s.lines), max(1, row))
}

// ModelRangeToMinimapRange converts a document line range to rows, widening
// over neighbouring rows whose sampled line is still inside the range. ok is
// false when the range collapses onto a row that samples a line outside it.
func (s *SamplingState) ModelRangeToMinimapRange(fromLine, toLine int) (from, to int, ok bool) {
	if s == nil {
		return fromLine, toLine, true
	}
	fromIdx := s.ModelLineToMinimapLine(fromLine) - 1
	for fromIdx > 0 && s.lines[fromIdx-1] >= fromLine {
		fromIdx--
	}
	toIdx := s.ModelLineToMinimapLine(toLine) - 1
	for toIdx+1 < len(s.lines) && s.lines[toIdx+1] <= toLine {
		toIdx++
	}
	if fromIdx == toIdx {
		sampled := s.lines[fromIdx]
		if sampled < fromLine || sampled > toLine {
			return 0, 0, false
		}
	}
	return fromIdx + 1, toIdx + 1, true
}

// DecorationRangeToMinimapRange maps a decorated line range to rows. A
// multi-line range that collapses onto one row is stretched to two so it
// stays visibly taller than a single-line decoration.
func (s *SamplingState) DecorationRangeToMinimapRange(startLine, endLine int) (from, to int) {
	if s == nil {
		return startLine, endLine
	}
	from = s.ModelLineToMinimapLine(startLine)
	to = s.ModelLineToMinimapLine(endLine)
	if startLine != endLine && from == to {
		if to == len(s.lines) {
			if from > 1 {
				from--
			}
		} else {
			to++
		}
	}
	return from, to
}

// OnLinesDeleted patches the mapping for deleted document lines
// [fromLine, toLine]. Rows that pointed into the deleted block stick to the
// line just before it. The returned 0-based index range covers those rows;
// ok is false when none were affected.
func (s *SamplingState) OnLinesDeleted(fromLine, toLine int) (start, end int, ok bool) {
	deleted := toLine - fromLine + 1
	start, end = len(s.lines), -1
	for i := len(s.lines) - 1; i >= 0; i-- {
		if s.lines[i] < fromLine {
			break
		}
		if s.lines[i] <= toLine {
			s.lines[i] = max(1, fromLine-1)
			start = min(start, i)
			end = max(end, i)
		} else {
			s.lines[i] -= deleted
		}
	}
	return start, end, start <= end
}

// OnLinesInserted shifts every row at or after fromLine down by the number
// of inserted lines.
func (s *SamplingState) OnLinesInserted(fromLine, toLine int) {
	inserted := toLine - fromLine + 1
	for i := len(s.lines) - 1; i >= 0; i-- {
		if s.lines[i] < fromLine {
			break
		}
		s.lines[i] += inserted
	}
}
