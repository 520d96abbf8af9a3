package card

// ContentHost is the content embedded in the panel. On every layout pass it
// measures its natural height and reports it to its sink.
type ContentHost interface {
	// MeasuredHeight is the smallest height that fits the content, rounded
	// up to a whole unit.
	MeasuredHeight() float64
	SetHeightSink(sink HeightReportSink)
}

// HeightReportSink receives content height reports.
type HeightReportSink interface {
	ReportHeight(source ContentHost, height float64)
}

// Surface is the host-side rendering target the controller drives.
type Surface interface {
	SetBottomOffset(offset float64, anim Animation)
	SetPanelHeight(height float64)
	SetBackdropOpacity(alpha float64, anim Animation)
	// VisibleHeight is the container's total visible height.
	VisibleHeight() float64
}
