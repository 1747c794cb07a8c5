package model

type ConversionOutcome string

const (
	// Part created under the repair and stock part removed.
	OutcomeConverted ConversionOutcome = "converted"
	// Part created but the stock part could not be deleted; it is now duplicated.
	OutcomeCreatedNotRemoved ConversionOutcome = "created_not_removed"
	// Part creation failed; processing stopped here.
	OutcomeFailed ConversionOutcome = "failed"
	// Stock part was not in the loaded inventory; nothing was sent.
	OutcomeSkipped ConversionOutcome = "skipped"
)

type ConversionStep struct {
	StockPartID int64
	Outcome     ConversionOutcome
	// Part created under the repair, zero when none was created.
	PartID int64
	Err    error
}

type ConversionResult struct {
	RepairID int64
	Steps    []ConversionStep
}

func (r ConversionResult) Converted() []int64 {
	return r.idsWith(OutcomeConverted)
}

func (r ConversionResult) NotRemoved() []int64 {
	return r.idsWith(OutcomeCreatedNotRemoved)
}

func (r ConversionResult) Failed() []int64 {
	return r.idsWith(OutcomeFailed)
}

func (r ConversionResult) Skipped() []int64 {
	return r.idsWith(OutcomeSkipped)
}

// Complete reports whether every requested id reached the converted state.
func (r ConversionResult) Complete(requested int) bool {
	return len(r.Converted()) == requested
}

func (r ConversionResult) idsWith(o ConversionOutcome) []int64 {
	var ids []int64
	for _, s := range r.Steps {
		if s.Outcome == o {
			ids = append(ids, s.StockPartID)
		}
	}
	return ids
}
