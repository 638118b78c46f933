package entity

// SequenceKind selects which per-space counter an allocation draws from.
type SequenceKind string

const (
	SequenceNote       SequenceKind = "note"
	SequenceAttachment SequenceKind = "attachment"
)

// SpaceSequence is the counter row behind the per-space allocator. Value
// is the last number handed out for (SpaceSlug, Kind); gaps are permitted
// when an owning transaction aborts, duplicates never are.
type SpaceSequence struct {
	SpaceSlug string
	Kind      SequenceKind
	Value     int64
}
