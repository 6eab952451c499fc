package domain

// Symbol is the externally meaningful payload carried by a DLX row: either
// an Arrangement or a Vacation. The builder creates them and the solver
// treats them opaquely; the validator and emitter switch on the concrete
// type.
type Symbol interface {
	symbol()
}

// Arrangement assigns a set of staff of one title to one period on one day.
type Arrangement struct {
	Day    int
	Period PeriodID
	Title  TitleID
	Staffs []StaffID // sorted ascending, size in [min, max] of the headcount
}

func (Arrangement) symbol() {}

// Vacation grants one staff member a block of weekly rest days.
type Vacation struct {
	Week  int
	Staff StaffID
	Days  []int // sorted ascending day offsets, len == Constraints.Vacation
}

func (Vacation) symbol() {}
