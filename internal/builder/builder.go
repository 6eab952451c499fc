// Package builder translates a normalised Constraints record into a DLX
// incidence matrix: one column per "must be covered exactly once"
// requirement, one row per candidate Arrangement or Vacation, linked at
// their intersections (spec §4.3).
package builder

import (
	"sort"

	"shift-scheduler/internal/core"
	"shift-scheduler/internal/dlx"
	"shift-scheduler/internal/domain"
)

// Builder holds the column-lookup tables needed while wiring rows; it is
// discarded once Build returns.
type Builder struct {
	c      *domain.Constraints
	logger *core.Logger

	m           *dlx.Matrix
	arrangement map[arrKey]int
	vacation    map[vacKey]int
	period      map[domain.HeadcountKey]int
	prefer      map[domain.PreferKey]int
}

type arrKey struct {
	day   int
	staff domain.StaffID
}

type vacKey struct {
	week  int
	staff domain.StaffID
}

// New returns a Builder for c, logging row/column counts through logger.
func New(c *domain.Constraints, logger *core.Logger) *Builder {
	return &Builder{
		c:           c,
		logger:      logger,
		arrangement: make(map[arrKey]int),
		vacation:    make(map[vacKey]int),
		period:      make(map[domain.HeadcountKey]int),
		prefer:      make(map[domain.PreferKey]int),
	}
}

// Build constructs and returns the complete matrix.
func (b *Builder) Build() *dlx.Matrix {
	b.m = dlx.New()

	b.buildColumns()
	rows := b.buildVacationRows() + b.buildArrangementRows()

	sizes := make([]int, 0)
	for col := b.m.FirstColumn(); col != dlx.Root; col = b.m.NextColumn(col) {
		sizes = append(sizes, b.m.Count(col))
	}
	b.logger.Debug("built matrix: rows=%d cols=%d column_sizes=%v", rows, len(sizes), sizes)

	return b.m
}

func (b *Builder) buildColumns() {
	c := b.c

	for day := 0; day < c.Days; day++ {
		for _, staff := range c.StaffOrder {
			b.arrangement[arrKey{day, staff}] = b.m.CreateColumn()
		}
	}

	if c.Vacation > 0 {
		for week := 0; week < c.Weeks(); week++ {
			for _, staff := range c.StaffOrder {
				b.vacation[vacKey{week, staff}] = b.m.CreateColumn()
			}
		}
	}

	for _, key := range sortedHeadcountKeys(c.Headcount) {
		if c.Headcount[key].Min > 0 {
			b.period[key] = b.m.CreateColumn()
		}
	}

	for _, key := range sortedPreferKeys(c.PreferPeriods) {
		b.prefer[key] = b.m.CreateColumn()
	}
}

// buildVacationRows emits one row per (week, staff, subset-of-weekdays),
// skipped entirely when vacation == 0. Each subset is filtered to those
// that cover every prefer_vacations day for that staff in that week.
func (b *Builder) buildVacationRows() int {
	c := b.c
	if c.Vacation <= 0 {
		return 0
	}

	count := 0
	for week := 0; week < c.Weeks(); week++ {
		for _, staff := range c.StaffOrder {
			required := requiredWeekdayOffsets(c.PreferVacations[staff], week)

			combinations(7, c.Vacation, func(offsets []int) {
				if !containsAll(offsets, required) {
					return
				}

				days := make([]int, len(offsets))
				for i, o := range offsets {
					days[i] = week*7 + o
				}

				row := b.m.CreateRow(domain.Vacation{Week: week, Staff: staff, Days: days})
				for _, day := range days {
					b.m.AddNode(row, b.arrangement[arrKey{day, staff}])
				}
				b.m.AddNode(row, b.vacation[vacKey{week, staff}])
				for _, day := range days {
					if col, ok := b.prefer[domain.PreferKey{Day: day, Staff: staff}]; ok {
						b.m.AddNode(row, col)
					}
				}
				count++
			})
		}
	}
	return count
}

// buildArrangementRows emits one row per (day, period, title, staff-subset)
// of each size in [min, max] of the headcount requirement, skipped
// entirely when vacation >= 7 (no staff can ever work). Partner pairs
// active that day are enforced as a both-or-neither row filter (the
// spec's strengthening of the original's late validator-only check).
func (b *Builder) buildArrangementRows() int {
	c := b.c
	if c.Vacation >= 7 {
		return 0
	}

	count := 0
	for _, key := range sortedHeadcountKeys(c.Headcount) {
		hc := c.Headcount[key]
		if hc.Min <= 0 {
			continue
		}

		titleStaff := sortedStaff(c.Titles[key.Title].Staff)

		for n := hc.Min; n <= hc.Max && n <= len(titleStaff); n++ {
			combinations(len(titleStaff), n, func(idx []int) {
				staffSet := make([]domain.StaffID, len(idx))
				for i, j := range idx {
					staffSet[i] = titleStaff[j]
				}

				if !respectsPartners(c.Partners[key.Day], staffSet) {
					return
				}

				row := b.m.CreateRow(domain.Arrangement{
					Day: key.Day, Period: key.Period, Title: key.Title, Staffs: staffSet,
				})
				for _, s := range staffSet {
					b.m.AddNode(row, b.arrangement[arrKey{key.Day, s}])
				}
				b.m.AddNode(row, b.period[key])
				for _, s := range staffSet {
					periods, ok := c.PreferPeriods[domain.PreferKey{Day: key.Day, Staff: s}]
					if !ok || !containsPeriod(periods, key.Period) {
						continue
					}
					if col, ok := b.prefer[domain.PreferKey{Day: key.Day, Staff: s}]; ok {
						b.m.AddNode(row, col)
					}
				}
				count++
			})
		}
	}
	return count
}

func respectsPartners(pairs []domain.PartnerPair, staffSet []domain.StaffID) bool {
	if len(pairs) == 0 {
		return true
	}
	in := make(map[domain.StaffID]struct{}, len(staffSet))
	for _, s := range staffSet {
		in[s] = struct{}{}
	}
	for _, pair := range pairs {
		_, a := in[pair[0]]
		_, b := in[pair[1]]
		if a != b {
			return false
		}
	}
	return true
}

func containsPeriod(periods []domain.PeriodID, target domain.PeriodID) bool {
	for _, p := range periods {
		if p == target {
			return true
		}
	}
	return false
}

func requiredWeekdayOffsets(preferDays map[int]struct{}, week int) map[int]struct{} {
	required := make(map[int]struct{})
	for day := range preferDays {
		if day/7 == week {
			required[day%7] = struct{}{}
		}
	}
	return required
}

func containsAll(offsets []int, required map[int]struct{}) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[int]struct{}, len(offsets))
	for _, o := range offsets {
		have[o] = struct{}{}
	}
	for r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

// combinations lazily enumerates every size-k subset of {0,...,n-1} in
// ascending index order, calling visit with each as a freshly allocated
// slice that the caller may keep.
func combinations(n, k int, visit func(idx []int)) {
	if k < 0 || k > n {
		return
	}
	combo := make([]int, k)
	var rec func(start, idx int)
	rec = func(start, idx int) {
		if idx == k {
			out := make([]int, k)
			copy(out, combo)
			visit(out)
			return
		}
		for i := start; i <= n-(k-idx); i++ {
			combo[idx] = i
			rec(i+1, idx+1)
		}
	}
	rec(0, 0)
}

func sortedStaff(set map[domain.StaffID]struct{}) []domain.StaffID {
	out := make([]domain.StaffID, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedHeadcountKeys(m map[domain.HeadcountKey]domain.HeadcountRange) []domain.HeadcountKey {
	out := make([]domain.HeadcountKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Title < b.Title
	})
	return out
}

func sortedPreferKeys(m map[domain.PreferKey][]domain.PeriodID) []domain.PreferKey {
	out := make([]domain.PreferKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Staff < b.Staff
	})
	return out
}
