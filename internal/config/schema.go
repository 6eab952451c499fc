// Package config holds the raw, un-normalised input record (schedule.yaml)
// and the loader that decodes it, mirroring the teacher's
// ConfigManager.Load -> loadFromFiles -> applyEnvironmentVariables
// pipeline.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

const dateLayout = "2006-01-02"

// Date parses an ISO (YYYY-MM-DD) scalar from YAML.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// RawID is an unresolved id reference (period-id, title-id, staff-id). The
// input schema allows ids to be written as either a YAML string or integer
// scalar; RawID normalises both to their string form so the normaliser can
// compare and suggest-correct against a single id space.
type RawID string

func (r *RawID) UnmarshalYAML(b []byte) error {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = RawID(scalarToString(v))
	return nil
}

// RawIDList accepts either a bare scalar id or a YAML list of ids, per §6's
// "id|[id]" fields (period-id, title-id).
type RawIDList []RawID

func (l *RawIDList) UnmarshalYAML(b []byte) error {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return err
	}
	items, ok := v.([]interface{})
	if !ok {
		*l = RawIDList{RawID(scalarToString(v))}
		return nil
	}
	out := make(RawIDList, len(items))
	for i, item := range items {
		out[i] = RawID(scalarToString(item))
	}
	*l = out
	return nil
}

func scalarToString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Schema is the raw input record described in spec §6, decoded directly
// from schedule.yaml before normalisation. Global scalar fields carry env
// tags so caarlos0/env/v6 can override a single solver parameter without
// editing the YAML, exactly as the teacher's Config struct does.
type Schema struct {
	DateRange [2]Date `yaml:"date-range"`

	MinRestTime   int `yaml:"min-rest-time" env:"SCHEDULER_MIN_REST_TIME"`
	Vacation      int `yaml:"vacation" env:"SCHEDULER_VACATION"`
	MaxRestGap    int `yaml:"max-rest-gap" env:"SCHEDULER_MAX_REST_GAP"`
	MaxPeriodType int `yaml:"max-period-type" env:"SCHEDULER_MAX_PERIOD_TYPE"`

	Periods []PeriodEntry `yaml:"period"`
	Titles  []TitleEntry  `yaml:"title"`
	Staff   []StaffEntry  `yaml:"staff"`

	StaffNumbers    []StaffNumberEntry    `yaml:"staff-number"`
	PreferPeriods   []PreferPeriodEntry   `yaml:"prefer-period"`
	PreferVacations []PreferVacationEntry `yaml:"prefer-vacation"`
	Partners        []PairEntry           `yaml:"partner"`
	Exclusions      []PairEntry           `yaml:"confliction"`
}

type PeriodEntry struct {
	ID    RawID  `yaml:"id"`
	Name  string `yaml:"name"`
	Begin int    `yaml:"begin"`
	End   int    `yaml:"end"`
}

type TitleEntry struct {
	ID   RawID  `yaml:"id"`
	Name string `yaml:"name"`
}

type StaffEntry struct {
	ID      RawID  `yaml:"id"`
	Name    string `yaml:"name"`
	TitleID RawID  `yaml:"title-id"`
}

type StaffNumberEntry struct {
	DateRange   [2]Date   `yaml:"date-range"`
	PeriodID    RawIDList `yaml:"period-id"`
	TitleID     RawIDList `yaml:"title-id"`
	NumberRange [2]int    `yaml:"number-range"`
}

type PreferPeriodEntry struct {
	DateRange [2]Date   `yaml:"date-range"`
	StaffID   RawID     `yaml:"staff-id"`
	PeriodID  RawIDList `yaml:"period-id"`
}

type PreferVacationEntry struct {
	StaffID RawID  `yaml:"staff-id"`
	Days    []Date `yaml:"days"`
}

// PairEntry backs both partner and confliction entries; both require
// exactly two staff ids, asserted by the normaliser rather than here.
type PairEntry struct {
	DateRange [2]Date `yaml:"date-range"`
	StaffID   []RawID `yaml:"staff-id"`
}
