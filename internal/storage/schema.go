package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

const monthKeyLayout = "2006-01"

var schema = validator.New()

// ParseMonthKey parses a YYYY-MM month-key into the first day of that month (UTC).
func ParseMonthKey(key string) (time.Time, error) {
	if err := schema.Var(key, "required,datetime="+monthKeyLayout); err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// MonthLabel is the display label for a month-key, e.g. "January 2026".
// Unparseable keys label as themselves.
func MonthLabel(key string) string {
	t, err := ParseMonthKey(key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// Validate checks one month entry against its schema.
func (p MonthPlan) Validate() error {
	return schema.Struct(p)
}

// Validate returns one error per invalid month, ordered by month-key.
func (mp MasterPlan) Validate() []error {
	keys := mp.Keys()
	var errs []error
	for _, k := range keys {
		if _, err := ParseMonthKey(k); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := mp[k].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("month %s is invalid: %s", k, describe(err)))
		}
	}
	return errs
}

// Keys returns the month-keys in ascending order.
func (mp MasterPlan) Keys() []string {
	keys := make([]string, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describe flattens validator output to "field: tag" pairs.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	out := ""
	for i, fe := range verrs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s", fe.Field(), fe.Tag())
	}
	return out
}
